package localstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lawyer-search-backend/internal/model"
)

// AccessTokenKey is the key under which the bearer token is kept.
const AccessTokenKey = "access_token"

// Storage defines the key/value operations of the local storage.
// A missing key, or one holding the empty string, reads as absent.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// gormStorage implements the Storage interface using GORM.
type gormStorage struct {
	db *gorm.DB
}

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) Storage {
	return &gormStorage{db: db}
}

func (s *gormStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var item model.LocalStorageItem
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read local storage key %q: %w", key, err)
	}
	return item.Value, item.Value != "", nil
}

func (s *gormStorage) SetItem(ctx context.Context, key, value string) error {
	item := model.LocalStorageItem{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&item).Error; err != nil {
		return fmt.Errorf("failed to write local storage key %q: %w", key, err)
	}
	return nil
}

func (s *gormStorage) RemoveItem(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&model.LocalStorageItem{}).Error; err != nil {
		return fmt.Errorf("failed to remove local storage key %q: %w", key, err)
	}
	return nil
}

// memoryStorage keeps items in process memory. Items never expire.
type memoryStorage struct {
	items *cache.Cache
}

// NewMemoryStorage creates an in-process storage, used when no database is configured.
func NewMemoryStorage() Storage {
	return &memoryStorage{items: cache.New(cache.NoExpiration, 0)}
}

func (s *memoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	v, found := s.items.Get(key)
	if !found {
		return "", false, nil
	}
	value := v.(string)
	return value, value != "", nil
}

func (s *memoryStorage) SetItem(_ context.Context, key, value string) error {
	s.items.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *memoryStorage) RemoveItem(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

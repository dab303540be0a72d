package model

import "time"

// LocalStorageItem is one key/value pair of the persistent local storage.
type LocalStorageItem struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"lawyer-search-backend/internal/errorstore"
	"lawyer-search-backend/internal/i18n"
	"lawyer-search-backend/internal/localstorage"
	"lawyer-search-backend/internal/search"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	search  *search.Store
	errors  *errorstore.Store
	storage localstorage.Storage
	locales *i18n.Bundle
	db      *gorm.DB
	webpush *webpush.Options
}

// Deps groups what the handlers need. Fields left nil disable the routes
// that depend on them.
type Deps struct {
	Search  *search.Store
	Errors  *errorstore.Store
	Storage localstorage.Storage
	Locales *i18n.Bundle
	DB      *gorm.DB
	WebPush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		search:  d.Search,
		errors:  d.Errors,
		storage: d.Storage,
		locales: d.Locales,
		db:      d.DB,
		webpush: d.WebPush,
	}
}

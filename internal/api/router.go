package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"lawyer-search-backend/config"
	"lawyer-search-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, d Deps) *gin.Engine {
	r := gin.Default()
	handler := NewHandler(d)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, mw.ClientIP)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	caching := mw.Cache(cache.New(cacheTTL, 2*cacheTTL), cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/search", handler.PostSearch)
		api.GET("/search/result", handler.GetSearchResult)

		api.GET("/errors", handler.GetError)
		api.DELETE("/errors", handler.DeleteError)

		api.PUT("/token", handler.PutToken)
		api.DELETE("/token", handler.DeleteToken)

		if d.Locales != nil {
			api.GET("/locales", caching, handler.GetLocales)
			api.GET("/locales/:locale", caching, handler.GetLocaleMessages)
		}

		if d.DB != nil {
			api.GET("/subscriptions", handler.GetSubscription)
			api.PUT("/subscriptions", handler.PutSubscription)
			api.DELETE("/subscriptions", handler.DeleteSubscription)
		}
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLocales handles GET /api/locales. The locale best matching the
// Accept-Language header is reported as "preferred".
func (h *Handler) GetLocales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"locales":   h.locales.Locales(),
		"preferred": h.locales.Match(c.GetHeader("Accept-Language")),
	})
}

// GetLocaleMessages handles GET /api/locales/:locale.
func (h *Handler) GetLocaleMessages(c *gin.Context) {
	locale := c.Param("locale")
	if !h.locales.Has(locale) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown locale"})
		return
	}
	c.JSON(http.StatusOK, h.locales.Messages(locale))
}

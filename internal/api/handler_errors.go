package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetError handles GET /api/errors.
func (h *Handler) GetError(c *gin.Context) {
	c.JSON(http.StatusOK, h.errors.State())
}

// DeleteError handles DELETE /api/errors.
func (h *Handler) DeleteError(c *gin.Context) {
	h.errors.HideError()
	c.Status(http.StatusNoContent)
}

package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lawyer-search-backend/internal/localstorage"
)

type putTokenRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// PutToken stores the bearer token used by searches.
func (h *Handler) PutToken(c *gin.Context) {
	var req putTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.storage.SetItem(c.Request.Context(), localstorage.AccessTokenKey, req.AccessToken); err != nil {
		log.Printf("Error storing access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store token"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteToken removes the stored bearer token.
func (h *Handler) DeleteToken(c *gin.Context) {
	if err := h.storage.RemoveItem(c.Request.Context(), localstorage.AccessTokenKey); err != nil {
		log.Printf("Error removing access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove token"})
		return
	}
	c.Status(http.StatusNoContent)
}

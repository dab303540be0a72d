package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lawyer-search-backend/internal/search"
)

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
	Page       int    `json:"page" binding:"min=0"`
}

// PostSearch handles POST /api/search. It runs the search and answers with
// the result held afterwards; upstream failures show up in /api/errors.
func (h *Handler) PostSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.search.SearchLawyers(c.Request.Context(), req.SearchTerm, req.Page)
	switch {
	case errors.Is(err, search.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	case err != nil:
		log.Printf("Search for %q failed: %v", req.SearchTerm, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, h.search.LawyerSearchResult())
}

// GetSearchResult handles GET /api/search/result.
func (h *Handler) GetSearchResult(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"lawyerSearchResult": h.search.LawyerSearchResult(),
		"pending":            h.search.Pending(),
	})
}

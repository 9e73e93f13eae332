package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askhubdev/askhub/backend/internal/feed"
	"github.com/askhubdev/askhub/backend/internal/models"
	"github.com/askhubdev/askhub/backend/internal/pagination"
)

type TagHandler struct {
	feed *feed.Service
}

func NewTagHandler(feedService *feed.Service) *TagHandler {
	return &TagHandler{feed: feedService}
}

// GetTags returns one page of the tag listing with question counts.
func (h *TagHandler) GetTags(c *gin.Context) {
	page := pagination.Param(c.Query("page"), pagination.DefaultPage)
	pageSize := pagination.Param(c.Query("pageSize"), pagination.DefaultPageSize)

	items, meta, err := h.feed.GetTags(c.Request.Context(), page, pageSize)
	if err != nil {
		log.Printf("tag listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	if items == nil {
		items = []models.TagCount{}
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": items,
		"meta": meta,
	})
}

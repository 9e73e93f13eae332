// Package pagination slices ordered listings into pages. It knows nothing
// about questions or tags and is shared by both listings.
package pagination

import (
	"strconv"

	"github.com/askhubdev/askhub/backend/internal/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Paginate returns the 1-based page of items plus its metadata. Non-positive
// page or pageSize fall back to the defaults. A page past the end clamps to
// the last valid page instead of returning an empty slice; an empty input
// still reports one (empty) page.
func Paginate[T any](items []T, page, pageSize int) ([]T, models.PageMeta) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return items[start:end], models.PageMeta{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}
}

// Param parses a page or pageSize query value, falling back when the value
// is missing, non-numeric, or non-positive.
func Param(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

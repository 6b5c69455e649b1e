package search

import "github.com/jonathan/catalitium/internal/types"

// Page is one window of a result set.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Paginate returns the requested page of items. page is raised to 1 and
// pageSize clamped into [1, types.MaxPageSize]; pages past the end are empty.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	page = max(page, 1)
	pageSize = min(max(pageSize, 1), types.MaxPageSize)

	total := len(items)
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := min(start+pageSize, total)
	totalPages := (total + pageSize - 1) / pageSize

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

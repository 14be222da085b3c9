package store

import (
	"fmt"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest carries the uniform pagination parameters: zero-based page
// index, page size, sort field name and case-insensitive direction.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// normalized clamps the request into valid bounds.
func (r PageRequest) normalized() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	return r
}

// orderClause builds an ORDER BY clause against a per-entity whitelist
// of sortable columns. Unknown sort fields fall back to id.
func (r PageRequest) orderClause(allowed map[string]string) string {
	column, ok := allowed[r.SortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if strings.EqualFold(r.SortDir, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// Page is one page of results plus the paging metadata the response
// envelope exposes.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"page_number"`
	Size          int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage wraps content with paging metadata for the given request.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	req = req.normalized()
	totalPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

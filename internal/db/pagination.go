package db

import (
	"strconv"

	"gorm.io/gorm"
)

// Pagination limits
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps number and limit into valid ranges
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// ParsePage builds a Page from raw query values, falling back to defaults
// for missing or malformed input
func ParsePage(rawPage, rawLimit string) Page {
	number, err := strconv.Atoi(rawPage)
	if err != nil {
		number = DefaultPage
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		limit = DefaultLimit
	}
	return NewPage(number, limit)
}

// Offset returns the number of rows to skip
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Scope applies LIMIT/OFFSET for the page
func (p Page) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(p.Offset()).Limit(p.Limit)
	}
}

// Pagination describes a page of a result set in API responses
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination computes page metadata for total matching rows
func NewPagination(p Page, total int64) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{
		Page:       p.Number,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Number < totalPages,
		HasPrev:    p.Number > 1,
	}
}

// Paged is one page of results with its pagination metadata
type Paged[T any] struct {
	Items      []*T
	Pagination Pagination
}

// NewPaged wraps items fetched for page p out of total matching rows
func NewPaged[T any](items []*T, p Page, total int64) *Paged[T] {
	if items == nil {
		items = []*T{}
	}
	return &Paged[T]{Items: items, Pagination: NewPagination(p, total)}
}

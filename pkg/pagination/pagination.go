// Package pagination holds the page and keyset parameters accepted by list
// endpoints and the metadata returned with each page.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// ErrInvalidCursor is returned for a cursor the server did not issue
var ErrInvalidCursor = errors.New("invalid cursor")

// Pagination describes one page of an offset listing
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams are the page and per_page query values
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns the first page at the default size
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: DefaultPerPage}
}

// Validate clamps the parameters into range
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = clampSize(p.PerPage)
}

// Offset is the number of rows before the requested page
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination builds page metadata from the total row count
func NewPagination(page, perPage int, total int64) *Pagination {
	perPage = clampSize(perPage)
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult is one page of items with its metadata
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult pairs items with their page metadata
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}

// CursorDirection selects the page after or before the cursor
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is the (created_at, id) keyset of a row
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Encode returns the opaque form handed to clients
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// CursorParams are the cursor, direction and limit query values
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// Validate clamps the limit and defaults the direction to next
func (c *CursorParams) Validate() {
	c.Limit = clampSize(c.Limit)
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// Backward reports whether the page before the cursor is requested
func (c *CursorParams) Backward() bool {
	return c.Direction == CursorDirectionPrev && c.Cursor != ""
}

// Order is the keyset ordering to query with. Backward pages are read in
// reverse and flipped by NewCursorPaginatedResult.
func (c *CursorParams) Order() string {
	if c.Backward() {
		return "created_at DESC, id DESC"
	}
	return "created_at ASC, id ASC"
}

// DecodeCursor returns nil for the first page
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var cursor Cursor
	if err := json.Unmarshal(decoded, &cursor); err != nil || cursor.ID == "" {
		return nil, ErrInvalidCursor
	}
	return &cursor, nil
}

// CursorPagination describes one page of a keyset listing
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// CursorPaginatedResult is one keyset page of items with its metadata
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// NewCursorPaginatedResult builds the page from rows fetched with
// params.Order and a limit of params.Limit+1. The extra row only signals that
// more rows exist in the direction of travel.
func NewCursorPaginatedResult[T any](rows []T, params *CursorParams, key func(T) Cursor) *CursorPaginatedResult[T] {
	more := len(rows) > params.Limit
	if more {
		rows = rows[:params.Limit]
	}

	page := &CursorPagination{Limit: params.Limit}
	if params.Backward() {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
		page.HasPrev = more
		page.HasNext = true
	} else {
		page.HasNext = more
		page.HasPrev = params.Cursor != ""
	}

	if len(rows) > 0 {
		next := key(rows[len(rows)-1]).Encode()
		prev := key(rows[0]).Encode()
		page.NextCursor = &next
		page.PrevCursor = &prev
	} else {
		rows = []T{}
	}

	return &CursorPaginatedResult[T]{Items: rows, Pagination: page}
}

func clampSize(n int) int {
	switch {
	case n < 1:
		return DefaultPerPage
	case n > MaxPerPage:
		return MaxPerPage
	default:
		return n
	}
}

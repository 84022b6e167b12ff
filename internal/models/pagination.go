package models

const (
	// DefaultPage is the first page.
	DefaultPage = 1
	// DefaultLimit is the page size used when none is given.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// ListParams are the query parameters accepted by every list endpoint.
type ListParams struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// Normalize applies defaults and bounds.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset is the number of rows skipped before the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the pagination block of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination builds the block for a page of a result of size total.
func NewPagination(page, limit, total int) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}

// TotalPages is ceil(total/limit). A non-positive limit yields 0.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// HasNext reports whether a page follows the current one.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether a page precedes the current one.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// ListResponse is the envelope every list endpoint returns.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

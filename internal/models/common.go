package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// NewPagination fills TotalPages from the other fields.
func NewPagination(page, pageSize, total int) *Pagination {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return &Pagination{Page: page, PageSize: pageSize, TotalCount: total, TotalPages: pages}
}

// PageRequest carries normalised paging input for repositories.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize clamps page and size, falling back to def when size is unset or above max.
func (p PageRequest) Normalize(def, max int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 || p.PageSize > max {
		p.PageSize = def
	}
	return p
}

// Offset returns the SQL offset for the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

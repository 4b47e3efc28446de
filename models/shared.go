package models

// Pagination describes the page window of a list response. All list
// endpoints return exactly this shape.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListParams are the common paging inputs for list queries.
type ListParams struct {
	Page  int
	Limit int
}

// Normalize clamps paging inputs to sane values.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// PageCount computes the number of pages for a total at the given limit.
func (p ListParams) PageCount(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return pages
}

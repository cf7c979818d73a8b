package dto

import "math"

type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	PageSize    int  `json:"page_size"`
	HasPrev     bool `json:"has_prev"`
	PrevPage    int  `json:"prev_page,omitempty"`
	HasNext     bool `json:"has_next"`
	NextPage    int  `json:"next_page,omitempty"`
}

// NewPagination describes page of a listing. A page past the last one is
// reported as is: it has no items and no next page.
func NewPagination(page, pageSize, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	p := &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageSize:    pageSize,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}
	if p.HasPrev {
		p.PrevPage = min(page-1, totalPages)
	}
	if p.HasNext {
		p.NextPage = page + 1
	}
	return p
}

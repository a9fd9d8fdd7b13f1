package trialbalance

import (
	"errors"
	"fmt"
)

// ErrInvalidPage is returned for a page or page size below 1.
var ErrInvalidPage = errors.New("trialbalance: invalid page request")

// PageRequest selects one page of a sorted list.
type PageRequest struct {
	Page     int `validate:"min=1"`
	PageSize int `validate:"min=1"`
}

// Page is one page of trial balance rows. Totals covers every row, not
// just the page.
type Page struct {
	Data            []Item `json:"data" yaml:"data"`
	Totals          Item   `json:"totals" yaml:"totals"`
	Page            int    `json:"page" yaml:"page"`
	TotalPages      int    `json:"totalPages" yaml:"total_pages"`
	TotalCount      int    `json:"totalCount" yaml:"total_count"`
	HasNextPage     bool   `json:"hasNextPage" yaml:"has_next_page"`
	HasPreviousPage bool   `json:"hasPreviousPage" yaml:"has_previous_page"`
}

// Paginate slices items by offset. TotalPages is ceil(total/size) and 0
// for an empty list; a page past the end has no data. The page is checked
// against TotalPages before any offset is computed, so large values
// cannot overflow.
func Paginate(items []Item, req PageRequest) (Page, error) {
	if err := validate.Struct(req); err != nil {
		return Page{}, fmt.Errorf("%w: page %d, size %d", ErrInvalidPage, req.Page, req.PageSize)
	}

	total := len(items)
	totalPages := total / req.PageSize
	if total%req.PageSize != 0 {
		totalPages++
	}

	data := []Item{}
	if req.Page-1 < totalPages {
		start := (req.Page - 1) * req.PageSize
		end := total
		if total-start > req.PageSize {
			end = start + req.PageSize
		}
		data = make([]Item, end-start)
		copy(data, items[start:end])
	}

	return Page{
		Data:            data,
		Page:            req.Page,
		TotalPages:      totalPages,
		TotalCount:      total,
		HasNextPage:     req.Page < totalPages,
		HasPreviousPage: req.Page > 1,
	}, nil
}

package trialbalance

import (
	"github.com/ledgerline/ledgerline/internal/model"
)

// Query is a complete trial balance request.
type Query struct {
	Period Period
	Sort   []SortOption
	PageRequest
}

// Run periodizes items, builds rows through forest, sorts and paginates.
// The page's Totals cover every row, not just the page.
func Run(forest []*model.AccountNode, items []model.DatedLineItem, q Query) (Page, error) {
	if err := ValidateSortOptions(q.Sort); err != nil {
		return Page{}, err
	}
	buckets, err := Periodize(items, q.Period)
	if err != nil {
		return Page{}, err
	}
	rows := Sort(Build(forest, buckets), q.Sort)
	page, err := Paginate(rows, q.PageRequest)
	if err != nil {
		return Page{}, err
	}
	page.Totals = Totals(rows)
	return page, nil
}

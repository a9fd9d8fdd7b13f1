package trialbalance

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidSortOption is returned for an unknown sort key or order.
var ErrInvalidSortOption = errors.New("trialbalance: invalid sort option")

// SortKey names a sortable trial balance column.
type SortKey string

const (
	SortBeginningDebit  SortKey = "beginningDebitAmount"
	SortBeginningCredit SortKey = "beginningCreditAmount"
	SortMidtermDebit    SortKey = "midtermDebitAmount"
	SortMidtermCredit   SortKey = "midtermCreditAmount"
	SortEndingDebit     SortKey = "endingDebitAmount"
	SortEndingCredit    SortKey = "endingCreditAmount"
	SortCreatedAt       SortKey = "createdAt"
)

// SortOrder is asc or desc.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SortOption is one key of a multi-key sort.
type SortOption struct {
	SortBy    SortKey   `validate:"required,oneof=beginningDebitAmount beginningCreditAmount midtermDebitAmount midtermCreditAmount endingDebitAmount endingCreditAmount createdAt"`
	SortOrder SortOrder `validate:"required,oneof=asc desc"`
}

var validate = validator.New()

// ValidateSortOptions checks every option's key and order.
func ValidateSortOptions(opts []SortOption) error {
	for i, o := range opts {
		if err := validate.Struct(o); err != nil {
			return fmt.Errorf("%w: option %d (%s %s): %v", ErrInvalidSortOption, i+1, o.SortBy, o.SortOrder, err)
		}
	}
	return nil
}

// ParseSortOptions parses "endingDebitAmount:desc,createdAt". A missing
// order means asc.
func ParseSortOptions(s string) ([]SortOption, error) {
	var opts []SortOption
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, order, found := strings.Cut(part, ":")
		if !found {
			order = string(Asc)
		}
		opts = append(opts, SortOption{SortBy: SortKey(key), SortOrder: SortOrder(strings.ToLower(order))})
	}
	if err := ValidateSortOptions(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// Sort returns a copy of items ordered by opts, applied in sequence; the
// first key that differs decides. Ties keep input order. Sub-accounts are
// sorted with the same options. No options leaves the order unchanged.
func Sort(items []Item, opts []SortOption) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	if len(opts) == 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return compareItems(out[i], out[j], opts) < 0
	})
	for i := range out {
		if len(out[i].SubAccounts) > 0 {
			out[i].SubAccounts = Sort(out[i].SubAccounts, opts)
		}
	}
	return out
}

func compareItems(a, b Item, opts []SortOption) int {
	for _, o := range opts {
		c := compareBy(a, b, o.SortBy)
		if o.SortOrder == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func compareBy(a, b Item, key SortKey) int {
	if key == SortCreatedAt {
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return amountFor(a, key).Cmp(amountFor(b, key))
}

func amountFor(it Item, key SortKey) decimal.Decimal {
	switch key {
	case SortBeginningDebit:
		return it.BeginningDebitAmount
	case SortBeginningCredit:
		return it.BeginningCreditAmount
	case SortMidtermDebit:
		return it.MidtermDebitAmount
	case SortMidtermCredit:
		return it.MidtermCreditAmount
	case SortEndingDebit:
		return it.EndingDebitAmount
	case SortEndingCredit:
		return it.EndingCreditAmount
	}
	return decimal.Zero
}

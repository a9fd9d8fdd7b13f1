// Package trialbalance splits ledger line items into beginning, midterm and
// ending buckets for a reporting period and shapes them into trial balance
// rows.
package trialbalance

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/model"
)

// ErrInvalidPeriod is returned when a period begins after it ends.
var ErrInvalidPeriod = errors.New("trialbalance: period begin is after period end")

// Period is an inclusive reporting window.
type Period struct {
	Begin time.Time
	End   time.Time
}

// Validate fails when Begin is after End.
func (p Period) Validate() error {
	if p.Begin.After(p.End) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidPeriod, p.Begin.Format(time.DateOnly), p.End.Format(time.DateOnly))
	}
	return nil
}

// Contains reports whether t falls inside the period, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Begin) && !t.After(p.End)
}

// Merged is the gross debit and credit activity of one account.
type Merged struct {
	AccountID int64
	model.DebitCredit
}

// MergeLineItems groups items by account, in first-seen order, summing
// debit and credit amounts separately. Negative amounts pass through.
func MergeLineItems(items []model.LineItem) []Merged {
	pos := make(map[int64]int)
	var out []Merged
	for _, li := range items {
		i, ok := pos[li.AccountID]
		if !ok {
			i = len(out)
			pos[li.AccountID] = i
			out = append(out, Merged{AccountID: li.AccountID, DebitCredit: zero()})
		}
		out[i].DebitCredit = out[i].DebitCredit.Add(li.DebitCredit())
	}
	return out
}

// Remerge folds already merged rows again; merging a merged list is a no-op.
func Remerge(rows []Merged) []Merged {
	items := make([]model.LineItem, 0, 2*len(rows))
	for _, r := range rows {
		items = append(items,
			model.LineItem{AccountID: r.AccountID, Amount: r.Debit, Debit: true},
			model.LineItem{AccountID: r.AccountID, Amount: r.Credit, Debit: false},
		)
	}
	return MergeLineItems(items)
}

// Buckets holds the merged activity of each phase of a period.
type Buckets struct {
	Beginning []Merged
	Midterm   []Merged
	Ending    []Merged
}

// Periodize splits items into the beginning bucket (before Begin) and the
// midterm bucket (within the period); items after End are ignored. The
// ending bucket is derived with CalculateEndingBalance.
func Periodize(items []model.DatedLineItem, period Period) (Buckets, error) {
	if err := period.Validate(); err != nil {
		return Buckets{}, err
	}

	var before, within []model.LineItem
	for _, it := range items {
		switch {
		case it.Date.Before(period.Begin):
			before = append(before, it.LineItem)
		case period.Contains(it.Date):
			within = append(within, it.LineItem)
		}
	}

	b := Buckets{
		Beginning: MergeLineItems(before),
		Midterm:   MergeLineItems(within),
	}
	b.Ending = CalculateEndingBalance(b.Beginning, b.Midterm)
	return b, nil
}

// CalculateEndingBalance adds beginning and midterm account by account,
// debit to debit and credit to credit.
func CalculateEndingBalance(beginning, midterm []Merged) []Merged {
	rows := make([]Merged, 0, len(beginning)+len(midterm))
	rows = append(rows, beginning...)
	rows = append(rows, midterm...)
	return Remerge(rows)
}

// ByAccount indexes merged rows by account ID.
func ByAccount(rows []Merged) map[int64]model.DebitCredit {
	out := make(map[int64]model.DebitCredit, len(rows))
	for _, r := range rows {
		out[r.AccountID] = r.DebitCredit
	}
	return out
}

func zero() model.DebitCredit {
	return model.DebitCredit{Debit: decimal.Zero, Credit: decimal.Zero}
}

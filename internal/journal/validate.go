package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/id"
	"github.com/ledgerline/ledgerline/internal/model"
)

// Invariants checked by ValidateMonth.
const (
	InvBalanced   = 1 // voucher debits equal credits
	InvNonZero    = 2 // every line carries a non-zero amount
	InvAccount    = 3 // every line references a known account
	InvDateMonth  = 4 // every line is dated within the journal's month
	InvSequence   = 5 // voucher sequence numbers are 1..N without gaps
	InvPrecision  = 6 // amounts have at most two decimal places
	InvSingleDate = 7 // every line of a voucher shares one date
	InvPostable   = 8 // lines post only to user-visible accounts
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	LineID      string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.LineID, e.Description)
}

// AccountChecker tests account IDs against the chart of accounts.
// Postable is false for heading accounts that only aggregate.
type AccountChecker interface {
	Exists(id int64) bool
	Postable(id int64) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateMonth checks one month of journal lines.
func ValidateMonth(lines []model.DatedLineItem, accounts AccountChecker, year, month int) []ValidationError {
	var errs []ValidationError

	for _, v := range Vouchers(lines) {
		if !v.Balanced() {
			t := v.Totals()
			errs = append(errs, ValidationError{
				Invariant:   InvBalanced,
				LineID:      v.ID,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", t.Debit.StringFixed(2), t.Credit.StringFixed(2)),
			})
		}
	}

	voucherDates := make(map[string]string)
	for _, line := range lines {
		if line.Amount.IsZero() {
			errs = append(errs, ValidationError{
				Invariant:   InvNonZero,
				LineID:      line.ID,
				Description: "amount is zero",
			})
		}

		if !accounts.Exists(line.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   InvAccount,
				LineID:      line.ID,
				Description: fmt.Sprintf("unknown account %d", line.AccountID),
			})
		} else if !accounts.Postable(line.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   InvPostable,
				LineID:      line.ID,
				Description: fmt.Sprintf("account %d is a heading account and cannot be posted to", line.AccountID),
			})
		}

		if line.Date.Year() != year || int(line.Date.Month()) != month {
			errs = append(errs, ValidationError{
				Invariant:   InvDateMonth,
				LineID:      line.ID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", line.Date.Format(dateFormat), year, month),
			})
		}

		if scaled := line.Amount.Mul(hundred); !scaled.Equal(scaled.Truncate(0)) {
			errs = append(errs, ValidationError{
				Invariant:   InvPrecision,
				LineID:      line.ID,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", line.Amount),
			})
		}

		day := line.Date.Format(dateFormat)
		if first, ok := voucherDates[line.VoucherID]; !ok {
			voucherDates[line.VoucherID] = day
		} else if first != day {
			errs = append(errs, ValidationError{
				Invariant:   InvSingleDate,
				LineID:      line.ID,
				Description: fmt.Sprintf("date %s differs from voucher date %s", day, first),
			})
		}
	}

	seqSeen := make(map[int]bool)
	for _, line := range lines {
		ref, err := id.Parse(line.ID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   InvSequence,
				LineID:      line.ID,
				Description: fmt.Sprintf("invalid line ID: %v", err),
			})
			continue
		}
		seqSeen[ref.Seq] = true
	}
	for i := 1; i <= len(seqSeen); i++ {
		if !seqSeen[i] {
			errs = append(errs, ValidationError{
				Invariant:   InvSequence,
				LineID:      fmt.Sprintf("seq %d", i),
				Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seqSeen)),
			})
		}
	}

	return errs
}

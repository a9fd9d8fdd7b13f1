package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one debit or credit row of a voucher.
type LineItem struct {
	ID          string // "YYYY-MM-NNNx" where x = a,b,c...
	VoucherID   string
	AccountID   int64
	Amount      decimal.Decimal // may be negative for reversing entries
	Debit       bool
	Description string
}

// SignedAmount returns the amount re-signed against the account's natural
// side: positive when the item sits on the same side as the account.
func (li LineItem) SignedAmount(account Account) decimal.Decimal {
	if li.Debit == account.Debit {
		return li.Amount
	}
	return li.Amount.Neg()
}

// DebitCredit returns the item as a gross debit/credit pair.
func (li LineItem) DebitCredit() DebitCredit {
	if li.Debit {
		return DebitCredit{Debit: li.Amount, Credit: decimal.Zero}
	}
	return DebitCredit{Debit: decimal.Zero, Credit: li.Amount}
}

// Voucher is a double-entry transaction. Debits are expected to equal
// credits; that is enforced where vouchers are written, not here.
type Voucher struct {
	ID        string
	Date      time.Time
	LineItems []LineItem
}

// Totals returns the sum of debit and credit amounts.
func (v Voucher) Totals() DebitCredit {
	total := DebitCredit{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, li := range v.LineItems {
		total = total.Add(li.DebitCredit())
	}
	return total
}

// Balanced reports whether debits equal credits.
func (v Voucher) Balanced() bool {
	t := v.Totals()
	return t.Debit.Equal(t.Credit)
}

// DatedLineItem is a line item tagged with its voucher's date.
type DatedLineItem struct {
	LineItem
	Date time.Time
}

// DatedItems flattens vouchers into dated line items, preserving order.
func DatedItems(vouchers []Voucher) []DatedLineItem {
	var items []DatedLineItem
	for _, v := range vouchers {
		for _, li := range v.LineItems {
			items = append(items, DatedLineItem{LineItem: li, Date: v.Date})
		}
	}
	return items
}

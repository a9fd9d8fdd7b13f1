package trialbalance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/accounts"
	"github.com/ledgerline/ledgerline/internal/model"
)

// Item is one trial balance row. Ending amounts are always beginning plus
// midterm, side by side.
type Item struct {
	AccountID             int64           `json:"accountId" yaml:"account_id"`
	AccountCode           string          `json:"accountCode" yaml:"account_code"`
	AccountingTitle       string          `json:"accountingTitle" yaml:"accounting_title"`
	BeginningDebitAmount  decimal.Decimal `json:"beginningDebitAmount" yaml:"beginning_debit_amount"`
	BeginningCreditAmount decimal.Decimal `json:"beginningCreditAmount" yaml:"beginning_credit_amount"`
	MidtermDebitAmount    decimal.Decimal `json:"midtermDebitAmount" yaml:"midterm_debit_amount"`
	MidtermCreditAmount   decimal.Decimal `json:"midtermCreditAmount" yaml:"midterm_credit_amount"`
	EndingDebitAmount     decimal.Decimal `json:"endingDebitAmount" yaml:"ending_debit_amount"`
	EndingCreditAmount    decimal.Decimal `json:"endingCreditAmount" yaml:"ending_credit_amount"`
	CreatedAt             time.Time       `json:"createdAt" yaml:"created_at"`
	SubAccounts           []Item          `json:"subAccounts,omitempty" yaml:"sub_accounts,omitempty"`
}

// Build rolls each bucket up through forest, debit into debit and credit
// into credit, and returns one Item per account with any activity.
// Accounts without activity in any bucket are left out, along with their
// inactive descendants.
func Build(forest []*model.AccountNode, b Buckets) []Item {
	return buildItems(
		accounts.RollupPairs(forest, ByAccount(b.Beginning)),
		accounts.RollupPairs(forest, ByAccount(b.Midterm)),
		accounts.RollupPairs(forest, ByAccount(b.Ending)),
	)
}

// All three forests come from the same input, so they share a shape.
func buildItems(begin, mid, end []*accounts.BalanceNode) []Item {
	var out []Item
	for i, bn := range begin {
		mn, en := mid[i], end[i]
		if bn.Balance.IsZero() && mn.Balance.IsZero() && en.Balance.IsZero() {
			continue
		}
		out = append(out, Item{
			AccountID:             bn.ID,
			AccountCode:           bn.Code,
			AccountingTitle:       bn.Name,
			BeginningDebitAmount:  bn.Balance.Debit,
			BeginningCreditAmount: bn.Balance.Credit,
			MidtermDebitAmount:    mn.Balance.Debit,
			MidtermCreditAmount:   mn.Balance.Credit,
			EndingDebitAmount:     en.Balance.Debit,
			EndingCreditAmount:    en.Balance.Credit,
			CreatedAt:             bn.CreatedAt,
			SubAccounts:           buildItems(bn.Children, mn.Children, en.Children),
		})
	}
	return out
}

// Totals sums the top-level rows. Sub-accounts are already included in
// their parents.
func Totals(items []Item) Item {
	t := Item{
		AccountingTitle:       "Total",
		BeginningDebitAmount:  decimal.Zero,
		BeginningCreditAmount: decimal.Zero,
		MidtermDebitAmount:    decimal.Zero,
		MidtermCreditAmount:   decimal.Zero,
		EndingDebitAmount:     decimal.Zero,
		EndingCreditAmount:    decimal.Zero,
	}
	for _, it := range items {
		t.BeginningDebitAmount = t.BeginningDebitAmount.Add(it.BeginningDebitAmount)
		t.BeginningCreditAmount = t.BeginningCreditAmount.Add(it.BeginningCreditAmount)
		t.MidtermDebitAmount = t.MidtermDebitAmount.Add(it.MidtermDebitAmount)
		t.MidtermCreditAmount = t.MidtermCreditAmount.Add(it.MidtermCreditAmount)
		t.EndingDebitAmount = t.EndingDebitAmount.Add(it.EndingDebitAmount)
		t.EndingCreditAmount = t.EndingCreditAmount.Add(it.EndingCreditAmount)
	}
	return t
}

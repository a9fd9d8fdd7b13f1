package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset                    AccountType = "asset"
	AccountTypeLiability                AccountType = "liability"
	AccountTypeEquity                   AccountType = "equity"
	AccountTypeRevenue                  AccountType = "revenue"
	AccountTypeCost                     AccountType = "cost"
	AccountTypeExpense                  AccountType = "expense"
	AccountTypeIncome                   AccountType = "income"
	AccountTypeOtherComprehensiveIncome AccountType = "otherComprehensiveIncome"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue,
		AccountTypeCost, AccountTypeExpense, AccountTypeIncome, AccountTypeOtherComprehensiveIncome:
		return true
	}
	return false
}

// PublicAccountBookID owns the canonical chart shared by every company.
const PublicAccountBookID int64 = 0

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID            int64
	AccountBookID int64
	Code          string
	ParentCode    string // equal to Code for a root
	RootCode      string
	Type          AccountType
	Debit         bool // natural balance side
	Liquidity     bool
	Level         int
	ForUser       bool
	Name          string
	CreatedAt     time.Time
}

// IsPublic reports whether the account belongs to the canonical chart
// rather than to a single company's account book.
func (a Account) IsPublic() bool {
	return a.AccountBookID == PublicAccountBookID
}

// IsSelfRooted reports whether the account marks itself as a root.
func (a Account) IsSelfRooted() bool {
	return a.ParentCode == "" || a.ParentCode == a.Code
}

// AccountNode is an account with its rolled-up amount and children.
// Nodes are built per request and never shared between forests.
type AccountNode struct {
	Account
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Children   []*AccountNode
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *AccountNode) Walk(fn func(node *AccountNode, depth int)) {
	n.walk(fn, 0)
}

func (n *AccountNode) walk(fn func(node *AccountNode, depth int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// DebitCredit holds gross debit and credit totals that are never netted.
type DebitCredit struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add returns the component-wise sum of d and o.
func (d DebitCredit) Add(o DebitCredit) DebitCredit {
	return DebitCredit{Debit: d.Debit.Add(o.Debit), Credit: d.Credit.Add(o.Credit)}
}

// IsZero reports whether both sides are zero.
func (d DebitCredit) IsZero() bool {
	return d.Debit.IsZero() && d.Credit.IsZero()
}

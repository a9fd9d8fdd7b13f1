package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/cashflow"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/trialbalance"
)

// StatementRow is one display row of a financial statement.
type StatementRow struct {
	Code       string          `json:"code" yaml:"code"`
	Name       string          `json:"name" yaml:"name"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Indent     int             `json:"indent" yaml:"indent"`
	Debit      bool            `json:"debit" yaml:"debit"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage"`
	Children   []StatementRow  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Rows converts a rolled-up forest into statement rows; Indent is the
// node's depth.
func Rows(forest []*model.AccountNode) []StatementRow {
	return rowsAt(forest, 0)
}

func rowsAt(nodes []*model.AccountNode, indent int) []StatementRow {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]StatementRow, len(nodes))
	for i, n := range nodes {
		out[i] = StatementRow{
			Code:       n.Code,
			Name:       n.Name,
			Amount:     n.Amount,
			Indent:     indent,
			Debit:      n.Debit,
			Percentage: n.Percentage,
			Children:   rowsAt(n.Children, indent+1),
		}
	}
	return out
}

// Section groups the statement rows of one account type.
type Section struct {
	Type  model.AccountType `json:"type" yaml:"type"`
	Total decimal.Decimal   `json:"total" yaml:"total"`
	Rows  []StatementRow    `json:"rows" yaml:"rows"`
}

// BalanceSheet is the statement of financial position at one date.
// CurrentEarnings is comprehensive income not yet closed into equity.
type BalanceSheet struct {
	AsOf            time.Time       `json:"asOf" yaml:"as_of"`
	Sections        []Section       `json:"sections" yaml:"sections"`
	CurrentEarnings decimal.Decimal `json:"currentEarnings" yaml:"current_earnings"`
	Balanced        bool            `json:"balanced" yaml:"balanced"`
}

// Section returns the section for t, if present.
func (b BalanceSheet) Section(t model.AccountType) (Section, bool) {
	for _, s := range b.Sections {
		if s.Type == t {
			return s, true
		}
	}
	return Section{}, false
}

// IncomeStatement covers one period.
type IncomeStatement struct {
	Begin               time.Time       `json:"begin" yaml:"begin"`
	End                 time.Time       `json:"end" yaml:"end"`
	Rows                []StatementRow  `json:"rows" yaml:"rows"`
	NetIncome           decimal.Decimal `json:"netIncome" yaml:"net_income"`
	ComprehensiveIncome decimal.Decimal `json:"comprehensiveIncome" yaml:"comprehensive_income"`
}

// CashFlowLine is one classified line of the cash flow statement.
type CashFlowLine struct {
	Code       string          `json:"code" yaml:"code"`
	Name       string          `json:"name" yaml:"name"`
	CashInflow bool            `json:"cashInflow" yaml:"cash_inflow"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Vouchers   int             `json:"vouchers" yaml:"vouchers"`
}

// CashFlowStatement covers one period. Lines is keyed by rule code; Rows
// holds the same data in rule table order.
type CashFlowStatement struct {
	Begin     time.Time               `json:"begin" yaml:"begin"`
	End       time.Time               `json:"end" yaml:"end"`
	Policy    cashflow.Policy         `json:"policy" yaml:"policy"`
	Lines     map[string]CashFlowLine `json:"lines" yaml:"lines"`
	Rows      []CashFlowLine          `json:"-" yaml:"-"`
	NetChange decimal.Decimal         `json:"netChange" yaml:"net_change"`
}

func newCashFlowStatement(period trialbalance.Period, policy cashflow.Policy, res cashflow.Result) CashFlowStatement {
	st := CashFlowStatement{
		Begin:     period.Begin,
		End:       period.End,
		Policy:    policy,
		Lines:     make(map[string]CashFlowLine, len(res.Lines)),
		NetChange: res.NetChange(),
	}
	for _, r := range res.Rows() {
		line := CashFlowLine{Code: r.Code, Name: r.Name, CashInflow: r.CashInflow, Amount: r.Amount, Vouchers: r.Vouchers}
		st.Lines[r.Code] = line
		st.Rows = append(st.Rows, line)
	}
	return st
}

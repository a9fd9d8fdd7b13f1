package cashflow

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/model"
)

// Policy decides what happens when several rules match one voucher.
type Policy string

const (
	// AccumulateAll credits every matching rule.
	AccumulateAll Policy = "accumulate"
	// FirstMatch credits only the first matching rule in table order.
	FirstMatch Policy = "first-match"
)

// ParsePolicy converts a config value into a Policy. Empty means AccumulateAll.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", AccumulateAll:
		return AccumulateAll, nil
	case FirstMatch:
		return FirstMatch, nil
	}
	return "", fmt.Errorf("unknown cash flow policy %q", s)
}

// CodeResolver resolves an account ID to its code.
type CodeResolver interface {
	CodeOf(id int64) (string, bool)
}

// Contribution is one rule's share of one voucher.
type Contribution struct {
	Code       string
	CashInflow bool
	Amount     decimal.Decimal
}

// Classifier matches vouchers against a rule table.
type Classifier struct {
	rules  []Rule
	policy Policy
	codes  CodeResolver
}

// NewClassifier creates a Classifier. The rules slice is not modified.
func NewClassifier(rules []Rule, policy Policy, codes CodeResolver) *Classifier {
	return &Classifier{rules: rules, policy: policy, codes: codes}
}

// ClassifyVoucher returns the contributions of every rule that matches v.
// For an inflow rule the amount is the matched debit items; for an outflow
// rule it is the matched credit items.
func (c *Classifier) ClassifyVoucher(v model.Voucher) []Contribution {
	debits, credits := c.split(v)
	all := append(append([]Entry(nil), debits...), credits...)

	var out []Contribution
	for _, r := range c.rules {
		okDebit, debitHits := Match(r.VoucherPattern.Debit, debits)
		if !okDebit {
			continue
		}
		okCredit, creditHits := Match(r.VoucherPattern.Credit, credits)
		if !okCredit {
			continue
		}
		if r.Either != nil {
			if ok, _ := Match(r.Either, all); !ok {
				continue
			}
		}

		amount := sumHits(credits, creditHits)
		if r.CashInflow {
			amount = sumHits(debits, debitHits)
		}
		out = append(out, Contribution{Code: r.Code, CashInflow: r.CashInflow, Amount: amount})

		if c.policy == FirstMatch {
			break
		}
	}
	return out
}

// Classify sums contributions by rule code across vouchers.
func (c *Classifier) Classify(vouchers []model.Voucher) Result {
	res := Result{Lines: make(map[string]Line), rules: c.rules}
	for _, v := range vouchers {
		for _, contrib := range c.ClassifyVoucher(v) {
			line, ok := res.Lines[contrib.Code]
			if !ok {
				line = Line{CashInflow: contrib.CashInflow, Amount: decimal.Zero}
			}
			line.Amount = line.Amount.Add(contrib.Amount)
			line.Vouchers++
			res.Lines[contrib.Code] = line
		}
	}
	return res
}

func (c *Classifier) split(v model.Voucher) (debits, credits []Entry) {
	for _, li := range v.LineItems {
		code, ok := c.codes.CodeOf(li.AccountID)
		if !ok {
			continue
		}
		e := Entry{AccountCode: code, Amount: li.Amount}
		if li.Debit {
			debits = append(debits, e)
		} else {
			credits = append(credits, e)
		}
	}
	return debits, credits
}

func sumHits(entries []Entry, hits []int) decimal.Decimal {
	total := decimal.Zero
	for _, i := range hits {
		total = total.Add(entries[i].Amount)
	}
	return total
}

// Line is the accumulated total of one rule.
type Line struct {
	CashInflow bool
	Amount     decimal.Decimal
	Vouchers   int
}

// Row is a Line labelled with its rule.
type Row struct {
	Code       string
	Name       string
	CashInflow bool
	Amount     decimal.Decimal
	Vouchers   int
}

// Result holds per-rule totals for a reporting period.
type Result struct {
	Lines map[string]Line
	rules []Rule
}

// Rows returns the matched lines in rule table order.
func (r Result) Rows() []Row {
	var rows []Row
	for _, rule := range r.rules {
		line, ok := r.Lines[rule.Code]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			Code:       rule.Code,
			Name:       rule.Name,
			CashInflow: line.CashInflow,
			Amount:     line.Amount,
			Vouchers:   line.Vouchers,
		})
	}
	return rows
}

// NetChange returns total inflows minus total outflows.
func (r Result) NetChange() decimal.Decimal {
	net := decimal.Zero
	for _, line := range r.Lines {
		if line.CashInflow {
			net = net.Add(line.Amount)
		} else {
			net = net.Sub(line.Amount)
		}
	}
	return net
}

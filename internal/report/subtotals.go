package report

import (
	"github.com/shopspring/decimal"
)

// term adds or subtracts one code's amount.
type term struct {
	code string
	neg  bool
}

func plus(code string) term  { return term{code: code} }
func minus(code string) term { return term{code: code, neg: true} }

// Subtotal is one step of the income statement chain.
type Subtotal struct {
	Code  string
	terms []term
}

// IncomeChain is evaluated in order; later steps read earlier results.
var IncomeChain = []Subtotal{
	{"5900", []term{plus("4000"), minus("5000")}},
	{"5950", []term{plus("5900"), minus("5910"), plus("5920")}},
	{"6900", []term{plus("5950"), minus("6000"), plus("6500")}},
	{"7900", []term{plus("6900"), plus("7000")}},
	{"8000", []term{plus("7900"), minus("7950")}},
	{"8200", []term{plus("8000"), plus("8100")}},
	{"8500", []term{plus("8200"), plus("8300")}},
}

const (
	CodeRevenue             = "4000"
	CodeNetIncome           = "8200"
	CodeComprehensiveIncome = "8500"
)

// IncomeSubtotals returns a copy of amounts with every subtotal of the
// chain filled in. Missing codes count as zero.
func IncomeSubtotals(amounts map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(amounts)+len(IncomeChain))
	for code, amt := range amounts {
		out[code] = amt
	}
	for _, st := range IncomeChain {
		total := decimal.Zero
		for _, t := range st.terms {
			amt, ok := out[t.code]
			if !ok {
				continue
			}
			if t.neg {
				total = total.Sub(amt)
			} else {
				total = total.Add(amt)
			}
		}
		out[st.Code] = total
	}
	return out
}

// IsSubtotal reports whether code is computed by the chain rather than
// rolled up from line items.
func IsSubtotal(code string) bool {
	for _, st := range IncomeChain {
		if st.Code == code {
			return true
		}
	}
	return false
}

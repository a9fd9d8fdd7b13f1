package cashflow

// VoucherPattern constrains the debit and credit sides of a voucher.
type VoucherPattern struct {
	Debit  Pattern
	Credit Pattern
}

// Rule maps a voucher shape to a cash-flow statement line.
type Rule struct {
	Code           string
	Name           string
	CashInflow     bool
	VoucherPattern VoucherPattern
	// Either, when set, must match some line item on either side of the
	// voucher or the rule is skipped.
	Either Pattern
}

// Shared account-code expressions.
const (
	cashExpr            = `^110[1-5]`
	accumulatedDeprExpr = `^16\d9$`
	ppeCostExpr         = `^16\d[0-8]$`
)

var (
	cash = Codes(cashExpr)
	// none is a placeholder for transactions not modeled yet.
	none = Code{}
)

func inflow(code, name string, credit Pattern) Rule {
	return Rule{Code: code, Name: name, CashInflow: true, VoucherPattern: VoucherPattern{Debit: cash, Credit: credit}}
}

func outflow(code, name string, debit Pattern) Rule {
	return Rule{Code: code, Name: name, VoucherPattern: VoucherPattern{Debit: debit, Credit: cash}}
}

func placeholder(code, name string, cashInflow bool) Rule {
	return Rule{Code: code, Name: name, CashInflow: cashInflow, VoucherPattern: VoucherPattern{Debit: none, Credit: none}}
}

func (r Rule) qualifiedBy(p Pattern) Rule {
	r.Either = p
	return r
}

// defaultRules is built once and never modified.
var defaultRules = []Rule{
	// Operating activities.
	inflow("A11000", "Cash received from customers", OneOf(Codes(`^41`), Codes(`^46`))),
	outflow("A12100", "Cash paid for operating expenses", Codes(`^6[1-3]`)),
	{
		Code: "A20100", Name: "Depreciation expense", CashInflow: true,
		VoucherPattern: VoucherPattern{Debit: Codes(`^6225`), Credit: Codes(accumulatedDeprExpr)},
	},
	{
		Code: "A20300", Name: "Expected credit loss", CashInflow: true,
		VoucherPattern: VoucherPattern{Debit: Codes(`^61`), Credit: Codes(`^1172`)},
	},
	{
		Code: "A22500", Name: "Loss on disposal of property, plant and equipment", CashInflow: true,
		VoucherPattern: VoucherPattern{
			Debit:  AllOf(Codes(`^7611`), Codes(accumulatedDeprExpr)),
			Credit: Codes(ppeCostExpr),
		},
	},
	inflow("A31130", "Decrease in notes receivable", Codes(`^115`)),
	inflow("A31150", "Decrease in accounts receivable", Codes(`^117[01]`)),
	inflow("A31180", "Decrease in other receivables", Codes(`^120`)),
	outflow("A31200", "Increase in inventories", Codes(`^130`)),
	outflow("A31230", "Increase in prepayments", Codes(`^141`)),
	outflow("A32130", "Decrease in notes payable", Codes(`^215`)),
	inflow("A32150", "Increase in accounts payable", Codes(`^217`)),
	outflow("A32151", "Decrease in accounts payable", Codes(`^217`)),
	outflow("A32180", "Decrease in other payables", Codes(`^220`)),
	inflow("A33100", "Interest received", Codes(`^7100`)),
	outflow("A33300", "Interest paid", Codes(`^7510`)),
	outflow("A33500", "Income taxes paid", OneOf(Codes(`^2230`), Codes(`^7950`))),
	inflow("A33600", "Income taxes refunded", Codes(`^2230`)),

	// Investing activities.
	outflow("B00010", "Acquisition of financial assets at fair value through other comprehensive income", Codes(`^1517`)),
	inflow("B00020", "Proceeds from disposal of financial assets at fair value through other comprehensive income", Codes(`^1517`)),
	outflow("B00100", "Acquisition of financial assets at fair value through profit or loss", Codes(`^1110`)),
	inflow("B00200", "Proceeds from disposal of financial assets at fair value through profit or loss", Codes(`^1110`)),
	outflow("B01800", "Acquisition of investments accounted for using the equity method", Codes(`^1550`)),
	// A disposal books a gain, loss or equity adjustment; a plain refund of
	// capital from the investee does not, and falls through to B02400.
	inflow("B01900", "Proceeds from disposal of investments accounted for using the equity method", Codes(`^1550`)).
		qualifiedBy(OneOf(Codes(`^7[67]`), Codes(`^3[2-4]`))),
	placeholder("B02200", "Net cash flow from acquisition of subsidiaries", false),
	placeholder("B02300", "Net cash flow from disposal of subsidiaries", true),
	inflow("B02400", "Proceeds from capital reduction of investments accounted for using the equity method", Codes(`^1550`)),
	outflow("B02700", "Acquisition of property, plant and equipment", Codes(ppeCostExpr)),
	inflow("B02800", "Proceeds from disposal of property, plant and equipment", Codes(ppeCostExpr)).
		qualifiedBy(OneOf(Codes(`^761[01]`), Codes(accumulatedDeprExpr))),
	outflow("B03700", "Increase in refundable deposits", Codes(`^1920`)),
	inflow("B03800", "Decrease in refundable deposits", Codes(`^1920`)),
	outflow("B04500", "Acquisition of intangible assets", Codes(`^178`)),
	inflow("B04600", "Proceeds from disposal of intangible assets", Codes(`^178`)),
	placeholder("B05000", "Net cash flow from business combinations", false),
	outflow("B05400", "Acquisition of investment property", Codes(`^176`)),
	inflow("B05500", "Proceeds from disposal of investment property", Codes(`^176`)),
	outflow("B05800", "Increase in long-term receivables", Codes(`^193[1-7]`)),
	inflow("B05900", "Decrease in long-term receivables", Codes(`^193[1-7]`)),
	outflow("B07100", "Increase in prepayments for business facilities", Codes(`^1915`)),
	inflow("B07600", "Dividends received", Codes(`^7130`)),
	placeholder("B09800", "Write-off of subsidiaries", true),
	placeholder("B09900", "Other investing activities", false),

	// Financing activities.
	inflow("C00100", "Increase in short-term borrowings", Codes(`^2100`)),
	outflow("C00200", "Decrease in short-term borrowings", Codes(`^2100`)),
	inflow("C00500", "Increase in short-term notes and bills payable", Codes(`^2110`)),
	outflow("C00600", "Decrease in short-term notes and bills payable", Codes(`^2110`)),
	inflow("C01200", "Proceeds from issuing bonds", Codes(`^2530`)),
	outflow("C01300", "Repayments of bonds", Codes(`^2530`)),
	inflow("C01600", "Proceeds from long-term debt", Codes(`^2540`)),
	outflow("C01700", "Repayments of long-term debt", Codes(`^2540`)),
	inflow("C03000", "Increase in guarantee deposits received", Codes(`^2645`)),
	outflow("C03100", "Decrease in guarantee deposits received", Codes(`^2645`)),
	outflow("C04500", "Cash dividends paid", OneOf(Codes(`^2216`), Codes(`^335`))),
	inflow("C04600", "Proceeds from issuing shares", Codes(`^31`)),
	outflow("C04700", "Capital reduction payments to shareholders", Codes(`^31`)),
	outflow("C04900", "Payments to acquire treasury shares", Codes(`^3500`)),
	inflow("C05000", "Proceeds from sale of treasury shares", Codes(`^3500`)),
	placeholder("C05400", "Acquisition of ownership interests in subsidiaries", false),
	placeholder("C05800", "Change in non-controlling interests", true),
	placeholder("C09900", "Other financing activities", true),
}

// DefaultRules returns the standard rule table in evaluation order.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

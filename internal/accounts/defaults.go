package accounts

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/model"
)

// chartEpoch stamps CreatedAt on the canonical chart.
var chartEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type chartRow struct {
	code, parent, name string
	typ                model.AccountType
	debit, liquid      bool
	forUser            bool
}

const (
	dr = true
	cr = false
)

// DefaultChart returns the canonical public chart of accounts, including the
// income-statement subtotal codes (5900, 6900, 8200, 8500, ...).
func DefaultChart() []model.Account {
	return buildChart(model.PublicAccountBookID, 1, canonicalRows)
}

// buildChart assigns IDs, levels and root codes from parent links.
func buildChart(book, firstID int64, rows []chartRow) []model.Account {
	parentOf := make(map[string]string, len(rows))
	for _, r := range rows {
		parentOf[r.code] = r.parent
	}

	accts := make([]model.Account, len(rows))
	for i, r := range rows {
		parent := r.parent
		if parent == "" {
			parent = r.code
		}
		root, level := r.code, 0
		for p := r.parent; p != "" && level < len(rows); p = parentOf[p] {
			root = p
			level++
		}
		accts[i] = model.Account{
			ID:            firstID + int64(i),
			AccountBookID: book,
			Code:          r.code,
			ParentCode:    parent,
			RootCode:      root,
			Type:          r.typ,
			Debit:         r.debit,
			Liquidity:     r.liquid,
			Level:         level,
			ForUser:       r.forUser,
			Name:          r.name,
			CreatedAt:     chartEpoch.Add(time.Duration(i) * time.Second),
		}
	}
	return accts
}

var canonicalRows = []chartRow{
	{"1XXX", "", "Assets", model.AccountTypeAsset, dr, true, false},
	{"11XX", "1XXX", "Current assets", model.AccountTypeAsset, dr, true, false},
	{"1100", "11XX", "Cash and cash equivalents", model.AccountTypeAsset, dr, true, true},
	{"1101", "1100", "Cash on hand", model.AccountTypeAsset, dr, true, true},
	{"1102", "1100", "Petty cash", model.AccountTypeAsset, dr, true, true},
	{"1103", "1100", "Bank deposits", model.AccountTypeAsset, dr, true, true},
	{"1104", "1100", "Cash in transit", model.AccountTypeAsset, dr, true, true},
	{"1105", "1100", "Cash equivalents", model.AccountTypeAsset, dr, true, true},
	{"1110", "11XX", "Financial assets at fair value through profit or loss", model.AccountTypeAsset, dr, true, true},
	{"1150", "11XX", "Notes receivable", model.AccountTypeAsset, dr, true, true},
	{"1170", "11XX", "Accounts receivable", model.AccountTypeAsset, dr, true, true},
	{"1171", "1170", "Accounts receivable", model.AccountTypeAsset, dr, true, true},
	{"1172", "1170", "Allowance for doubtful accounts", model.AccountTypeAsset, cr, true, true},
	{"1200", "11XX", "Other receivables", model.AccountTypeAsset, dr, true, true},
	{"1300", "11XX", "Inventories", model.AccountTypeAsset, dr, true, true},
	{"1410", "11XX", "Prepayments", model.AccountTypeAsset, dr, true, true},
	{"15XX", "1XXX", "Non-current assets", model.AccountTypeAsset, dr, false, false},
	{"1517", "15XX", "Financial assets at fair value through other comprehensive income", model.AccountTypeAsset, dr, false, true},
	{"1550", "15XX", "Investments accounted for using the equity method", model.AccountTypeAsset, dr, false, true},
	{"1600", "15XX", "Property, plant and equipment", model.AccountTypeAsset, dr, false, true},
	{"1611", "1600", "Land", model.AccountTypeAsset, dr, false, true},
	{"1631", "1600", "Buildings", model.AccountTypeAsset, dr, false, true},
	{"1639", "1600", "Accumulated depreciation - buildings", model.AccountTypeAsset, cr, false, true},
	{"1681", "1600", "Office equipment", model.AccountTypeAsset, dr, false, true},
	{"1689", "1600", "Accumulated depreciation - office equipment", model.AccountTypeAsset, cr, false, true},
	{"1760", "15XX", "Investment property", model.AccountTypeAsset, dr, false, true},
	{"1780", "15XX", "Intangible assets", model.AccountTypeAsset, dr, false, true},
	{"1920", "15XX", "Refundable deposits", model.AccountTypeAsset, dr, false, true},
	{"1930", "15XX", "Long-term receivables", model.AccountTypeAsset, dr, false, true},
	{"1931", "1930", "Long-term notes receivable", model.AccountTypeAsset, dr, false, true},
	{"1932", "1930", "Long-term accounts receivable", model.AccountTypeAsset, dr, false, true},

	{"2XXX", "", "Liabilities", model.AccountTypeLiability, cr, true, false},
	{"21XX", "2XXX", "Current liabilities", model.AccountTypeLiability, cr, true, false},
	{"2100", "21XX", "Short-term borrowings", model.AccountTypeLiability, cr, true, true},
	{"2110", "21XX", "Short-term notes and bills payable", model.AccountTypeLiability, cr, true, true},
	{"2150", "21XX", "Notes payable", model.AccountTypeLiability, cr, true, true},
	{"2170", "21XX", "Accounts payable", model.AccountTypeLiability, cr, true, true},
	{"2171", "2170", "Accounts payable", model.AccountTypeLiability, cr, true, true},
	{"2172", "2170", "Estimated accounts payable", model.AccountTypeLiability, cr, true, true},
	{"2200", "21XX", "Other payables", model.AccountTypeLiability, cr, true, true},
	{"2201", "2200", "Salaries payable", model.AccountTypeLiability, cr, true, true},
	{"2216", "2200", "Dividends payable", model.AccountTypeLiability, cr, true, true},
	{"2230", "21XX", "Current tax liabilities", model.AccountTypeLiability, cr, true, true},
	{"25XX", "2XXX", "Non-current liabilities", model.AccountTypeLiability, cr, false, false},
	{"2530", "25XX", "Bonds payable", model.AccountTypeLiability, cr, false, true},
	{"2540", "25XX", "Long-term borrowings", model.AccountTypeLiability, cr, false, true},
	{"2645", "25XX", "Guarantee deposits received", model.AccountTypeLiability, cr, false, true},

	{"3XXX", "", "Equity", model.AccountTypeEquity, cr, false, false},
	{"3100", "3XXX", "Share capital", model.AccountTypeEquity, cr, false, true},
	{"3110", "3100", "Ordinary share capital", model.AccountTypeEquity, cr, false, true},
	{"3200", "3XXX", "Capital surplus", model.AccountTypeEquity, cr, false, true},
	{"3350", "3XXX", "Unappropriated retained earnings", model.AccountTypeEquity, cr, false, true},
	{"3500", "3XXX", "Treasury shares", model.AccountTypeEquity, dr, false, true},

	{"4000", "", "Operating revenue", model.AccountTypeRevenue, cr, false, true},
	{"4100", "4000", "Sales revenue", model.AccountTypeRevenue, cr, false, true},
	{"4111", "4100", "Sales revenue", model.AccountTypeRevenue, cr, false, true},
	{"4171", "4100", "Sales discounts and allowances", model.AccountTypeRevenue, dr, false, true},
	{"4600", "4000", "Service revenue", model.AccountTypeRevenue, cr, false, true},
	{"5000", "", "Operating costs", model.AccountTypeCost, dr, false, true},
	{"5110", "5000", "Cost of goods sold", model.AccountTypeCost, dr, false, true},
	{"5600", "5000", "Service costs", model.AccountTypeCost, dr, false, true},
	{"5900", "", "Gross profit (loss) from operations", model.AccountTypeIncome, cr, false, true},
	{"5910", "", "Unrealized profit (loss) from sales", model.AccountTypeCost, dr, false, true},
	{"5920", "", "Realized profit (loss) from sales", model.AccountTypeIncome, cr, false, true},
	{"5950", "", "Net gross profit (loss) from operations", model.AccountTypeIncome, cr, false, true},
	{"6000", "", "Operating expenses", model.AccountTypeExpense, dr, false, true},
	{"6100", "6000", "Selling expenses", model.AccountTypeExpense, dr, false, true},
	{"6200", "6000", "Administrative expenses", model.AccountTypeExpense, dr, false, true},
	{"6211", "6200", "Salaries expense", model.AccountTypeExpense, dr, false, true},
	{"6213", "6200", "Rent expense", model.AccountTypeExpense, dr, false, true},
	{"6225", "6200", "Depreciation expense", model.AccountTypeExpense, dr, false, true},
	{"6300", "6000", "Research and development expenses", model.AccountTypeExpense, dr, false, true},
	{"6500", "", "Net other income (expenses)", model.AccountTypeIncome, cr, false, true},
	{"6900", "", "Net operating income (loss)", model.AccountTypeIncome, cr, false, true},
	{"7000", "", "Non-operating income and expenses", model.AccountTypeIncome, cr, false, true},
	{"7100", "7000", "Interest income", model.AccountTypeIncome, cr, false, true},
	{"7510", "7000", "Interest expense", model.AccountTypeIncome, dr, false, true},
	{"7610", "7000", "Gain on disposal of property, plant and equipment", model.AccountTypeIncome, cr, false, true},
	{"7611", "7000", "Loss on disposal of property, plant and equipment", model.AccountTypeIncome, dr, false, true},
	{"7900", "", "Profit (loss) before tax", model.AccountTypeIncome, cr, false, true},
	{"7950", "", "Income tax expense", model.AccountTypeExpense, dr, false, true},
	{"8000", "", "Profit (loss) from continuing operations", model.AccountTypeIncome, cr, false, true},
	{"8100", "", "Profit (loss) from discontinued operations", model.AccountTypeIncome, cr, false, true},
	{"8200", "", "Profit (loss)", model.AccountTypeIncome, cr, false, true},
	{"8300", "", "Other comprehensive income", model.AccountTypeOtherComprehensiveIncome, cr, false, true},
	{"8311", "8300", "Gains (losses) on remeasurements of defined benefit plans", model.AccountTypeOtherComprehensiveIncome, cr, false, true},
	{"8500", "", "Total comprehensive income", model.AccountTypeIncome, cr, false, true},
}

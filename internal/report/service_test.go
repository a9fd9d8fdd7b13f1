package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/accounts"
	"github.com/ledgerline/ledgerline/internal/cashflow"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/trialbalance"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// staticJournal serves a fixed voucher list.
type staticJournal struct {
	vouchers []model.Voucher
	err      error
}

func (j staticJournal) Vouchers() ([]model.Voucher, error) {
	return j.vouchers, j.err
}

type fixture struct {
	chart *accounts.Service
	seq   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	chart, err := accounts.NewService(accounts.DefaultChart())
	require.NoError(t, err)
	return &fixture{chart: chart}
}

// voucher builds a two-line voucher debiting one code and crediting another.
func (f *fixture) voucher(t *testing.T, on time.Time, debitCode, creditCode, amount string) model.Voucher {
	t.Helper()
	f.seq++
	vid := fmt.Sprintf("%04d-%02d-%03d", on.Year(), on.Month(), f.seq)
	return model.Voucher{
		ID:   vid,
		Date: on,
		LineItems: []model.LineItem{
			{ID: vid + "a", VoucherID: vid, AccountID: f.id(t, debitCode), Amount: dec(amount), Debit: true},
			{ID: vid + "b", VoucherID: vid, AccountID: f.id(t, creditCode), Amount: dec(amount), Debit: false},
		},
	}
}

func (f *fixture) id(t *testing.T, code string) int64 {
	t.Helper()
	a, ok := f.chart.ByCode(code)
	require.True(t, ok, "no account %s", code)
	return a.ID
}

func (f *fixture) service(vouchers ...model.Voucher) *Service {
	return NewService(f.chart, staticJournal{vouchers: vouchers}, Options{})
}

func findRow(rows []StatementRow, code string) (StatementRow, bool) {
	for _, r := range rows {
		if r.Code == code {
			return r, true
		}
		if found, ok := findRow(r.Children, code); ok {
			return found, true
		}
	}
	return StatementRow{}, false
}

var q1 = trialbalance.Period{Begin: date(2024, 1, 1), End: date(2024, 3, 31)}

func TestBalanceSheet_CashRollup(t *testing.T) {
	f := newFixture(t)
	svc := f.service(
		f.voucher(t, date(2024, 1, 2), "1101", "3110", "500"),
		f.voucher(t, date(2024, 1, 9), "1103", "4111", "300"),
		f.voucher(t, date(2024, 5, 1), "1103", "4111", "999"),
	)

	bs, err := svc.BalanceSheet(context.Background(), date(2024, 3, 31))
	require.NoError(t, err)

	assets, ok := bs.Section(model.AccountTypeAsset)
	require.True(t, ok)
	cash, ok := findRow(assets.Rows, "1100")
	require.True(t, ok)
	assert.True(t, cash.Amount.Equal(dec("800")), "1100 = %s", cash.Amount)
	assert.Equal(t, 0, cash.Indent)

	onHand, _ := findRow(cash.Children, "1101")
	assert.True(t, onHand.Percentage.Equal(dec("0.625")))
	assert.Equal(t, 1, onHand.Indent)

	equity, _ := bs.Section(model.AccountTypeEquity)
	assert.True(t, assets.Total.Equal(dec("800")))
	assert.True(t, equity.Total.Equal(dec("500")))
	assert.True(t, bs.CurrentEarnings.Equal(dec("300")))
	assert.True(t, bs.Balanced)
}

func TestBalanceSheet_ContraAccount(t *testing.T) {
	f := newFixture(t)
	svc := f.service(
		f.voucher(t, date(2024, 1, 2), "1631", "3110", "1000"),
		f.voucher(t, date(2024, 2, 1), "6225", "1639", "200"),
	)

	bs, err := svc.BalanceSheet(context.Background(), date(2024, 12, 31))
	require.NoError(t, err)

	assets, _ := bs.Section(model.AccountTypeAsset)
	ppe, ok := findRow(assets.Rows, "1600")
	require.True(t, ok)
	assert.True(t, ppe.Amount.Equal(dec("800")), "accumulated depreciation reduces gross PP&E")
	assert.True(t, bs.CurrentEarnings.Equal(dec("-200")))
	assert.True(t, bs.Balanced)
}

func TestBalanceSheet_PrunesCustomAccounts(t *testing.T) {
	chartAccts := accounts.DefaultChart()
	custom := model.Account{
		ID: 9001, AccountBookID: 7, Code: "1103-01", ParentCode: "1103",
		Type: model.AccountTypeAsset, Debit: true, ForUser: true, Name: "Main bank",
	}
	chart, err := accounts.NewService(append(chartAccts, custom))
	require.NoError(t, err)
	f := &fixture{chart: chart}

	v := f.voucher(t, date(2024, 1, 5), "1103-01", "3110", "250")
	bs, err := f.service(v).BalanceSheet(context.Background(), date(2024, 1, 31))
	require.NoError(t, err)

	assets, _ := bs.Section(model.AccountTypeAsset)
	_, found := findRow(assets.Rows, "1103-01")
	assert.False(t, found)
	bank, _ := findRow(assets.Rows, "1103")
	assert.True(t, bank.Amount.Equal(dec("250")), "custom amounts stay in their parent")
}

func TestIncomeStatement(t *testing.T) {
	f := newFixture(t)
	svc := f.service(
		f.voucher(t, date(2024, 1, 10), "1103", "4111", "1000"),
		f.voucher(t, date(2024, 1, 11), "5110", "1103", "600"),
		f.voucher(t, date(2024, 2, 1), "6213", "1103", "150"),
		f.voucher(t, date(2024, 2, 2), "7510", "1103", "20"),
		f.voucher(t, date(2024, 3, 1), "7950", "2171", "40"),
		f.voucher(t, date(2023, 12, 31), "1103", "4111", "5000"),
	)

	st, err := svc.IncomeStatement(context.Background(), q1)
	require.NoError(t, err)

	want := map[string]string{
		"4000": "1000",
		"5000": "600",
		"5900": "400",
		"6000": "150",
		"6900": "250",
		"7000": "-20",
		"7900": "230",
		"8000": "190",
		"8200": "190",
		"8500": "190",
	}
	for code, amt := range want {
		row, ok := findRow(st.Rows, code)
		require.True(t, ok, code)
		assert.True(t, row.Amount.Equal(dec(amt)), "%s = %s, want %s", code, row.Amount, amt)
	}
	assert.True(t, st.NetIncome.Equal(dec("190")))
	assert.True(t, st.ComprehensiveIncome.Equal(dec("190")))

	shares := map[string]string{"4000": "1", "5000": "0.6", "6000": "0.15", "8200": "0.19"}
	for code, pct := range shares {
		row, _ := findRow(st.Rows, code)
		assert.True(t, row.Percentage.Equal(dec(pct)), "%s share = %s, want %s", code, row.Percentage, pct)
	}

	_, found := findRow(st.Rows, "1100")
	assert.False(t, found, "balance sheet accounts are excluded")
}

func TestIncomeStatement_InvalidPeriod(t *testing.T) {
	f := newFixture(t)
	_, err := f.service().IncomeStatement(context.Background(), trialbalance.Period{Begin: q1.End, End: q1.Begin})
	assert.ErrorIs(t, err, trialbalance.ErrInvalidPeriod)
}

func TestCashFlow(t *testing.T) {
	f := newFixture(t)
	svc := f.service(
		f.voucher(t, date(2024, 1, 5), "1101", "2171", "100"),
		f.voucher(t, date(2024, 1, 6), "1101", "2171", "50"),
		f.voucher(t, date(2024, 1, 7), "2171", "1103", "30"),
		f.voucher(t, date(2024, 6, 7), "1101", "2171", "999"),
	)

	st, err := svc.CashFlow(context.Background(), q1)
	require.NoError(t, err)
	assert.Equal(t, cashflow.AccumulateAll, st.Policy)

	up, ok := st.Lines["A32150"]
	require.True(t, ok)
	assert.True(t, up.CashInflow)
	assert.True(t, up.Amount.Equal(dec("150")))
	assert.Equal(t, 2, up.Vouchers)

	down, ok := st.Lines["A32151"]
	require.True(t, ok)
	assert.False(t, down.CashInflow)
	assert.True(t, down.Amount.Equal(dec("30")))

	_, ok = st.Lines["B05900"]
	assert.False(t, ok)
	assert.True(t, st.NetChange.Equal(dec("120")))
	assert.Len(t, st.Rows, len(st.Lines))
}

func TestCashFlow_FirstMatchPolicy(t *testing.T) {
	f := newFixture(t)
	v := f.voucher(t, date(2024, 1, 5), "1101", "2171", "100")
	svc := NewService(f.chart, staticJournal{vouchers: []model.Voucher{v}}, Options{Policy: cashflow.FirstMatch})

	st, err := svc.CashFlow(context.Background(), q1)
	require.NoError(t, err)
	assert.Len(t, st.Lines, 1)
	assert.Equal(t, cashflow.FirstMatch, st.Policy)
}

func TestTrialBalance(t *testing.T) {
	f := newFixture(t)
	svc := f.service(
		f.voucher(t, date(2023, 12, 15), "1101", "3110", "100000"),
		f.voucher(t, date(2024, 2, 15), "1101", "4111", "50000"),
	)

	page, err := svc.TrialBalance(context.Background(), trialbalance.Query{
		Period:      q1,
		PageRequest: trialbalance.PageRequest{Page: 1, PageSize: 50},
	})
	require.NoError(t, err)

	var cash trialbalance.Item
	for _, it := range page.Data {
		if it.AccountCode == "1XXX" {
			cash = it
		}
	}
	require.Equal(t, "1XXX", cash.AccountCode, "the trial balance uses the full internal tree")
	assert.True(t, cash.BeginningDebitAmount.Equal(dec("100000")))
	assert.True(t, cash.MidtermDebitAmount.Equal(dec("50000")))
	assert.True(t, cash.EndingDebitAmount.Equal(dec("150000")))
	assert.Equal(t, 3, page.TotalCount)
}

func TestService_JournalError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("disk on fire")
	svc := NewService(f.chart, staticJournal{err: boom}, Options{})

	_, err := svc.BalanceSheet(context.Background(), date(2024, 1, 1))
	assert.ErrorIs(t, err, boom)
}

func TestService_CanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service().TrialBalance(ctx, trialbalance.Query{Period: q1, PageRequest: trialbalance.PageRequest{Page: 1, PageSize: 1}})
	assert.ErrorIs(t, err, context.Canceled)
}

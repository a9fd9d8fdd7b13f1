package trialbalance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dated(account int64, amount string, debit bool, on time.Time) model.DatedLineItem {
	return model.DatedLineItem{
		LineItem: model.LineItem{AccountID: account, Amount: dec(amount), Debit: debit},
		Date:     on,
	}
}

var q1 = Period{Begin: date(2024, 1, 1), End: date(2024, 3, 31)}

func TestPeriodValidate(t *testing.T) {
	require.NoError(t, q1.Validate())
	require.NoError(t, Period{Begin: date(2024, 1, 1), End: date(2024, 1, 1)}.Validate())

	err := Period{Begin: date(2024, 4, 1), End: date(2024, 3, 31)}.Validate()
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriodize_BeginningMidtermEnding(t *testing.T) {
	b, err := Periodize([]model.DatedLineItem{
		dated(1101, "100000", true, date(2023, 12, 15)),
		dated(1101, "50000", true, date(2024, 2, 15)),
	}, q1)
	require.NoError(t, err)

	require.Len(t, b.Beginning, 1)
	require.Len(t, b.Midterm, 1)
	require.Len(t, b.Ending, 1)
	assert.True(t, b.Beginning[0].Debit.Equal(dec("100000")))
	assert.True(t, b.Midterm[0].Debit.Equal(dec("50000")))
	assert.True(t, b.Ending[0].Debit.Equal(dec("150000")))
	assert.True(t, b.Ending[0].Credit.IsZero())
}

func TestPeriodize_BoundsInclusive(t *testing.T) {
	b, err := Periodize([]model.DatedLineItem{
		dated(1, "1", true, q1.Begin),
		dated(1, "2", true, q1.End),
		dated(1, "4", true, q1.End.Add(time.Second)),
		dated(1, "8", true, q1.Begin.Add(-time.Second)),
	}, q1)
	require.NoError(t, err)

	assert.True(t, b.Midterm[0].Debit.Equal(dec("3")))
	assert.True(t, b.Beginning[0].Debit.Equal(dec("8")))
	assert.True(t, b.Ending[0].Debit.Equal(dec("11")), "items after the period are ignored")
}

func TestPeriodize_InvalidPeriod(t *testing.T) {
	_, err := Periodize(nil, Period{Begin: date(2024, 2, 1), End: date(2024, 1, 1)})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestMergeLineItems(t *testing.T) {
	merged := MergeLineItems([]model.LineItem{
		{AccountID: 2, Amount: dec("10"), Debit: true},
		{AccountID: 1, Amount: dec("5"), Debit: false},
		{AccountID: 2, Amount: dec("7"), Debit: false},
		{AccountID: 2, Amount: dec("-3"), Debit: true},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, int64(2), merged[0].AccountID, "first-seen order")
	assert.True(t, merged[0].Debit.Equal(dec("7")), "negative amounts pass through")
	assert.True(t, merged[0].Credit.Equal(dec("7")), "debit and credit are never netted")
	assert.True(t, merged[1].Debit.IsZero())
	assert.True(t, merged[1].Credit.Equal(dec("5")))
}

func TestMergeLineItems_NegativeTotal(t *testing.T) {
	merged := MergeLineItems([]model.LineItem{
		{AccountID: 1, Amount: dec("-40"), Debit: false},
	})
	require.Len(t, merged, 1)
	assert.True(t, merged[0].Credit.Equal(dec("-40")))
}

func TestRemerge_Idempotent(t *testing.T) {
	merged := MergeLineItems([]model.LineItem{
		{AccountID: 3, Amount: dec("10"), Debit: true},
		{AccountID: 4, Amount: dec("5"), Debit: false},
		{AccountID: 3, Amount: dec("2"), Debit: false},
	})

	again := Remerge(merged)
	require.Len(t, again, len(merged))
	for i := range merged {
		assert.Equal(t, merged[i].AccountID, again[i].AccountID)
		assert.True(t, merged[i].Debit.Equal(again[i].Debit))
		assert.True(t, merged[i].Credit.Equal(again[i].Credit))
	}
}

func TestCalculateEndingBalance_ComponentWise(t *testing.T) {
	beginning := []Merged{
		{AccountID: 1, DebitCredit: model.DebitCredit{Debit: dec("100"), Credit: dec("30")}},
		{AccountID: 2, DebitCredit: model.DebitCredit{Debit: dec("0"), Credit: dec("50")}},
	}
	midterm := []Merged{
		{AccountID: 2, DebitCredit: model.DebitCredit{Debit: dec("20"), Credit: dec("5")}},
		{AccountID: 3, DebitCredit: model.DebitCredit{Debit: dec("9"), Credit: dec("0")}},
	}

	ending := ByAccount(CalculateEndingBalance(beginning, midterm))
	require.Len(t, ending, 3)

	begin, mid := ByAccount(beginning), ByAccount(midterm)
	for id, e := range ending {
		wantDebit := begin[id].Debit.Add(mid[id].Debit)
		wantCredit := begin[id].Credit.Add(mid[id].Credit)
		assert.True(t, wantDebit.Equal(e.Debit), "account %d debit", id)
		assert.True(t, wantCredit.Equal(e.Credit), "account %d credit", id)
	}
	assert.True(t, ending[2].Debit.Equal(dec("20")))
	assert.True(t, ending[2].Credit.Equal(dec("55")))
}

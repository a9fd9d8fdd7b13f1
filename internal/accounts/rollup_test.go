package accounts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type lookup map[int64]model.Account

func (l lookup) Get(id int64) (model.Account, bool) {
	a, ok := l[id]
	return a, ok
}

func TestRollup_CashExample(t *testing.T) {
	chart := []model.Account{
		acct(1, "1100", "1100", true),
		acct(2, "1101", "1100", true),
		acct(3, "1103", "1100", true),
	}
	forest, err := BuildForest(chart)
	require.NoError(t, err)

	items := []model.LineItem{
		{AccountID: 2, Amount: d("500"), Debit: true},
		{AccountID: 3, Amount: d("300"), Debit: true},
	}
	amounts := AggregateLineItems(items, lookup{1: chart[0], 2: chart[1], 3: chart[2]})

	rolled := Rollup(forest, amounts)
	require.Len(t, rolled, 1)
	assert.True(t, rolled[0].Amount.Equal(d("800")), "got %s", rolled[0].Amount)
	assert.True(t, forest[0].Amount.IsZero(), "input forest is untouched")
}

func TestRollup_ContraAccountSubtracts(t *testing.T) {
	chart := []model.Account{
		acct(1, "1600", "1600", true),
		acct(2, "1681", "1600", true),
		acct(3, "1689", "1600", false),
	}
	forest, err := BuildForest(chart)
	require.NoError(t, err)

	rolled := Rollup(forest, map[int64]decimal.Decimal{2: d("12000"), 3: d("3000")})
	assert.True(t, rolled[0].Amount.Equal(d("9000")), "got %s", rolled[0].Amount)
}

func TestRollup_Invariant(t *testing.T) {
	forest, err := BuildForest(DefaultChart())
	require.NoError(t, err)

	amounts := make(map[int64]decimal.Decimal)
	for i, a := range DefaultChart() {
		amounts[a.ID] = decimal.NewFromInt(int64((i*37)%101 - 40))
	}
	rolled := Rollup(forest, amounts)

	for _, root := range rolled {
		root.Walk(func(n *model.AccountNode, _ int) {
			want := amountOf(amounts, n.ID)
			for _, c := range n.Children {
				if c.Debit == n.Debit {
					want = want.Add(c.Amount)
				} else {
					want = want.Sub(c.Amount)
				}
			}
			assert.True(t, want.Equal(n.Amount), "%s: want %s got %s", n.Code, want, n.Amount)
		})
	}
}

func TestAggregateLineItems(t *testing.T) {
	cash := acct(1, "1101", "1100", true)
	payable := acct(2, "2171", "2170", false)
	items := []model.LineItem{
		{AccountID: 1, Amount: d("1000"), Debit: true},
		{AccountID: 1, Amount: d("250"), Debit: false},
		{AccountID: 2, Amount: d("1000"), Debit: false},
		{AccountID: 2, Amount: d("-40"), Debit: false},
		{AccountID: 99, Amount: d("5"), Debit: true},
	}

	amounts := AggregateLineItems(items, lookup{1: cash, 2: payable})
	assert.Len(t, amounts, 2)
	assert.True(t, amounts[1].Equal(d("750")))
	assert.True(t, amounts[2].Equal(d("960")))
}

func TestAnnotatePercentages(t *testing.T) {
	chart := []model.Account{
		acct(1, "1100", "1100", true),
		acct(2, "1101", "1100", true),
		acct(3, "1103", "1100", true),
		acct(4, "2100", "2100", false),
	}
	forest, err := BuildForest(chart)
	require.NoError(t, err)

	rolled := AnnotatePercentages(Rollup(forest, map[int64]decimal.Decimal{2: d("500"), 3: d("300")}))

	cash := rolled[0]
	assert.True(t, cash.Percentage.Equal(d("1")))
	assert.True(t, cash.Children[0].Percentage.Equal(d("0.625")))
	assert.True(t, cash.Children[1].Percentage.Equal(d("0.375")))
	assert.True(t, rolled[1].Percentage.IsZero(), "zero root amount yields zero percentage")
}

func TestAnnotatePercentages_MixedSigns(t *testing.T) {
	chart := []model.Account{
		acct(1, "1600", "1600", true),
		acct(2, "1681", "1600", true),
		acct(3, "1689", "1600", false),
	}
	forest, err := BuildForest(chart)
	require.NoError(t, err)

	rolled := AnnotatePercentages(Rollup(forest, map[int64]decimal.Decimal{2: d("1000"), 3: d("200")}))
	root := rolled[0]
	require.True(t, root.Amount.Equal(d("800")))
	for _, c := range root.Children {
		assert.True(t, c.Percentage.Equal(c.Amount.DivRound(root.Amount, 4)))
	}
	assert.True(t, root.Children[0].Percentage.Equal(d("1.25")), "child may exceed its netted root")
}

func TestAnnotatePercentagesOf(t *testing.T) {
	chart := []model.Account{
		acct(1, "4000", "4000", false),
		acct(2, "5000", "5000", true),
		acct(3, "5110", "5000", true),
	}
	forest, err := BuildForest(chart)
	require.NoError(t, err)

	rolled := Rollup(forest, map[int64]decimal.Decimal{1: d("1000"), 3: d("600")})
	shares := AnnotatePercentagesOf(rolled, d("1000"))
	assert.True(t, shares[0].Percentage.Equal(d("1")))
	assert.True(t, shares[1].Percentage.Equal(d("0.6")), "other trees measured against the same base")
	assert.True(t, shares[1].Children[0].Percentage.Equal(d("0.6")))

	for _, n := range AnnotatePercentagesOf(rolled, decimal.Zero) {
		assert.True(t, n.Percentage.IsZero())
	}
}

func TestPrunePrivate(t *testing.T) {
	custom := acct(4, "1103-1", "1103", true)
	custom.AccountBookID = 7
	chart := []model.Account{
		acct(1, "1100", "1100", true),
		acct(2, "1101", "1100", true),
		acct(3, "1103", "1100", true),
		custom,
	}
	forest, err := BuildForest(chart)
	require.NoError(t, err)

	rolled := Rollup(forest, map[int64]decimal.Decimal{2: d("100"), 4: d("400")})
	pruned := PrunePrivate(rolled)

	require.Len(t, pruned, 1)
	bank := Find(pruned, "1103")
	require.NotNil(t, bank)
	assert.Empty(t, bank.Children)
	assert.True(t, bank.Amount.Equal(d("400")), "custom amount stays in parent")
	assert.True(t, pruned[0].Amount.Equal(d("500")))
	assert.NotNil(t, Find(rolled, "1103-1"), "rolled forest keeps the custom node")
}

func TestRollupPairs(t *testing.T) {
	custom := acct(4, "1103-1", "1103", true)
	custom.AccountBookID = 7
	chart := []model.Account{
		acct(1, "1100", "1100", true),
		acct(2, "1101", "1100", true),
		acct(3, "1103", "1100", true),
		custom,
	}
	forest, err := BuildForest(chart)
	require.NoError(t, err)

	pairs := map[int64]model.DebitCredit{
		2: {Debit: d("100"), Credit: d("30")},
		4: {Debit: d("50"), Credit: d("70")},
	}
	rolled := RollupPairs(forest, pairs)

	require.Len(t, rolled, 1)
	assert.True(t, rolled[0].Balance.Debit.Equal(d("150")))
	assert.True(t, rolled[0].Balance.Credit.Equal(d("100")))
	require.Len(t, rolled[0].Children[1].Children, 1, "custom account kept")
	assert.True(t, rolled[0].Children[1].Balance.Credit.Equal(d("70")))
}

func TestAmountsByCode(t *testing.T) {
	forest, err := BuildForest([]model.Account{acct(1, "4000", "4000", false), acct(2, "4100", "4000", false)})
	require.NoError(t, err)

	got := AmountsByCode(Rollup(forest, map[int64]decimal.Decimal{2: d("90")}))
	assert.True(t, got["4000"].Equal(d("90")))
	assert.True(t, got["4100"].Equal(d("90")))
}

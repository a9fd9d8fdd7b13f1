package accounts

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/model"
)

// percentagePlaces is the rounding applied to statement percentages.
const percentagePlaces = 4

// AccountLookup resolves account IDs to accounts.
type AccountLookup interface {
	Get(id int64) (model.Account, bool)
}

// AggregateLineItems sums line items per account, each re-signed against
// its account's natural side. Items of unknown accounts are skipped.
func AggregateLineItems(items []model.LineItem, lookup AccountLookup) map[int64]decimal.Decimal {
	amounts := make(map[int64]decimal.Decimal)
	for _, li := range items {
		acct, ok := lookup.Get(li.AccountID)
		if !ok {
			continue
		}
		amounts[li.AccountID] = amountOf(amounts, li.AccountID).Add(li.SignedAmount(acct))
	}
	return amounts
}

// Rollup returns a copy of forest with every node's Amount set to its own
// amount plus its children's, where a child on the opposite natural side
// (a contra account) is subtracted.
func Rollup(forest []*model.AccountNode, amounts map[int64]decimal.Decimal) []*model.AccountNode {
	out := make([]*model.AccountNode, len(forest))
	for i, n := range forest {
		out[i] = rollupNode(n, amounts)
	}
	return out
}

func rollupNode(n *model.AccountNode, amounts map[int64]decimal.Decimal) *model.AccountNode {
	node := &model.AccountNode{
		Account:    n.Account,
		Amount:     amountOf(amounts, n.ID),
		Percentage: decimal.Zero,
	}
	for _, c := range n.Children {
		child := rollupNode(c, amounts)
		if node.Debit == child.Debit {
			node.Amount = node.Amount.Add(child.Amount)
		} else {
			node.Amount = node.Amount.Sub(child.Amount)
		}
		node.Children = append(node.Children, child)
	}
	return node
}

// AnnotatePercentages returns a copy of forest where each node carries
// amount / rootAmount of its tree, or zero when the root amount is zero.
func AnnotatePercentages(forest []*model.AccountNode) []*model.AccountNode {
	out := make([]*model.AccountNode, len(forest))
	for i, root := range forest {
		out[i] = withPercentage(root, root.Amount)
	}
	return out
}

// AnnotatePercentagesOf returns a copy of forest where every node carries
// amount / base, or zero when base is zero.
func AnnotatePercentagesOf(forest []*model.AccountNode, base decimal.Decimal) []*model.AccountNode {
	out := make([]*model.AccountNode, len(forest))
	for i, root := range forest {
		out[i] = withPercentage(root, base)
	}
	return out
}

func withPercentage(n *model.AccountNode, rootAmount decimal.Decimal) *model.AccountNode {
	node := &model.AccountNode{Account: n.Account, Amount: n.Amount, Percentage: decimal.Zero}
	if !rootAmount.IsZero() {
		node.Percentage = n.Amount.DivRound(rootAmount, percentagePlaces)
	}
	for _, c := range n.Children {
		node.Children = append(node.Children, withPercentage(c, rootAmount))
	}
	return node
}

// PrunePrivate returns a copy of forest without company-custom accounts.
// Run it after Rollup: the pruned amounts stay included in their ancestors.
func PrunePrivate(forest []*model.AccountNode) []*model.AccountNode {
	var out []*model.AccountNode
	for _, n := range forest {
		if !n.IsPublic() {
			continue
		}
		node := &model.AccountNode{Account: n.Account, Amount: n.Amount, Percentage: n.Percentage}
		node.Children = PrunePrivate(n.Children)
		out = append(out, node)
	}
	return out
}

// BalanceNode is the trial-balance form of an account node: gross debit
// and credit are accumulated separately instead of a single signed amount.
type BalanceNode struct {
	model.Account
	Balance  model.DebitCredit
	Children []*BalanceNode
}

// RollupPairs accumulates debit/credit pairs bottom-up, debit into debit
// and credit into credit. Company-custom accounts are kept.
func RollupPairs(forest []*model.AccountNode, pairs map[int64]model.DebitCredit) []*BalanceNode {
	out := make([]*BalanceNode, len(forest))
	for i, n := range forest {
		out[i] = rollupPair(n, pairs)
	}
	return out
}

func rollupPair(n *model.AccountNode, pairs map[int64]model.DebitCredit) *BalanceNode {
	node := &BalanceNode{Account: n.Account, Balance: zeroPair().Add(pairs[n.ID])}
	for _, c := range n.Children {
		child := rollupPair(c, pairs)
		node.Balance = node.Balance.Add(child.Balance)
		node.Children = append(node.Children, child)
	}
	return node
}

// AmountsByCode flattens a rolled-up forest into code -> amount.
func AmountsByCode(forest []*model.AccountNode) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, root := range forest {
		root.Walk(func(n *model.AccountNode, _ int) {
			out[n.Code] = n.Amount
		})
	}
	return out
}

func amountOf(amounts map[int64]decimal.Decimal, id int64) decimal.Decimal {
	if a, ok := amounts[id]; ok {
		return a
	}
	return decimal.Zero
}

func zeroPair() model.DebitCredit {
	return model.DebitCredit{Debit: decimal.Zero, Credit: decimal.Zero}
}

package accounts

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/model"
)

const noParent = -1

// BuildForest links every account to its parent by code. An account is a
// root when it marks itself as one, when its parent code is unknown, or
// when it is the point at which a parent cycle is broken.
func BuildForest(accounts []model.Account) ([]*model.AccountNode, error) {
	idx, err := indexByCode(accounts)
	if err != nil {
		return nil, err
	}

	parents := make([]int, len(accounts))
	for i, a := range accounts {
		parents[i] = noParent
		if a.IsSelfRooted() {
			continue
		}
		if p, ok := idx[a.ParentCode]; ok {
			parents[i] = p
		}
	}
	breakCycles(parents)
	return assemble(accounts, parents, func(model.Account) bool { return true }), nil
}

// BuildUserForest builds the tree shown to end users: only ForUser
// accounts appear. A visible account hangs under its nearest visible
// ancestor, so hidden intermediate levels do not sever the relationship.
func BuildUserForest(accounts []model.Account) ([]*model.AccountNode, error) {
	idx, err := indexByCode(accounts)
	if err != nil {
		return nil, err
	}

	parents := make([]int, len(accounts))
	for i, a := range accounts {
		parents[i] = noParent
		if a.ForUser {
			parents[i] = nearestVisible(accounts, idx, i)
		}
	}
	breakCycles(parents)
	return assemble(accounts, parents, func(a model.Account) bool { return a.ForUser }), nil
}

func indexByCode(accounts []model.Account) (map[string]int, error) {
	idx := make(map[string]int, len(accounts))
	for i, a := range accounts {
		if _, dup := idx[a.Code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, a.Code)
		}
		idx[a.Code] = i
	}
	return idx, nil
}

func nearestVisible(accounts []model.Account, idx map[string]int, i int) int {
	seen := map[int]bool{i: true}
	cur := accounts[i]
	for !cur.IsSelfRooted() {
		p, ok := idx[cur.ParentCode]
		if !ok || seen[p] {
			return noParent
		}
		if accounts[p].ForUser {
			return p
		}
		seen[p] = true
		cur = accounts[p]
	}
	return noParent
}

// breakCycles detaches, in input order, every node whose ancestor chain
// leads back to itself.
func breakCycles(parents []int) {
	for i := range parents {
		seen := make(map[int]bool)
		for p := parents[i]; p != noParent; p = parents[p] {
			if p == i {
				parents[i] = noParent
				break
			}
			if seen[p] {
				break
			}
			seen[p] = true
		}
	}
}

func assemble(accounts []model.Account, parents []int, include func(model.Account) bool) []*model.AccountNode {
	nodes := make([]*model.AccountNode, len(accounts))
	for i, a := range accounts {
		if include(a) {
			nodes[i] = &model.AccountNode{Account: a, Amount: decimal.Zero, Percentage: decimal.Zero}
		}
	}

	var roots []*model.AccountNode
	for i, n := range nodes {
		if n == nil {
			continue
		}
		if p := parents[i]; p != noParent && nodes[p] != nil {
			nodes[p].Children = append(nodes[p].Children, n)
		} else {
			roots = append(roots, n)
		}
	}
	sortByCode(roots)
	return roots
}

func sortByCode(nodes []*model.AccountNode) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
	for _, n := range nodes {
		sortByCode(n.Children)
	}
}

// Find returns the first node with the given code, searching depth-first.
func Find(forest []*model.AccountNode, code string) *model.AccountNode {
	for _, n := range forest {
		if n.Code == code {
			return n
		}
		if found := Find(n.Children, code); found != nil {
			return found
		}
	}
	return nil
}

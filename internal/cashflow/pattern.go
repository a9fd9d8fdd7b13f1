// Package cashflow classifies vouchers into cash-flow statement lines by
// matching their debit and credit account codes against a rule table.
package cashflow

import (
	"regexp"
	"sort"

	"github.com/shopspring/decimal"
)

// Pattern is a closed set of account-code matchers: Code, And or Either.
type Pattern interface {
	pattern()
}

// Code matches when any entry's account code matches any of its
// expressions. A Code with no expressions never matches.
type Code struct {
	Exprs []*regexp.Regexp
}

// And matches when every sub-pattern finds a matching entry; the entries
// need not be the same one.
type And struct {
	Patterns []Pattern
}

// Either matches when Left or Right matches.
type Either struct {
	Left, Right Pattern
}

func (Code) pattern()   {}
func (And) pattern()    {}
func (Either) pattern() {}

// Codes compiles expressions into a Code pattern. It panics on a bad
// expression; rule tables are static.
func Codes(exprs ...string) Code {
	c := Code{Exprs: make([]*regexp.Regexp, len(exprs))}
	for i, e := range exprs {
		c.Exprs[i] = regexp.MustCompile(e)
	}
	return c
}

// AllOf builds an And pattern.
func AllOf(patterns ...Pattern) And {
	return And{Patterns: patterns}
}

// OneOf builds an Either pattern.
func OneOf(left, right Pattern) Either {
	return Either{Left: left, Right: right}
}

// Entry is one line item as seen by the matcher.
type Entry struct {
	AccountCode string
	Amount      decimal.Decimal
}

// Match reports whether p matches entries and returns the indexes of the
// entries that satisfied a Code leaf, in ascending order.
func Match(p Pattern, entries []Entry) (bool, []int) {
	hits := make(map[int]bool)
	if !match(p, entries, hits) {
		return false, nil
	}
	idx := make([]int, 0, len(hits))
	for i := range hits {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return true, idx
}

func match(p Pattern, entries []Entry, hits map[int]bool) bool {
	switch p := p.(type) {
	case Code:
		found := false
		for i, e := range entries {
			if p.matches(e.AccountCode) {
				hits[i] = true
				found = true
			}
		}
		return found
	case And:
		if len(p.Patterns) == 0 {
			return false
		}
		local := make(map[int]bool)
		for _, sub := range p.Patterns {
			if !match(sub, entries, local) {
				return false
			}
		}
		for i := range local {
			hits[i] = true
		}
		return true
	case Either:
		left := p.Left != nil && match(p.Left, entries, hits)
		right := p.Right != nil && match(p.Right, entries, hits)
		return left || right
	default:
		return false
	}
}

func (c Code) matches(code string) bool {
	for _, re := range c.Exprs {
		if re.MatchString(code) {
			return true
		}
	}
	return false
}

package cashflow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func entries(codes ...string) []Entry {
	out := make([]Entry, len(codes))
	for i, c := range codes {
		out[i] = Entry{AccountCode: c, Amount: decimal.NewFromInt(int64(100 * (i + 1)))}
	}
	return out
}

func TestMatch_Code(t *testing.T) {
	ok, hits := Match(Codes(`^110[1-5]`, `^1920`), entries("2171", "1103", "1920"))
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, hits)

	ok, hits = Match(Codes(`^193[1-7]`), entries("2171", "1103"))
	assert.False(t, ok)
	assert.Nil(t, hits)
}

func TestMatch_EmptyCodeNeverMatches(t *testing.T) {
	ok, _ := Match(Code{}, entries("1101", "2171"))
	assert.False(t, ok)

	ok, _ = Match(Codes(), entries("1101"))
	assert.False(t, ok)
}

func TestMatch_And(t *testing.T) {
	p := AllOf(Codes(`^7611`), Codes(`^16\d9$`))

	ok, hits := Match(p, entries("7611", "1689", "1101"))
	assert.True(t, ok)
	assert.Equal(t, []int{0, 1}, hits)

	ok, _ = Match(p, entries("7611", "1101"))
	assert.False(t, ok, "every sub-pattern must find an entry")

	ok, _ = Match(AllOf(), entries("7611"))
	assert.False(t, ok)
}

func TestMatch_AndSubPatternsMayShareEntry(t *testing.T) {
	ok, hits := Match(AllOf(Codes(`^11`), Codes(`^110`)), entries("1101"))
	assert.True(t, ok)
	assert.Equal(t, []int{0}, hits)
}

func TestMatch_Either(t *testing.T) {
	p := OneOf(Codes(`^2216`), Codes(`^335`))

	ok, hits := Match(p, entries("3350"))
	assert.True(t, ok)
	assert.Equal(t, []int{0}, hits)

	ok, hits = Match(p, entries("2216", "3350"))
	assert.True(t, ok)
	assert.Equal(t, []int{0, 1}, hits)

	ok, _ = Match(p, entries("1101"))
	assert.False(t, ok)

	ok, _ = Match(Either{Left: Codes(`^1`)}, entries("1101"))
	assert.True(t, ok, "nil side is ignored")
}

func TestMatch_Nested(t *testing.T) {
	p := OneOf(AllOf(Codes(`^1101`), Codes(`^2171`)), Code{})

	ok, hits := Match(p, entries("1101", "9999", "2171"))
	assert.True(t, ok)
	assert.Equal(t, []int{0, 2}, hits)
}

func TestMatch_NilPattern(t *testing.T) {
	ok, _ := Match(nil, entries("1101"))
	assert.False(t, ok)
}

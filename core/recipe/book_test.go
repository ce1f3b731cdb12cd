package recipe

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-cost/core/types"
)

func line(amount string) types.RecipeLine {
	return types.RecipeLine{AmountPerUnit: decimal.RequireFromString(amount)}
}

func TestPutAppendsInOrder(t *testing.T) {
	b := NewBook()
	idx, replaced := b.Put("cookie", New())
	assert.Equal(t, 0, idx)
	assert.False(t, replaced)

	idx, replaced = b.Put("蛋挞", New())
	assert.Equal(t, 1, idx)
	assert.False(t, replaced)

	assert.Equal(t, []string{"cookie", "蛋挞"}, b.Products())
}

func TestPutOverwritesSilentlyAndKeepsPosition(t *testing.T) {
	b := NewBook()
	first := New()
	first.Set("flour", line("50"))
	b.Put("cookie", first)
	b.Put("bread", New())

	second := New()
	second.Set("oats", line("30"))
	idx, replaced := b.Put("cookie", second)

	assert.Equal(t, 0, idx)
	assert.True(t, replaced)
	assert.Equal(t, []string{"cookie", "bread"}, b.Products())

	got, ok := b.Get("cookie")
	require.True(t, ok)
	assert.Equal(t, []string{"oats"}, got.Ingredients())
}

func TestPutNilStoresEmptyRecipe(t *testing.T) {
	b := NewBook()
	b.Put("plain", nil)

	r, ok := b.Get("plain")
	require.True(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRecipeSetReplacesLine(t *testing.T) {
	r := New()
	r.Set("flour", line("50"))
	r.Set("sugar", line("20"))
	r.Set("flour", line("55"))

	assert.Equal(t, []string{"flour", "sugar"}, r.Ingredients())
	l, ok := r.Get("flour")
	require.True(t, ok)
	assert.Equal(t, "55", l.AmountPerUnit.String())
}

func TestCloneIsIndependent(t *testing.T) {
	r := New()
	r.Set("flour", line("50"))
	c := r.Clone()
	c.Set("sugar", line("1"))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, c.Len())
}

func TestMergeReportsAddedAndReplaced(t *testing.T) {
	b := NewBook()
	b.Put("cookie", New())

	incoming := NewBook()
	incoming.Put("cookie", New())
	incoming.Put("scone", New())

	added, replaced := b.Merge(incoming)
	assert.Equal(t, []string{"scone"}, added)
	assert.Equal(t, []string{"cookie"}, replaced)
	assert.Equal(t, 1, b.Index("scone"))
	assert.True(t, b.Has("scone"))
}

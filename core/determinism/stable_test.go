package determinism

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("sugar", 1)
	m.Set("flour", 2)
	m.Set("黄油", 3)

	assert.Equal(t, []string{"sugar", "flour", "黄油"}, m.Keys())

	var seen []string
	m.Range(func(k string, _ int) bool {
		seen = append(seen, k)
		return true
	})
	assert.Equal(t, m.Keys(), seen)
}

func TestOrderedMapOverwriteKeepsPosition(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	pos, replaced := m.Set("a", 10)
	assert.Equal(t, 0, pos)
	assert.True(t, replaced)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, 1, m.Index("b"))
	assert.Equal(t, -1, m.Index("zzz"))
}

func TestOrderedMapZeroValueIsUsable(t *testing.T) {
	var m OrderedMap[string, string]
	pos, replaced := m.Set("k", "v")
	assert.Equal(t, 0, pos)
	assert.False(t, replaced)
	assert.True(t, m.Has("k"))
	assert.Equal(t, 1, m.Len())
}

func TestOrderedMapRangeStops(t *testing.T) {
	m := NewOrderedMap[int, int]()
	for i := 0; i < 5; i++ {
		m.Set(i, i)
	}
	count := 0
	m.Range(func(int, int) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	c := m.Clone()
	c.Set("b", 2)

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestMoneyRoundsOnlyForDisplay(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("1.7"), "$").
		AddDecimal(decimal.RequireFromString("0.005"))

	assert.Equal(t, "1.705", m.StringRaw())
	assert.Equal(t, "$1.71", m.String())
}

func TestMoneyAddCurrencyMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		Zero("$").Add(Zero("€"))
	})
}

func TestNewMoneyRejectsGarbage(t *testing.T) {
	_, err := NewMoney("abc", "$")
	assert.Error(t, err)

	m, err := NewMoney("2.5", "$")
	require.NoError(t, err)
	assert.True(t, m.Equal(NewMoneyFromDecimal(decimal.NewFromFloat(2.5), "$")))
	assert.False(t, m.IsZero())
	assert.True(t, m.Mul(decimal.Zero).IsZero())
}

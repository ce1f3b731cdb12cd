// Package determinism provides primitives for guaranteeing deterministic output.
// Maps whose iteration order reaches the user must be OrderedMap, never map[K]V.
package determinism

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderedMap is a map that iterates in insertion order.
// Overwriting an existing key keeps its original position.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	index  map[K]int
	values map[K]V
}

// NewOrderedMap creates a new OrderedMap
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		index:  make(map[K]int),
		values: make(map[K]V),
	}
}

// Set adds or updates a key-value pair and returns the key's position
// and whether an existing value was replaced.
func (m *OrderedMap[K, V]) Set(key K, value V) (int, bool) {
	m.lazyInit()
	if pos, exists := m.index[key]; exists {
		m.values[key] = value
		return pos, true
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values[key] = value
	return len(m.keys) - 1, false
}

// Get retrieves a value by key
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, ok := m.values[key]
	return val, ok
}

// Has reports whether key is present
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Index returns the insertion position of key, or -1
func (m *OrderedMap[K, V]) Index(key K) int {
	if pos, ok := m.index[key]; ok {
		return pos
	}
	return -1
}

// Range iterates in insertion order until fn returns false
func (m *OrderedMap[K, V]) Range(fn func(K, V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			break
		}
	}
}

// Keys returns all keys in insertion order
func (m *OrderedMap[K, V]) Keys() []K {
	result := make([]K, len(m.keys))
	copy(result, m.keys)
	return result
}

// Len returns the number of entries
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Clone returns a shallow copy preserving order
func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	out := NewOrderedMap[K, V]()
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

func (m *OrderedMap[K, V]) lazyInit() {
	if m.index == nil {
		m.index = make(map[K]int)
		m.values = make(map[K]V)
	}
}

// Money represents a monetary amount with full precision.
// NEVER use float64 for money calculations.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money from a decimal string
func NewMoney(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d, currency: currency}, nil
}

// NewMoneyFromDecimal creates Money from decimal
func NewMoneyFromDecimal(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// Zero creates zero money
func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency symbol
func (m Money) Currency() string {
	return m.currency
}

// Add adds two monetary amounts
func (m Money) Add(other Money) Money {
	if m.currency != other.currency {
		panic(fmt.Sprintf("cannot add %s and %s", m.currency, other.currency))
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}
}

// AddDecimal adds a bare amount in the same currency
func (m Money) AddDecimal(d decimal.Decimal) Money {
	return Money{amount: m.amount.Add(d), currency: m.currency}
}

// Mul multiplies by a scalar
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// IsZero returns true if amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal compares amount and currency exactly
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns formatted money (2 decimal places, half away from zero)
func (m Money) String() string {
	return m.currency + m.amount.StringFixed(2)
}

// StringRaw returns the raw decimal string (full precision)
func (m Money) StringRaw() string {
	return m.amount.String()
}

// Package types - Aggregation result types
package types

import (
	"github.com/shopspring/decimal"

	"bakery-cost/core/determinism"
)

// MaterialTotal is the summed requirement for one ingredient
type MaterialTotal struct {
	// Ingredient is the ingredient name
	Ingredient string `json:"ingredient"`

	// Amount is the total mass across all requested products
	Amount decimal.Decimal `json:"amount"`

	// Unit is the first unit label seen for this ingredient
	Unit string `json:"unit"`

	// Cost is the priced share of Amount; zero when unpriced
	Cost decimal.Decimal `json:"cost"`

	// Priced is false when no catalog entry covered any of Amount
	Priced bool `json:"priced"`
}

// ProductCost is the ingredient cost attributed to one requested product
type ProductCost struct {
	Product  string          `json:"product"`
	Quantity int64           `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// AggregationResult is the output of one aggregation run.
// TotalCost keeps full precision; round only for display.
type AggregationResult struct {
	// Materials holds per-ingredient totals in first-seen order
	Materials *determinism.OrderedMap[string, *MaterialTotal] `json:"-"`

	// Products lists every aggregated product in request order
	Products []ProductCost `json:"products"`

	// BaseOverhead is the fixed term the total was seeded with
	BaseOverhead decimal.Decimal `json:"base_overhead"`

	// TotalCost is BaseOverhead plus every priced ingredient cost
	TotalCost decimal.Decimal `json:"total_cost"`

	// Currency is the display symbol
	Currency string `json:"currency"`

	// Errors collects per-item failures in encounter order
	Errors []error `json:"-"`
}

// NewAggregationResult creates an empty result seeded with the overhead
func NewAggregationResult(baseOverhead decimal.Decimal, currency string) *AggregationResult {
	return &AggregationResult{
		Materials:    determinism.NewOrderedMap[string, *MaterialTotal](),
		BaseOverhead: baseOverhead,
		TotalCost:    baseOverhead,
		Currency:     currency,
	}
}

// Material returns the total for one ingredient
func (r *AggregationResult) Material(ingredient string) (*MaterialTotal, bool) {
	return r.Materials.Get(ingredient)
}

// MaterialList returns the totals in first-seen order
func (r *AggregationResult) MaterialList() []*MaterialTotal {
	out := make([]*MaterialTotal, 0, r.Materials.Len())
	r.Materials.Range(func(_ string, m *MaterialTotal) bool {
		out = append(out, m)
		return true
	})
	return out
}

// DisplayTotal returns the total rounded to two decimal places
func (r *AggregationResult) DisplayTotal() string {
	return r.TotalCost.StringFixed(2)
}

// Money returns the total as Money
func (r *AggregationResult) Money() determinism.Money {
	return determinism.NewMoneyFromDecimal(r.TotalCost, r.Currency)
}

// HasErrors returns true if any item failed
func (r *AggregationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

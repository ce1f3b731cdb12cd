// Package types - Recipe line types
package types

import "github.com/shopspring/decimal"

// RecipeLine is the requirement of one ingredient for one unit of product
type RecipeLine struct {
	// AmountPerUnit is the mass needed per product unit; never negative
	AmountPerUnit decimal.Decimal `json:"amount"`

	// Unit is informational only
	Unit string `json:"unit,omitempty"`
}

// For returns the amount needed for quantity units of product
func (l RecipeLine) For(quantity int64) decimal.Decimal {
	return l.AmountPerUnit.Mul(decimal.NewFromInt(quantity))
}

// UnitOr returns the line's unit or fallback when none was recorded
func (l RecipeLine) UnitOr(fallback string) string {
	if l.Unit != "" {
		return l.Unit
	}
	return fallback
}

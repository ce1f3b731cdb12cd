// Package types - Ingredient pricing types
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IngredientPrice is the price of one bulk purchase of an ingredient
type IngredientPrice struct {
	// BulkPrice is what the bulk amount costs, in currency units
	BulkPrice decimal.Decimal `json:"price"`

	// BulkAmount is the mass the price corresponds to; always > 0
	BulkAmount decimal.Decimal `json:"amount"`
}

// UnitPrice returns the price of one mass unit
func (p IngredientPrice) UnitPrice() decimal.Decimal {
	return p.BulkPrice.Div(p.BulkAmount)
}

// Validate checks the divisor invariant
func (p IngredientPrice) Validate() error {
	if !p.BulkAmount.IsPositive() {
		return fmt.Errorf("bulk amount must be positive, got %s", p.BulkAmount)
	}
	if p.BulkPrice.IsNegative() {
		return fmt.Errorf("bulk price must not be negative, got %s", p.BulkPrice)
	}
	return nil
}

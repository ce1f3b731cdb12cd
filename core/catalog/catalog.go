// Package catalog - Ingredient price catalog
// The catalog is filled once at load time and read-only afterwards.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bakery-cost/core/determinism"
	"bakery-cost/core/types"
)

// Catalog maps ingredient names to bulk prices
type Catalog struct {
	entries *determinism.OrderedMap[string, types.IngredientPrice]
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		entries: determinism.NewOrderedMap[string, types.IngredientPrice](),
	}
}

// Register adds an ingredient price. Entries that break the
// bulk-amount invariant are rejected.
func (c *Catalog) Register(ingredient string, price types.IngredientPrice) error {
	name := types.CanonicalName(ingredient)
	if name == "" {
		return fmt.Errorf("ingredient name is empty")
	}
	if err := price.Validate(); err != nil {
		return fmt.Errorf("ingredient %s: %w", name, err)
	}
	c.entries.Set(name, price)
	return nil
}

// MustRegister is Register for literals in tests and fixtures
func (c *Catalog) MustRegister(ingredient string, bulkPrice, bulkAmount string) *Catalog {
	err := c.Register(ingredient, types.IngredientPrice{
		BulkPrice:  decimal.RequireFromString(bulkPrice),
		BulkAmount: decimal.RequireFromString(bulkAmount),
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the price of an ingredient
func (c *Catalog) Lookup(ingredient string) (types.IngredientPrice, bool) {
	return c.entries.Get(types.CanonicalName(ingredient))
}

// Names returns ingredient names in load order
func (c *Catalog) Names() []string {
	return c.entries.Keys()
}

// Range iterates entries in load order
func (c *Catalog) Range(fn func(ingredient string, price types.IngredientPrice) bool) {
	c.entries.Range(fn)
}

// Len returns the number of priced ingredients
func (c *Catalog) Len() int {
	return c.entries.Len()
}

// Package recipe holds recipes and the recipe book.
//
// A Recipe is replaced whole, never patched in place once it is in a Book.
// The Book never deletes; inserting an existing product name overwrites it
// and keeps the product's original position.
package recipe

import (
	"bakery-cost/core/determinism"
	"bakery-cost/core/types"
)

// Recipe maps ingredient names to per-unit requirements
type Recipe struct {
	lines determinism.OrderedMap[string, types.RecipeLine]
}

// New creates an empty recipe
func New() *Recipe {
	return &Recipe{}
}

// Set adds or replaces the line for an ingredient
func (r *Recipe) Set(ingredient string, line types.RecipeLine) {
	r.lines.Set(types.CanonicalName(ingredient), line)
}

// Get returns the line for an ingredient
func (r *Recipe) Get(ingredient string) (types.RecipeLine, bool) {
	return r.lines.Get(types.CanonicalName(ingredient))
}

// Range iterates lines in entry order
func (r *Recipe) Range(fn func(ingredient string, line types.RecipeLine) bool) {
	r.lines.Range(fn)
}

// Ingredients returns ingredient names in entry order
func (r *Recipe) Ingredients() []string {
	return r.lines.Keys()
}

// Len returns the number of lines
func (r *Recipe) Len() int {
	return r.lines.Len()
}

// Clone returns an independent copy
func (r *Recipe) Clone() *Recipe {
	out := New()
	r.Range(func(k string, v types.RecipeLine) bool {
		out.lines.Set(k, v)
		return true
	})
	return out
}

// Book maps product names to recipes
type Book struct {
	recipes determinism.OrderedMap[string, *Recipe]
}

// NewBook creates an empty recipe book
func NewBook() *Book {
	return &Book{}
}

// Put stores a recipe under a product name and returns the product's
// position and whether an earlier recipe was overwritten.
func (b *Book) Put(product string, r *Recipe) (int, bool) {
	if r == nil {
		r = New()
	}
	return b.recipes.Set(types.CanonicalName(product), r)
}

// Get returns the recipe for a product
func (b *Book) Get(product string) (*Recipe, bool) {
	return b.recipes.Get(types.CanonicalName(product))
}

// Has reports whether a product exists
func (b *Book) Has(product string) bool {
	return b.recipes.Has(types.CanonicalName(product))
}

// Index returns the position of a product, or -1
func (b *Book) Index(product string) int {
	return b.recipes.Index(types.CanonicalName(product))
}

// Products returns product names in insertion order
func (b *Book) Products() []string {
	return b.recipes.Keys()
}

// Range iterates products in insertion order
func (b *Book) Range(fn func(product string, r *Recipe) bool) {
	b.recipes.Range(fn)
}

// Len returns the number of products
func (b *Book) Len() int {
	return b.recipes.Len()
}

// Merge copies every recipe of other into b and reports which products
// were new and which replaced an existing recipe.
func (b *Book) Merge(other *Book) (added, replaced []string) {
	other.Range(func(product string, r *Recipe) bool {
		if _, overwritten := b.Put(product, r.Clone()); overwritten {
			replaced = append(replaced, product)
		} else {
			added = append(added, product)
		}
		return true
	})
	return added, replaced
}

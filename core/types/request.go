// Package types - Aggregation request
package types

import (
	"strconv"

	"bakery-cost/core/determinism"
)

// AggregationRequest maps product names to the raw quantity text the user
// entered. Parsing happens during aggregation so that one bad field is
// reported against its product without blocking the rest of the batch.
type AggregationRequest struct {
	quantities determinism.OrderedMap[string, string]
}

// NewAggregationRequest creates an empty request
func NewAggregationRequest() *AggregationRequest {
	return &AggregationRequest{}
}

// Set records the raw quantity text for a product
func (r *AggregationRequest) Set(product, raw string) {
	r.quantities.Set(product, raw)
}

// SetQuantity records an integer quantity for a product
func (r *AggregationRequest) SetQuantity(product string, quantity int64) {
	r.quantities.Set(product, strconv.FormatInt(quantity, 10))
}

// Raw returns the raw text for a product
func (r *AggregationRequest) Raw(product string) (string, bool) {
	return r.quantities.Get(product)
}

// Range iterates products in the order they were added
func (r *AggregationRequest) Range(fn func(product, raw string) bool) {
	r.quantities.Range(fn)
}

// Products returns the requested products in order
func (r *AggregationRequest) Products() []string {
	return r.quantities.Keys()
}

// Len returns the number of products in the request
func (r *AggregationRequest) Len() int {
	return r.quantities.Len()
}

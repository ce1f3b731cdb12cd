package output

import (
	"time"

	"github.com/shopspring/decimal"

	"bakery-cost/core/determinism"
	"bakery-cost/core/types"
)

// Report is the serializable snapshot of one aggregation run
type Report struct {
	// ID is assigned when the report is saved
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// CreatedAt is when the aggregation ran
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Currency is the display symbol
	Currency string `json:"currency" yaml:"currency"`

	// Quantities is the request as entered, in row order
	Quantities []QuantityLine `json:"quantities" yaml:"quantities"`

	// Materials are the per-ingredient totals in first-seen order
	Materials []MaterialLine `json:"materials" yaml:"materials"`

	// Products are the per-product ingredient costs
	Products []ProductLine `json:"products" yaml:"products"`

	// BaseOverhead is the packaging/utilities term
	BaseOverhead decimal.Decimal `json:"base_overhead" yaml:"base_overhead"`

	// TotalCost includes BaseOverhead
	TotalCost decimal.Decimal `json:"total_cost" yaml:"total_cost"`

	// Warnings are the collected per-item errors
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// QuantityLine is one entered quantity
type QuantityLine struct {
	Product  string `json:"product" yaml:"product"`
	Quantity string `json:"quantity" yaml:"quantity"`
}

// MaterialLine is one ingredient total
type MaterialLine struct {
	Ingredient string          `json:"ingredient" yaml:"ingredient"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Unit       string          `json:"unit" yaml:"unit"`
	Cost       decimal.Decimal `json:"cost" yaml:"cost"`
	Priced     bool            `json:"priced" yaml:"priced"`
}

// ProductLine is the ingredient cost of one product
type ProductLine struct {
	Product  string          `json:"product" yaml:"product"`
	Quantity int64           `json:"quantity" yaml:"quantity"`
	Cost     decimal.Decimal `json:"cost" yaml:"cost"`
}

// NewReport snapshots a request and its result
func NewReport(req *types.AggregationRequest, res *types.AggregationResult) *Report {
	r := &Report{
		CreatedAt:    time.Now().UTC(),
		Currency:     res.Currency,
		BaseOverhead: res.BaseOverhead,
		TotalCost:    res.TotalCost,
	}
	if req != nil {
		req.Range(func(product, raw string) bool {
			r.Quantities = append(r.Quantities, QuantityLine{Product: product, Quantity: raw})
			return true
		})
	}
	for _, m := range res.MaterialList() {
		r.Materials = append(r.Materials, MaterialLine{
			Ingredient: m.Ingredient,
			Amount:     m.Amount,
			Unit:       m.Unit,
			Cost:       m.Cost,
			Priced:     m.Priced,
		})
	}
	for _, p := range res.Products {
		r.Products = append(r.Products, ProductLine{Product: p.Product, Quantity: p.Quantity, Cost: p.Cost})
	}
	for _, err := range res.Errors {
		r.Warnings = append(r.Warnings, err.Error())
	}
	return r
}

// Money formats an amount in the report currency with two decimals
func (r *Report) Money(d decimal.Decimal) string {
	return determinism.NewMoneyFromDecimal(d, r.Currency).String()
}

// TotalLine is the one-line summary naming the overhead
func (r *Report) TotalLine() string {
	return "Total cost (incl. " + r.Money(r.BaseOverhead) + " packaging/utilities): " + r.Money(r.TotalCost)
}

// AmountText renders a material amount at full precision with its unit
func (m MaterialLine) AmountText() string {
	if m.Unit == "" {
		return m.Amount.String()
	}
	return m.Amount.String() + " " + m.Unit
}

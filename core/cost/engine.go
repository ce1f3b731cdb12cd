// Package cost provides the aggregation engine.
// It turns a recipe book, a price catalog and requested quantities into
// material totals and a total cost.
package cost

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bakery-cost/core/catalog"
	"bakery-cost/core/recipe"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
	"bakery-cost/internal/logging"
)

// Aggregator computes material requirements and cost
type Aggregator struct {
	currency string
	massUnit string
	log      *zap.Logger
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithCurrency sets the currency symbol carried on results
func WithCurrency(currency string) Option {
	return func(a *Aggregator) { a.currency = currency }
}

// WithMassUnit sets the unit used for lines without one
func WithMassUnit(unit string) Option {
	return func(a *Aggregator) {
		if unit != "" {
			a.massUnit = unit
		}
	}
}

// NewAggregator creates an aggregator
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		currency: "$",
		massUnit: types.DefaultMassUnit,
		log:      logging.Named("cost"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate runs one calculation. It never fails as a whole: bad
// quantities, unknown products and missing prices are collected on the
// result and the remaining items are still aggregated.
func (a *Aggregator) Aggregate(book *recipe.Book, prices *catalog.Catalog, req *types.AggregationRequest, baseOverhead decimal.Decimal) *types.AggregationResult {
	result := types.NewAggregationResult(baseOverhead, a.currency)

	req.Range(func(product, raw string) bool {
		quantity, err := ParseQuantity(raw)
		if err != nil {
			result.Errors = append(result.Errors, errors.InvalidQuantity(product, raw, err))
			a.log.Debug("skipping product with invalid quantity", zap.String("product", product), zap.String("input", raw))
			return true
		}
		if quantity == 0 {
			return true
		}

		r, ok := book.Get(product)
		if !ok {
			result.Errors = append(result.Errors, errors.UnknownProduct(product))
			a.log.Warn("requested product has no recipe", zap.String("product", product))
			return true
		}

		productCost := a.addProduct(result, prices, product, r, quantity)
		result.Products = append(result.Products, types.ProductCost{
			Product:  product,
			Quantity: quantity,
			Cost:     productCost,
		})
		return true
	})

	a.log.Debug("aggregation finished",
		zap.Int("products", len(result.Products)),
		zap.Int("materials", result.Materials.Len()),
		zap.String("total", result.TotalCost.String()),
		zap.Int("errors", len(result.Errors)))

	return result
}

func (a *Aggregator) addProduct(result *types.AggregationResult, prices *catalog.Catalog, product string, r *recipe.Recipe, quantity int64) decimal.Decimal {
	productCost := decimal.Zero

	r.Range(func(ingredient string, line types.RecipeLine) bool {
		amount := line.For(quantity)

		total, ok := result.Materials.Get(ingredient)
		if !ok {
			total = &types.MaterialTotal{
				Ingredient: ingredient,
				Amount:     decimal.Zero,
				Unit:       line.UnitOr(a.massUnit),
				Cost:       decimal.Zero,
			}
			result.Materials.Set(ingredient, total)
		}
		total.Amount = total.Amount.Add(amount)

		price, ok := prices.Lookup(ingredient)
		if !ok {
			result.Errors = append(result.Errors, errors.MissingPrice(ingredient, product))
			a.log.Warn("no price for ingredient", zap.String("ingredient", ingredient), zap.String("product", product))
			return true
		}

		lineCost := price.UnitPrice().Mul(amount)
		total.Cost = total.Cost.Add(lineCost)
		total.Priced = true
		productCost = productCost.Add(lineCost)
		result.TotalCost = result.TotalCost.Add(lineCost)
		return true
	})

	return productCost
}

var errNegativeQuantity = stderrors.New("quantity must not be negative")

// Aggregate runs a calculation with default options
func Aggregate(book *recipe.Book, prices *catalog.Catalog, req *types.AggregationRequest, baseOverhead decimal.Decimal) *types.AggregationResult {
	return NewAggregator().Aggregate(book, prices, req, baseOverhead)
}

// ParseQuantity parses the text of a quantity field. Surrounding space is
// ignored and a blank field means zero. Anything other than a base-10
// integer >= 0 is rejected.
func ParseQuantity(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	q, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if q < 0 {
		return 0, errNegativeQuantity
	}
	return q, nil
}

// Package engine provides the application context.
// The CLI is a thin wrapper around this engine: it owns the price catalog,
// the recipe book and the store they came from, and exposes aggregation,
// product registration and read access to the product list.
package engine

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bakery-cost/core/catalog"
	"bakery-cost/core/cost"
	"bakery-cost/core/editor"
	"bakery-cost/core/recipe"
	"bakery-cost/core/types"
	"bakery-cost/internal/config"
	"bakery-cost/internal/errors"
	"bakery-cost/internal/logging"
)

// PriceSource loads the price catalog. A non-nil catalog returned together
// with an error is a partial load: the bad entries were skipped.
type PriceSource interface {
	LoadPrices(ctx context.Context) (*catalog.Catalog, error)
}

// RecipeStore loads and saves the recipe book
type RecipeStore interface {
	LoadRecipes(ctx context.Context) (*recipe.Book, error)
	SaveRecipes(ctx context.Context, book *recipe.Book) error
}

// Options configures the engine
type Options struct {
	// BaseOverhead seeds every total
	BaseOverhead decimal.Decimal

	// Currency is the display symbol
	Currency string

	// MassUnit labels amounts without a unit
	MassUnit string

	// Sentinels end ingredient entry
	Sentinels []string
}

// OptionsFromConfig derives engine options from configuration
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	overhead, err := cfg.Cost.Overhead()
	if err != nil {
		return Options{}, err
	}
	return Options{
		BaseOverhead: overhead,
		Currency:     cfg.Cost.Currency,
		MassUnit:     cfg.Cost.MassUnit,
		Sentinels:    cfg.Editor.Sentinels,
	}, nil
}

// Engine is the session state shared by every operation
type Engine struct {
	catalog    *catalog.Catalog
	book       *recipe.Book
	store      RecipeStore
	editor     *editor.Editor
	aggregator *cost.Aggregator
	opts       Options
}

// New creates an engine over already-loaded data
func New(prices *catalog.Catalog, book *recipe.Book, store RecipeStore, opts Options) *Engine {
	if prices == nil {
		prices = catalog.New()
	}
	if book == nil {
		book = recipe.NewBook()
	}
	if opts.MassUnit == "" {
		opts.MassUnit = types.DefaultMassUnit
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}

	var persister editor.Persister
	if store != nil {
		persister = store
	}

	return &Engine{
		catalog:    prices,
		book:       book,
		store:      store,
		editor:     editor.New(book, persister, opts.MassUnit),
		aggregator: cost.NewAggregator(cost.WithCurrency(opts.Currency), cost.WithMassUnit(opts.MassUnit)),
		opts:       opts,
	}
}

// Load reads both stores and builds an engine. Load failures never stop
// the engine: each becomes a warning and the data degrades to empty.
func Load(ctx context.Context, prices PriceSource, store RecipeStore, opts Options) (*Engine, []error) {
	var warnings []error

	cat, err := prices.LoadPrices(ctx)
	if err != nil {
		if !errors.IsType(err, errors.TypeCatalogLoad) {
			err = errors.CatalogLoad("price catalog", err)
		}
		warnings = append(warnings, err)
		logging.Warn("price catalog degraded", zap.Error(err))
	}
	if cat == nil {
		cat = catalog.New()
	}

	book, err := store.LoadRecipes(ctx)
	if err != nil {
		if !errors.IsType(err, errors.TypeRecipeBookLoad) {
			err = errors.RecipeBookLoad("recipe book", err)
		}
		warnings = append(warnings, err)
		logging.Warn("recipe book degraded", zap.Error(err))
	}
	if book == nil {
		book = recipe.NewBook()
	}

	logging.Debug("engine loaded",
		zap.Int("ingredients", cat.Len()),
		zap.Int("products", book.Len()))

	return New(cat, book, store, opts), warnings
}

// Aggregate computes materials and cost for a request
func (e *Engine) Aggregate(req *types.AggregationRequest) *types.AggregationResult {
	return e.aggregator.Aggregate(e.book, e.catalog, req, e.opts.BaseOverhead)
}

// NewProduct starts registering a product
func (e *Engine) NewProduct(name string) (*editor.Pending, error) {
	return e.editor.BeginNewProduct(name)
}

// ImportRecipes merges recipes into the book and persists once.
// As with registration, a save failure keeps the merged recipes in memory.
func (e *Engine) ImportRecipes(ctx context.Context, incoming *recipe.Book) (added, replaced []string, err error) {
	added, replaced = e.book.Merge(incoming)
	if e.store == nil || incoming.Len() == 0 {
		return added, replaced, nil
	}
	if err := e.store.SaveRecipes(ctx, e.book); err != nil {
		if !errors.IsType(err, errors.TypePersistence) {
			err = errors.Persistence("recipe store", err)
		}
		return added, replaced, err
	}
	return added, replaced, nil
}

// Products returns product names in row order
func (e *Engine) Products() []string {
	return e.book.Products()
}

// Recipe returns a product's recipe
func (e *Engine) Recipe(product string) (*recipe.Recipe, bool) {
	return e.book.Get(product)
}

// Catalog returns the price catalog
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.opts
}

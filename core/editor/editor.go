// Package editor registers new products in the recipe book.
//
// Registration is stepwise: BeginNewProduct opens a pending recipe,
// AddIngredientLine fills it, and Finish commits it to the book and
// persists the whole book. Cancel drops it without touching the book.
package editor

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bakery-cost/core/recipe"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
	"bakery-cost/internal/logging"
)

// ErrSessionClosed is returned by a Pending that was already finished or cancelled
var ErrSessionClosed = stderrors.New("product registration already finished")

// Persister writes the full recipe book
type Persister interface {
	SaveRecipes(ctx context.Context, book *recipe.Book) error
}

// Editor appends products to a recipe book
type Editor struct {
	book     *recipe.Book
	store    Persister
	massUnit string
	log      *zap.Logger
}

// New creates an editor over book; store may be nil for in-memory use
func New(book *recipe.Book, store Persister, massUnit string) *Editor {
	if massUnit == "" {
		massUnit = types.DefaultMassUnit
	}
	return &Editor{
		book:     book,
		store:    store,
		massUnit: massUnit,
		log:      logging.Named("editor"),
	}
}

// Pending is a product whose recipe is still being entered
type Pending struct {
	editor  *Editor
	product string
	recipe  *recipe.Recipe
	closed  bool
}

// Committed describes a product that was written to the book
type Committed struct {
	// Product is the registered name
	Product string

	// Index is the product's row position in the book
	Index int

	// Replaced is true when an existing recipe was overwritten
	Replaced bool

	// Recipe is the committed recipe
	Recipe *recipe.Recipe
}

// BeginNewProduct opens a registration. An empty name aborts with no
// state change.
func (e *Editor) BeginNewProduct(name string) (*Pending, error) {
	product := types.CanonicalName(name)
	if product == "" {
		return nil, errors.EmptyName("product")
	}
	if e.book.Has(product) {
		e.log.Info("registration will overwrite existing product", zap.String("product", product))
	}
	return &Pending{
		editor:  e,
		product: product,
		recipe:  recipe.New(),
	}, nil
}

// Product returns the name under registration
func (p *Pending) Product() string {
	return p.product
}

// Lines returns the number of ingredient lines entered so far
func (p *Pending) Lines() int {
	return p.recipe.Len()
}

// AddIngredientLine parses amountText and adds the line. A bad amount
// or empty ingredient returns an error and leaves the pending recipe
// unchanged so the caller can prompt again.
func (p *Pending) AddIngredientLine(ingredient, amountText string) error {
	if p.closed {
		return ErrSessionClosed
	}
	name := types.CanonicalName(ingredient)
	if name == "" {
		return errors.EmptyName("ingredient")
	}
	amount, err := ParseAmount(amountText)
	if err != nil {
		return errors.InvalidAmount(p.product, name, amountText, err)
	}
	p.recipe.Set(name, types.RecipeLine{AmountPerUnit: amount, Unit: p.editor.massUnit})
	return nil
}

// Finish commits the recipe and persists the book. When saving fails the
// product stays in the in-memory book; the Committed value is returned
// together with a PersistenceError.
func (p *Pending) Finish(ctx context.Context) (Committed, error) {
	if p.closed {
		return Committed{}, ErrSessionClosed
	}
	p.closed = true

	index, replaced := p.editor.book.Put(p.product, p.recipe)
	committed := Committed{
		Product:  p.product,
		Index:    index,
		Replaced: replaced,
		Recipe:   p.recipe,
	}
	p.editor.log.Info("product registered",
		zap.String("product", p.product),
		zap.Int("index", index),
		zap.Int("lines", p.recipe.Len()),
		zap.Bool("replaced", replaced))

	if p.editor.store == nil {
		return committed, nil
	}
	if err := p.editor.store.SaveRecipes(ctx, p.editor.book); err != nil {
		if !errors.IsType(err, errors.TypePersistence) {
			err = errors.Persistence("recipe store", err)
		}
		p.editor.log.Error("recipe book not saved; product kept for this session",
			zap.String("product", p.product), zap.Error(err))
		return committed, err
	}
	return committed, nil
}

// Cancel abandons the registration
func (p *Pending) Cancel() {
	if !p.closed {
		p.editor.log.Debug("registration cancelled", zap.String("product", p.product))
	}
	p.closed = true
}

// ParseAmount parses a recipe amount: a non-negative decimal
func ParseAmount(text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errNegativeAmount
	}
	return d, nil
}

var errNegativeAmount = stderrors.New("amount must not be negative")

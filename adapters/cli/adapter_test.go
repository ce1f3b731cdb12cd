package adapter

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-cost/adapters/storage"
	"bakery-cost/core/catalog"
	"bakery-cost/core/engine"
	"bakery-cost/core/output"
	"bakery-cost/core/recipe"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
)

func newAdapter(t *testing.T, input string) (*CLIAdapter, *storage.MemoryStore, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prices := catalog.New().MustRegister("flour", "10", "1000").MustRegister("sugar", "6", "1000")
	cookie := recipe.New()
	cookie.Set("flour", types.RecipeLine{AmountPerUnit: decimal.NewFromInt(50)})
	cookie.Set("sugar", types.RecipeLine{AmountPerUnit: decimal.NewFromInt(20)})
	book := recipe.NewBook()
	book.Put("cookie", cookie)
	book.Put("tart", recipe.New())

	store := storage.NewMemoryStore(prices, book)
	eng, warnings := engine.Load(context.Background(), store, store, engine.Options{
		BaseOverhead: decimal.RequireFromString("1.7"),
		Currency:     "$",
		MassUnit:     "g",
		Sentinels:    []string{"done", "完成"},
	})
	require.Empty(t, warnings)

	var out, errOut bytes.Buffer
	a := NewCLIAdapter(eng)
	a.SetInput(strings.NewReader(input))
	a.SetOutput(&out)
	a.SetErrorOutput(&errOut)
	a.SetNoColor(true)
	return a, store, &out, &errOut
}

func TestCalculateRendersTotal(t *testing.T) {
	a, _, out, errOut := newAdapter(t, "")
	req := types.NewAggregationRequest()
	req.Set("cookie", "2")
	req.Set("tart", "")

	report, err := a.Calculate(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, "2.94", report.TotalCost.StringFixed(2))
	assert.Contains(t, out.String(), "Total cost (incl. $1.70 packaging/utilities): $2.94")
	assert.Empty(t, errOut.String())
}

func TestCalculatePrintsWarnings(t *testing.T) {
	a, _, out, errOut := newAdapter(t, "")
	req := types.NewAggregationRequest()
	req.Set("cookie", "two")

	_, err := a.Calculate(context.Background(), req, output.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "enter a valid quantity for cookie")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out.String()), "{"))
}

func TestCalculateRejectsUnknownFormat(t *testing.T) {
	a, _, _, _ := newAdapter(t, "")
	_, err := a.Calculate(context.Background(), types.NewAggregationRequest(), "html")
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestPromptQuantities(t *testing.T) {
	a, _, out, _ := newAdapter(t, "3\n")
	req, err := a.PromptQuantities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"cookie", "tart"}, req.Products())
	raw, _ := req.Raw("cookie")
	assert.Equal(t, "3", raw)
	raw, _ = req.Raw("tart")
	assert.Equal(t, "", raw)
	assert.Contains(t, out.String(), "cookie [0]:")
}

func TestAddProductWithRetryAndSentinel(t *testing.T) {
	input := strings.Join([]string{
		"蛋挞",
		"黄油",
		"lots",
		"30",
		"egg",
		"1.5",
		"完成",
	}, "\n") + "\n"
	a, store, out, _ := newAdapter(t, input)

	c, err := a.AddProduct(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "蛋挞", c.Product)
	assert.Equal(t, 2, c.Index)
	assert.Equal(t, []string{"黄油", "egg"}, c.Recipe.Ingredients())

	assert.Contains(t, out.String(), `invalid amount "lots"`)
	assert.Contains(t, out.String(), "Added 蛋挞 (row 3, 2 ingredients)")

	saved, n := store.Saved()
	assert.Equal(t, 1, n)
	assert.Contains(t, string(saved), `"蛋挞": {`)
}

func TestAddProductImmediateDoneGivesEmptyRecipe(t *testing.T) {
	a, _, _, _ := newAdapter(t, "water\nDONE\n")
	c, err := a.AddProduct(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Recipe.Len())
}

func TestAddProductEmptyName(t *testing.T) {
	a, store, _, _ := newAdapter(t, "\n")
	_, err := a.AddProduct(context.Background())
	assert.True(t, errors.IsType(err, errors.TypeEmptyName))
	_, n := store.Saved()
	assert.Equal(t, 0, n)
}

func TestAddProductEndOfInputCancels(t *testing.T) {
	a, store, _, _ := newAdapter(t, "bun\nflour\n")
	_, err := a.AddProduct(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
	_, n := store.Saved()
	assert.Equal(t, 0, n)
}

func TestAddProductPersistenceFailureKeepsProduct(t *testing.T) {
	a, store, out, errOut := newAdapter(t, "bun\n\n")
	store.SaveErr = stderrors.New("disk full")

	c, err := a.AddProduct(context.Background())
	assert.True(t, errors.IsType(err, errors.TypePersistence))
	require.NotNil(t, c)
	assert.Contains(t, out.String(), "Added bun")
	assert.Contains(t, errOut.String(), "kept for this session only")
	assert.Contains(t, a.engine.Products(), "bun")
}

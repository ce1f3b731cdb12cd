package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-cost/core/recipe"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
)

const recipesDoc = `{
    "蛋挞": {
        "黄油": {
            "amount": 30,
            "unit": "克"
        },
        "egg": {
            "amount": 1.5
        }
    },
    "water": {},
    "R&D <cake>": {
        "flour": {
            "amount": 100,
            "unit": "g"
        }
    }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRecipesRoundTripKeepsOrderAndText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipes.json", recipesDoc)
	store := NewFileStore(filepath.Join(dir, "prices.json"), path)

	book, err := store.LoadRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"蛋挞", "water", "R&D <cake>"}, book.Products())

	tart, _ := book.Get("蛋挞")
	assert.Equal(t, []string{"黄油", "egg"}, tart.Ingredients())
	egg, _ := tart.Get("egg")
	assert.Equal(t, "1.5", egg.AmountPerUnit.String())
	assert.Equal(t, "", egg.Unit)

	require.NoError(t, store.SaveRecipes(context.Background(), book))
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, recipesDoc, string(saved))

	leftovers, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestSaveAppendsNewProductLast(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipes.json", recipesDoc)
	store := NewFileStore("", path)

	book, err := store.LoadRecipes(context.Background())
	require.NoError(t, err)
	scone := recipe.New()
	scone.Set("flour", types.RecipeLine{AmountPerUnit: decimal.NewFromInt(70), Unit: "g"})
	book.Put("scone", scone)
	require.NoError(t, store.SaveRecipes(context.Background(), book))

	reloaded, err := store.LoadRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"蛋挞", "water", "R&D <cake>", "scone"}, reloaded.Products())
}

func TestEmptyBookEncodesAsEmptyObject(t *testing.T) {
	data, err := EncodeRecipes(recipe.NewBook())
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestNullAmountSkipsLine(t *testing.T) {
	book, err := DecodeRecipes([]byte(`{"bun": {"flour": {"amount": null}, "yeast": {"amount": 2}, "salt": {"unit": "g"}}}`))
	require.NoError(t, err)
	bun, ok := book.Get("bun")
	require.True(t, ok)
	assert.Equal(t, []string{"yeast"}, bun.Ingredients())
}

func TestLoadRecipesFailures(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty":     "",
		"array":     `[1, 2]`,
		"truncated": `{"bun": {"flour": {"amount": 1}`,
		"trailing":  `{} {}`,
		"line type": `{"bun": {"flour": 5}}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, "r.json", content)
			book, err := NewFileStore("", path).LoadRecipes(context.Background())
			assert.Nil(t, book)
			assert.True(t, errors.IsType(err, errors.TypeRecipeBookLoad), "%v", err)
		})
	}

	_, err := NewFileStore("", filepath.Join(dir, "missing.json")).LoadRecipes(context.Background())
	assert.True(t, errors.IsType(err, errors.TypeRecipeBookLoad))
}

func TestLoadPricesKeepsValidEntries(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prices.json", `{
    "flour": {"price": 10, "amount": 1000},
    "salt": {"price": 1, "amount": 0},
    "sugar": {"price": "6", "amount": 1000},
    "butter": {"price": 40}
}`)

	cat, err := NewFileStore(path, "").LoadPrices(context.Background())
	require.NotNil(t, cat)
	assert.Equal(t, []string{"flour", "sugar"}, cat.Names())
	assert.True(t, errors.IsType(err, errors.TypeCatalogLoad))
	assert.Contains(t, err.Error(), "salt")
	assert.Contains(t, err.Error(), "butter")

	sugar, ok := cat.Lookup("sugar")
	require.True(t, ok)
	assert.Equal(t, "0.006", sugar.UnitPrice().String())
}

func TestLoadPricesMissingFile(t *testing.T) {
	cat, err := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), "").LoadPrices(context.Background())
	assert.Nil(t, cat)
	assert.True(t, errors.IsType(err, errors.TypeCatalogLoad))
}

func TestSaveFailureIsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	blocker := writeFile(t, dir, "not-a-dir", "x")
	store := NewFileStore("", filepath.Join(blocker, "recipes.json"))

	err := store.SaveRecipes(context.Background(), recipe.NewBook())
	assert.True(t, errors.IsType(err, errors.TypePersistence))
}

func TestMemoryStoreRecordsSaves(t *testing.T) {
	book := recipe.NewBook()
	book.Put("water", recipe.New())
	store := NewMemoryStore(nil, book)

	require.NoError(t, store.SaveRecipes(context.Background(), book))
	data, n := store.Saved()
	assert.Equal(t, 1, n)
	assert.Equal(t, "{\n    \"water\": {}\n}\n", string(data))
}

package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-cost/core/cost"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
)

const pricesHCL = `
ingredient "flour" {
  price  = 10
  amount = 1000
}

ingredient "sugar" {
  price  = "6"
  amount = 1e3
}

ingredient "黄油" {
  price  = 32.5
  amount = 500
}
`

const pricesJSON = `{
    "flour": {"price": 10, "amount": 1000},
    "sugar": {"price": 6, "amount": 1000},
    "黄油": {"price": 32.5, "amount": 500}
}`

func TestHCLAndJSONCatalogsAgree(t *testing.T) {
	dir := t.TempDir()
	hclCat, err := NewFileStore(writeFile(t, dir, "prices.hcl", pricesHCL), "").LoadPrices(context.Background())
	require.NoError(t, err)
	jsonCat, err := NewFileStore(writeFile(t, dir, "prices.json", pricesJSON), "").LoadPrices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, jsonCat.Names(), hclCat.Names())
	for _, name := range jsonCat.Names() {
		a, _ := jsonCat.Lookup(name)
		b, _ := hclCat.Lookup(name)
		assert.True(t, a.UnitPrice().Equal(b.UnitPrice()), name)
	}

	book, err := DecodeRecipes([]byte(`{"cookie": {"flour": {"amount": 50}, "sugar": {"amount": 20}, "黄油": {"amount": 10}}}`))
	require.NoError(t, err)
	req := types.NewAggregationRequest()
	req.SetQuantity("cookie", 3)
	overhead := decimal.RequireFromString("1.7")

	fromHCL := cost.Aggregate(book, hclCat, req, overhead)
	fromJSON := cost.Aggregate(book, jsonCat, req, overhead)
	assert.True(t, fromHCL.TotalCost.Equal(fromJSON.TotalCost))
}

func TestHCLCatalogSkipsBadBlocks(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prices.hcl", `
ingredient "flour" {
  price  = 10
  amount = 1000
}
ingredient "salt" {
  price = 1
}
ingredient "yeast" {
  price  = 2
  amount = 0
}
`)
	cat, err := LoadPricesHCL(path)
	require.NotNil(t, cat)
	assert.Equal(t, []string{"flour"}, cat.Names())
	assert.True(t, errors.IsType(err, errors.TypeCatalogLoad))
}

func TestHCLSyntaxErrorFailsLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "prices.hcl", `ingredient "flour" { price = `)
	cat, err := LoadPricesHCL(path)
	assert.Nil(t, cat)
	assert.True(t, errors.IsType(err, errors.TypeCatalogLoad))
}

func TestLoadRecipeFileHCL(t *testing.T) {
	path := writeFile(t, t.TempDir(), "import.hcl", `
product "cookie" {
  ingredient "flour" { amount = 50 }
  ingredient "sugar" {
    amount = 20
    unit   = "g"
  }
}

product "蛋挞" {
  ingredient "黄油" {
    amount = 30
    unit   = "克"
  }
}

product "water" {}
`)
	book, err := LoadRecipeFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cookie", "蛋挞", "water"}, book.Products())

	cookie, _ := book.Get("cookie")
	assert.Equal(t, []string{"flour", "sugar"}, cookie.Ingredients())
	flour, _ := cookie.Get("flour")
	assert.Equal(t, "", flour.Unit)
	sugar, _ := cookie.Get("sugar")
	assert.Equal(t, "g", sugar.Unit)

	water, _ := book.Get("water")
	assert.Equal(t, 0, water.Len())
}

func TestLoadRecipeFileHCLRejectsNegativeAmount(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.hcl", `
product "bun" {
  ingredient "flour" { amount = -1 }
}
`)
	_, err := LoadRecipeFile(path)
	assert.True(t, errors.IsType(err, errors.TypeRecipeBookLoad))
}

func TestLoadRecipeFileJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "import.json", `{"bun": {"flour": {"amount": 80}}}`)
	book, err := LoadRecipeFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"bun"}, book.Products())
}

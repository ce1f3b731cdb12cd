package storage

import (
	stderrors "errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"bakery-cost/core/catalog"
	"bakery-cost/core/recipe"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
)

var pricesSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "ingredient", LabelNames: []string{"name"}},
	},
}

var priceSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "price", Required: true},
		{Name: "amount", Required: true},
	},
}

var recipesSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "product", LabelNames: []string{"name"}},
	},
}

var recipeSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "ingredient", LabelNames: []string{"name"}},
	},
}

var lineSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "amount", Required: true},
		{Name: "unit"},
	},
}

// LoadPricesHCL reads a catalog written as ingredient blocks:
//
//	ingredient "flour" {
//	  price  = 10
//	  amount = 1000
//	}
func LoadPricesHCL(path string) (*catalog.Catalog, error) {
	body, err := parseHCLFile(path)
	if err != nil {
		return nil, errors.CatalogLoad(path, err)
	}
	cat, err := decodePricesHCL(body)
	if err != nil {
		return cat, errors.CatalogLoad(path, err)
	}
	return cat, nil
}

func decodePricesHCL(body hcl.Body) (*catalog.Catalog, error) {
	content, diags := body.Content(pricesSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	cat := catalog.New()
	var skipped []error
	for _, block := range content.Blocks {
		name := block.Labels[0]
		attrs, diags := block.Body.Content(priceSchema)
		if diags.HasErrors() {
			skipped = append(skipped, fmt.Errorf("%s: %w", name, diags))
			continue
		}
		price, err := numberAttr(attrs.Attributes["price"])
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", name, err))
			continue
		}
		amount, err := numberAttr(attrs.Attributes["amount"])
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if err := cat.Register(name, types.IngredientPrice{BulkPrice: price, BulkAmount: amount}); err != nil {
			skipped = append(skipped, err)
		}
	}
	return cat, stderrors.Join(skipped...)
}

// LoadRecipesHCL reads recipes written as nested blocks:
//
//	product "cookie" {
//	  ingredient "flour" { amount = 50 }
//	}
func LoadRecipesHCL(path string) (*recipe.Book, error) {
	body, err := parseHCLFile(path)
	if err != nil {
		return nil, errors.RecipeBookLoad(path, err)
	}
	book, err := decodeRecipesHCL(body)
	if err != nil {
		return nil, errors.RecipeBookLoad(path, err)
	}
	return book, nil
}

func decodeRecipesHCL(body hcl.Body) (*recipe.Book, error) {
	content, diags := body.Content(recipesSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	book := recipe.NewBook()
	for _, block := range content.Blocks {
		product := block.Labels[0]
		lines, diags := block.Body.Content(recipeSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("product %q: %w", product, diags)
		}

		r := recipe.New()
		for _, lb := range lines.Blocks {
			ingredient := lb.Labels[0]
			attrs, diags := lb.Body.Content(lineSchema)
			if diags.HasErrors() {
				return nil, fmt.Errorf("product %q, ingredient %q: %w", product, ingredient, diags)
			}
			amount, err := numberAttr(attrs.Attributes["amount"])
			if err != nil {
				return nil, fmt.Errorf("product %q, ingredient %q: %w", product, ingredient, err)
			}
			if amount.IsNegative() {
				return nil, fmt.Errorf("product %q, ingredient %q: amount must not be negative", product, ingredient)
			}
			unit := ""
			if attr, ok := attrs.Attributes["unit"]; ok {
				if unit, err = stringAttr(attr); err != nil {
					return nil, fmt.Errorf("product %q, ingredient %q: %w", product, ingredient, err)
				}
			}
			r.Set(types.CanonicalName(ingredient), types.RecipeLine{AmountPerUnit: amount, Unit: unit})
		}
		book.Put(types.CanonicalName(product), r)
	}
	return book, nil
}

func parseHCLFile(path string) (hcl.Body, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	return file.Body, nil
}

// numberAttr evaluates a constant attribute as a decimal. Quoted numbers
// are accepted.
func numberAttr(attr *hcl.Attribute) (decimal.Decimal, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, diags
	}
	if val.IsNull() || !val.IsKnown() {
		return decimal.Zero, fmt.Errorf("%s: value is required", attr.Name)
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", attr.Name, err)
	}
	return decimal.NewFromString(num.AsBigFloat().Text('f', -1))
}

func stringAttr(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: %w", attr.Name, err)
	}
	return s.AsString(), nil
}

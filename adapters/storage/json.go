// Package storage reads and writes the price catalog, the recipe book and
// saved reports. Catalog and book live in flat JSON files whose key order
// is significant: it is the product row order and the ingredient order of
// every recipe, so both are decoded and encoded in file order.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bakery-cost/core/catalog"
	"bakery-cost/core/engine"
	"bakery-cost/core/recipe"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
	"bakery-cost/internal/logging"
)

// FileStore keeps the catalog and the book in files
type FileStore struct {
	// PricesPath is the catalog file, JSON or HCL by extension
	PricesPath string

	// RecipesPath is the recipe book file, always JSON
	RecipesPath string

	mu sync.Mutex
}

var (
	_ engine.PriceSource = (*FileStore)(nil)
	_ engine.RecipeStore = (*FileStore)(nil)
)

// NewFileStore creates a file store
func NewFileStore(pricesPath, recipesPath string) *FileStore {
	return &FileStore{PricesPath: pricesPath, RecipesPath: recipesPath}
}

// LoadPrices reads the catalog. Invalid entries are skipped; the rest is
// returned together with a CatalogLoadError naming what was skipped.
func (s *FileStore) LoadPrices(ctx context.Context) (*catalog.Catalog, error) {
	if isHCL(s.PricesPath) {
		return LoadPricesHCL(s.PricesPath)
	}
	data, err := os.ReadFile(s.PricesPath)
	if err != nil {
		return nil, errors.CatalogLoad(s.PricesPath, err)
	}
	cat, err := DecodePrices(data)
	if err != nil {
		return cat, errors.CatalogLoad(s.PricesPath, err)
	}
	return cat, nil
}

// LoadRecipes reads the recipe book
func (s *FileStore) LoadRecipes(ctx context.Context) (*recipe.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.RecipesPath)
	if err != nil {
		return nil, errors.RecipeBookLoad(s.RecipesPath, err)
	}
	book, err := DecodeRecipes(data)
	if err != nil {
		return nil, errors.RecipeBookLoad(s.RecipesPath, err)
	}
	return book, nil
}

// SaveRecipes replaces the recipe file with the whole book
func (s *FileStore) SaveRecipes(ctx context.Context, book *recipe.Book) error {
	if err := ctx.Err(); err != nil {
		return errors.Persistence(s.RecipesPath, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := EncodeRecipes(book)
	if err != nil {
		return errors.Persistence(s.RecipesPath, err)
	}
	if err := writeFileAtomic(s.RecipesPath, data, 0o644); err != nil {
		return errors.Persistence(s.RecipesPath, err)
	}
	logging.Debug("recipe book saved",
		zap.String("path", s.RecipesPath),
		zap.Int("products", book.Len()))
	return nil
}

// LoadRecipeFile reads a recipe file for import, JSON or HCL by extension
func LoadRecipeFile(path string) (*recipe.Book, error) {
	if isHCL(path) {
		return LoadRecipesHCL(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.RecipeBookLoad(path, err)
	}
	book, err := DecodeRecipes(data)
	if err != nil {
		return nil, errors.RecipeBookLoad(path, err)
	}
	return book, nil
}

func isHCL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".hcl")
}

type priceEntry struct {
	Price  json.Number `json:"price"`
	Amount json.Number `json:"amount"`
}

type lineEntry struct {
	Amount *json.Number `json:"amount"`
	Unit   string       `json:"unit,omitempty"`
}

// DecodePrices parses a JSON catalog. A non-nil catalog is returned even
// when some entries were rejected.
func DecodePrices(data []byte) (*catalog.Catalog, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	cat := catalog.New()
	var skipped []error
	for _, f := range fields {
		var e priceEntry
		if err := json.Unmarshal(f.value, &e); err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", f.key, err))
			continue
		}
		price, err := parseNumber("price", e.Price)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", f.key, err))
			continue
		}
		amount, err := parseNumber("amount", e.Amount)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", f.key, err))
			continue
		}
		if err := cat.Register(f.key, types.IngredientPrice{BulkPrice: price, BulkAmount: amount}); err != nil {
			skipped = append(skipped, err)
		}
	}
	return cat, stderrors.Join(skipped...)
}

// DecodeRecipes parses a JSON recipe book. Lines without a usable amount
// are dropped with a warning; a malformed structure fails the whole file.
func DecodeRecipes(data []byte) (*recipe.Book, error) {
	products, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	book := recipe.NewBook()
	for _, p := range products {
		lines, err := decodeObject(p.value)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.key, err)
		}
		r := recipe.New()
		for _, l := range lines {
			var e lineEntry
			if err := json.Unmarshal(l.value, &e); err != nil {
				return nil, fmt.Errorf("product %q, ingredient %q: %w", p.key, l.key, err)
			}
			if e.Amount == nil {
				logging.Warn("recipe line has no amount; skipped",
					zap.String("product", p.key), zap.String("ingredient", l.key))
				continue
			}
			amount, err := parseNumber("amount", *e.Amount)
			if err != nil || amount.IsNegative() {
				logging.Warn("recipe line has an invalid amount; skipped",
					zap.String("product", p.key),
					zap.String("ingredient", l.key),
					zap.String("amount", e.Amount.String()))
				continue
			}
			r.Set(types.CanonicalName(l.key), types.RecipeLine{AmountPerUnit: amount, Unit: e.Unit})
		}
		book.Put(types.CanonicalName(p.key), r)
	}
	return book, nil
}

// EncodeRecipes renders the book as indented JSON in book order.
// Non-ASCII and HTML characters are written verbatim.
func EncodeRecipes(book *recipe.Book) ([]byte, error) {
	var compact bytes.Buffer
	var encErr error

	compact.WriteByte('{')
	first := true
	book.Range(func(product string, r *recipe.Recipe) bool {
		if !first {
			compact.WriteByte(',')
		}
		first = false
		if encErr = writeJSON(&compact, product); encErr != nil {
			return false
		}
		compact.WriteString(":{")
		firstLine := true
		r.Range(func(ingredient string, line types.RecipeLine) bool {
			if !firstLine {
				compact.WriteByte(',')
			}
			firstLine = false
			if encErr = writeJSON(&compact, ingredient); encErr != nil {
				return false
			}
			compact.WriteByte(':')
			amount := json.Number(line.AmountPerUnit.String())
			encErr = writeJSON(&compact, lineEntry{Amount: &amount, Unit: line.Unit})
			return encErr == nil
		})
		compact.WriteByte('}')
		return encErr == nil
	})
	compact.WriteByte('}')
	if encErr != nil {
		return nil, encErr
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "    "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(b.Bytes(), "\n"))
	return nil
}

type field struct {
	key   string
	value json.RawMessage
}

// decodeObject splits a JSON object into its members in file order
func decodeObject(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("empty document")
	}
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, found %v", tok)
	}

	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, found %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		fields = append(fields, field{key: key, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the top-level object")
	}
	return fields, nil
}

func parseNumber(name string, n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, fmt.Errorf("missing %s", name)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// writeFileAtomic writes through a temp file in the target directory so a
// failed write never truncates the existing file
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

package storage

import (
	"context"
	"sync"

	"bakery-cost/core/catalog"
	"bakery-cost/core/engine"
	"bakery-cost/core/recipe"
)

// MemoryStore is an in-memory catalog and recipe store (for testing)
type MemoryStore struct {
	mu      sync.Mutex
	prices  *catalog.Catalog
	book    *recipe.Book
	saved   []byte
	saves   int
	SaveErr error
}

var (
	_ engine.PriceSource = (*MemoryStore)(nil)
	_ engine.RecipeStore = (*MemoryStore)(nil)
)

// NewMemoryStore creates a memory store over the given data
func NewMemoryStore(prices *catalog.Catalog, book *recipe.Book) *MemoryStore {
	if prices == nil {
		prices = catalog.New()
	}
	if book == nil {
		book = recipe.NewBook()
	}
	return &MemoryStore{prices: prices, book: book}
}

func (s *MemoryStore) LoadPrices(ctx context.Context) (*catalog.Catalog, error) {
	return s.prices, nil
}

func (s *MemoryStore) LoadRecipes(ctx context.Context) (*recipe.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book, nil
}

// SaveRecipes encodes the book the way FileStore would and keeps the bytes
func (s *MemoryStore) SaveRecipes(ctx context.Context, book *recipe.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := EncodeRecipes(book)
	if err != nil {
		return err
	}
	s.saved = data
	return nil
}

// Saved returns the last saved document and the number of save calls
func (s *MemoryStore) Saved() ([]byte, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, s.saves
}

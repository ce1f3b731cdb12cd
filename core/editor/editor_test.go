package editor

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-cost/core/recipe"
	"bakery-cost/internal/errors"
)

type recordingStore struct {
	saves int
	last  []string
	err   error
}

func (s *recordingStore) SaveRecipes(_ context.Context, book *recipe.Book) error {
	s.saves++
	s.last = book.Products()
	return s.err
}

func TestRegisterProductCommitsAndPersists(t *testing.T) {
	book := recipe.NewBook()
	book.Put("cookie", recipe.New())
	store := &recordingStore{}
	ed := New(book, store, "克")

	p, err := ed.BeginNewProduct("  蛋挞 ")
	require.NoError(t, err)
	assert.Equal(t, "蛋挞", p.Product())

	require.NoError(t, p.AddIngredientLine("黄油", "30"))
	require.NoError(t, p.AddIngredientLine("egg", "1.5"))

	c, err := p.Finish(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "蛋挞", c.Product)
	assert.Equal(t, 1, c.Index)
	assert.False(t, c.Replaced)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, []string{"cookie", "蛋挞"}, store.last)

	r, ok := book.Get("蛋挞")
	require.True(t, ok)
	assert.Equal(t, []string{"黄油", "egg"}, r.Ingredients())
	line, _ := r.Get("黄油")
	assert.Equal(t, "克", line.Unit)
	assert.Equal(t, "30", line.AmountPerUnit.String())
}

func TestEmptyNameAbortsWithoutStateChange(t *testing.T) {
	book := recipe.NewBook()
	store := &recordingStore{}
	ed := New(book, store, "")

	p, err := ed.BeginNewProduct("   ")
	assert.Nil(t, p)
	assert.True(t, errors.IsType(err, errors.TypeEmptyName))
	assert.Equal(t, 0, book.Len())
	assert.Equal(t, 0, store.saves)
}

func TestInvalidAmountIsRecoverable(t *testing.T) {
	book := recipe.NewBook()
	ed := New(book, nil, "g")

	p, err := ed.BeginNewProduct("scone")
	require.NoError(t, err)

	err = p.AddIngredientLine("flour", "a lot")
	assert.True(t, errors.IsType(err, errors.TypeInvalidAmount))
	err = p.AddIngredientLine("flour", "-5")
	assert.True(t, errors.IsType(err, errors.TypeInvalidAmount))
	assert.Equal(t, 0, p.Lines())

	require.NoError(t, p.AddIngredientLine("flour", "60"))
	assert.Equal(t, 1, p.Lines())

	err = p.AddIngredientLine(" ", "3")
	assert.True(t, errors.IsType(err, errors.TypeEmptyName))
}

func TestEmptyRecipeCanBeCommitted(t *testing.T) {
	book := recipe.NewBook()
	ed := New(book, &recordingStore{}, "g")

	p, err := ed.BeginNewProduct("water")
	require.NoError(t, err)
	c, err := p.Finish(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, c.Recipe.Len())
	r, ok := book.Get("water")
	require.True(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestExistingProductIsOverwritten(t *testing.T) {
	book := recipe.NewBook()
	book.Put("bread", recipe.New())
	book.Put("cookie", recipe.New())
	ed := New(book, nil, "g")

	p, _ := ed.BeginNewProduct("bread")
	require.NoError(t, p.AddIngredientLine("rye", "200"))
	c, err := p.Finish(context.Background())
	require.NoError(t, err)

	assert.True(t, c.Replaced)
	assert.Equal(t, 0, c.Index)
	assert.Equal(t, 2, book.Len())
}

func TestPersistenceFailureKeepsProduct(t *testing.T) {
	book := recipe.NewBook()
	store := &recordingStore{err: stderrors.New("read-only file system")}
	ed := New(book, store, "g")

	p, _ := ed.BeginNewProduct("bun")
	c, err := p.Finish(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypePersistence))
	assert.Equal(t, "bun", c.Product)
	assert.True(t, book.Has("bun"))
}

func TestCancelLeavesBookUntouched(t *testing.T) {
	book := recipe.NewBook()
	store := &recordingStore{}
	ed := New(book, store, "g")

	p, _ := ed.BeginNewProduct("pie")
	require.NoError(t, p.AddIngredientLine("apple", "100"))
	p.Cancel()

	assert.False(t, book.Has("pie"))
	assert.Equal(t, 0, store.saves)
	assert.ErrorIs(t, p.AddIngredientLine("sugar", "1"), ErrSessionClosed)
	_, err := p.Finish(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestFinishTwiceFails(t *testing.T) {
	ed := New(recipe.NewBook(), nil, "g")
	p, _ := ed.BeginNewProduct("roll")

	_, err := p.Finish(context.Background())
	require.NoError(t, err)
	_, err = p.Finish(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestClassifyIngredientInput(t *testing.T) {
	sentinels := []string{"done", "完成"}
	s := func(v string) *string { return &v }

	assert.Equal(t, StepCancelled, ClassifyIngredientInput(nil, sentinels))
	assert.Equal(t, StepDone, ClassifyIngredientInput(s(""), sentinels))
	assert.Equal(t, StepDone, ClassifyIngredientInput(s("  DONE "), sentinels))
	assert.Equal(t, StepDone, ClassifyIngredientInput(s("完成"), sentinels))
	assert.Equal(t, StepContinue, ClassifyIngredientInput(s("flour"), sentinels))
	assert.Equal(t, StepContinue, ClassifyIngredientInput(s("done!"), sentinels))
	assert.Equal(t, "cancelled", StepCancelled.String())
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	_, err = ParseAmount("")
	assert.Error(t, err)
	_, err = ParseAmount("-0.1")
	assert.Error(t, err)
}

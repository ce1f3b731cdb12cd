// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotFound indicates a resource not found error
	TypeNotFound Type = "NOT_FOUND"

	// TypeCatalogLoad indicates the price catalog could not be loaded
	TypeCatalogLoad Type = "CATALOG_LOAD_ERROR"

	// TypeRecipeBookLoad indicates the recipe book could not be loaded
	TypeRecipeBookLoad Type = "RECIPE_BOOK_LOAD_ERROR"

	// TypeMissingPrice indicates an ingredient has no catalog entry
	TypeMissingPrice Type = "MISSING_PRICE"

	// TypeInvalidQuantity indicates a product quantity is not a non-negative integer
	TypeInvalidQuantity Type = "INVALID_QUANTITY"

	// TypeUnknownProduct indicates a requested product has no recipe
	TypeUnknownProduct Type = "UNKNOWN_PRODUCT"

	// TypeEmptyName indicates a product or ingredient name was empty
	TypeEmptyName Type = "EMPTY_NAME"

	// TypeInvalidAmount indicates a recipe amount is not a non-negative decimal
	TypeInvalidAmount Type = "INVALID_AMOUNT"

	// TypePersistence indicates the recipe book could not be written
	TypePersistence Type = "PERSISTENCE_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same type.
// This lets errors.Is match on category alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ContextString returns a string context value, or "" if absent
func (e *Error) ContextString(key string) string {
	if v, ok := e.Context[key].(string); ok {
		return v
	}
	return ""
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error, or any error it wraps, is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// TypeOf returns the type of err, or TypeInternal for foreign errors
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

// CatalogLoad creates a price catalog load error
func CatalogLoad(path string, cause error) *Error {
	return Wrapf(TypeCatalogLoad, cause, "cannot load price catalog %s", path).
		WithContext("path", path)
}

// RecipeBookLoad creates a recipe book load error
func RecipeBookLoad(path string, cause error) *Error {
	return Wrapf(TypeRecipeBookLoad, cause, "cannot load recipe book %s", path).
		WithContext("path", path)
}

// MissingPrice creates a missing price error for an ingredient used by a product
func MissingPrice(ingredient, product string) *Error {
	return Newf(TypeMissingPrice, "no price found for %s", ingredient).
		WithContext("ingredient", ingredient).
		WithContext("product", product)
}

// InvalidQuantity creates an invalid quantity error for a product
func InvalidQuantity(product, input string, cause error) *Error {
	return Wrapf(TypeInvalidQuantity, cause, "enter a valid quantity for %s (got %q)", product, input).
		WithContext("product", product).
		WithContext("input", input)
}

// UnknownProduct creates an unknown product error
func UnknownProduct(product string) *Error {
	return Newf(TypeUnknownProduct, "no recipe for product %s", product).
		WithContext("product", product)
}

// EmptyName creates an empty name error; what is "product" or "ingredient"
func EmptyName(what string) *Error {
	return Newf(TypeEmptyName, "%s name is empty", what).
		WithContext("field", what)
}

// InvalidAmount creates an invalid amount error for a recipe line
func InvalidAmount(product, ingredient, input string, cause error) *Error {
	return Wrapf(TypeInvalidAmount, cause, "invalid amount %q for %s", input, ingredient).
		WithContext("product", product).
		WithContext("ingredient", ingredient).
		WithContext("input", input)
}

// Persistence creates a persistence error
func Persistence(path string, cause error) *Error {
	return Wrapf(TypePersistence, cause, "cannot save recipe book to %s", path).
		WithContext("path", path)
}

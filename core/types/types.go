// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions
// and the trivial derivations that belong to them.
package types

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMassUnit labels recipe amounts when neither the line nor the
// configuration names a unit.
const DefaultMassUnit = "g"

// CanonicalName returns the lookup form of a product or ingredient name.
// Names are compared after NFC normalization so that composed and
// decomposed spellings of the same text refer to one entry.
func CanonicalName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

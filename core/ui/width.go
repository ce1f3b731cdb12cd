package ui

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// DisplayWidth returns the number of terminal cells s occupies.
// Wide and fullwidth runes take two cells, combining marks none.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r), r == '\u200b':
		case isWide(r):
			n += 2
		default:
			n++
		}
	}
	return n
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// PadRight pads s with spaces to n cells
func PadRight(s string, n int) string {
	if pad := n - DisplayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft right-aligns s in n cells
func PadLeft(s string, n int) string {
	if pad := n - DisplayWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

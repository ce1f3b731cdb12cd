// Package output provides output formatting interfaces.
// This package produces human and machine-readable cost reports.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable terminal table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"
)

// ParseFormat returns the format named by s
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := defaultRegistry.Get(f); !ok {
		return "", fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// Register adds a formatter, replacing any with the same format
func (r *Registry) Register(f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	return f, ok
}

// Formats lists registered formats, sorted
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register(&TableFormatter{})
	r.Register(JSONFormatter{})
	r.Register(MarkdownFormatter{})
	r.Register(YAMLFormatter{})
	return r
}()

// Get returns a built-in formatter
func Get(format Format) (Formatter, bool) {
	return defaultRegistry.Get(format)
}

// Formats lists the built-in formats
func Formats() []string {
	return defaultRegistry.Formats()
}

// ForOptions returns the formatter for format, honoring noColor for tables
func ForOptions(format Format, noColor bool) (Formatter, error) {
	if format == FormatTable {
		return &TableFormatter{NoColor: noColor}, nil
	}
	f, ok := Get(format)
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return f, nil
}

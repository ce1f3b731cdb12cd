package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"bakery-cost/core/ui"
)

// TableFormatter renders the report as terminal tables
type TableFormatter struct {
	NoColor bool
}

func (f *TableFormatter) Format() Format { return FormatTable }

func (f *TableFormatter) Render(w io.Writer, r *Report) error {
	uw := ui.NewWriter(w, f.NoColor)

	uw.Header("Materials and cost")
	if len(r.Materials) == 0 {
		uw.Println("No materials required.")
	} else {
		tbl := uw.NewTable("Ingredient", "Amount", "Cost").AlignRight(1, 2)
		for _, m := range r.Materials {
			cost := r.Money(m.Cost)
			if !m.Priced {
				cost = "no price"
			}
			tbl.AddRow(m.Ingredient, m.AmountText(), cost)
		}
		tbl.Render()
	}

	if len(r.Products) > 0 {
		uw.Println("")
		tbl := uw.NewTable("Product", "Qty", "Cost").AlignRight(1, 2)
		for _, p := range r.Products {
			tbl.AddRow(p.Product, fmt.Sprintf("%d", p.Quantity), r.Money(p.Cost))
		}
		tbl.Render()
	}

	uw.Println("")
	uw.SubHeader(r.TotalLine())
	return nil
}

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

func (JSONFormatter) Format() Format { return FormatJSON }

func (JSONFormatter) Render(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// YAMLFormatter renders the report as YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Format() Format { return FormatYAML }

func (YAMLFormatter) Render(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// MarkdownFormatter renders the report as a markdown document
type MarkdownFormatter struct{}

func (MarkdownFormatter) Format() Format { return FormatMarkdown }

func (MarkdownFormatter) Render(w io.Writer, r *Report) error {
	var b strings.Builder

	b.WriteString("## Materials and cost\n\n")
	if len(r.Materials) == 0 {
		b.WriteString("_No materials required._\n")
	} else {
		b.WriteString("| Ingredient | Amount | Cost |\n|---|---:|---:|\n")
		for _, m := range r.Materials {
			cost := r.Money(m.Cost)
			if !m.Priced {
				cost = "_no price_"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", mdEscape(m.Ingredient), mdEscape(m.AmountText()), cost)
		}
	}

	if len(r.Products) > 0 {
		b.WriteString("\n| Product | Qty | Cost |\n|---|---:|---:|\n")
		for _, p := range r.Products {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", mdEscape(p.Product), p.Quantity, r.Money(p.Cost))
		}
	}

	fmt.Fprintf(&b, "\n**%s**\n", r.TotalLine())

	if len(r.Warnings) > 0 {
		b.WriteString("\n### Warnings\n\n")
		for _, warn := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", warn)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

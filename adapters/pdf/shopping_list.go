// Package pdf renders a cost report as a printable shopping list.
//
// Layout (A4):
//
//	title + date
//	───────────
//	Ingredient | Amount | Cost
//	───────────
//	Product | Qty | Cost
//	───────────
//	overhead / total
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"bakery-cost/core/output"
)

var (
	colorPrimary = &props.Color{Red: 120, Green: 72, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ShoppingList renders the report and returns the PDF bytes
func ShoppingList(report *output.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Shopping list", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(headerRow("Ingredient", "Amount", "Cost"))
	if len(report.Materials) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("No materials required.", props.Text{Size: 9, Color: colorGray, Top: 1}),
		)))
	}
	for _, mat := range report.Materials {
		cost := report.Money(mat.Cost)
		if !mat.Priced {
			cost = "no price"
		}
		m.AddRows(detailRow(mat.Ingredient, mat.AmountText(), cost))
	}

	if len(report.Products) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(headerRow("Product", "Qty", "Cost"))
		for _, p := range report.Products {
			m.AddRows(detailRow(p.Product, strconv.FormatInt(p.Quantity, 10), report.Money(p.Cost)))
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate shopping list: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(report *output.Report) core.Row {
	subtitle := report.CreatedAt.Format("2006-01-02 15:04")
	if report.ID != "" {
		subtitle += "   ·   " + report.ID
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("Materials and cost", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
	)
}

func headerRow(first, second, third string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Top: 2, Color: colorPrimary,
		}))
	}
	return row.New(8).Add(
		h(first, 6, align.Left),
		h(second, 3, align.Right),
		h(third, 3, align.Right),
	)
}

func detailRow(name, amount, cost string) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(name, props.Text{Size: 9, Top: 1})),
		col.New(3).Add(text.New(amount, props.Text{Size: 9, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(cost, props.Text{Size: 9, Align: align.Right, Top: 1})),
	)
}

func totalsRow(report *output.Report) core.Row {
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Packaging/utilities:", props.Text{Size: 9, Align: align.Right, Top: 2}),
			text.New("Total:", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8, Color: colorPrimary}),
		),
		col.New(3).Add(
			text.New(report.Money(report.BaseOverhead), props.Text{Size: 9, Align: align.Right, Top: 2}),
			text.New(report.Money(report.TotalCost), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8, Color: colorPrimary}),
		),
	)
}

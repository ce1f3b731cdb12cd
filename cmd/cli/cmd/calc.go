package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bakery-cost/adapters/pdf"
	"bakery-cost/adapters/storage"
	"bakery-cost/core/output"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
	"bakery-cost/internal/logging"
)

var (
	calcQty         []string
	calcInteractive bool
	calcFormat      string
	calcSave        bool
	calcPDF         string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Total the ingredients and cost for an order",
	Long: `Total the ingredients and cost for the given product quantities.

Quantities come from --qty product=n flags; products without a flag count
as 0. With --interactive, or when no --qty is given, every product in the
recipe book is asked for in turn.

The total always includes the configured packaging/utilities overhead.`,
	Example: `  bakery-cost calc --qty cookie=2
  bakery-cost calc --qty cookie=24 --format json --save
  bakery-cost calc --interactive --pdf order.pdf`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringArrayVarP(&calcQty, "qty", "q", nil, "product quantity as product=n (repeatable)")
	calcCmd.Flags().BoolVarP(&calcInteractive, "interactive", "i", false, "prompt for every product quantity")
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", "", "output format: table, json, markdown, yaml")
	calcCmd.Flags().BoolVar(&calcSave, "save", false, "save the report to history")
	calcCmd.Flags().StringVar(&calcPDF, "pdf", "", "also write a PDF shopping list to this file")

	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}

	var format output.Format
	if calcFormat != "" {
		if format, err = output.ParseFormat(calcFormat); err != nil {
			return errors.Wrap(errors.TypeInput, "invalid --format", err)
		}
	}

	var req *types.AggregationRequest
	if calcInteractive || len(calcQty) == 0 {
		if req, err = s.adapter.PromptQuantities(ctx); err != nil {
			return err
		}
	} else {
		if req, err = requestFromFlags(s.engine.Products(), calcQty); err != nil {
			return err
		}
	}

	report, err := s.adapter.Calculate(ctx, req, format)
	if err != nil {
		return err
	}

	if calcSave {
		history, err := storage.NewHistory(storage.BackendFile, s.cfg.Data.HistoryDir)
		if err != nil {
			return err
		}
		defer history.Close()
		if err := history.Save(ctx, report); err != nil {
			return err
		}
		errScreen(cmd).Success("Saved report %s", report.ID)
	}

	if calcPDF != "" {
		data, err := pdf.ShoppingList(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(calcPDF, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", calcPDF, err)
		}
		errScreen(cmd).Success("Wrote %s", calcPDF)
		logging.Debug("pdf written", zap.String("path", calcPDF), zap.Int("bytes", len(data)))
	}
	return nil
}

// requestFromFlags lays the flags over the product list: book products
// come first in row order, then flagged names the book does not know.
func requestFromFlags(products []string, flags []string) (*types.AggregationRequest, error) {
	req := types.NewAggregationRequest()
	for _, p := range products {
		req.Set(p, "")
	}
	for _, f := range flags {
		i := strings.LastIndex(f, "=")
		if i <= 0 {
			return nil, errors.Input(fmt.Sprintf("--qty %q: want product=n", f))
		}
		req.Set(types.CanonicalName(f[:i]), f[i+1:])
	}
	return req, nil
}

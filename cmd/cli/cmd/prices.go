package cmd

import (
	"github.com/spf13/cobra"

	"bakery-cost/core/determinism"
	"bakery-cost/core/types"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Inspect the price catalog",
}

var pricesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingredient prices in catalog order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		cat := s.engine.Catalog()
		w := screen(cmd)
		if cat.Len() == 0 {
			w.Info("The price catalog is empty.")
			return nil
		}

		opts := s.engine.Options()
		tbl := w.NewTable("Ingredient", "Bulk price", "Bulk amount", "Per "+opts.MassUnit).AlignRight(1, 2, 3)
		cat.Range(func(ingredient string, p types.IngredientPrice) bool {
			tbl.AddRow(
				ingredient,
				determinism.NewMoneyFromDecimal(p.BulkPrice, opts.Currency).String(),
				p.BulkAmount.String()+" "+opts.MassUnit,
				opts.Currency+p.UnitPrice().Round(4).String(),
			)
			return true
		})
		tbl.Render()
		return nil
	},
}

func init() {
	pricesCmd.AddCommand(pricesListCmd)
	rootCmd.AddCommand(pricesCmd)
}

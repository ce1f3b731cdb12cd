package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	adapter "bakery-cost/adapters/cli"
	"bakery-cost/adapters/storage"
	"bakery-cost/core/types"
	"bakery-cost/internal/errors"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Inspect and extend the recipe book",
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products in row order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		w := screen(cmd)
		if len(s.engine.Products()) == 0 {
			w.Info("The recipe book is empty. Add a product with: bakery-cost recipe add")
			return nil
		}
		tbl := w.NewTable("#", "Product", "Ingredients").AlignRight(0, 2)
		for i, p := range s.engine.Products() {
			r, _ := s.engine.Recipe(p)
			tbl.AddRow(fmt.Sprintf("%d", i+1), p, fmt.Sprintf("%d", r.Len()))
		}
		tbl.Render()
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <product>",
	Short: "Show one product's recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		product := types.CanonicalName(args[0])
		r, ok := s.engine.Recipe(product)
		if !ok {
			return errors.UnknownProduct(product)
		}

		w := screen(cmd)
		w.Header(product)
		if r.Len() == 0 {
			w.Info("No ingredients.")
			return nil
		}
		massUnit := s.engine.Options().MassUnit
		tbl := w.NewTable("Ingredient", "Per unit").AlignRight(1)
		r.Range(func(ingredient string, line types.RecipeLine) bool {
			tbl.AddRow(ingredient, line.AmountPerUnit.String()+" "+line.UnitOr(massUnit))
			return true
		})
		tbl.Render()
		return nil
	},
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new product interactively",
	Long: `Register a new product. You are asked for its name, then for
ingredient and amount pairs. Finish with a blank ingredient or one of the
configured sentinels (default "done" or "完成"). The whole recipe book is
saved when you finish.

Adding a product that already exists replaces its recipe.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		_, err = s.adapter.AddProduct(cmd.Context())
		if err == adapter.ErrCancelled {
			errScreen(cmd).Info("Cancelled; the recipe book is unchanged.")
			return nil
		}
		return err
	},
}

var recipeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge recipes from a JSON or HCL file",
	Long: `Merge every product in the file into the recipe book and save it.
New products are appended; products that already exist are replaced in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		incoming, err := storage.LoadRecipeFile(args[0])
		if err != nil {
			return err
		}
		added, replaced, err := s.engine.ImportRecipes(cmd.Context(), incoming)

		w := screen(cmd)
		for _, p := range added {
			w.Success("Added %s", p)
		}
		for _, p := range replaced {
			w.Success("Replaced %s", p)
		}
		if err != nil {
			errScreen(cmd).Warning("%v; imported recipes were not saved", err)
			return err
		}
		return nil
	},
}

func init() {
	recipeCmd.AddCommand(recipeListCmd, recipeShowCmd, recipeAddCmd, recipeImportCmd)
	rootCmd.AddCommand(recipeCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bakery-cost/adapters/storage"
	"bakery-cost/core/output"
	"bakery-cost/internal/config"
	"bakery-cost/internal/errors"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse reports saved with calc --save",
}

func openHistory() (storage.HistoryStore, error) {
	return storage.NewHistory(storage.BackendFile, config.Get().Data.HistoryDir)
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		reports, err := h.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		w := screen(cmd)
		if len(reports) == 0 {
			w.Info("No saved reports.")
			return nil
		}
		tbl := w.NewTable("ID", "Created", "Products", "Total").AlignRight(2, 3)
		for _, r := range reports {
			tbl.AddRow(r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"),
				fmt.Sprintf("%d", len(r.Products)), r.Money(r.TotalCost))
		}
		tbl.Render()
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		report, err := h.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		format := output.Format(config.Get().Output.Format)
		if historyFormat != "" {
			if format, err = output.ParseFormat(historyFormat); err != nil {
				return errors.Wrap(errors.TypeInput, "invalid --format", err)
			}
		}
		f, err := output.ForOptions(format, config.Get().Output.NoColor)
		if err != nil {
			return err
		}
		return f.Render(cmd.OutOrStdout(), report)
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		if err := h.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		screen(cmd).Success("Deleted %s", args[0])
		return nil
	},
}

var historyDiffCmd = &cobra.Command{
	Use:   "diff <old-id> <new-id>",
	Short: "Compare the totals of two saved reports",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		cmp, err := h.Compare(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		w := screen(cmd)
		w.Println("%s  %s%s", cmp.OldID, cmp.Currency, cmp.OldCost.StringFixed(2))
		w.Println("%s  %s%s", cmp.NewID, cmp.Currency, cmp.NewCost.StringFixed(2))
		sign := ""
		if cmp.Delta.IsPositive() {
			sign = "+"
		}
		w.Println("change: %s%s%s (%s%s%%)", sign, cmp.Currency, cmp.Delta.StringFixed(2), sign, cmp.DeltaPercent.StringFixed(2))
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of reports (0 for all)")
	historyShowCmd.Flags().StringVarP(&historyFormat, "format", "f", "", "output format: table, json, markdown, yaml")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyDiffCmd)
	rootCmd.AddCommand(historyCmd)
}

// Package cmd provides the CLI commands for bakery-cost.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	adapter "bakery-cost/adapters/cli"
	"bakery-cost/adapters/storage"
	"bakery-cost/core/engine"
	"bakery-cost/core/output"
	"bakery-cost/core/ui"
	"bakery-cost/internal/config"
	"bakery-cost/internal/logging"
)

var (
	cfgFile     string
	verbose     bool
	noColor     bool
	pricesPath  string
	recipesPath string
)

// Version is set at build time
var Version = "0.1.0"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bakery-cost",
	Short: "Work out ingredient amounts and cost for a bakery order",
	Long: `bakery-cost totals the ingredients a batch of products needs and what
they cost, from a price catalog and a recipe book kept in JSON files.

Examples:
  bakery-cost calc --qty cookie=24 --qty 蛋挞=12
  bakery-cost calc --interactive --format markdown
  bakery-cost recipe add
  bakery-cost history list --limit 5`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./bakery-cost.yaml or $HOME/.bakery-cost/bakery-cost.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&pricesPath, "prices", "", "price catalog file (.json or .hcl)")
	rootCmd.PersistentFlags().StringVar(&recipesPath, "recipes", "", "recipe book file")

	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if pricesPath != "" {
		cfg.Data.PricesPath = pricesPath
	}
	if recipesPath != "" {
		cfg.Data.RecipesPath = recipesPath
	}
	if noColor {
		cfg.Output.NoColor = true
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error initializing logging: %v\n", err)
	}
	return nil
}

// session is what every data command works with
type session struct {
	cfg     *config.Config
	store   *storage.FileStore
	engine  *engine.Engine
	adapter *adapter.CLIAdapter
}

// openSession loads the catalog and the book. Load failures are printed
// once as warnings and the command continues with empty data.
func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg := config.Get()
	opts, err := engine.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	store := storage.NewFileStore(cfg.Data.PricesPath, cfg.Data.RecipesPath)
	eng, warnings := engine.Load(ctx, store, store, opts)

	errw := ui.NewWriter(cmd.ErrOrStderr(), cfg.Output.NoColor)
	for _, w := range warnings {
		errw.Warning("%v", w)
	}
	logging.Debug("session opened",
		zap.String("prices", cfg.Data.PricesPath),
		zap.String("recipes", cfg.Data.RecipesPath))

	a := adapter.NewCLIAdapter(eng)
	a.SetInput(cmd.InOrStdin())
	a.SetOutput(cmd.OutOrStdout())
	a.SetErrorOutput(cmd.ErrOrStderr())
	a.SetNoColor(cfg.Output.NoColor)
	a.SetFormat(output.Format(cfg.Output.Format))

	return &session{cfg: cfg, store: store, engine: eng, adapter: a}, nil
}

func screen(cmd *cobra.Command) *ui.Writer {
	return ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor)
}

func errScreen(cmd *cobra.Command) *ui.Writer {
	return ui.NewWriter(cmd.ErrOrStderr(), config.Get().Output.NoColor)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bakery-cost version %s\n", Version)
	},
}

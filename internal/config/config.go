// Package config provides configuration management.
//
// Values are layered: built-in defaults, then an optional config file
// (yaml or json), then a .env file, then BAKECOST_* environment variables.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"bakery-cost/internal/errors"
	"bakery-cost/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. BAKECOST_COST_BASE_OVERHEAD.
const EnvPrefix = "BAKECOST"

// Config is the main application configuration
type Config struct {
	// Data locates the price catalog, recipe book and report history
	Data DataConfig `mapstructure:"data" json:"data" yaml:"data"`

	// Cost contains aggregation settings
	Cost CostConfig `mapstructure:"cost" json:"cost" yaml:"cost"`

	// Editor contains recipe editor settings
	Editor EditorConfig `mapstructure:"editor" json:"editor" yaml:"editor"`

	// Output contains output configuration
	Output OutputConfig `mapstructure:"output" json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `mapstructure:"logging" json:"logging" yaml:"logging"`
}

// DataConfig contains data file locations
type DataConfig struct {
	PricesPath  string `mapstructure:"prices_path" json:"prices_path" yaml:"prices_path"`
	RecipesPath string `mapstructure:"recipes_path" json:"recipes_path" yaml:"recipes_path"`
	HistoryDir  string `mapstructure:"history_dir" json:"history_dir" yaml:"history_dir"`
}

// CostConfig contains aggregation settings
type CostConfig struct {
	// BaseOverhead is added once per calculation (packaging, utilities)
	BaseOverhead string `mapstructure:"base_overhead" json:"base_overhead" yaml:"base_overhead"`

	// Currency is the display symbol for costs
	Currency string `mapstructure:"currency" json:"currency" yaml:"currency"`

	// MassUnit labels recipe amounts that carry no unit of their own
	MassUnit string `mapstructure:"mass_unit" json:"mass_unit" yaml:"mass_unit"`
}

// Overhead parses BaseOverhead
func (c CostConfig) Overhead() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.BaseOverhead))
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.TypeConfig, err, "cost.base_overhead %q is not a number", c.BaseOverhead)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.Newf(errors.TypeConfig, "cost.base_overhead must not be negative, got %s", d)
	}
	return d, nil
}

// EditorConfig contains recipe editor settings
type EditorConfig struct {
	// Sentinels end ingredient entry (matched case-insensitively)
	Sentinels []string `mapstructure:"sentinels" json:"sentinels" yaml:"sentinels"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default output format (table, json, markdown, yaml)
	Format string `mapstructure:"format" json:"format" yaml:"format"`

	// NoColor disables terminal styling
	NoColor bool `mapstructure:"no_color" json:"no_color" yaml:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Data: DataConfig{
			PricesPath:  "prices.json",
			RecipesPath: "recipes.json",
			HistoryDir:  defaultHistoryDir(),
		},
		Cost: CostConfig{
			BaseOverhead: "1.7",
			Currency:     "$",
			MassUnit:     "g",
		},
		Editor: EditorConfig{
			Sentinels: []string{"done", "完成"},
		},
		Output: OutputConfig{
			Format:  "table",
			NoColor: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

func defaultHistoryDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".bakery-cost", "history")
	}
	return filepath.Join(homeDir, ".bakery-cost", "history")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data.prices_path", d.Data.PricesPath)
	v.SetDefault("data.recipes_path", d.Data.RecipesPath)
	v.SetDefault("data.history_dir", d.Data.HistoryDir)
	v.SetDefault("cost.base_overhead", d.Cost.BaseOverhead)
	v.SetDefault("cost.currency", d.Cost.Currency)
	v.SetDefault("cost.mass_unit", d.Cost.MassUnit)
	v.SetDefault("editor.sentinels", d.Editor.Sentinels)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.no_color", d.Output.NoColor)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
}

// Load reads configuration. An explicit path must exist; without one the
// working directory and ~/.bakery-cost are searched for bakery-cost.{yaml,json}
// and a missing file is not an error.
func Load(path string) (*Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bakery-cost")
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".bakery-cost"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.Wrap(errors.TypeConfig, "failed to read config", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to decode config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		logging.Sugar.Warnf("ignoring %s: %v", path, err)
	}
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	if _, err := c.Cost.Overhead(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Cost.MassUnit) == "" {
		return errors.New(errors.TypeConfig, "cost.mass_unit must not be empty")
	}
	switch c.Output.Format {
	case "table", "json", "markdown", "yaml":
	default:
		return errors.Newf(errors.TypeConfig, "output.format %q is not one of table, json, markdown, yaml", c.Output.Format)
	}
	if c.Data.RecipesPath == "" || c.Data.PricesPath == "" {
		return errors.New(errors.TypeConfig, "data.prices_path and data.recipes_path are required")
	}
	return nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

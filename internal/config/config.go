// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"payoff/core/locale"
	"payoff/core/types"
	"payoff/internal/errors"
	"payoff/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. PAYOFF_CALCULATION_MODE
const EnvPrefix = "PAYOFF"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version" mapstructure:"version"`

	// Calculation selects the formula and the classification scheme
	Calculation CalculationConfig `json:"calculation" yaml:"calculation" mapstructure:"calculation"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// CalculationConfig contains normalization settings
type CalculationConfig struct {
	// Mode is per-use, per-hour or per-user-hour
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`

	// Banding is absolute or ratio
	Banding string `json:"banding" yaml:"banding" mapstructure:"banding"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default output format
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Locale is ja or en
	Locale string `json:"locale" yaml:"locale" mapstructure:"locale"`

	// Currency is the ISO code shown next to amounts
	Currency string `json:"currency" yaml:"currency" mapstructure:"currency"`

	// ShowBreakdown prints the breakdown figures under the result
	ShowBreakdown bool `json:"show_breakdown" yaml:"show_breakdown" mapstructure:"show_breakdown"`

	// NoColor disables ANSI colors
	NoColor bool `json:"no_color" yaml:"no_color" mapstructure:"no_color"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// MetricsEnabled exposes /metrics
	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled" mapstructure:"metrics_enabled"`

	// ReadTimeoutSeconds bounds request reading
	ReadTimeoutSeconds int `json:"read_timeout_seconds" yaml:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`

	// MaxBatchItems caps the size of a batch request
	MaxBatchItems int `json:"max_batch_items" yaml:"max_batch_items" mapstructure:"max_batch_items"`
}

// Default returns a default configuration
func Default() *Config {
	opts := types.DefaultOptions()
	return &Config{
		Version: "1.0",
		Calculation: CalculationConfig{
			Mode:    opts.Mode.String(),
			Banding: opts.Banding.String(),
		},
		Output: OutputConfig{
			Format:        "cli",
			Locale:        string(locale.Default),
			Currency:      types.CurrencyJPY.String(),
			ShowBreakdown: true,
			NoColor:       false,
		},
		Server: ServerConfig{
			Addr:                   ":8080",
			MetricsEnabled:         true,
			ReadTimeoutSeconds:     10,
			ShutdownTimeoutSeconds: 5,
			MaxBatchItems:          100,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.payoff/config.yaml
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".payoff", "config.yaml")
}

// Load reads configuration from path (YAML or JSON), a .env file in the
// working directory and PAYOFF_* environment variables, in increasing
// precedence. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Config("failed to read .env", err)
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return nil, errors.Config("failed to read "+path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Config("failed to decode configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("calculation.mode", d.Calculation.Mode)
	v.SetDefault("calculation.banding", d.Calculation.Banding)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.locale", d.Output.Locale)
	v.SetDefault("output.currency", d.Output.Currency)
	v.SetDefault("output.show_breakdown", d.Output.ShowBreakdown)
	v.SetDefault("output.no_color", d.Output.NoColor)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.metrics_enabled", d.Server.MetricsEnabled)
	v.SetDefault("server.read_timeout_seconds", d.Server.ReadTimeoutSeconds)
	v.SetDefault("server.shutdown_timeout_seconds", d.Server.ShutdownTimeoutSeconds)
	v.SetDefault("server.max_batch_items", d.Server.MaxBatchItems)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
}

// Validate checks every enumerated setting
func (c *Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return errors.Config("invalid calculation settings", err)
	}
	if _, err := locale.Parse(c.Output.Locale); err != nil {
		return errors.Config("invalid output.locale", err)
	}
	if _, err := types.ParseCurrency(c.Output.Currency); err != nil {
		return errors.Config("invalid output.currency", err)
	}
	if c.Server.MaxBatchItems <= 0 {
		return errors.Config("server.max_batch_items must be positive", nil)
	}
	return nil
}

// Options returns the parsed calculation options
func (c *Config) Options() (types.Options, error) {
	mode, err := types.ParseMode(c.Calculation.Mode)
	if err != nil {
		return types.Options{}, err
	}
	banding, err := types.ParseBanding(c.Calculation.Banding)
	if err != nil {
		return types.Options{}, err
	}
	return types.Options{Mode: mode, Banding: banding}, nil
}

// Locale returns the parsed output locale, or the default
func (c *Config) Locale() locale.Locale {
	l, err := locale.Parse(c.Output.Locale)
	if err != nil {
		return locale.Default
	}
	return l
}

// Currency returns the parsed output currency, or JPY
func (c *Config) Currency() types.Currency {
	cur, err := types.ParseCurrency(c.Output.Currency)
	if err != nil {
		return types.CurrencyJPY
	}
	return cur
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
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

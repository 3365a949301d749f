// Package config handles spent configuration and tunable limits.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all spent configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Limits  Limits        `toml:"limits"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultFile string `toml:"default_file"`
	DataDir     string `toml:"data_dir,omitempty"`
}

// Limits holds the tunable integrity limits enforced by the validator
// and the ledger store. They travel as an explicit value so tests can
// exercise different limits in isolation.
type Limits struct {
	MaxExpenseAmount     int64   `toml:"max_expense_amount"`
	MaxDescriptionLength int     `toml:"max_description_length"`
	MaxExpenseRecords    int     `toml:"max_expense_records"`
	PieChartThreshold    float64 `toml:"pie_chart_threshold"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultFile: "expenses.csv",
		},
		Limits: DefaultLimits(),
	}
}

// DefaultLimits returns the default integrity limits.
func DefaultLimits() Limits {
	return Limits{
		MaxExpenseAmount:     1_000_000,
		MaxDescriptionLength: 100,
		MaxExpenseRecords:    10_000,
		PieChartThreshold:    3.0,
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spent")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spent")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CachePath returns the path of the parse-cache database.
func CachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "spent", "cache.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "spent", "cache.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Zero-valued limits in the file fall back to their defaults so a
// partial [limits] section never disables a bound.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Limits = cfg.Limits.withDefaults()
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxExpenseAmount <= 0 {
		l.MaxExpenseAmount = def.MaxExpenseAmount
	}
	if l.MaxDescriptionLength <= 0 {
		l.MaxDescriptionLength = def.MaxDescriptionLength
	}
	if l.MaxExpenseRecords <= 0 {
		l.MaxExpenseRecords = def.MaxExpenseRecords
	}
	if l.PieChartThreshold <= 0 {
		l.PieChartThreshold = def.PieChartThreshold
	}
	return l
}

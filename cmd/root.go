// Package cmd implements the spent CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spent/internal/config"
	"github.com/theirongolddev/spent/internal/ledger"
	"github.com/theirongolddev/spent/internal/store"
)

var (
	flagFile    string
	flagDataDir string
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "spent",
	Short: "Personal expense ledger CLI",
	Long:  "Track expenses in a flat CSV ledger: summaries, category breakdowns, filters, and charts.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Ledger file name (default from config, expenses.csv)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding ledger files (default current directory)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite parse cache, reparse the file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress and warning output")
}

// loadLedger is the shared loading path used by all commands. It opens
// the configured ledger file and fills it from the parse cache when the
// cache entry is still fresh, falling back to a full CSV parse.
func loadLedger() (*ledger.Ledger, config.Config, error) {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
	}

	dir := flagDataDir
	if dir == "" {
		dir = cfg.General.DataDir
	}
	name := flagFile
	if name == "" {
		name = cfg.General.DefaultFile
	}

	led, err := ledger.Open(dir, name, cfg.Limits)
	if err != nil {
		return nil, cfg, err
	}

	mtimeNs, size, err := led.Stat()
	if err != nil {
		return nil, cfg, err
	}

	// Try cached load unless --no-cache; any cache trouble falls back to
	// a full parse, never fatal.
	if !flagNoCache && size > 0 {
		cache, err := store.Open(config.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer cache.Close()

			// A cached entry written under a higher record cap can hold
			// more records than the current limit allows; reparse so the
			// cap applies.
			records, skipped, ok, err := cache.Lookup(led.Path(), mtimeNs, size)
			if err == nil && ok && len(records) <= cfg.Limits.MaxExpenseRecords {
				led.SetRecords(records, nil)
				reportSkipped(skipped)
				return led, cfg, nil
			}
			if err != nil && !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache error, falling back to full parse\n")
			}

			if err := led.Load(); err != nil {
				return nil, cfg, err
			}
			if err := cache.Store(led.Path(), mtimeNs, size, led.Records(), len(led.Skipped())); err != nil && !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache not updated: %v\n", err)
			}
			reportSkipped(len(led.Skipped()))
			return led, cfg, nil
		}
	}

	// Uncached path
	if err := led.Load(); err != nil {
		return nil, cfg, err
	}
	reportSkipped(len(led.Skipped()))
	return led, cfg, nil
}

// invalidateCache drops the cache entry for a path after a save so the
// next load reparses the fresh file.
func invalidateCache(path string) {
	if flagNoCache {
		return
	}
	cache, err := store.Open(config.CachePath())
	if err != nil {
		return
	}
	defer cache.Close()
	_ = cache.Invalidate(path)
}

func reportSkipped(n int) {
	if n > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Warning: %d malformed row(s) skipped during load\n", n)
	}
}

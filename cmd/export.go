package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spent/internal/ledger"
	"github.com/theirongolddev/spent/internal/pipeline"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the category analysis to a CSV report",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "expense_summary.csv", "Report file name")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	led, _, err := loadLedger()
	if err != nil {
		return err
	}
	return doExport(led, flagExportOut)
}

// doExport writes the full category breakdown next to the ledger file.
// The report name goes through the same path validation as the ledger.
func doExport(led *ledger.Ledger, out string) error {
	stats, err := pipeline.ByCategory(led.Records())
	if errors.Is(err, pipeline.ErrEmptyDataset) {
		fmt.Println("\n  No data to export.")
		return nil
	}
	if err != nil {
		return err
	}

	path, err := ledger.SafePath(filepath.Dir(led.Path()), out)
	if err != nil {
		return err
	}
	if err := ledger.ExportReport(path, stats); err != nil {
		return err
	}
	fmt.Printf("  Report saved to %s\n", path)
	return nil
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spent/internal/cli"
	"github.com/theirongolddev/spent/internal/ledger"
	"github.com/theirongolddev/spent/internal/model"
	"github.com/theirongolddev/spent/internal/pipeline"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"analysis"},
	Short:   "Per-category totals, counts, and percentage shares",
	RunE:    runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	led, _, err := loadLedger()
	if err != nil {
		return err
	}
	return doCategories(led)
}

func doCategories(led *ledger.Ledger) error {
	stats, err := pipeline.ByCategory(led.Records())
	if errors.Is(err, pipeline.ErrEmptyDataset) {
		fmt.Println("\n  No expenses to analyze.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CATEGORY ANALYSIS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(breakdownTable(stats)))
	return nil
}

// breakdownTable builds the full per-category table; every group gets
// its own row, no "Other" merging here.
func breakdownTable(stats []model.CategoryStat) cli.Table {
	rows := make([][]string, 0, len(stats))
	for _, cs := range stats {
		rows = append(rows, []string{
			cs.Label,
			cli.FormatAmount(cs.Total),
			cli.FormatNumber(int64(cs.Count)),
			cli.FormatPercent(cs.Percent),
		})
	}
	return cli.Table{
		Headers: []string{"Category", "Total", "Count", "Share"},
		Rows:    rows,
	}
}

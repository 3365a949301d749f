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

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Spending summary: total, most and least expensive items",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	led, _, err := loadLedger()
	if err != nil {
		return err
	}
	return doSummary(led)
}

func doSummary(led *ledger.Ledger) error {
	summary, err := pipeline.Summarize(led.Records())
	if errors.Is(err, pipeline.ErrEmptyDataset) {
		fmt.Println("\n  No expenses found.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING SUMMARY"))
	fmt.Println()

	rows := [][]string{
		{"Total Expenses", cli.FormatAmount(summary.Total)},
		{"Records", cli.FormatNumber(int64(summary.Count))},
		{"---"},
	}
	rows = append(rows, itemRows("Most Expensive", summary.MaxItem)...)
	rows = append(rows, []string{"---"})
	rows = append(rows, itemRows("Least Expensive", summary.MinItem)...)

	table := cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
	fmt.Print(cli.RenderTable(table))
	return nil
}

func itemRows(label string, rec model.ExpenseRecord) [][]string {
	rows := [][]string{
		{label, cli.FormatAmount(rec.Amount)},
		{"  Date", rec.DateString()},
		{"  Category", rec.Category},
	}
	if rec.Description != "" {
		rows = append(rows, []string{"  Description", rec.Description})
	}
	return rows
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spent/internal/cli"
	"github.com/theirongolddev/spent/internal/ledger"
	"github.com/theirongolddev/spent/internal/pipeline"
	"github.com/theirongolddev/spent/internal/tui"
	"github.com/theirongolddev/spent/internal/tui/components"
)

var flagChartPlain bool

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Category distribution chart",
	Long:  "Render the spending distribution by category. Slices below the configured threshold merge into an \"Other\" bucket.",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().BoolVar(&flagChartPlain, "plain", false, "Print the chart inline instead of the full-screen viewer")
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	led, cfg, err := loadLedger()
	if err != nil {
		return err
	}
	return doChart(led, cfg.Limits.PieChartThreshold, flagChartPlain)
}

func doChart(led *ledger.Ledger, thresholdPct float64, plain bool) error {
	stats, err := pipeline.ByCategory(led.Records())
	if errors.Is(err, pipeline.ErrEmptyDataset) {
		fmt.Println("\n  No data for chart.")
		return nil
	}
	if err != nil {
		return err
	}

	slices := pipeline.ChartSlices(stats, thresholdPct)

	if plain {
		const width = 60
		fmt.Println()
		fmt.Println(cli.RenderTitle("SPENDING BY CATEGORY"))
		fmt.Println()
		fmt.Println("  " + components.DistributionBand(slices, width))
		fmt.Println()
		fmt.Print(components.SliceLegend(slices, width))
		return nil
	}

	return tui.RunChart("SPENDING BY CATEGORY", slices)
}

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spent/internal/cli"
	"github.com/theirongolddev/spent/internal/ledger"
	"github.com/theirongolddev/spent/internal/model"
	"github.com/theirongolddev/spent/internal/pipeline"
)

var (
	flagFilterFrom  string
	flagFilterTo    string
	flagFilterMonth string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter expenses by date range or calendar month",
	Long: `Filter expenses by an inclusive date range (--from/--to, DD-MM-YYYY)
or by calendar month (--month, e.g. 2025-06 or 06-2025).`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&flagFilterFrom, "from", "", "Range start date (inclusive)")
	filterCmd.Flags().StringVar(&flagFilterTo, "to", "", "Range end date (inclusive)")
	filterCmd.Flags().StringVar(&flagFilterMonth, "month", "", "Calendar month (YYYY-MM or MM-YYYY)")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(_ *cobra.Command, _ []string) error {
	if flagFilterMonth == "" && flagFilterFrom == "" && flagFilterTo == "" {
		return errors.New("nothing to filter by: pass --month or --from/--to")
	}
	if flagFilterMonth != "" && (flagFilterFrom != "" || flagFilterTo != "") {
		return errors.New("--month cannot be combined with --from/--to")
	}

	led, _, err := loadLedger()
	if err != nil {
		return err
	}
	return doFilter(led, flagFilterFrom, flagFilterTo, flagFilterMonth)
}

// doFilter runs the filter over a loaded ledger and prints the matching
// records. Shared by the filter command and the interactive menu.
func doFilter(led *ledger.Ledger, fromStr, toStr, monthStr string) error {
	var matched []model.ExpenseRecord

	switch {
	case monthStr != "":
		year, month, err := model.ParseMonth(monthStr)
		if err != nil {
			return fmt.Errorf("invalid month %q: use YYYY-MM or MM-YYYY", monthStr)
		}
		matched = pipeline.FilterByMonth(led.Records(), year, month)

	default:
		// One-sided ranges are allowed; the missing bound is open.
		start := time.Time{}
		end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
		var err error
		if fromStr != "" {
			if start, err = model.ParseDate(fromStr); err != nil {
				return fmt.Errorf("invalid start date %q: %w", fromStr, err)
			}
		}
		if toStr != "" {
			if end, err = model.ParseDate(toStr); err != nil {
				return fmt.Errorf("invalid end date %q: %w", toStr, err)
			}
		}
		matched, err = pipeline.FilterByRange(led.Records(), start, end)
		if err != nil {
			return err
		}
	}

	if len(matched) == 0 {
		fmt.Println("\n  No matching records found.")
		return nil
	}

	var total decimal.Decimal
	rows := make([][]string, 0, len(matched))
	for _, rec := range matched {
		total = total.Add(rec.Amount)
		rows = append(rows, []string{
			rec.DateString(),
			rec.Category,
			cli.FormatAmount(rec.Amount),
			rec.Description,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FILTERED EXPENSES"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Category", "Amount", "Description"},
		Rows:    rows,
	}))
	fmt.Printf("\n  %d %s, total %s\n",
		len(matched), cli.Pluralize(len(matched), "record", "records"), cli.FormatAmount(total))
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spent/internal/cli"
	"github.com/theirongolddev/spent/internal/config"
	"github.com/theirongolddev/spent/internal/ledger"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Classic interactive menu over one ledger session",
	Long: `Run the numbered menu loop from the original tracker: the ledger is
loaded once and held in memory, and unsaved changes prompt on exit.`,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

const (
	menuSummary = iota + 1
	menuCategories
	menuChart
	menuFilter
	menuAdd
	menuExport
	menuExit
)

func runMenu(_ *cobra.Command, _ []string) error {
	if flagFile == "" {
		pickLedgerFile()
	}

	led, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	fmt.Printf("\n  Welcome to spent! (data file: %s)\n", led.Path())
	dirty := false

	for {
		choice := menuSummary
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().
				Title("EXPENSE TRACKER MENU").
				Options(
					huh.NewOption("1. Spending Summary", menuSummary),
					huh.NewOption("2. Category Analysis", menuCategories),
					huh.NewOption("3. Spending Chart", menuChart),
					huh.NewOption("4. Filter Expenses", menuFilter),
					huh.NewOption("5. Add Expense", menuAdd),
					huh.NewOption("6. Export Report", menuExport),
					huh.NewOption("7. Exit", menuExit),
				).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				choice = menuExit
			} else {
				return err
			}
		}

		var err error
		switch choice {
		case menuSummary:
			err = doSummary(led)
		case menuCategories:
			err = doCategories(led)
		case menuChart:
			err = doChart(led, cfg.Limits.PieChartThreshold, false)
		case menuFilter:
			err = menuFilterPrompt(led)
		case menuAdd:
			var d bool
			d, err = doAdd(led, cfg.Limits)
			dirty = dirty || d
		case menuExport:
			err = doExport(led, flagExportOut)
		case menuExit:
			return menuExitPrompt(led, dirty)
		}
		if err != nil {
			// Keep the session alive; the reason is already specific.
			fmt.Println(cli.Warn("  " + err.Error()))
		}
	}
}

// pickLedgerFile offers the CSV files already present in the data
// directory as startup choices. Best effort: any trouble just keeps the
// configured default.
func pickLedgerFile() {
	cfg, err := config.Load()
	if err != nil {
		return
	}

	dir := flagDataDir
	if dir == "" {
		dir = cfg.General.DataDir
	}
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return
	}

	choice := cfg.General.DefaultFile
	options := make([]huh.Option[string], 0, len(names)+1)
	if !slices.Contains(names, choice) {
		options = append(options, huh.NewOption(choice+" (new)", choice))
	}
	for _, n := range names {
		options = append(options, huh.NewOption(n, n))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Choose a ledger file").
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err == nil {
		flagFile = choice
	}
}

// menuFilterPrompt collects filter criteria interactively, then reuses
// the shared filter path.
func menuFilterPrompt(led *ledger.Ledger) error {
	const (
		byRange = 1
		byMonth = 2
	)
	mode := byRange
	var fromStr, toStr, monthStr string

	pick := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Filter by").
			Options(
				huh.NewOption("1. Date Range", byRange),
				huh.NewOption("2. Month", byMonth),
			).
			Value(&mode),
	))
	if err := pick.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	var form *huh.Form
	if mode == byRange {
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Start date").Placeholder("DD-MM-YYYY").Value(&fromStr),
			huh.NewInput().Title("End date").Placeholder("DD-MM-YYYY").Value(&toStr),
		))
	} else {
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Month").Placeholder("YYYY-MM").Value(&monthStr),
		))
	}
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	return doFilter(led, fromStr, toStr, monthStr)
}

// menuExitPrompt offers to save unsaved changes before leaving.
func menuExitPrompt(led *ledger.Ledger, dirty bool) error {
	if dirty {
		save := true
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Save changes before exiting?").
				Value(&save),
		))
		if err := confirm.Run(); err == nil && save {
			if err := led.Save(); err != nil {
				return err
			}
			invalidateCache(led.Path())
			fmt.Println("  Changes saved.")
		}
	}
	fmt.Println("  Thank you for using spent!")
	return nil
}

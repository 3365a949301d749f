package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spent/internal/cli"
	"github.com/theirongolddev/spent/internal/config"
	"github.com/theirongolddev/spent/internal/ledger"
	"github.com/theirongolddev/spent/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense interactively",
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	led, cfg, err := loadLedger()
	if err != nil {
		return err
	}
	dirty, err := doAdd(led, cfg.Limits)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Println(cli.Warn("  Expense was not saved and will be lost. Run add again and confirm the save."))
	}
	return nil
}

// doAdd walks the interactive add-expense flow: prompt, validate,
// append, optionally persist. Returns whether the ledger now holds
// unsaved changes.
func doAdd(led *ledger.Ledger, limits config.Limits) (dirty bool, err error) {
	var in ledger.RecordInput

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Date").
			Placeholder("DD-MM-YYYY").
			Value(&in.Date).
			Validate(func(s string) error {
				if _, err := model.ParseDate(s); err != nil {
					return errors.New("use a date like 12-06-2025")
				}
				return nil
			}),
		huh.NewInput().
			Title("Category").
			Placeholder("Food").
			Value(&in.Category).
			Validate(func(s string) error {
				if strings.TrimSpace(ledger.Sanitize(s)) == "" {
					return errors.New("category must not be empty")
				}
				return nil
			}),
		huh.NewInput().
			Title("Amount").
			Placeholder("200.00").
			Value(&in.Amount).
			Validate(func(s string) error {
				amount, err := decimal.NewFromString(strings.TrimSpace(s))
				if err != nil {
					return errors.New("enter a number, like 200.00")
				}
				maxAmount := decimal.NewFromInt(limits.MaxExpenseAmount)
				if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(maxAmount) {
					return fmt.Errorf("amount must be positive and at most %s", maxAmount)
				}
				if !amount.Equal(amount.Round(2)) {
					return errors.New("at most two decimal places")
				}
				return nil
			}),
		huh.NewInput().
			Title("Description").
			Value(&in.Description).
			Validate(func(s string) error {
				if utf8.RuneCountInString(strings.TrimSpace(ledger.Sanitize(s))) > limits.MaxDescriptionLength {
					return fmt.Errorf("at most %d characters", limits.MaxDescriptionLength)
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Cancelled.")
			return false, nil
		}
		return false, err
	}

	rec, err := ledger.Validate(in, limits)
	if err != nil {
		return false, err
	}

	if rec.Date.After(time.Now()) {
		proceed := false
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s is in the future. Add anyway?", rec.DateString())).
				Value(&proceed),
		))
		if err := confirm.Run(); err != nil || !proceed {
			fmt.Println("  Cancelled.")
			return false, nil
		}
	}

	if err := led.Append(rec); err != nil {
		return false, err
	}

	fmt.Printf("  Added: %s, %s, %s\n", rec.DateString(), rec.Category, cli.FormatAmount(rec.Amount))

	save := true
	confirm := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Save to file now?").
			Value(&save),
	))
	if err := confirm.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return true, nil
		}
		return true, err
	}
	if !save {
		return true, nil
	}

	if err := led.Save(); err != nil {
		// The in-memory set is intact; the user can retry the save
		// without re-entering anything.
		return true, err
	}
	invalidateCache(led.Path())
	fmt.Printf("  Saved %d %s to %s\n", led.Count(), cli.Pluralize(led.Count(), "record", "records"), led.Path())
	return false, nil
}

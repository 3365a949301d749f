package ledger

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spent/internal/config"
	"github.com/theirongolddev/spent/internal/model"
)

// RecordInput is a candidate record as entered by the user or read from
// a file row, before any validation.
type RecordInput struct {
	Date        string
	Category    string
	Amount      string
	Description string
}

// Validate checks a candidate record against the configured limits and
// returns the validated, sanitized record. Pure: no side effects.
func Validate(in RecordInput, limits config.Limits) (model.ExpenseRecord, error) {
	var rec model.ExpenseRecord

	date, err := model.ParseDate(in.Date)
	if err != nil {
		return rec, fmt.Errorf("%w: %q (expected DD-MM-YYYY)", ErrInvalidDate, in.Date)
	}

	category := strings.TrimSpace(Sanitize(in.Category))
	if category == "" {
		return rec, fmt.Errorf("%w: category must not be empty", ErrInvalidCategory)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return rec, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, in.Amount)
	}
	maxAmount := decimal.NewFromInt(limits.MaxExpenseAmount)
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(maxAmount) {
		return rec, fmt.Errorf("%w: amount must be positive and at most %s", ErrInvalidAmount, maxAmount)
	}
	// Amounts are stored with two decimal places; finer precision would
	// not survive a save/load cycle.
	if !amount.Equal(amount.Round(2)) {
		return rec, fmt.Errorf("%w: at most two decimal places", ErrInvalidAmount)
	}

	description := strings.TrimSpace(Sanitize(in.Description))
	if utf8.RuneCountInString(description) > limits.MaxDescriptionLength {
		return rec, fmt.Errorf("%w: at most %d characters", ErrDescriptionTooLong, limits.MaxDescriptionLength)
	}

	rec = model.ExpenseRecord{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: description,
	}
	return rec, nil
}

// Sanitize strips control characters and filesystem path separators from
// free-text input. Offending characters are removed, never rejected.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '/' || r == '\\' {
			return -1
		}
		return r
	}, s)
}

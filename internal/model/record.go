// Package model defines domain types for expense records and aggregates.
package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical stored date layout (DD-MM-YYYY).
const DateFormat = "02-01-2006"

// dateFormats is the ordered list of accepted input layouts.
// First successful parse wins; DD-MM-YYYY is primary.
var dateFormats = []string{
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
}

// monthFormats are the accepted layouts for month-granularity input.
var monthFormats = []string{
	"2006-01",
	"01-2006",
	"2006/01",
	"01/2006",
	"2006.01",
	"01.2006",
}

var nonDateChars = regexp.MustCompile(`[^0-9/.\-]`)

// ExpenseRecord is a single validated expense line-item. Records are
// immutable once created; the persisted file is the source of truth.
type ExpenseRecord struct {
	Date        time.Time
	Category    string
	Amount      decimal.Decimal
	Description string
}

// DateString returns the record date in the canonical stored format.
func (r ExpenseRecord) DateString() string {
	return r.Date.Format(DateFormat)
}

// Equal reports whether two records carry the same data. Amounts compare
// by value, not representation ("50" == "50.00").
func (r ExpenseRecord) Equal(other ExpenseRecord) bool {
	return r.Date.Equal(other.Date) &&
		r.Category == other.Category &&
		r.Amount.Equal(other.Amount) &&
		r.Description == other.Description
}

// ParseDate parses a date string against the accepted layouts in order.
// Characters that cannot appear in a date are stripped first, matching
// how hand-typed input like "12th-06-2025" tends to arrive.
func ParseDate(input string) (time.Time, error) {
	clean := nonDateChars.ReplaceAllString(strings.TrimSpace(input), "")
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", input)
}

// ParseMonth parses month-granularity input like "2025-06" or "06/2025".
func ParseMonth(input string) (year int, month time.Month, err error) {
	clean := nonDateChars.ReplaceAllString(strings.TrimSpace(input), "")
	if clean == "" {
		return 0, 0, fmt.Errorf("empty month")
	}
	for _, layout := range monthFormats {
		if t, parseErr := time.Parse(layout, clean); parseErr == nil {
			return t.Year(), t.Month(), nil
		}
	}
	return 0, 0, fmt.Errorf("unrecognized month %q", input)
}

package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/spent/internal/model"
)

// ErrInvalidRange is returned when a date range's start falls after its
// end. A range that simply matches nothing is not an error.
var ErrInvalidRange = errors.New("invalid date range")

// FilterByRange returns the records whose date falls within [start, end],
// inclusive on both bounds, preserving input order.
func FilterByRange(records []model.ExpenseRecord, start, end time.Time) ([]model.ExpenseRecord, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidRange, start.Format(model.DateFormat), end.Format(model.DateFormat))
	}

	result := []model.ExpenseRecord{}
	for _, rec := range records {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

// FilterByMonth returns the records dated within one calendar month,
// preserving input order. No match yields an empty set, not an error.
func FilterByMonth(records []model.ExpenseRecord, year int, month time.Month) []model.ExpenseRecord {
	result := []model.ExpenseRecord{}
	for _, rec := range records {
		if rec.Date.Year() == year && rec.Date.Month() == month {
			result = append(result, rec)
		}
	}
	return result
}

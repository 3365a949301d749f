// Package ledger owns expense record validation, category normalization,
// and durable persistence of the record set to a CSV file.
package ledger

import "errors"

// Validation failure classes. Callers match with errors.Is; the wrapped
// message carries the specific reason for user-facing output.
var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrDescriptionTooLong = errors.New("description too long")
)

// Ledger failure classes.
var (
	ErrRecordLimit = errors.New("record limit exceeded")
	ErrInvalidPath = errors.New("invalid ledger path")
	ErrIO          = errors.New("ledger i/o failed")
)

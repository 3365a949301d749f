package model

import "github.com/shopspring/decimal"

// Summary holds the top-level aggregate over a record set.
type Summary struct {
	Total   decimal.Decimal
	Count   int
	MaxItem ExpenseRecord
	MinItem ExpenseRecord
}

// CategoryStat holds the aggregate for one category group. Label is the
// display form (first-seen casing); Key is the normalized grouping key.
type CategoryStat struct {
	Key     string
	Label   string
	Total   decimal.Decimal
	Count   int
	Percent float64
}

// ChartSlice is one slice of the distribution chart after small groups
// have been merged into the "Other" bucket.
type ChartSlice struct {
	Label   string
	Total   decimal.Decimal
	Percent float64
}

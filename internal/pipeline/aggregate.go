// Package pipeline derives summary and per-category views over record sets.
package pipeline

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spent/internal/ledger"
	"github.com/theirongolddev/spent/internal/model"
)

// ErrEmptyDataset is returned when an aggregate is requested over no
// records. Callers surface it as a distinct "no data" state.
var ErrEmptyDataset = errors.New("no expense records")

// OtherLabel names the synthetic bucket small slices merge into for the
// chart projection.
const OtherLabel = "Other"

// Summarize computes the overall total and the most/least expensive
// items. Ties break toward the first occurrence in input order.
func Summarize(records []model.ExpenseRecord) (model.Summary, error) {
	if len(records) == 0 {
		return model.Summary{}, ErrEmptyDataset
	}

	s := model.Summary{
		Count:   len(records),
		MaxItem: records[0],
		MinItem: records[0],
	}
	for _, rec := range records {
		s.Total = s.Total.Add(rec.Amount)
		if rec.Amount.GreaterThan(s.MaxItem.Amount) {
			s.MaxItem = rec
		}
		if rec.Amount.LessThan(s.MinItem.Amount) {
			s.MinItem = rec
		}
	}
	return s, nil
}

// ByCategory groups records by normalized category key and computes
// per-group totals, counts, and percentage shares (two decimal places).
// Rows come back ordered by descending total; equal totals keep their
// groups' first-seen order.
func ByCategory(records []model.ExpenseRecord) ([]model.CategoryStat, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	labels := ledger.NewGroupLabels()
	groups := make(map[string]*model.CategoryStat)
	var grand decimal.Decimal

	for _, rec := range records {
		key, display := labels.Observe(rec.Category)
		cs, ok := groups[key]
		if !ok {
			cs = &model.CategoryStat{Key: key, Label: display}
			groups[key] = cs
		}
		cs.Total = cs.Total.Add(rec.Amount)
		cs.Count++
		grand = grand.Add(rec.Amount)
	}

	hundred := decimal.NewFromInt(100)
	stats := make([]model.CategoryStat, 0, len(groups))
	for _, key := range labels.Keys() {
		cs := *groups[key]
		if grand.IsPositive() {
			cs.Percent = cs.Total.Div(grand).Mul(hundred).Round(2).InexactFloat64()
		}
		stats = append(stats, cs)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total.GreaterThan(stats[j].Total)
	})
	return stats, nil
}

// ChartSlices projects a breakdown for the chart sink: groups whose
// share falls below thresholdPct merge into one "Other" slice. The merge
// applies only to this view; tables and exports keep full rows.
func ChartSlices(stats []model.CategoryStat, thresholdPct float64) []model.ChartSlice {
	var slices []model.ChartSlice
	var other model.ChartSlice
	merged := 0

	for _, cs := range stats {
		if cs.Percent < thresholdPct {
			other.Total = other.Total.Add(cs.Total)
			other.Percent += cs.Percent
			merged++
			continue
		}
		slices = append(slices, model.ChartSlice{
			Label:   cs.Label,
			Total:   cs.Total,
			Percent: cs.Percent,
		})
	}
	if merged > 0 {
		other.Label = OtherLabel
		slices = append(slices, other)
	}
	return slices
}

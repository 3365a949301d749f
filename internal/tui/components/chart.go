// Package components renders the category distribution chart pieces.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spent/internal/cli"
	"github.com/theirongolddev/spent/internal/model"
)

// DistributionBand renders the slices as one proportional horizontal
// band, the terminal stand-in for a pie: each slice's width is its share
// of the total.
func DistributionBand(slices []model.ChartSlice, width int) string {
	if len(slices) == 0 || width < len(slices) {
		return ""
	}

	cells := make([]int, len(slices))
	used := 0
	for i, s := range slices {
		w := int(s.Percent / 100 * float64(width))
		if w < 1 {
			w = 1
		}
		cells[i] = w
		used += w
	}
	// Give rounding leftovers to the largest slice, or claw back overflow
	// from it, so the band is exactly width cells.
	largest := 0
	for i := range cells {
		if cells[i] > cells[largest] {
			largest = i
		}
	}
	cells[largest] += width - used
	if cells[largest] < 1 {
		cells[largest] = 1
	}

	var b strings.Builder
	for i, w := range cells {
		color := cli.SliceColors[i%len(cli.SliceColors)]
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", w)))
	}
	return b.String()
}

// SliceLegend renders one line per slice: colored marker, label, amount,
// a share bar, and the percentage.
func SliceLegend(slices []model.ChartSlice, width int) string {
	if len(slices) == 0 {
		return ""
	}

	labelW := 0
	amountW := 0
	amounts := make([]string, len(slices))
	for i, s := range slices {
		if len(s.Label) > labelW {
			labelW = len(s.Label)
		}
		amounts[i] = cli.FormatAmount(s.Total)
		if len(amounts[i]) > amountW {
			amountW = len(amounts[i])
		}
	}

	barW := width - labelW - amountW - 16
	if barW < 8 {
		barW = 8
	}

	var b strings.Builder
	for i, s := range slices {
		color := cli.SliceColors[i%len(cli.SliceColors)]
		marker := lipgloss.NewStyle().Foreground(color).Render("■")

		bar := progress.New(
			progress.WithSolidFill(string(color)),
			progress.WithWidth(barW),
			progress.WithoutPercentage(),
		)

		b.WriteString(fmt.Sprintf("  %s %-*s  %*s  %s %7s\n",
			marker,
			labelW, s.Label,
			amountW, amounts[i],
			bar.ViewAs(s.Percent/100),
			cli.FormatPercent(s.Percent),
		))
	}
	return b.String()
}

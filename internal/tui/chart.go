// Package tui provides the interactive chart viewer for spent.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spent/internal/cli"
	"github.com/theirongolddev/spent/internal/model"
	"github.com/theirongolddev/spent/internal/tui/components"
)

const (
	minChartWidth = 40
	maxChartWidth = 100
)

// ChartView is a minimal Bubble Tea model showing the category
// distribution full-screen until dismissed.
type ChartView struct {
	title  string
	slices []model.ChartSlice
	total  decimal.Decimal

	width  int
	height int
}

// NewChartView builds the viewer for an already-projected slice set.
func NewChartView(title string, slices []model.ChartSlice) ChartView {
	var total decimal.Decimal
	for _, s := range slices {
		total = total.Add(s.Total)
	}
	return ChartView{title: title, slices: slices, total: total}
}

// Init implements tea.Model.
func (v ChartView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (v ChartView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		}
	}
	return v, nil
}

// View implements tea.Model.
func (v ChartView) View() string {
	if v.width == 0 {
		return ""
	}

	chartW := v.width - 6
	if chartW > maxChartWidth {
		chartW = maxChartWidth
	}
	if chartW < minChartWidth {
		chartW = minChartWidth
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + cli.RenderTitle(v.title) + "\n\n")
	b.WriteString("  " + components.DistributionBand(v.slices, chartW) + "\n\n")
	b.WriteString(components.SliceLegend(v.slices, chartW))
	b.WriteString("\n")
	b.WriteString("  " + cli.Muted(fmt.Sprintf("Total %s across %d %s",
		cli.FormatAmount(v.total), len(v.slices), cli.Pluralize(len(v.slices), "slice", "slices"))))
	b.WriteString("\n\n")
	b.WriteString("  " + cli.Muted("q to quit"))

	return lipgloss.NewStyle().MaxWidth(v.width).Render(b.String())
}

// RunChart shows the chart viewer until the user quits.
func RunChart(title string, slices []model.ChartSlice) error {
	p := tea.NewProgram(NewChartView(title, slices), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

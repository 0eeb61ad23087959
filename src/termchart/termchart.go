// Package termchart previews the retained chart window in a terminal using
// braille line charts.
package termchart

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/iafilius/CanDashboard/src/chart"
	"github.com/iafilius/CanDashboard/src/metrics"
)

const (
	minWidth  = 20
	minHeight = 5

	// x labels are clock times; keep them apart
	xStep = 12
	yStep = 2
)

var (
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	unitStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f1f5f9"))
)

func seriesStyle(d metrics.Descriptor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Hex(chart.MetricColor(d.Color))))
}

// Render draws data for the metrics opts selects into a width×height cell
// chart preceded by a header line: the title and unit in single-series mode,
// a legend in overlay mode. Overlaid series are each scaled into their own
// extent, so the y axis carries no labels. It returns "" when there is
// nothing to draw.
func Render(data []metrics.DataPoint, opts chart.Options, width, height int) string {
	selected := opts.Selected()
	if len(selected) == 0 {
		return ""
	}
	rows := chart.Prepare(data, selected)
	if len(rows) == 0 {
		return ""
	}
	width, height = max(width, minWidth), max(height, minHeight)

	normalise := len(selected) > 1
	steps := yStep
	minY, maxY := 0.0, 1.0
	if !normalise {
		e := chart.ExtentOf(rows, 0)
		minY, maxY = e.Min, e.Min+e.Range
	} else {
		steps = 0
	}

	lc := linechart.New(width, height, 0, float64(max(len(rows)-1, 1)), minY, maxY,
		linechart.WithXYSteps(xStep, steps),
		linechart.WithXLabelFormatter(clockLabels(rows)),
		linechart.WithYLabelFormatter(func(_ int, v float64) string { return fmt.Sprintf("%.1f", v) }),
	)
	lc.AxisStyle = axisStyle
	lc.LabelStyle = labelStyle
	lc.DrawXYAxisAndLabel()

	for col, d := range selected {
		e := chart.ExtentOf(rows, col)
		style := seriesStyle(d)
		prev := point(rows[0], col, e, normalise)
		if len(rows) == 1 {
			lc.DrawBrailleLineWithStyle(prev, prev, style)
			continue
		}
		for _, r := range rows[1:] {
			next := point(r, col, e, normalise)
			lc.DrawBrailleLineWithStyle(prev, next, style)
			prev = next
		}
	}

	var header string
	if opts.Overlay {
		header = legend(selected)
	} else {
		header = title(selected)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, lc.View())
}

func point(r chart.Row, col int, e chart.Extent, normalise bool) canvas.Float64Point {
	y := r.Values[col]
	if normalise {
		y = (y - e.Min) / e.Range
	}
	return canvas.Float64Point{X: float64(r.Index), Y: y}
}

func clockLabels(rows []chart.Row) linechart.LabelFormatter {
	return func(_ int, v float64) string {
		i := int(math.Round(v))
		if i < 0 || i >= len(rows) || rows[i].Timestamp.IsZero() {
			return ""
		}
		return rows[i].Timestamp.Local().Format("15:04:05")
	}
}

func title(selected []metrics.Descriptor) string {
	parts := make([]string, 0, len(selected))
	for _, d := range selected {
		t := seriesStyle(d).Bold(true).Render(d.Label)
		if d.Unit != "" {
			t += " " + unitStyle.Render(d.Unit)
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, "  ")
}

func legend(selected []metrics.Descriptor) string {
	if len(selected) < 2 {
		return ""
	}
	parts := make([]string, len(selected))
	for i, d := range selected {
		parts[i] = seriesStyle(d).Render("■ " + d.Label)
	}
	return strings.Join(parts, "   ")
}

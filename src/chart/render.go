package chart

import (
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/CanDashboard/src/metrics"
)

const (
	gridRows    = 5
	gridColumns = 10
	valueLabels = 6

	seriesWidth  = 2.0
	markerRadius = 3.0

	titleBaseline = 14
	unitGap       = 10

	legendColumn  = 120
	legendSwatch  = 10
	legendTop     = 5
	legendTextGap = 15
	legendText    = 15
)

// Point is a position in logical surface pixels.
type Point struct {
	X, Y float64
}

// SeriesState is the scaled geometry of one plotted metric.
type SeriesState struct {
	Metric metrics.Descriptor
	Extent Extent
	Points []Point
}

// LegendEntry locates one overlay legend item.
type LegendEntry struct {
	Metric metrics.Descriptor
	Swatch Point
	Label  Point
}

// RenderState describes the last completed draw.
type RenderState struct {
	Layout Layout
	// Count is the number of retained records.
	Count  int
	Series []SeriesState
	Legend []LegendEntry
	// Labelled is set when value labels and titles were drawn (non-overlay mode).
	Labelled bool
}

// Render clears s and draws the retained window of data for the metrics opts
// selects. It returns nil, leaving s blank, when there is nothing to draw.
func Render(s Surface, data []metrics.DataPoint, opts Options) *RenderState {
	s.Clear()

	selected := opts.Selected()
	if len(selected) == 0 {
		return nil
	}
	rows := Prepare(data, selected)
	if len(rows) == 0 {
		return nil
	}
	w, h := s.Size()
	layout := NewLayout(w, h)
	if layout.Degenerate() {
		return nil
	}

	state := &RenderState{Layout: layout, Count: len(rows), Labelled: !opts.Overlay}
	for col, m := range selected {
		extent := ExtentOf(rows, col)
		if col == 0 {
			drawGrid(s, layout)
		}
		series := SeriesState{Metric: m, Extent: extent, Points: make([]Point, len(rows))}
		for i, r := range rows {
			series.Points[i] = Point{X: layout.X(i, len(rows)), Y: layout.Y(r.Values[col], extent)}
		}
		color := MetricColor(m.Color)
		drawSeries(s, series.Points, color)
		if !opts.Overlay {
			drawValueLabels(s, layout, extent)
			drawTitle(s, layout, m, color, opts.DarkMode)
		}
		state.Series = append(state.Series, series)
	}

	if opts.Overlay && len(selected) > 1 {
		state.Legend = drawLegend(s, layout, selected)
	}
	return state
}

func drawGrid(s Surface, l Layout) {
	s.SetStrokeColor(gridColor)
	s.SetLineWidth(1)
	left, top := l.Padding.Left, l.Padding.Top
	cw, ch := l.ChartWidth(), l.ChartHeight()
	for i := 0; i <= gridRows; i++ {
		y := top + ch/gridRows*float64(i)
		s.MoveTo(left, y)
		s.LineTo(left+cw, y)
	}
	for i := 0; i <= gridColumns; i++ {
		x := left + cw/gridColumns*float64(i)
		s.MoveTo(x, top)
		s.LineTo(x, top+ch)
	}
	s.Stroke()
}

func drawSeries(s Surface, points []Point, color drawing.Color) {
	s.SetStrokeColor(color)
	s.SetLineWidth(seriesWidth)
	for i, p := range points {
		if i == 0 {
			s.MoveTo(p.X, p.Y)
			continue
		}
		s.LineTo(p.X, p.Y)
	}
	s.Stroke()

	s.SetFillColor(color)
	for _, p := range points {
		s.FillCircle(p.X, p.Y, markerRadius)
	}
}

func drawValueLabels(s Surface, l Layout, e Extent) {
	s.SetFont(labelFont)
	s.SetFillColor(axisLabelColor)
	steps := valueLabels - 1
	for i := 0; i <= steps; i++ {
		v := e.Min + e.Range/float64(steps)*float64(steps-i)
		y := l.Padding.Top + l.ChartHeight()/float64(steps)*float64(i)
		s.FillText(strconv.FormatFloat(v, 'f', 1, 64), 5, y+4)
	}
}

func drawTitle(s Surface, l Layout, m metrics.Descriptor, color drawing.Color, dark bool) {
	x := l.Padding.Left
	s.SetFont(titleFont)
	s.SetFillColor(color)
	s.FillText(m.Label, x, titleBaseline)
	if m.Unit == "" {
		return
	}
	x += s.MeasureText(m.Label) + unitGap

	s.SetFont(unitFont)
	text, shadow := unitLightColor, shadowLightColor
	if dark {
		text, shadow = unitDarkColor, shadowDarkColor
	}
	fillShadowed(s, m.Unit, x, titleBaseline, text, shadow)
}

// fillShadowed approximates a 2px blurred drop shadow with a faint halo drawn
// one pixel around the text.
func fillShadowed(s Surface, text string, x, y float64, fg, shadow drawing.Color) {
	s.SetFillColor(shadow.WithAlpha(shadow.A / 2))
	for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		s.FillText(text, x+d[0], y+d[1])
	}
	s.SetFillColor(fg)
	s.FillText(text, x, y)
}

func drawLegend(s Surface, l Layout, selected []metrics.Descriptor) []LegendEntry {
	entries := make([]LegendEntry, len(selected))
	s.SetFont(legendFont)
	for i, m := range selected {
		x := l.Padding.Left + float64(i*legendColumn)
		color := MetricColor(m.Color)
		s.SetFillColor(color)
		s.FillRect(x, legendTop, legendSwatch, legendSwatch)
		s.FillText(m.Label, x+legendTextGap, legendText)
		entries[i] = LegendEntry{
			Metric: m,
			Swatch: Point{X: x, Y: legendTop},
			Label:  Point{X: x + legendTextGap, Y: legendText},
		}
	}
	return entries
}

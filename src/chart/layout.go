package chart

import "math"

// Padding is the gap between the surface edge and the plotting rectangle.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// DefaultPadding leaves room for value labels on the left and the title/legend on top.
var DefaultPadding = Padding{Top: 20, Right: 20, Bottom: 40, Left: 60}

// Layout maps series indices and values onto logical surface pixels.
type Layout struct {
	Width, Height float64
	Padding       Padding
}

// NewLayout returns a layout for a surface of the given logical size.
func NewLayout(width, height float64) Layout {
	return Layout{Width: width, Height: height, Padding: DefaultPadding}
}

// ChartWidth is the width of the plotting rectangle.
func (l Layout) ChartWidth() float64 { return l.Width - l.Padding.Left - l.Padding.Right }

// ChartHeight is the height of the plotting rectangle.
func (l Layout) ChartHeight() float64 { return l.Height - l.Padding.Top - l.Padding.Bottom }

// XScale is the horizontal distance between consecutive points of an n-point series.
func (l Layout) XScale(n int) float64 {
	return l.ChartWidth() / float64(max(n-1, 1))
}

// X is the horizontal position of point i of n.
func (l Layout) X(i, n int) float64 {
	return l.Padding.Left + float64(i)*l.XScale(n)
}

// Y is the vertical position of v scaled into e, with e.Min at the bottom edge.
func (l Layout) Y(v float64, e Extent) float64 {
	scale := l.ChartHeight() / e.Range
	return l.Padding.Top + l.ChartHeight() - (v-e.Min)*scale
}

// InPlot reports whether x lies within the plotting rectangle's horizontal span.
func (l Layout) InPlot(x float64) bool {
	return x >= l.Padding.Left && x <= l.Padding.Left+l.ChartWidth()
}

// IndexAt inverts X: the nearest point index for local x, or false when x is
// outside the plot span or no point exists there.
func (l Layout) IndexAt(x float64, n int) (int, bool) {
	if n <= 0 || !l.InPlot(x) {
		return 0, false
	}
	scale := l.XScale(n)
	if scale <= 0 {
		return 0, false
	}
	idx := int(math.Round((x - l.Padding.Left) / scale))
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

// Degenerate reports a surface too small to hold a plotting rectangle.
func (l Layout) Degenerate() bool {
	return l.ChartWidth() <= 0 || l.ChartHeight() <= 0
}

package chart

import (
	"strings"

	"github.com/iafilius/CanDashboard/src/metrics"
)

// TooltipLift is how far above the pointer a tooltip is anchored.
const TooltipLift = 10

// Tooltip is the overlay state. X and Y are relative to the containing frame.
type Tooltip struct {
	Show    bool
	X, Y    float64
	Content string
}

// Lines splits Content into its per-metric lines.
func (t Tooltip) Lines() []string {
	if t.Content == "" {
		return nil
	}
	return strings.Split(t.Content, "\n")
}

// Frame places the surface inside the box the tooltip is positioned and
// clamped in. The zero Frame means the surface is its own container.
type Frame struct {
	Offset        Point
	Width, Height float64
}

func (f Frame) resolve(l Layout) Frame {
	if f.Width <= 0 && f.Height <= 0 {
		return Frame{Offset: f.Offset, Width: l.Width, Height: l.Height}
	}
	return f
}

// ResolveTooltip hit-tests the surface-local position p against the retained
// window of data. Pointer and touch input both go through here.
func ResolveTooltip(l Layout, data []metrics.DataPoint, selected []metrics.Descriptor, p Point, f Frame) Tooltip {
	if len(selected) == 0 {
		return Tooltip{}
	}
	kept := Retain(data)
	idx, ok := l.IndexAt(p.X, len(kept))
	if !ok {
		return Tooltip{}
	}
	point := kept[idx]
	lines := make([]string, len(selected))
	for i, d := range selected {
		lines[i] = point.TooltipLine(d)
	}

	f = f.resolve(l)
	return Tooltip{
		Show:    true,
		X:       clamp(p.X+f.Offset.X, 0, f.Width),
		Y:       clamp(p.Y+f.Offset.Y-TooltipLift, 0, f.Height),
		Content: strings.Join(lines, "\n"),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

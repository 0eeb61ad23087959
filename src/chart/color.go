package chart

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/CanDashboard/src/logging"
)

// fallbackColor is used for series whose configured color cannot be parsed.
var fallbackColor = drawing.ColorFromHex("94a3b8")

var (
	gridColor        = drawing.ParseColor("rgba(255, 255, 255, 0.1)")
	axisLabelColor   = drawing.ColorFromHex("f1f5f9")
	unitDarkColor    = drawing.ParseColor("rgba(241, 245, 249, 1)")
	unitLightColor   = drawing.ColorFromHex("334155")
	shadowDarkColor  = drawing.ParseColor("rgba(0, 0, 0, 0.7)")
	shadowLightColor = drawing.ParseColor("rgba(0, 0, 0, 0.3)")
)

// ParseColor parses a CSS color (#rgb, #rrggbb, rgb(), rgba() or a basic name).
// ok is false for empty or unrecognised input.
func ParseColor(s string) (drawing.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return drawing.Color{}, false
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "#"):
		hex := lower[1:]
		if (len(hex) != 3 && len(hex) != 6) || strings.Trim(hex, "0123456789abcdef") != "" {
			return drawing.Color{}, false
		}
		return drawing.ColorFromHex(hex), true
	case strings.HasPrefix(lower, "rgb"):
		if !strings.HasSuffix(lower, ")") {
			return drawing.Color{}, false
		}
		return drawing.ParseColor(lower), true
	}
	c := drawing.ColorFromKnown(lower)
	if c.IsZero() {
		return c, false
	}
	return c, true
}

// MetricColor parses a descriptor color, falling back to slate when it is
// empty or unparseable.
func MetricColor(s string) drawing.Color {
	c, ok := ParseColor(s)
	if !ok {
		logging.Debugf("[chart] unparseable color %q, using fallback", s)
		return fallbackColor
	}
	return c
}

// Hex renders c as #rrggbb, dropping alpha.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

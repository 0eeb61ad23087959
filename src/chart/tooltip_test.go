package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iafilius/CanDashboard/src/metrics"
)

func TestResolveTooltipIndex(t *testing.T) {
	l := NewLayout(800, 200)
	data := ramp(60)
	sel := []metrics.Descriptor{rpm}

	tests := []struct {
		name string
		x    float64
		want string
		show bool
	}{
		{"left edge", 60, "RPM: 10.00", true},
		{"right edge", 780, "RPM: 59.00", true},
		{"rounds down", 60 + 720.0/49*0.49, "RPM: 10.00", true},
		{"rounds up", 60 + 720.0/49*0.51, "RPM: 11.00", true},
		{"left margin", 59.9, "", false},
		{"right margin", 780.1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTooltip(l, data, sel, Point{X: tt.x, Y: 100}, Frame{})
			assert.Equal(t, tt.show, got.Show)
			assert.Equal(t, tt.want, got.Content)
		})
	}
}

func TestResolveTooltipContent(t *testing.T) {
	l := NewLayout(800, 200)
	data := []metrics.DataPoint{{Categories: map[string]map[string]any{
		"engine":  {"rpm": 1234.5678, "brake": true, "mode": "SPORT"},
		"battery": {"voltage": 12.6},
	}}}
	mode := metrics.Descriptor{Key: "mode", Category: "engine", Label: "Mode"}
	missing := metrics.Descriptor{Key: "soc", Category: "bms", Label: "SoC", Unit: "%"}

	got := ResolveTooltip(l, data, []metrics.Descriptor{rpm, voltage, brake, mode, missing}, Point{X: 60, Y: 50}, Frame{})
	assert.True(t, got.Show)
	assert.Equal(t, []string{
		"RPM: 1234.57",
		"Voltage: 12.60 V",
		"Brake: ON",
		"Mode: SPORT",
		"SoC: 0.00 %",
	}, got.Lines())
}

func TestResolveTooltipEmpty(t *testing.T) {
	l := NewLayout(800, 200)
	assert.Equal(t, Tooltip{}, ResolveTooltip(l, nil, []metrics.Descriptor{rpm}, Point{X: 400, Y: 100}, Frame{}))
	assert.Equal(t, Tooltip{}, ResolveTooltip(l, ramp(5), nil, Point{X: 400, Y: 100}, Frame{}))
	assert.Nil(t, Tooltip{}.Lines())
}

func TestResolveTooltipPosition(t *testing.T) {
	l := NewLayout(800, 200)
	data := ramp(3)
	sel := []metrics.Descriptor{rpm}

	tests := []struct {
		name  string
		p     Point
		frame Frame
		wantX float64
		wantY float64
	}{
		{"lifted", Point{X: 420, Y: 100}, Frame{}, 420, 90},
		{"clamped top", Point{X: 420, Y: 4}, Frame{}, 420, 0},
		{"offset in container", Point{X: 420, Y: 100}, Frame{Offset: Point{X: 16, Y: 40}, Width: 900, Height: 400}, 436, 130},
		{"clamped to container", Point{X: 780, Y: 100}, Frame{Offset: Point{X: 16}, Width: 790, Height: 400}, 790, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTooltip(l, data, sel, tt.p, tt.frame)
			assert.True(t, got.Show)
			assert.Equal(t, tt.wantX, got.X)
			assert.Equal(t, tt.wantY, got.Y)
		})
	}
}

func TestLayoutIndexAt(t *testing.T) {
	l := NewLayout(800, 200)
	idx, ok := l.IndexAt(60, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	// one point: the right half of the plot rounds past the only index
	_, ok = l.IndexAt(780, 1)
	assert.False(t, ok)

	_, ok = l.IndexAt(400, 0)
	assert.False(t, ok)
}

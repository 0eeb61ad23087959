package chart

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/CanDashboard/src/metrics"
)

var (
	rpm     = metrics.Descriptor{Key: "rpm", Category: "engine", Label: "RPM", Color: "#ef4444"}
	voltage = metrics.Descriptor{Key: "voltage", Category: "battery", Label: "Voltage", Color: "#3b82f6", Unit: "V"}
	brake   = metrics.Descriptor{Key: "brake", Category: "engine", Label: "Brake", Color: "#22c55e"}
)

func series(values ...any) []metrics.DataPoint {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := make([]metrics.DataPoint, len(values))
	for i, v := range values {
		out[i] = metrics.DataPoint{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Categories: map[string]map[string]any{
				"engine":  {"rpm": v, "brake": i%2 == 0},
				"battery": {"voltage": 12.0 + float64(i)/10},
			},
		}
	}
	return out
}

func ramp(n int) []metrics.DataPoint {
	values := make([]any, n)
	for i := range values {
		values[i] = float64(i)
	}
	return series(values...)
}

func TestRenderRetainsLastWindow(t *testing.T) {
	r := newRecorder(800, 200)
	state := Render(r, ramp(60), Options{Metric: &rpm})
	require.NotNil(t, state)

	assert.Equal(t, Window, state.Count)
	require.Len(t, state.Series, 1)
	assert.Equal(t, Extent{Min: 10, Max: 59, Range: 49}, state.Series[0].Extent)
	assert.Len(t, state.Series[0].Points, Window)
	assert.Len(t, r.circles, Window)
}

func TestRenderFlatSeriesUsesUnitRange(t *testing.T) {
	r := newRecorder(800, 200)
	state := Render(r, series(5.0, 5.0, 5.0, 5.0), Options{Metric: &rpm})
	require.NotNil(t, state)

	s := state.Series[0]
	assert.Equal(t, 1.0, s.Extent.Range)
	for _, p := range s.Points {
		assert.Equal(t, 160.0, p.Y, "flat series sits on the bottom edge")
	}
	labels := map[string]bool{}
	for _, txt := range r.texts {
		if txt.X == 5 {
			labels[txt.Text] = true
		}
	}
	assert.True(t, labels["6.0"])
	assert.True(t, labels["5.0"])
}

func TestRenderBooleansScaleToZeroAndOne(t *testing.T) {
	r := newRecorder(800, 200)
	state := Render(r, series(0.0, 0.0, 0.0), Options{Metric: &brake})
	require.NotNil(t, state)

	s := state.Series[0]
	assert.Equal(t, Extent{Min: 0, Max: 1, Range: 1}, s.Extent)
	l := state.Layout
	assert.Equal(t, l.Padding.Top, s.Points[0].Y)
	assert.Equal(t, l.Padding.Top+l.ChartHeight(), s.Points[1].Y)
	assert.Equal(t, l.Padding.Top, s.Points[2].Y)
}

func TestRenderNothing(t *testing.T) {
	tests := []struct {
		name string
		data []metrics.DataPoint
		opts Options
		w, h float64
	}{
		{"empty data", nil, Options{Metric: &rpm}, 800, 200},
		{"no metrics", ramp(3), Options{}, 800, 200},
		{"overlay without metrics", ramp(3), Options{Metric: &rpm, Overlay: true}, 800, 200},
		{"degenerate surface", ramp(3), Options{Metric: &rpm}, 70, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder(tt.w, tt.h)
			assert.Nil(t, Render(r, tt.data, tt.opts))
			assert.Equal(t, 1, r.clears)
			assert.Empty(t, r.strokes)
			assert.Empty(t, r.texts)
		})
	}
}

func TestRenderSeriesGeometry(t *testing.T) {
	r := newRecorder(800, 200)
	state := Render(r, ramp(11), Options{Metric: &rpm})
	require.NotNil(t, state)

	pts := state.Series[0].Points
	assert.Equal(t, Point{X: 60, Y: 160}, pts[0])
	assert.Equal(t, Point{X: 780, Y: 20}, pts[10])
	assert.InDelta(t, 132, pts[1].X, 1e-9)

	red := MetricColor(rpm.Color)
	lines := r.strokesIn(red)
	require.Len(t, lines, 1)
	assert.Equal(t, 2.0, lines[0].Width)
	assert.Equal(t, 10, lines[0].Segments)
	for _, c := range r.circles {
		assert.Equal(t, markerRadius, c.W)
		assert.True(t, c.Color.Equals(red))
	}
}

func TestRenderValueLabels(t *testing.T) {
	r := newRecorder(800, 200)
	Render(r, ramp(11), Options{Metric: &rpm})

	var got []textOp
	for _, txt := range r.texts {
		if txt.X == 5 {
			got = append(got, txt)
		}
	}
	require.Len(t, got, valueLabels)
	for i, txt := range got {
		assert.Equal(t, strconv.FormatFloat(float64(10-2*i), 'f', 1, 64), txt.Text)
		assert.Equal(t, 20+28*float64(i)+4, txt.Y)
		assert.Equal(t, labelFont, txt.Font)
		assert.True(t, txt.Color.Equals(axisLabelColor))
	}
}

func TestRenderTitleWithUnit(t *testing.T) {
	cpu := metrics.Descriptor{Key: "rpm", Category: "engine", Label: "CPU", Color: "#22c55e", Unit: "%"}
	for _, dark := range []bool{true, false} {
		r := newRecorder(800, 200)
		Render(r, ramp(5), Options{Metric: &cpu, DarkMode: dark})

		var title, unit *textOp
		for i := range r.texts {
			switch txt := &r.texts[i]; txt.Text {
			case "CPU":
				title = txt
			case "%":
				unit = txt
			}
		}
		require.NotNil(t, title)
		require.NotNil(t, unit)

		assert.Equal(t, 60.0, title.X)
		assert.Equal(t, titleFont, title.Font)
		assert.True(t, title.Color.Equals(MetricColor(cpu.Color)))

		want := unitLightColor
		if dark {
			want = unitDarkColor
		}
		assert.True(t, unit.Color.Equals(want), "foreground drawn last")
		assert.Equal(t, unitFont, unit.Font)
		assert.Equal(t, 60.0+24+unitGap, unit.X)
		assert.Equal(t, title.Y, unit.Y)
	}
}

func TestRenderTitleWithoutUnit(t *testing.T) {
	r := newRecorder(800, 200)
	Render(r, ramp(5), Options{Metric: &rpm})
	for _, txt := range r.texts {
		assert.NotEqual(t, unitFont, txt.Font)
	}
}

func TestRenderOverlayLegend(t *testing.T) {
	r := newRecorder(800, 200)
	state := Render(r, ramp(20), Options{Metrics: []metrics.Descriptor{rpm, voltage, brake}, Overlay: true})
	require.NotNil(t, state)

	assert.False(t, state.Labelled)
	require.Len(t, state.Legend, 3)
	require.Len(t, r.rects, 3)
	for i, e := range state.Legend {
		x := 60 + 120*float64(i)
		assert.Equal(t, Point{X: x, Y: 5}, e.Swatch)
		assert.Equal(t, Point{X: x + 15, Y: 15}, e.Label)
		assert.Equal(t, x, r.rects[i].X)
		assert.Equal(t, 10.0, r.rects[i].W)
	}
	for _, txt := range r.texts {
		assert.NotEqual(t, 5.0, txt.X, "no value labels in overlay mode")
		assert.Equal(t, legendFont, txt.Font)
	}
	assert.Len(t, r.strokesIn(gridColor), 1, "grid drawn once")
	assert.Equal(t, gridRows+1+gridColumns+1, r.strokesIn(gridColor)[0].Segments)
	assert.Len(t, r.circles, 60)
}

func TestRenderOverlaySingleMetricHasNoLegend(t *testing.T) {
	r := newRecorder(800, 200)
	state := Render(r, ramp(20), Options{Metrics: []metrics.Descriptor{rpm}, Overlay: true})
	require.NotNil(t, state)
	assert.Empty(t, state.Legend)
	assert.Empty(t, r.texts)
	assert.Empty(t, r.rects)
}

func TestRenderMetricsTakePrecedenceOutsideOverlay(t *testing.T) {
	r := newRecorder(800, 200)
	state := Render(r, ramp(5), Options{Metric: &rpm, Metrics: []metrics.Descriptor{voltage}})
	require.NotNil(t, state)
	require.Len(t, state.Series, 1)
	assert.Equal(t, voltage, state.Series[0].Metric)
}

func TestRenderSameKeyDifferentCategories(t *testing.T) {
	a := metrics.Descriptor{Key: "temp", Category: "engine", Label: "Engine"}
	b := metrics.Descriptor{Key: "temp", Category: "battery", Label: "Battery"}
	data := []metrics.DataPoint{
		{Categories: map[string]map[string]any{"engine": {"temp": 90.0}, "battery": {"temp": 30.0}}},
		{Categories: map[string]map[string]any{"engine": {"temp": 95.0}, "battery": {"temp": 31.0}}},
	}
	state := Render(newRecorder(800, 200), data, Options{Metrics: []metrics.Descriptor{a, b}, Overlay: true})
	require.NotNil(t, state)
	assert.Equal(t, Extent{Min: 90, Max: 95, Range: 5}, state.Series[0].Extent)
	assert.Equal(t, Extent{Min: 30, Max: 31, Range: 1}, state.Series[1].Extent)
}

func TestRenderInvalidColorFallsBack(t *testing.T) {
	bad := metrics.Descriptor{Key: "rpm", Category: "engine", Label: "RPM", Color: "not-a-color"}
	r := newRecorder(800, 200)
	Render(r, ramp(3), Options{Metric: &bad})
	assert.Len(t, r.strokesIn(fallbackColor), 1)
}

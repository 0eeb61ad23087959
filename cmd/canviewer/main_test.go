package main

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/CanDashboard/src/config"
)

const drive = `{"timestamp": 1714564800000, "engine": {"rpm": 800}, "battery": {"voltage": 12.4}}
{"timestamp": 1714564801000, "engine": {"rpm": 1200}, "battery": {"voltage": 12.6}}
{"timestamp": 1714564802000, "engine": {"rpm": 1600}, "battery": {"voltage": 12.5}}
`

func writeDrive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drive.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(drive), 0o644))
	return path
}

func newTestViewer(t *testing.T) *viewerState {
	t.Helper()
	a := test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	cfg, err := config.Load("")
	require.NoError(t, err)
	s := newViewerState(a, w, cfg)
	w.SetContent(buildUI(s))
	w.Resize(fyne.NewSize(1000, 600))
	t.Cleanup(s.chart.Close)
	return s
}

func TestLoadAllDiscoversAndSelects(t *testing.T) {
	s := newTestViewer(t)
	s.filePath = writeDrive(t)
	loadAll(s)

	assert.Len(t, s.data, 3)
	assert.Equal(t, []string{"battery.voltage", "engine.rpm"}, s.metricSelect.Options)
	assert.Equal(t, "battery.voltage", s.metric)
	assert.Equal(t, "battery.voltage", s.metricSelect.Selected)
	assert.Equal(t, "3 records, 2 metrics", s.statusLabel.Text)

	opts := s.chart.Core().Options()
	require.NotNil(t, opts.Metric)
	assert.Equal(t, "voltage", opts.Metric.Key)
	assert.NotNil(t, s.chart.Core().RenderState())
}

func TestMetricByKeyIsNormalised(t *testing.T) {
	s := newTestViewer(t)
	s.metric = "rpm"
	s.filePath = writeDrive(t)
	loadAll(s)
	assert.Equal(t, "engine.rpm", s.metric)
	assert.Equal(t, "engine.rpm", s.metricSelect.Selected)
}

func TestTogglesReachChartAndPrefs(t *testing.T) {
	s := newTestViewer(t)
	s.filePath = writeDrive(t)
	loadAll(s)

	s.overlayChk.SetChecked(true)
	assert.True(t, s.chart.Core().Options().Overlay)
	assert.Len(t, s.chart.Core().Options().Metrics, 2)
	assert.True(t, s.metricSelect.Disabled())
	assert.True(t, s.app.Preferences().Bool("overlay"))

	s.darkChk.SetChecked(false)
	assert.False(t, s.chart.Core().Options().DarkMode)
	assert.False(t, s.app.Preferences().BoolWithFallback("darkMode", true))

	s.metricSelect.SetSelected("engine.rpm")
	s.overlayChk.SetChecked(false)
	assert.Equal(t, "rpm", s.chart.Core().Options().Metric.Key)
	assert.Equal(t, "engine.rpm", s.app.Preferences().String("metric"))
}

func TestPrefsRoundTrip(t *testing.T) {
	s := newTestViewer(t)
	s.filePath = "/data/drive.jsonl"
	s.metric = "engine.rpm"
	s.overlay = true
	s.watching = true
	savePrefs(s)

	s2 := newViewerState(s.app, s.window, config.Config{DarkMode: true})
	loadPrefs(s2)
	assert.Equal(t, "/data/drive.jsonl", s2.filePath)
	assert.Equal(t, "engine.rpm", s2.metric)
	assert.True(t, s2.overlay)
	assert.True(t, s2.watching)
}

func TestRecentFiles(t *testing.T) {
	s := newTestViewer(t)
	a, b := writeDrive(t), writeDrive(t)
	addRecentFile(s, a)
	addRecentFile(s, b)
	addRecentFile(s, a)
	assert.Equal(t, []string{a, b}, recentFiles(s))

	require.NoError(t, os.Remove(b))
	assert.Equal(t, []string{a}, recentFiles(s), "missing files are dropped")

	clearRecentFiles(s)
	assert.Empty(t, recentFiles(s))
}

func TestViewerConfigUsesLaidOutWidth(t *testing.T) {
	s := newTestViewer(t)
	s.chart.Core().Resize(640, 1)
	cfg := s.viewerConfig()
	assert.Equal(t, 640.0, cfg.Width)
}

func TestResizeChartFollowsWindowHeight(t *testing.T) {
	s := newTestViewer(t)
	resizeChart(s, fyne.NewSize(1000, 1200))
	_, h := s.chart.Core().Size()
	assert.Equal(t, 400.0, h)

	resizeChart(s, fyne.NewSize(1000, 300))
	_, h = s.chart.Core().Size()
	assert.Equal(t, 200.0, h)
}

func TestRunExportMode(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "charts")

	paths, err := RunExportMode(writeDrive(t), out, "svg", cfg)
	require.NoError(t, err)
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{"overlay.svg", "battery_voltage.svg", "engine_rpm.svg"}, names)

	_, err = RunExportMode("", out, "png", cfg)
	assert.Error(t, err)
}

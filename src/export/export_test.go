package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/CanDashboard/src/config"
	"github.com/iafilius/CanDashboard/src/metrics"
)

func testConfig() config.Config {
	return config.Config{
		Width:      400,
		Height:     150,
		PixelRatio: 2,
		DarkMode:   true,
		Metrics: []metrics.Descriptor{
			{Key: "rpm", Category: "engine", Label: "RPM", Color: "#ef4444"},
			{Key: "voltage", Category: "battery", Label: "Voltage", Color: "#3b82f6", Unit: "V"},
		},
	}
}

func testData(n int) []metrics.DataPoint {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]metrics.DataPoint, n)
	for i := range out {
		out[i] = metrics.DataPoint{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Categories: map[string]map[string]any{
				"engine":  {"rpm": float64(800 + 10*i)},
				"battery": {"voltage": 12 + float64(i%5)/10},
			},
		}
	}
	return out
}

func TestPNGUsesPixelRatio(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, testConfig(), testData(10)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestNothingToDraw(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, PNG(&buf, testConfig(), nil), ErrNothingToDraw)
	assert.ErrorIs(t, SVG(&buf, config.Config{Width: 400, PixelRatio: 1}, testData(3)), ErrNothingToDraw)
	assert.Zero(t, buf.Len())
}

func TestFileByExtension(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "chart.svg")
	require.NoError(t, File(svgPath, testConfig(), testData(5)))
	b, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "<svg"))

	pngPath := filepath.Join(dir, "chart.png")
	require.NoError(t, File(pngPath, testConfig(), testData(5)))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)

	emptyPath := filepath.Join(dir, "empty.png")
	assert.ErrorIs(t, File(emptyPath, testConfig(), nil), ErrNothingToDraw)
	_, err = os.Stat(emptyPath)
	assert.True(t, os.IsNotExist(err), "failed export leaves no file behind")
}

func TestDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := Directory(dir, "png", testConfig(), testData(60))
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{"overlay.png", "engine_rpm.png", "battery_voltage.png"}, names)

	paths, err = Directory(dir, ".SVG", testConfig(), nil)
	require.NoError(t, err)
	assert.Empty(t, paths)

	_, err = Directory(dir, "gif", testConfig(), testData(3))
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Metrics = cfg.Metrics[:1]
	paths, err = Directory(dir, "svg", cfg, testData(3))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "engine_rpm.svg", filepath.Base(paths[0]))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "bms_cell_1_temp", fileName(metrics.Descriptor{Category: "bms", Key: "cell 1/temp"}))
}

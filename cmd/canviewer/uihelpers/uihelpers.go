package uihelpers

import (
	"path/filepath"
	"strings"

	"github.com/iafilius/CanDashboard/src/metrics"
)

// MaxRecent caps the Open Recent menu.
const MaxRecent = 10

// ComputeChartHeight derives the chart height from the window height: a third
// of it, clamped between 200 and 480.
func ComputeChartHeight(winH float32) float64 {
	h := float64(winH) / 3
	if h < 200 {
		h = 200
	}
	if h > 480 {
		h = 480
	}
	return h
}

// PushRecent moves path to the front of list, drops duplicates and blanks,
// and caps the result at MaxRecent.
func PushRecent(list []string, path string) []string {
	out := []string{path}
	for _, f := range list {
		if f == "" || f == path {
			continue
		}
		if len(out) >= MaxRecent {
			break
		}
		out = append(out, f)
	}
	return out
}

// SplitRecent parses the newline separated preference value.
func SplitRecent(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TruncatePath shortens p to about n characters, always keeping the base name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}

// MetricOptions returns the select entries for ds, "category.key" each.
func MetricOptions(ds []metrics.Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Category + "." + d.Key
	}
	return out
}

// ExportName is the suggested file name for a chart export.
func ExportName(dataPath, metric string, overlay bool, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
	if stem == "" || stem == "." {
		stem = "chart"
	}
	switch {
	case overlay:
		stem += "_overlay"
	case metric != "":
		stem += "_" + strings.ReplaceAll(metric, ".", "_")
	}
	return stem + "." + ext
}

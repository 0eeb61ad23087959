// Package export renders configured charts headlessly to PNG and SVG.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iafilius/CanDashboard/src/chart"
	"github.com/iafilius/CanDashboard/src/config"
	"github.com/iafilius/CanDashboard/src/logging"
	"github.com/iafilius/CanDashboard/src/metrics"
)

// ErrNothingToDraw is returned when the data or metric selection is empty.
var ErrNothingToDraw = errors.New("nothing to draw")

func build(cfg config.Config, data []metrics.DataPoint) (*chart.Chart, error) {
	c := chart.New(cfg.ChartConfig(data))
	if c.RenderState() == nil {
		c.Close()
		return nil, ErrNothingToDraw
	}
	return c, nil
}

// PNG writes the chart cfg describes at width × pixel ratio resolution.
func PNG(w io.Writer, cfg config.Config, data []metrics.DataPoint) error {
	c, err := build(cfg, data)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.WritePNG(w)
}

// SVG writes the chart cfg describes as an SVG document.
func SVG(w io.Writer, cfg config.Config, data []metrics.DataPoint) error {
	c, err := build(cfg, data)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.WriteSVG(w)
}

// File writes to path, choosing SVG for a .svg extension and PNG otherwise.
func File(path string, cfg config.Config, data []metrics.DataPoint) error {
	write := PNG
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		write = SVG
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, cfg, data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Directory writes overlay.<ext> (when more than one metric is configured)
// plus one <category>_<key>.<ext> per metric into dir, and returns the paths
// written. ext is "png" or "svg". Charts with nothing to draw are skipped.
func Directory(dir, ext string, cfg config.Config, data []metrics.DataPoint) ([]string, error) {
	defer logging.TimeTrack(time.Now(), "export "+dir)
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext != "png" && ext != "svg" {
		return nil, fmt.Errorf("unsupported export format %q", ext)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	if len(cfg.Metrics) == 0 {
		return nil, ErrNothingToDraw
	}

	type item struct {
		name string
		cfg  config.Config
	}
	var items []item
	if len(cfg.Metrics) > 1 {
		oc := cfg
		oc.Overlay = true
		items = append(items, item{"overlay." + ext, oc})
	}
	for _, m := range cfg.Metrics {
		sc := cfg
		sc.Overlay = false
		sc.Metric = m.Category + "." + m.Key
		items = append(items, item{fileName(m) + "." + ext, sc})
	}

	var written []string
	for _, it := range items {
		path := filepath.Join(dir, it.name)
		if err := File(path, it.cfg, data); err != nil {
			if errors.Is(err, ErrNothingToDraw) {
				logging.Debugf("[export] skip %s: %v", it.name, err)
				continue
			}
			return written, err
		}
		written = append(written, path)
	}
	logging.Infof("[export] wrote %d files to %s", len(written), dir)
	return written, nil
}

func fileName(m metrics.Descriptor) string {
	clean := func(s string) string {
		return strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
				return r
			}
			return '_'
		}, s)
	}
	return clean(m.Category) + "_" + clean(m.Key)
}

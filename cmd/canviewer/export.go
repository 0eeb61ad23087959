package main

import (
	"fmt"
	"io"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/iafilius/CanDashboard/cmd/canviewer/uihelpers"
	"github.com/iafilius/CanDashboard/src/config"
	"github.com/iafilius/CanDashboard/src/export"
	"github.com/iafilius/CanDashboard/src/metrics"
)

// RunExportMode renders the overlay and per-metric charts for filePath into
// outDir without creating a window.
func RunExportMode(filePath, outDir, format string, cfg config.Config) ([]string, error) {
	if filePath == "" {
		filePath = cfg.DataFile
	}
	if filePath == "" {
		return nil, fmt.Errorf("export mode needs -file or data_file")
	}
	data, err := metrics.LoadFile(filePath, 0)
	if err != nil {
		return nil, err
	}
	return export.Directory(outDir, format, cfg.WithDiscovered(data), data)
}

// viewerConfig is the config the exported chart is drawn with: the loaded
// settings plus the toggles and the window's chart width.
func (s *viewerState) viewerConfig() config.Config {
	cfg := s.cfg
	cfg.Overlay = s.overlay
	cfg.DarkMode = s.darkMode
	cfg.Metric = s.metric
	if s.chart != nil {
		if w, h := s.chart.Core().Size(); w > 0 {
			cfg.Width, cfg.Height = w, h
		}
	}
	return cfg
}

// exportChart asks for a target file and writes the current chart as ext.
func exportChart(s *viewerState, ext string) {
	if len(s.data) == 0 {
		dialog.ShowInformation("Export", "No chart to export.", s.window)
		return
	}
	write := export.PNG
	if ext == "svg" {
		write = export.SVG
	}
	cfg := s.viewerConfig()
	data := s.data
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.window)
			return
		}
		if wc == nil {
			return
		}
		if err := writeAndClose(wc, func(w io.Writer) error { return write(w, cfg, data) }); err != nil {
			dialog.ShowError(fmt.Errorf("export %s: %w", strings.ToUpper(ext), err), s.window)
		}
	}, s.window)
	fs.SetFileName(uihelpers.ExportName(s.filePath, s.metric, s.overlay, ext))
	fs.Show()
}

func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

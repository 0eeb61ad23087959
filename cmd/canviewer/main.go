package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/CanDashboard/cmd/canviewer/uihelpers"
	"github.com/iafilius/CanDashboard/src/chart"
	"github.com/iafilius/CanDashboard/src/chartwidget"
	"github.com/iafilius/CanDashboard/src/config"
	"github.com/iafilius/CanDashboard/src/logging"
	"github.com/iafilius/CanDashboard/src/metrics"
)

// watchPeriod is how often a watched data file is polled.
const watchPeriod = 500 * time.Millisecond

type viewerState struct {
	app      fyne.App
	window   fyne.Window
	filePath string

	// base is the loaded config; cfg adds metrics discovered from the data.
	base config.Config
	cfg  config.Config
	data []metrics.DataPoint

	// toggles
	overlay  bool
	darkMode bool
	metric   string
	watching bool
	watcher  *fileWatcher

	// widgets
	chart        *chartwidget.Chart
	fileLabel    *widget.Label
	statusLabel  *widget.Label
	metricSelect *widget.Select
	overlayChk   *widget.Check
	darkChk      *widget.Check
	watchChk     *widget.Check
}

// viewerTheme pins the default theme to one variant.
type viewerTheme struct{ dark bool }

func (t *viewerTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if t.dark {
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
	return theme.DefaultTheme().Color(name, theme.VariantLight)
}
func (t *viewerTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (t *viewerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (t *viewerTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var (
		fileFlag     string
		configFlag   string
		watchFlag    bool
		exportDir    string
		exportFormat string
		logLevel     string
	)
	flag.StringVar(&fileFlag, "file", "", "Path to a JSON or JSONL telemetry file")
	flag.StringVar(&configFlag, "config", "", "Config file (default is $HOME/"+config.DefaultName+".yaml)")
	flag.BoolVar(&watchFlag, "watch", false, "Reload when the data file changes")
	flag.StringVar(&exportDir, "export-dir", "", "Write charts to this directory and exit (no window)")
	flag.StringVar(&exportFormat, "export-format", "png", "Format for -export-dir: png or svg")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	path := configFlag
	if path == "" {
		if p, ok := config.FindDefault(); ok {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	logging.SetLogLevel(logLevel)

	if exportDir != "" {
		paths, err := RunExportMode(fileFlag, exportDir, exportFormat, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return
	}

	a := app.NewWithID("com.candashboard.viewer")
	w := a.NewWindow("CAN Dashboard")
	w.Resize(fyne.NewSize(1100, 700))

	s := newViewerState(a, w, cfg)
	loadPrefs(s)
	if fileFlag != "" {
		s.filePath = fileFlag
	}
	if watchFlag {
		s.watching = true
	}
	w.SetContent(buildUI(s))
	buildMenus(s)
	s.chart.Bind(w, func(sz fyne.Size) { resizeChart(s, sz) })
	w.SetOnClosed(func() {
		savePrefs(s)
		s.watcher.Close()
		s.chart.Close()
	})

	loadAll(s)
	s.watchChk.SetChecked(s.watching)
	w.ShowAndRun()
}

func newViewerState(a fyne.App, w fyne.Window, cfg config.Config) *viewerState {
	return &viewerState{
		app:      a,
		window:   w,
		filePath: cfg.DataFile,
		base:     cfg,
		cfg:      cfg,
		overlay:  cfg.Overlay,
		darkMode: cfg.DarkMode,
		metric:   cfg.Metric,
	}
}

// resizeChart keeps the chart height in step with the window height.
func resizeChart(s *viewerState, sz fyne.Size) {
	s.chart.SetHeight(uihelpers.ComputeChartHeight(sz.Height))
}

func buildUI(s *viewerState) fyne.CanvasObject {
	s.app.Settings().SetTheme(&viewerTheme{dark: s.darkMode})

	s.fileLabel = widget.NewLabel(uihelpers.TruncatePath(s.filePath, 60))
	s.statusLabel = widget.NewLabel("")

	s.metricSelect = widget.NewSelect(nil, nil)
	s.metricSelect.PlaceHolder = "Metric"
	s.overlayChk = widget.NewCheck("Overlay", nil)
	s.overlayChk.SetChecked(s.overlay)
	s.darkChk = widget.NewCheck("Dark", nil)
	s.darkChk.SetChecked(s.darkMode)
	s.watchChk = widget.NewCheck("Watch", nil)

	cc := s.viewerConfig().ChartConfig(nil)
	cc.Height = uihelpers.ComputeChartHeight(s.window.Canvas().Size().Height)
	s.chart = chartwidget.New(cc)

	// Callbacks are wired once every widget exists.
	s.metricSelect.OnChanged = func(v string) {
		if v == s.metric {
			return
		}
		s.metric = v
		savePrefs(s)
		applyOptions(s)
	}
	s.overlayChk.OnChanged = func(b bool) {
		s.overlay = b
		savePrefs(s)
		applyOptions(s)
	}
	s.darkChk.OnChanged = func(b bool) {
		s.darkMode = b
		s.app.Settings().SetTheme(&viewerTheme{dark: b})
		savePrefs(s)
		applyOptions(s)
	}
	s.watchChk.OnChanged = func(b bool) {
		s.watching = b
		savePrefs(s)
		restartWatcher(s)
	}

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(s) }),
		widget.NewButton("Reload", func() { loadAll(s) }),
		widget.NewLabel("Metric:"), s.metricSelect,
		s.overlayChk, s.darkChk, s.watchChk,
		widget.NewLabel("File:"), s.fileLabel,
	)
	return container.NewBorder(top, s.statusLabel, nil, nil, container.NewVScroll(s.chart))
}

// menus and dialogs
func buildMenus(s *viewerState) {
	if s == nil || s.window == nil || s.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(s) {
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() {
			openPath(s, f)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(s); buildMenus(s) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(s) }),
		fyne.NewMenuItem("Reload", func() { loadAll(s) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG…", func() { exportChart(s, "png") }),
		fyne.NewMenuItem("Export SVG…", func() { exportChart(s, "svg") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { s.window.Close() }),
	)
	s.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := s.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(s) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(s) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(s) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(s) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { s.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { s.window.Close() })
	}
}

func openFileDialog(s *viewerState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		openPath(s, rc.URI().Path())
	}, s.window)
	d.Show()
}

func openPath(s *viewerState, path string) {
	s.filePath = path
	s.fileLabel.SetText(uihelpers.TruncatePath(path, 60))
	addRecentFile(s, path)
	savePrefs(s)
	buildMenus(s)
	loadAll(s)
	restartWatcher(s)
}

// loadAll reads the retained window of the current file and redraws.
func loadAll(s *viewerState) {
	if s.filePath == "" {
		return
	}
	data, err := metrics.LoadFile(s.filePath, chart.Window)
	if err != nil {
		dialog.ShowError(err, s.window)
		return
	}
	s.data = data
	s.cfg = s.base.WithDiscovered(data)

	opts := uihelpers.MetricOptions(s.cfg.Metrics)
	if d, ok := metrics.Find(s.cfg.Metrics, s.metric); ok && s.metric != "" {
		s.metric = d.Category + "." + d.Key
	} else if len(opts) > 0 {
		s.metric = opts[0]
	}
	s.metricSelect.Options = opts
	s.metricSelect.SetSelected(s.metric)

	s.chart.SetData(data)
	applyOptions(s)
	s.statusLabel.SetText(fmt.Sprintf("%d records, %d metrics", len(data), len(s.cfg.Metrics)))
	logging.Infof("[viewer] loaded %d records from %s", len(data), s.filePath)
}

// applyOptions pushes the toggles into the chart.
func applyOptions(s *viewerState) {
	if s.chart == nil {
		return
	}
	opts := s.viewerConfig().ChartOptions()
	s.chart.SetMetrics(opts.Metrics)
	s.chart.SetMetric(opts.Metric)
	s.chart.SetOverlay(opts.Overlay)
	s.chart.SetDarkMode(opts.DarkMode)
	if s.metricSelect != nil {
		if opts.Overlay {
			s.metricSelect.Disable()
		} else {
			s.metricSelect.Enable()
		}
	}
}

func restartWatcher(s *viewerState) {
	s.watcher.Close()
	s.watcher = nil
	if !s.watching || s.filePath == "" {
		return
	}
	w, err := watchFile(s.filePath, watchPeriod, func() {
		fyne.Do(func() { loadAll(s) })
	})
	if err != nil {
		dialog.ShowError(err, s.window)
		return
	}
	s.watcher = w
}

// recent files helpers
func recentFiles(s *viewerState) []string {
	var out []string
	for _, p := range uihelpers.SplitRecent(s.app.Preferences().StringWithFallback("recentFiles", "")) {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(s *viewerState, path string) {
	list := uihelpers.PushRecent(recentFiles(s), path)
	s.app.Preferences().SetString("recentFiles", strings.Join(list, "\n"))
}

func clearRecentFiles(s *viewerState) {
	if s == nil || s.app == nil {
		return
	}
	s.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(s *viewerState) {
	if s == nil || s.app == nil {
		return
	}
	prefs := s.app.Preferences()
	prefs.SetString("lastFile", s.filePath)
	prefs.SetString("metric", s.metric)
	prefs.SetBool("overlay", s.overlay)
	prefs.SetBool("darkMode", s.darkMode)
	prefs.SetBool("watch", s.watching)
}

func loadPrefs(s *viewerState) {
	if s == nil || s.app == nil {
		return
	}
	prefs := s.app.Preferences()
	if f := prefs.StringWithFallback("lastFile", s.filePath); f != "" {
		s.filePath = f
	}
	s.metric = prefs.StringWithFallback("metric", s.metric)
	s.overlay = prefs.BoolWithFallback("overlay", s.overlay)
	s.darkMode = prefs.BoolWithFallback("darkMode", s.darkMode)
	s.watching = prefs.BoolWithFallback("watch", s.watching)
}

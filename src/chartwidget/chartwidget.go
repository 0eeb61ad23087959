// Package chartwidget hosts the telemetry chart in a Fyne canvas: it routes
// hover and tap input to the chart, follows the window width to pick the
// input mode, and draws the tooltip overlay.
package chartwidget

import (
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/CanDashboard/src/chart"
	"github.com/iafilius/CanDashboard/src/logging"
	"github.com/iafilius/CanDashboard/src/metrics"
)

// ViewportPoll is how often a bound window's width is sampled.
const ViewportPoll = 300 * time.Millisecond

var (
	tooltipFill   = color.NRGBA{R: 0, G: 0, B: 0, A: 230}
	tooltipBorder = color.NRGBA{R: 34, G: 197, B: 94, A: 77}
	tooltipText   = color.NRGBA{R: 241, G: 245, B: 249, A: 255}
)

const (
	tooltipPad      = 8
	tooltipRadius   = 8
	tooltipMargin   = 10
	tooltipTextSize = 12
)

// Chart is a Fyne widget drawing a chart.Chart at the canvas pixel density.
type Chart struct {
	widget.BaseWidget

	core *chart.Chart

	mu    sync.Mutex
	ratio float64
	bind  sync.Once
	stop  chan struct{}
	done  sync.Once
}

// New creates the widget. cfg.Width is replaced by the laid-out width.
func New(cfg chart.Config) *Chart {
	w := &Chart{ratio: cfg.PixelRatio, stop: make(chan struct{})}
	if w.ratio <= 0 {
		w.ratio = 1
	}
	onHide := cfg.OnHide
	cfg.OnHide = func() {
		fyne.Do(w.Refresh)
		if onHide != nil {
			onHide()
		}
	}
	w.core = chart.New(cfg)
	w.ExtendBaseWidget(w)
	return w
}

// Core exposes the underlying chart (export, inspection). It stays owned by
// the widget.
func (w *Chart) Core() *chart.Chart { return w.core }

func (w *Chart) SetData(data []metrics.DataPoint) { w.core.SetData(data); w.Refresh() }
func (w *Chart) SetMetric(m *metrics.Descriptor)  { w.core.SetMetric(m); w.Refresh() }
func (w *Chart) SetMetrics(ms []metrics.Descriptor) {
	w.core.SetMetrics(ms)
	w.Refresh()
}

// SetOverlay switches between the single selected series and all series.
func (w *Chart) SetOverlay(on bool) { w.core.SetOverlay(on); w.Refresh() }

// SetDarkMode selects the dark or light palette.
func (w *Chart) SetDarkMode(on bool) { w.core.SetDarkMode(on); w.Refresh() }

// SetHeight changes the drawn height; the widget's minimum height follows.
func (w *Chart) SetHeight(h float64) { w.core.SetHeight(h); w.Refresh() }

// Bind follows win's width to choose between hover and tap tooltips. onResize,
// when non-nil, runs on the first sample and whenever the canvas size changes,
// on the Fyne goroutine. Only the first call has an effect; the poller stops
// when the widget is destroyed.
func (w *Chart) Bind(win fyne.Window, onResize func(fyne.Size)) {
	w.bind.Do(func() {
		last := win.Canvas().Size()
		w.core.SetViewportWidth(float64(last.Width))
		if onResize != nil {
			onResize(last)
		}
		go func() {
			t := time.NewTicker(ViewportPoll)
			defer t.Stop()
			for {
				select {
				case <-w.stop:
					return
				case <-t.C:
					fyne.Do(func() {
						size := win.Canvas().Size()
						w.core.SetViewportWidth(float64(size.Width))
						if onResize != nil && size != last {
							last = size
							onResize(size)
						}
					})
				}
			}
		}()
	})
}

// Close stops the viewport poller and any pending tooltip hide.
func (w *Chart) Close() {
	w.done.Do(func() {
		close(w.stop)
		w.core.Close()
	})
}

// MouseIn treats the pointer entering like a move.
func (w *Chart) MouseIn(ev *desktop.MouseEvent) { w.MouseMoved(ev) }

// MouseMoved updates the hover tooltip; it is ignored in compact mode.
func (w *Chart) MouseMoved(ev *desktop.MouseEvent) {
	w.core.PointerMove(chart.Point{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
	w.Refresh()
}

// MouseOut hides the hover tooltip.
func (w *Chart) MouseOut() {
	w.core.PointerLeave()
	w.Refresh()
}

// Tapped is the touch entry point; it only shows a tooltip in compact mode.
func (w *Chart) Tapped(ev *fyne.PointEvent) {
	w.core.TouchStart(chart.Point{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
	w.Refresh()
}

var (
	_ desktop.Hoverable = (*Chart)(nil)
	_ fyne.Tappable     = (*Chart)(nil)
)

// generate is the raster callback: pw×ph device pixels for the laid-out size.
func (w *Chart) generate(pw, ph int) image.Image {
	size := w.Size()
	if size.Width > 0 && pw > 0 {
		ratio := float64(pw) / float64(size.Width)
		w.mu.Lock()
		w.ratio = ratio
		w.mu.Unlock()
		w.core.Resize(float64(size.Width), ratio)
	}
	return w.core.Image()
}

func (w *Chart) currentRatio() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ratio
}

// CreateRenderer builds the raster and the tooltip overlay objects.
func (w *Chart) CreateRenderer() fyne.WidgetRenderer {
	r := &renderer{w: w}
	r.raster = canvas.NewRaster(w.generate)
	r.box = canvas.NewRectangle(tooltipFill)
	r.box.StrokeColor = tooltipBorder
	r.box.StrokeWidth = 1
	r.box.CornerRadius = tooltipRadius
	r.box.Hide()
	r.objs = []fyne.CanvasObject{r.raster, r.box}
	return r
}

type renderer struct {
	w      *Chart
	raster *canvas.Raster
	box    *canvas.Rectangle
	lines  []*canvas.Text
	objs   []fyne.CanvasObject
}

func (r *renderer) Destroy() { r.w.Close() }

func (r *renderer) MinSize() fyne.Size {
	_, h := r.w.core.Size()
	return fyne.NewSize(float32(chart.DefaultPadding.Left+chart.DefaultPadding.Right), float32(h))
}

func (r *renderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *renderer) Layout(size fyne.Size) {
	if size.Width > 0 {
		r.w.core.Resize(float64(size.Width), r.w.currentRatio())
	}
	_, h := r.w.core.Size()
	r.raster.Move(fyne.NewPos(0, 0))
	r.raster.Resize(fyne.NewSize(size.Width, float32(h)))
	r.layoutTooltip(size)
}

func (r *renderer) Refresh() {
	r.Layout(r.w.Size())
	r.raster.Refresh()
	r.box.Refresh()
	for _, t := range r.lines {
		t.Refresh()
	}
}

func (r *renderer) setLines(lines []string) {
	for len(r.lines) < len(lines) {
		t := canvas.NewText("", tooltipText)
		t.TextSize = tooltipTextSize
		r.lines = append(r.lines, t)
	}
	for i, t := range r.lines {
		if i < len(lines) {
			t.Text = lines[i]
			t.Show()
		} else {
			t.Text = ""
			t.Hide()
		}
	}
	objs := []fyne.CanvasObject{r.raster, r.box}
	for _, t := range r.lines {
		objs = append(objs, t)
	}
	r.objs = objs
}

// layoutTooltip centres the box horizontally on the anchor and puts its bottom
// edge tooltipMargin above it.
func (r *renderer) layoutTooltip(size fyne.Size) {
	tip := r.w.core.Tooltip()
	if !tip.Show {
		r.box.Hide()
		r.setLines(nil)
		return
	}
	lines := tip.Lines()
	r.setLines(lines)

	var textW, lineH float32
	for _, l := range lines {
		s := fyne.MeasureText(l, tooltipTextSize, fyne.TextStyle{})
		textW = float32(math.Max(float64(textW), float64(s.Width)))
		lineH = float32(math.Max(float64(lineH), float64(s.Height)))
	}
	boxW := textW + 2*tooltipPad
	boxH := lineH*float32(len(lines)) + 2*tooltipPad
	x := float32(tip.X) - boxW/2
	y := float32(tip.Y) - boxH - tooltipMargin
	logging.Debugf("[chartwidget] tooltip at %.0f,%.0f (%d lines) in %.0fx%.0f", x, y, len(lines), size.Width, size.Height)

	r.box.Move(fyne.NewPos(x, y))
	r.box.Resize(fyne.NewSize(boxW, boxH))
	r.box.Show()
	for i, t := range r.lines[:len(lines)] {
		t.Move(fyne.NewPos(x+tooltipPad, y+tooltipPad+lineH*float32(i)))
		t.Resize(fyne.NewSize(textW, lineH))
	}
}

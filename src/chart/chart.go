// Package chart draws a time-series line chart of telemetry metrics onto a
// 2D surface and resolves pointer/touch tooltips against it.
//
// Render is the stateless draw; Chart wraps it with the props, the backing
// surface, the tooltip state and the touch auto-hide timer a host widget needs.
package chart

import (
	"image"
	"io"
	"sync"
	"time"

	"github.com/iafilius/CanDashboard/src/logging"
	"github.com/iafilius/CanDashboard/src/metrics"
)

const (
	// DefaultWidth is the logical surface width used when none is configured.
	DefaultWidth = 800
	// CompactBreakpoint is the widest viewport that still uses touch input.
	CompactBreakpoint = 768
	// TouchHideDelay is how long a touch tooltip stays visible.
	TouchHideDelay = 3000 * time.Millisecond
)

// Timer is a pending delayed call.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it via a wrapper.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Config is the initial state of a Chart.
type Config struct {
	Options
	Data []metrics.DataPoint

	// Width is the displayed logical width; defaults to DefaultWidth.
	Width float64
	// PixelRatio is the device pixel ratio; defaults to 1.
	PixelRatio float64
	// ViewportWidth selects the input mode; zero uses Width.
	ViewportWidth float64

	// AfterFunc overrides the timer used for touch auto-hide.
	AfterFunc AfterFunc
	// OnHide runs, on the timer goroutine, after a touch tooltip auto-hid.
	OnHide func()
}

// Chart is a stateful chart: props, raster surface, tooltip and viewport mode.
// It is safe for concurrent use.
type Chart struct {
	mu sync.Mutex

	opts     Options
	data     []metrics.DataPoint
	width    float64
	ratio    float64
	viewport float64
	frame    Frame

	surface *RasterSurface
	state   *RenderState
	renders int

	tooltip   Tooltip
	hideTimer Timer
	hideGen   uint64
	afterFunc AfterFunc
	onHide    func()

	closed bool
}

// New builds a Chart and draws it once.
func New(cfg Config) *Chart {
	c := &Chart{
		opts:      cfg.Options,
		data:      cfg.Data,
		width:     cfg.Width,
		ratio:     cfg.PixelRatio,
		viewport:  cfg.ViewportWidth,
		afterFunc: cfg.AfterFunc,
		onHide:    cfg.OnHide,
	}
	if c.width <= 0 {
		c.width = DefaultWidth
	}
	if c.ratio <= 0 {
		c.ratio = 1
	}
	if c.afterFunc == nil {
		c.afterFunc = stdAfterFunc
	}
	c.surface = NewRasterSurface(c.width, c.opts.SurfaceHeight(), c.ratio)
	c.redrawLocked()
	return c
}

func (c *Chart) redrawLocked() {
	c.surface.Resize(c.width, c.opts.SurfaceHeight(), c.ratio)
	c.state = Render(c.surface, c.data, c.opts)
	c.renders++
	if c.state == nil {
		logging.Debugf("[chart] nothing to draw (records=%d metrics=%d)", len(c.data), len(c.opts.Selected()))
	}
}

// update applies fn under the lock and redraws when it reports a change.
func (c *Chart) update(fn func() bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if fn() {
		c.redrawLocked()
	}
}

// SetData replaces the records and redraws. The slice is read, never modified.
func (c *Chart) SetData(data []metrics.DataPoint) {
	c.update(func() bool {
		c.data = data
		return true
	})
}

// SetMetric sets the single-series descriptor and redraws.
func (c *Chart) SetMetric(m *metrics.Descriptor) {
	c.update(func() bool {
		c.opts.Metric = m
		return true
	})
}

// SetMetrics sets the overlay descriptors and redraws.
func (c *Chart) SetMetrics(ms []metrics.Descriptor) {
	c.update(func() bool {
		c.opts.Metrics = ms
		return true
	})
}

// SetOverlay switches between the selected series and every series.
func (c *Chart) SetOverlay(on bool) {
	c.update(func() bool {
		changed := c.opts.Overlay != on
		c.opts.Overlay = on
		return changed
	})
}

// SetDarkMode selects the dark or light palette and redraws on change.
func (c *Chart) SetDarkMode(on bool) {
	c.update(func() bool {
		changed := c.opts.DarkMode != on
		c.opts.DarkMode = on
		return changed
	})
}

// SetHeight changes the logical height, reallocating the backing store.
func (c *Chart) SetHeight(h float64) {
	c.update(func() bool {
		changed := c.opts.Height != h
		c.opts.Height = h
		return changed
	})
}

// Resize reports a new displayed width or device pixel ratio.
func (c *Chart) Resize(width, ratio float64) {
	if width <= 0 {
		return
	}
	if ratio <= 0 {
		ratio = 1
	}
	c.update(func() bool {
		changed := c.width != width || c.ratio != ratio
		c.width, c.ratio = width, ratio
		return changed
	})
}

// SetFrame sets where the surface sits inside the tooltip's container.
func (c *Chart) SetFrame(f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame = f
}

// SetViewportWidth re-evaluates the input mode. It never redraws.
func (c *Chart) SetViewportWidth(w float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = w
}

// Compact reports whether touch input is active.
func (c *Chart) Compact() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compactLocked()
}

func (c *Chart) compactLocked() bool {
	vw := c.viewport
	if vw <= 0 {
		vw = c.width
	}
	return vw <= CompactBreakpoint
}

func (c *Chart) layoutLocked() Layout {
	return NewLayout(c.width, c.opts.SurfaceHeight())
}

func (c *Chart) resolveLocked(p Point) Tooltip {
	return ResolveTooltip(c.layoutLocked(), c.data, c.opts.Selected(), p, c.frame)
}

// PointerMove updates the tooltip for a hover at surface-local p. Ignored in
// compact mode.
func (c *Chart) PointerMove(p Point) Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.compactLocked() {
		return c.tooltip
	}
	c.cancelHideLocked()
	c.tooltip = c.resolveLocked(p)
	return c.tooltip
}

// PointerLeave hides the tooltip.
func (c *Chart) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cancelHideLocked()
	c.tooltip = Tooltip{}
}

// TouchStart updates the tooltip for a tap at surface-local p and arms the
// auto-hide timer. Ignored outside compact mode.
func (c *Chart) TouchStart(p Point) Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.compactLocked() {
		return c.tooltip
	}
	c.cancelHideLocked()
	c.tooltip = c.resolveLocked(p)
	if c.tooltip.Show {
		gen := c.hideGen
		c.hideTimer = c.afterFunc(TouchHideDelay, func() { c.autoHide(gen) })
	}
	return c.tooltip
}

func (c *Chart) cancelHideLocked() {
	c.hideGen++
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
}

func (c *Chart) autoHide(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.hideGen {
		c.mu.Unlock()
		return
	}
	c.tooltip = Tooltip{}
	c.hideTimer = nil
	onHide := c.onHide
	c.mu.Unlock()

	if onHide != nil {
		onHide()
	}
}

// Tooltip returns the current tooltip state.
func (c *Chart) Tooltip() Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tooltip
}

// RenderState returns the last draw, or nil if it drew nothing.
func (c *Chart) RenderState() *RenderState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Renders counts render passes since New.
func (c *Chart) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

// Options returns the current props.
func (c *Chart) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// Size returns the logical surface size.
func (c *Chart) Size() (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.Size()
}

// Image returns the drawn surface. It is owned by the Chart and must not be
// modified; the next redraw overwrites it.
func (c *Chart) Image() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.Image()
}

// WritePNG encodes the current surface.
func (c *Chart) WritePNG(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.EncodePNG(w)
}

// WriteSVG draws the current props onto a vector surface and writes it.
func (c *Chart) WriteSVG(w io.Writer) error {
	c.mu.Lock()
	width, height := c.surface.Size()
	data, opts := c.data, c.opts
	c.mu.Unlock()

	vs, err := NewVectorSurface(width, height)
	if err != nil {
		return err
	}
	Render(vs, data, opts)
	return vs.Save(w)
}

// Close cancels any pending auto-hide. Later calls are no-ops.
func (c *Chart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cancelHideLocked()
	c.closed = true
}

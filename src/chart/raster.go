package chart

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RasterSurface draws into an RGBA image whose backing resolution is the
// logical size multiplied by the device pixel ratio.
type RasterSurface struct {
	dc            *gg.Context
	width, height float64
	ratio         float64

	stroke, fill drawing.Color
	lineWidth    float64
	font         Font
}

// NewRasterSurface allocates a surface of width×height logical pixels.
func NewRasterSurface(width, height, ratio float64) *RasterSurface {
	s := &RasterSurface{lineWidth: 1}
	s.Resize(width, height, ratio)
	return s
}

// Resize reallocates the backing store when the logical size or ratio changed,
// reporting whether it did. A fresh backing store is blank.
func (s *RasterSurface) Resize(width, height, ratio float64) bool {
	if ratio <= 0 {
		ratio = 1
	}
	if s.dc != nil && width == s.width && height == s.height && ratio == s.ratio {
		return false
	}
	pw, ph := backingSize(width, height, ratio)
	s.width, s.height, s.ratio = width, height, ratio
	s.dc = gg.NewContext(pw, ph)
	s.dc.Scale(ratio, ratio)
	if s.font.Size > 0 {
		s.dc.SetFontFace(faceFor(s.font, ratio))
	}
	return true
}

func backingSize(width, height, ratio float64) (int, int) {
	pw := int(math.Round(width * ratio))
	ph := int(math.Round(height * ratio))
	return max(pw, 1), max(ph, 1)
}

// Size returns the logical size.
func (s *RasterSurface) Size() (float64, float64) { return s.width, s.height }

// Image exposes the backing image. Callers must treat it as read-only; it is
// redrawn in place on the next render.
func (s *RasterSurface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the backing image as PNG.
func (s *RasterSurface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

func (s *RasterSurface) Clear() {
	s.dc.ClearPath()
	s.dc.SetColor(color.Transparent)
	s.dc.Clear()
}

func (s *RasterSurface) SetStrokeColor(c drawing.Color) { s.stroke = c }
func (s *RasterSurface) SetFillColor(c drawing.Color)   { s.fill = c }
func (s *RasterSurface) SetLineWidth(w float64)         { s.lineWidth = w }

func (s *RasterSurface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }
func (s *RasterSurface) LineTo(x, y float64) { s.dc.LineTo(x, y) }

func (s *RasterSurface) Stroke() {
	s.dc.SetColor(s.stroke)
	// gg does not scale line widths with the transform.
	s.dc.SetLineWidth(s.lineWidth * s.ratio)
	s.dc.Stroke()
}

func (s *RasterSurface) FillCircle(x, y, r float64) {
	s.dc.NewSubPath()
	s.dc.DrawCircle(x, y, r)
	s.dc.SetColor(s.fill)
	s.dc.Fill()
}

func (s *RasterSurface) FillRect(x, y, w, h float64) {
	s.dc.NewSubPath()
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(s.fill)
	s.dc.Fill()
}

func (s *RasterSurface) SetFont(f Font) {
	s.font = f
	s.dc.SetFontFace(faceFor(f, s.ratio))
}

func (s *RasterSurface) MeasureText(text string) float64 {
	w, _ := s.dc.MeasureString(text)
	return w / s.ratio
}

func (s *RasterSurface) FillText(text string, x, y float64) {
	s.dc.SetColor(s.fill)
	// The face is already sized in device pixels, so glyphs bypass the scale.
	s.dc.Push()
	s.dc.Identity()
	s.dc.DrawString(text, x*s.ratio, y*s.ratio)
	s.dc.Pop()
}

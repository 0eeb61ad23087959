package chart

import (
	"html"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// VectorSurface records drawing as SVG through go-chart's vector renderer.
type VectorSurface struct {
	r             gochart.Renderer
	width, height float64

	stroke, fill drawing.Color
	lineWidth    float64
	font         Font
}

// NewVectorSurface returns an SVG surface of width×height logical pixels.
func NewVectorSurface(width, height float64) (*VectorSurface, error) {
	s := &VectorSurface{width: width, height: height, lineWidth: 1}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *VectorSurface) reset() error {
	r, err := gochart.SVG(int(math.Ceil(s.width)), int(math.Ceil(s.height)))
	if err != nil {
		return err
	}
	// 72 DPI keeps font points equal to pixels.
	r.SetDPI(72)
	s.r = r
	return nil
}

// Save writes the finished SVG document. The surface is spent afterwards.
func (s *VectorSurface) Save(w io.Writer) error { return s.r.Save(w) }

func (s *VectorSurface) Size() (float64, float64) { return s.width, s.height }

// Clear starts a new document; SVG has no erase operation.
func (s *VectorSurface) Clear() {
	_ = s.reset()
}

func (s *VectorSurface) SetStrokeColor(c drawing.Color) { s.stroke = c }
func (s *VectorSurface) SetFillColor(c drawing.Color)   { s.fill = c }
func (s *VectorSurface) SetLineWidth(w float64)         { s.lineWidth = w }

func (s *VectorSurface) MoveTo(x, y float64) { s.r.MoveTo(px(x), px(y)) }
func (s *VectorSurface) LineTo(x, y float64) { s.r.LineTo(px(x), px(y)) }

func (s *VectorSurface) Stroke() {
	s.r.ResetStyle()
	s.r.SetStrokeColor(s.stroke)
	s.r.SetStrokeWidth(s.lineWidth)
	s.r.Stroke()
}

func (s *VectorSurface) FillCircle(x, y, r float64) {
	s.r.ResetStyle()
	s.r.SetFillColor(s.fill)
	s.r.Circle(r, px(x), px(y))
}

func (s *VectorSurface) FillRect(x, y, w, h float64) {
	s.r.ResetStyle()
	s.r.SetFillColor(s.fill)
	s.r.MoveTo(px(x), px(y))
	s.r.LineTo(px(x+w), px(y))
	s.r.LineTo(px(x+w), px(y+h))
	s.r.LineTo(px(x), px(y+h))
	s.r.Close()
	s.r.Fill()
}

func (s *VectorSurface) SetFont(f Font) { s.font = f }

func (s *VectorSurface) applyFont() bool {
	ttf := ttfFor(s.font)
	if ttf == nil {
		return false
	}
	s.r.ResetStyle()
	s.r.SetFont(ttf)
	s.r.SetFontSize(s.font.Size)
	return true
}

func (s *VectorSurface) MeasureText(text string) float64 {
	if !s.applyFont() {
		return 0
	}
	return float64(s.r.MeasureText(text).Width())
}

func (s *VectorSurface) FillText(text string, x, y float64) {
	if !s.applyFont() {
		return
	}
	s.r.SetFontColor(s.fill)
	s.r.Text(html.EscapeString(text), px(x), px(y))
}

func px(v float64) int { return int(math.Round(v)) }

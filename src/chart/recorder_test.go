package chart

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type textOp struct {
	Text  string
	X, Y  float64
	Color drawing.Color
	Font  Font
}

type strokeOp struct {
	Color    drawing.Color
	Width    float64
	Segments int
}

type shapeOp struct {
	X, Y, W, H float64
	Color      drawing.Color
}

// recorder is a Surface that records draw calls. Text measures 8px per byte.
type recorder struct {
	w, h float64

	clears  int
	texts   []textOp
	strokes []strokeOp
	circles []shapeOp
	rects   []shapeOp

	stroke, fill drawing.Color
	lineWidth    float64
	font         Font
	segments     int
}

func newRecorder(w, h float64) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Size() (float64, float64) { return r.w, r.h }

func (r *recorder) Clear() {
	r.clears++
	r.texts, r.strokes, r.circles, r.rects = nil, nil, nil, nil
	r.segments = 0
}

func (r *recorder) SetStrokeColor(c drawing.Color) { r.stroke = c }
func (r *recorder) SetFillColor(c drawing.Color)   { r.fill = c }
func (r *recorder) SetLineWidth(w float64)         { r.lineWidth = w }
func (r *recorder) MoveTo(x, y float64)            {}
func (r *recorder) LineTo(x, y float64)            { r.segments++ }

func (r *recorder) Stroke() {
	r.strokes = append(r.strokes, strokeOp{Color: r.stroke, Width: r.lineWidth, Segments: r.segments})
	r.segments = 0
}

func (r *recorder) FillCircle(x, y, rad float64) {
	r.circles = append(r.circles, shapeOp{X: x, Y: y, W: rad, H: rad, Color: r.fill})
}

func (r *recorder) FillRect(x, y, w, h float64) {
	r.rects = append(r.rects, shapeOp{X: x, Y: y, W: w, H: h, Color: r.fill})
}

func (r *recorder) SetFont(f Font)                  { r.font = f }
func (r *recorder) MeasureText(s string) float64    { return float64(8 * len(s)) }
func (r *recorder) FillText(s string, x, y float64) { r.texts = append(r.texts, textOp{s, x, y, r.fill, r.font}) }

// textsIn returns the recorded texts drawn in color c.
func (r *recorder) textsIn(c drawing.Color) []textOp {
	var out []textOp
	for _, t := range r.texts {
		if t.Color.Equals(c) {
			out = append(out, t)
		}
	}
	return out
}

func (r *recorder) strokesIn(c drawing.Color) []strokeOp {
	var out []strokeOp
	for _, s := range r.strokes {
		if s.Color.Equals(c) {
			out = append(out, s)
		}
	}
	return out
}

package chart

import "github.com/wcharczuk/go-chart/v2/drawing"

// Surface is the 2D drawing target of the render algorithm. Coordinates and
// sizes are logical pixels; implementations map them onto their backing store.
// Text is drawn with its baseline at y.
type Surface interface {
	Size() (width, height float64)
	Clear()

	SetStrokeColor(c drawing.Color)
	SetFillColor(c drawing.Color)
	SetLineWidth(w float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Stroke draws the current path and starts a new one.
	Stroke()

	FillCircle(x, y, r float64)
	FillRect(x, y, w, h float64)

	SetFont(f Font)
	MeasureText(s string) float64
	// FillText draws s in the fill color.
	FillText(s string, x, y float64)
}

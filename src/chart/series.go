package chart

import (
	"time"

	"github.com/iafilius/CanDashboard/src/metrics"
)

// Window is the number of most recent records drawn and hit-tested.
const Window = 50

// DefaultHeight is the logical surface height used when none is configured.
const DefaultHeight = 200

// Options are the caller-supplied props of a chart.
type Options struct {
	// Metric is the plotted value in single-series mode.
	Metric *metrics.Descriptor
	// Metrics are plotted together in overlay mode; outside overlay mode a
	// non-nil Metrics takes precedence over Metric.
	Metrics  []metrics.Descriptor
	Height   float64
	Overlay  bool
	DarkMode bool
}

// Selected returns the descriptors a draw (and a tooltip) covers.
func (o Options) Selected() []metrics.Descriptor {
	if o.Overlay {
		return o.Metrics
	}
	if o.Metrics != nil {
		return o.Metrics
	}
	if o.Metric != nil {
		return []metrics.Descriptor{*o.Metric}
	}
	return nil
}

// SurfaceHeight returns Height, or DefaultHeight when unset.
func (o Options) SurfaceHeight() float64 {
	if o.Height <= 0 {
		return DefaultHeight
	}
	return o.Height
}

// Retain returns the retained window: the last Window records of data.
func Retain(data []metrics.DataPoint) []metrics.DataPoint {
	if len(data) <= Window {
		return data
	}
	return data[len(data)-Window:]
}

// Row is one retained record with its values aligned to the selected descriptors.
type Row struct {
	Index     int
	Timestamp time.Time
	Values    []float64
}

// Prepare extracts the plotted values of the retained window.
func Prepare(data []metrics.DataPoint, selected []metrics.Descriptor) []Row {
	kept := Retain(data)
	rows := make([]Row, len(kept))
	for i, p := range kept {
		values := make([]float64, len(selected))
		for j, d := range selected {
			values[j] = p.Value(d)
		}
		rows[i] = Row{Index: i, Timestamp: p.Timestamp, Values: values}
	}
	return rows
}

// Extent is the value span of one series. Range is never zero.
type Extent struct {
	Min, Max, Range float64
}

// ExtentOf computes the extent of column col across rows.
func ExtentOf(rows []Row, col int) Extent {
	if len(rows) == 0 {
		return Extent{Range: 1}
	}
	e := Extent{Min: rows[0].Values[col], Max: rows[0].Values[col]}
	for _, r := range rows[1:] {
		v := r.Values[col]
		if v < e.Min {
			e.Min = v
		}
		if v > e.Max {
			e.Max = v
		}
	}
	e.Range = e.Max - e.Min
	if e.Range == 0 {
		e.Range = 1
	}
	return e
}

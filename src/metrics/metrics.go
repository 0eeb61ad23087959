// Package metrics holds the telemetry record shape the chart reads and the
// descriptors that select which nested values get plotted.
//
// A DataPoint is keyed by category ("engine", "battery", ...); each category
// maps metric keys to a number or a boolean. Lookups never fail: a missing
// category, a missing key or a value of an unexpected type reads as zero.
package metrics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// DataPoint is one telemetry record.
type DataPoint struct {
	Timestamp  time.Time
	Categories map[string]map[string]any
}

// Descriptor identifies one plotted value and how it is labelled.
type Descriptor struct {
	Key      string `json:"key" yaml:"key" mapstructure:"key"`
	Category string `json:"category" yaml:"category" mapstructure:"category"`
	Label    string `json:"label" yaml:"label" mapstructure:"label"`
	Color    string `json:"color" yaml:"color" mapstructure:"color"`
	Unit     string `json:"unit,omitempty" yaml:"unit,omitempty" mapstructure:"unit"`
}

// Lookup returns the raw value stored at category/key.
func (p DataPoint) Lookup(category, key string) (any, bool) {
	cat, ok := p.Categories[category]
	if !ok || cat == nil {
		return nil, false
	}
	v, ok := cat[key]
	return v, ok
}

// Value returns the plotted value for d: booleans map to 1/0, numbers pass
// through, everything else (missing, strings, NaN, objects) reads as 0.
func (p DataPoint) Value(d Descriptor) float64 {
	v, ok := p.Lookup(d.Category, d.Key)
	if !ok {
		return 0
	}
	return Numeric(v)
}

// Numeric coerces a decoded JSON value into a plottable number.
func Numeric(v any) float64 {
	var f float64
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// DisplayValue formats the value at d for a tooltip line: ON/OFF for
// booleans, two decimals for numbers, strings verbatim, 0.00 otherwise.
func (p DataPoint) DisplayValue(d Descriptor) string {
	v, ok := p.Lookup(d.Category, d.Key)
	if !ok {
		return "0.00"
	}
	switch x := v.(type) {
	case bool:
		if x {
			return "ON"
		}
		return "OFF"
	case string:
		return x
	}
	return strconv.FormatFloat(Numeric(v), 'f', 2, 64)
}

// TooltipLine renders "{label}: {value} {unit}" for one descriptor.
func (p DataPoint) TooltipLine(d Descriptor) string {
	line := d.Label + ": " + p.DisplayValue(d) + " " + d.Unit
	return strings.TrimRight(line, " ")
}

// Categories lists the distinct category names across points, in first-seen order.
func Categories(points []DataPoint) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range points {
		for _, name := range sortedKeys(p.Categories) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

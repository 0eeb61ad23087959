package main

import (
	"fmt"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/iafilius/CanDashboard/src/chart"
	"github.com/iafilius/CanDashboard/src/chartwidget"
	"github.com/iafilius/CanDashboard/src/metrics"
)

// probeData is a minute of synthetic engine telemetry ending now.
func probeData(now time.Time) []metrics.DataPoint {
	out := make([]metrics.DataPoint, chart.Window)
	for i := range out {
		phase := float64(i) / 6
		out[i] = metrics.DataPoint{
			Timestamp: now.Add(time.Duration(i-len(out)+1) * time.Second),
			Categories: map[string]map[string]any{
				"engine":  {"rpm": 1800 + 600*math.Sin(phase), "running": i%20 < 15},
				"battery": {"voltage": 12.6 + 0.3*math.Cos(phase)},
			},
		}
	}
	return out
}

func main() {
	fmt.Println("[fyneprobe] starting chart probe")
	a := app.New()
	w := a.NewWindow("Fyne Probe")

	data := probeData(time.Now())
	ds := metrics.Discover(data)
	c := chartwidget.New(chart.Config{
		Options: chart.Options{Metrics: ds, Overlay: true, DarkMode: true},
		Data:    data,
	})
	w.SetContent(c)
	w.Resize(fyne.NewSize(900, 260))
	c.Bind(w, nil)
	w.SetOnClosed(c.Close)
	go func() {
		time.Sleep(5 * time.Second)
		fmt.Println("[fyneprobe] closing window via fyne.Do")
		fyne.Do(func() { w.Close() })
	}()
	w.ShowAndRun()
	fmt.Println("[fyneprobe] exited cleanly")
}

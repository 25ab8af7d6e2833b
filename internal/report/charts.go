package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesPalette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
}

type series struct {
	name   string
	values []float64
}

// renderLineChart draws one panel as a PNG. yMax <= 0 means auto-scale from
// the data. Callers must pass at least two points; shorter histories get a
// placeholder panel instead of a chart.
func renderLineChart(title, yLabel string, xs []float64, yMax float64, ss ...series) ([]byte, error) {
	if len(xs) < 2 {
		return nil, fmt.Errorf("chart %q needs at least 2 points, got %d", title, len(xs))
	}

	if yMax <= 0 {
		for _, s := range ss {
			for _, v := range s.values {
				if v > yMax {
					yMax = v
				}
			}
		}
		yMax *= 1.1
		if yMax <= 0 {
			yMax = 1
		}
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1100,
		Height: 330,
		XAxis:  chart.XAxis{Name: "time (s)"},
		YAxis: chart.YAxis{
			Name:  yLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
	}
	for i, s := range ss {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.name,
			XValues: xs,
			YValues: s.values,
			Style: chart.Style{
				StrokeColor: seriesPalette[i%len(seriesPalette)],
				StrokeWidth: 2,
			},
		})
	}
	if len(ss) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

// scale returns a copy of xs with every element divided by div.
func scale(xs []float64, div float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x / div
	}
	return out
}

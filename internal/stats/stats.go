// Package stats holds the small numeric helpers shared by the report and the
// live view.
package stats

import (
	"fmt"
	"math"
)

// Summary describes one metric channel.
type Summary struct {
	Mean  float64
	Min   float64
	Max   float64
	Stdev float64
}

// Summarize computes mean, min, max, and sample standard deviation (n-1
// divisor, 0 when n <= 1). An empty input yields the zero Summary.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}

	var sum float64
	min, max := xs[0], xs[0]
	for _, x := range xs {
		sum += x
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	mean := sum / float64(len(xs))

	var stdev float64
	if len(xs) > 1 {
		var ss float64
		for _, x := range xs {
			d := x - mean
			ss += d * d
		}
		stdev = math.Sqrt(ss / float64(len(xs)-1))
	}

	return Summary{Mean: mean, Min: min, Max: max, Stdev: stdev}
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(xs []float64) float64 {
	return Summarize(xs).Mean
}

// FormatBytes renders a byte count with two decimals and the largest unit
// that keeps the value under 1024, e.g. 1536 -> "1.50 KB".
func FormatBytes(v float64) string {
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if v < 1024.0 {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
		v /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", v)
}

// FormatRate renders a bytes-per-second throughput.
func FormatRate(v float64) string {
	return FormatBytes(v) + "/s"
}

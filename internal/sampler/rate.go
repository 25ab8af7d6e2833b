package sampler

import "time"

// Rate converts two cumulative counter readings into a bytes-per-second
// throughput. A non-advancing clock yields 0, as does a counter that moved
// backwards (kernel reset or 64-bit wrap); negative rates are never returned.
func Rate(prev, curr uint64, prevTime, currTime time.Time) float64 {
	dt := currTime.Sub(prevTime).Seconds()
	if dt <= 0 {
		return 0
	}
	if curr < prev {
		return 0
	}
	return float64(curr-prev) / dt
}

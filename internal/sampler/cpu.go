package sampler

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/seojin-dev/resmon/internal/model"
)

// cpuSource measures CPU usage over a short blocking window. An instantaneous
// read would report 0 or a value carried over from an unrelated earlier call,
// so every Read blocks for 2*window (one pass aggregate, one pass per-core).
type cpuSource struct {
	window time.Duration
}

func newCPUSource() *cpuSource {
	return &cpuSource{window: 100 * time.Millisecond}
}

func (s *cpuSource) Read() model.CPUReading {
	var r model.CPUReading

	if total, err := cpu.Percent(s.window, false); err == nil && len(total) > 0 {
		r.Percent = total[0]
	}
	if perCore, err := cpu.Percent(s.window, true); err == nil {
		r.PerCore = perCore
	}

	if counts, err := cpu.Counts(true); err == nil && counts > 0 {
		r.Cores = counts
	} else {
		r.Cores = len(r.PerCore)
	}
	// Keep the per-core list in step with the core count even when one of
	// the two queries failed for this pass.
	if len(r.PerCore) != r.Cores && r.Cores > 0 {
		padded := make([]float64, r.Cores)
		copy(padded, r.PerCore)
		r.PerCore = padded
	}

	// Frequency is unavailable on some platforms; leave 0 rather than fail.
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		r.FreqMHz = info[0].Mhz
	}

	return r
}

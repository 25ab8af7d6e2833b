package sampler

import (
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/seojin-dev/resmon/internal/model"
)

// diskSource reports root filesystem usage and system-wide I/O throughput.
// It owns the previous cumulative counters; every Read advances that state,
// so successive calls are the expected pattern, not a repeatable query.
type diskSource struct {
	path      string
	prevRead  uint64
	prevWrite uint64
	prevTime  time.Time
	primed    bool
}

func newDiskSource(path string) *diskSource {
	return &diskSource{path: path}
}

func (s *diskSource) Read(now time.Time) model.DiskReading {
	var r model.DiskReading

	if usage, err := disk.Usage(s.path); err == nil {
		r.Percent = usage.UsedPercent
		r.Total = usage.Total
		r.Used = usage.Used
		r.Free = usage.Free
	}

	counters, err := disk.IOCounters()
	if err != nil {
		return r
	}

	var readBytes, writeBytes uint64
	for name, st := range counters {
		if strings.HasPrefix(name, "loop") {
			continue
		}
		readBytes += st.ReadBytes
		writeBytes += st.WriteBytes
	}

	if s.primed {
		r.ReadRate = Rate(s.prevRead, readBytes, s.prevTime, now)
		r.WriteRate = Rate(s.prevWrite, writeBytes, s.prevTime, now)
	}
	s.prevRead, s.prevWrite = readBytes, writeBytes
	s.prevTime = now
	s.primed = true

	return r
}

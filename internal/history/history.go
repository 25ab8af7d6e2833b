// Package history keeps the rolling time series of snapshots collected during
// a monitoring session. One writer (the sampling loop) appends; any number of
// readers (live view, report export) take consistent copies.
package history

import (
	"sync"
	"time"

	"github.com/seojin-dev/resmon/internal/model"
)

// Channels are the per-metric parallel arrays derived from the snapshots,
// kept in lockstep so chart and report consumers never re-derive them.
// All slices always have identical length.
type Channels struct {
	Timestamps    []time.Time
	Elapsed       []float64
	CPUPercent    []float64
	MemoryPercent []float64
	DiskRead      []float64 // bytes/s
	DiskWrite     []float64 // bytes/s
	NetSent       []float64 // bytes/s
	NetRecv       []float64 // bytes/s
	Temperature   []float64 // mean Celsius across all sensors
	GPUUsage      []float64 // percent

	// TemperatureSeen and GPUSeen record whether the channel ever produced a
	// real reading, so a flat-zero series can be told apart from a platform
	// without the sensor.
	TemperatureSeen bool
	GPUSeen         bool
}

// Len returns the number of data points.
func (c Channels) Len() int { return len(c.Timestamps) }

// History is safe for one concurrent writer and many concurrent readers.
// Readers never observe a torn append: the parallel arrays grow together
// under the write lock, and reads hand out deep copies.
type History struct {
	mu    sync.RWMutex
	snaps []model.Snapshot
	ch    Channels
}

func New() *History {
	return &History{}
}

// Append records one snapshot and extends every derived channel.
// Temperature is stored as the mean of all sensor readings; per-sensor
// identity is intentionally dropped from the series (the full map stays on
// the Snapshot itself).
func (h *History) Append(s model.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snaps = append(h.snaps, s)
	h.ch.Timestamps = append(h.ch.Timestamps, s.Timestamp)
	h.ch.Elapsed = append(h.ch.Elapsed, s.Elapsed)
	h.ch.CPUPercent = append(h.ch.CPUPercent, s.CPU.Percent)
	h.ch.MemoryPercent = append(h.ch.MemoryPercent, s.Memory.Percent)
	h.ch.DiskRead = append(h.ch.DiskRead, s.Disk.ReadRate)
	h.ch.DiskWrite = append(h.ch.DiskWrite, s.Disk.WriteRate)
	h.ch.NetSent = append(h.ch.NetSent, s.Network.SentRate)
	h.ch.NetRecv = append(h.ch.NetRecv, s.Network.RecvRate)
	h.ch.Temperature = append(h.ch.Temperature, s.Temperature.Mean())
	h.ch.GPUUsage = append(h.ch.GPUUsage, s.GPU.Usage)

	h.ch.TemperatureSeen = h.ch.TemperatureSeen || s.Temperature.Available
	h.ch.GPUSeen = h.ch.GPUSeen || s.GPU.Available
}

// Channels returns a deep copy of every derived series, so callers can chart
// or summarize without holding the lock or racing the writer.
func (h *History) Channels() Channels {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return Channels{
		Timestamps:      append([]time.Time(nil), h.ch.Timestamps...),
		Elapsed:         append([]float64(nil), h.ch.Elapsed...),
		CPUPercent:      append([]float64(nil), h.ch.CPUPercent...),
		MemoryPercent:   append([]float64(nil), h.ch.MemoryPercent...),
		DiskRead:        append([]float64(nil), h.ch.DiskRead...),
		DiskWrite:       append([]float64(nil), h.ch.DiskWrite...),
		NetSent:         append([]float64(nil), h.ch.NetSent...),
		NetRecv:         append([]float64(nil), h.ch.NetRecv...),
		Temperature:     append([]float64(nil), h.ch.Temperature...),
		GPUUsage:        append([]float64(nil), h.ch.GPUUsage...),
		TemperatureSeen: h.ch.TemperatureSeen,
		GPUSeen:         h.ch.GPUSeen,
	}
}

// Snapshots returns a copy of the raw snapshot sequence in insertion order.
func (h *History) Snapshots() []model.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]model.Snapshot(nil), h.snaps...)
}

// Latest returns the most recent snapshot, false when the history is empty.
func (h *History) Latest() (model.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.snaps) == 0 {
		return model.Snapshot{}, false
	}
	return h.snaps[len(h.snaps)-1], true
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.snaps)
}

// Clear resets every series to length 0.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snaps = nil
	h.ch = Channels{}
}

package model

import "time"

// CPUReading aggregates instantaneous CPU usage.
type CPUReading struct {
	Percent float64   // percent 0-100
	Cores   int       // logical core count
	FreqMHz float64   // current frequency, 0 if the platform can't report it
	PerCore []float64 // per-core percent
}

// MemoryReading captures RAM and swap usage in bytes for precision.
type MemoryReading struct {
	Percent     float64
	Total       uint64
	Used        uint64
	Available   uint64
	SwapPercent float64
	SwapTotal   uint64
	SwapUsed    uint64
}

// DiskReading holds root filesystem usage plus derived I/O throughput.
// Rates are bytes per second and 0 on the first sample of a source.
type DiskReading struct {
	Percent   float64
	Total     uint64
	Used      uint64
	Free      uint64
	ReadRate  float64
	WriteRate float64
}

// NetworkReading holds cumulative interface counters plus derived throughput.
// The counters are monotonic under normal operation; a decrease means the
// kernel reset or wrapped them.
type NetworkReading struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	SentRate    float64 // bytes/s
	RecvRate    float64 // bytes/s
}

// TemperatureReading maps a sensor group name to its Celsius readings.
// Available is false when the platform exposes no sensors; the zero map must
// then not be treated as a real measurement.
type TemperatureReading struct {
	Available bool
	Sensors   map[string][]float64
}

// Mean collapses all readings across all groups into one scalar, 0 if none.
func (t TemperatureReading) Mean() float64 {
	var sum float64
	var n int
	for _, vals := range t.Sensors {
		for _, v := range vals {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// GPUReading is the result of one vendor-utility query. When Available is
// false the numeric fields are defined as 0 and carry no meaning.
type GPUReading struct {
	Available bool
	Usage     float64 // percent
	MemoryMB  float64
	TempC     float64
}

// Snapshot is one complete, timestamped set of readings across all sources.
// It is immutable after creation; History owns it once appended.
type Snapshot struct {
	Timestamp   time.Time
	Elapsed     float64 // seconds since the sampler clock was last reset
	CPU         CPUReading
	Memory      MemoryReading
	Disk        DiskReading
	Network     NetworkReading
	Temperature TemperatureReading
	GPU         GPUReading
}

// Package sampler polls OS-level counters and assembles them into immutable
// snapshots. Each source owns its previous-counter state, so one Sampler
// instance must only be driven by one goroutine at a time.
package sampler

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/seojin-dev/resmon/internal/model"
)

// Options tunes which sources a Sampler queries.
type Options struct {
	EnableGPU bool
	DiskPath  string // filesystem to report usage for, "/" when empty
}

// Sampler orchestrates one full sampling pass across all metric sources.
type Sampler struct {
	log   hclog.Logger
	start time.Time

	cpu  *cpuSource
	mem  memSource
	disk *diskSource
	net  *netSource
	temp tempSource
	gpu  *gpuSource

	gpuEnabled bool
	gpuWarned  bool
}

func New(log hclog.Logger, opts Options) *Sampler {
	path := opts.DiskPath
	if path == "" {
		path = "/"
	}
	return &Sampler{
		log:        log,
		start:      time.Now(),
		cpu:        newCPUSource(),
		disk:       newDiskSource(path),
		net:        newNetSource(),
		gpu:        newGPUSource(),
		gpuEnabled: opts.EnableGPU,
	}
}

// ResetClock restarts the elapsed-seconds origin carried on snapshots.
// Called at the start of each monitoring session.
func (s *Sampler) ResetClock() {
	s.start = time.Now()
}

// Collect runs every source exactly once and assembles one Snapshot under a
// single shared timestamp. It never fails: a source that cannot deliver marks
// its reading unavailable or zero instead of aborting the pass.
func (s *Sampler) Collect() model.Snapshot {
	now := time.Now()

	snap := model.Snapshot{
		Timestamp:   now,
		Elapsed:     now.Sub(s.start).Seconds(),
		CPU:         s.cpu.Read(),
		Memory:      s.mem.Read(),
		Disk:        s.disk.Read(now),
		Network:     s.net.Read(now),
		Temperature: s.temp.Read(),
	}
	if s.gpuEnabled {
		snap.GPU = s.gpu.Read()
		if !snap.GPU.Available && !s.gpuWarned {
			s.log.Warn("gpu query unavailable, reporting zeros", "command", s.gpu.command)
			s.gpuWarned = true
		}
	}

	s.log.Debug("collected snapshot",
		"elapsed", snap.Elapsed,
		"cpu", snap.CPU.Percent,
		"mem", snap.Memory.Percent)
	return snap
}

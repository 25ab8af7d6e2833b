package sampler

import (
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/seojin-dev/resmon/internal/model"
)

// netSource reports aggregate network counters and derived throughput.
// Like diskSource it owns the previous counter state.
type netSource struct {
	prevSent uint64
	prevRecv uint64
	prevTime time.Time
	primed   bool
}

func newNetSource() *netSource {
	return &netSource{}
}

func (s *netSource) Read(now time.Time) model.NetworkReading {
	var r model.NetworkReading

	counters, err := net.IOCounters(false)
	if err != nil || len(counters) == 0 {
		return r
	}

	agg := counters[0]
	r.BytesSent = agg.BytesSent
	r.BytesRecv = agg.BytesRecv
	r.PacketsSent = agg.PacketsSent
	r.PacketsRecv = agg.PacketsRecv

	if s.primed {
		r.SentRate = Rate(s.prevSent, agg.BytesSent, s.prevTime, now)
		r.RecvRate = Rate(s.prevRecv, agg.BytesRecv, s.prevTime, now)
	}
	s.prevSent, s.prevRecv = agg.BytesSent, agg.BytesRecv
	s.prevTime = now
	s.primed = true

	return r
}

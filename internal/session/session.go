// Package session runs the timed sampling loop that fills the history.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/seojin-dev/resmon/internal/history"
	"github.com/seojin-dev/resmon/internal/model"
)

var (
	ErrAlreadyRunning = errors.New("session already running")
	ErrNotRunning     = errors.New("session not running")
)

// State is the lifecycle position of a monitoring session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Status is a non-blocking view of the session.
type Status struct {
	State     State
	Remaining time.Duration
	Samples   int
}

// Collector is the sampling dependency; satisfied by *sampler.Sampler.
type Collector interface {
	Collect() model.Snapshot
	ResetClock()
}

// Session drives a Collector on a fixed period for a fixed duration,
// appending every snapshot to the shared History. Idle -> Running ->
// Complete; Complete is terminal until the next Start.
type Session struct {
	log       hclog.Logger
	collector Collector
	hist      *history.History
	period    time.Duration
	duration  time.Duration

	mu        sync.Mutex
	state     State
	startedAt time.Time
	stop      chan struct{}
	done      chan struct{}
}

func New(log hclog.Logger, c Collector, h *history.History, period, duration time.Duration) *Session {
	return &Session{
		log:       log,
		collector: c,
		hist:      h,
		period:    period,
		duration:  duration,
		state:     StateIdle,
	}
}

// Start clears the history and launches the sampling loop. Valid from Idle or
// Complete; a second Start while Running is rejected so a single History never
// has two writers. A loop that was just stopped may still be finishing its
// in-flight sample; Start waits for it to exit before clearing, so the old
// run's last snapshot cannot land in the new run's history and two loops
// never drive the collector at once.
func (s *Session) Start() error {
	s.mu.Lock()
	for {
		if s.state == StateRunning {
			s.mu.Unlock()
			return ErrAlreadyRunning
		}
		prev := s.done
		if prev != nil {
			select {
			case <-prev:
				prev = nil
			default:
			}
		}
		if prev == nil {
			break
		}
		// Wait without the lock so Status stays non-blocking.
		s.mu.Unlock()
		<-prev
		s.mu.Lock()
	}
	defer s.mu.Unlock()

	if s.period <= 0 {
		return fmt.Errorf("invalid sampling period %v: must be > 0", s.period)
	}
	if s.duration <= 0 {
		return fmt.Errorf("invalid session duration %v: must be > 0", s.duration)
	}

	s.hist.Clear()
	s.collector.ResetClock()
	s.startedAt = time.Now()
	s.state = StateRunning
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	s.log.Info("session started", "period", s.period, "duration", s.duration)
	go s.loop(s.startedAt, s.stop, s.done)
	return nil
}

// Stop forces the transition to Complete. The loop exits before its next
// scheduled sample; an in-flight sample is allowed to finish.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return ErrNotRunning
	}
	close(s.stop)
	s.state = StateComplete
	s.log.Info("session stopped", "samples", s.hist.Len())
	return nil
}

// Status never blocks on the sampling loop.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{State: s.state, Samples: s.hist.Len()}
	if s.state == StateRunning {
		rem := s.duration - time.Since(s.startedAt)
		if rem < 0 {
			rem = 0
		}
		st.Remaining = rem
	}
	return st
}

// Wait blocks until the current loop has exited. No-op when nothing ran.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// loop samples immediately, then once per period until the duration deadline
// or a stop. The deadline timer fires independently of the period so a
// period longer than the duration still completes after exactly one sample.
func (s *Session) loop(started time.Time, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	deadline := time.NewTimer(s.duration)
	defer deadline.Stop()

	for {
		// A stop and a tick can be pending at once; stop wins.
		select {
		case <-stop:
			return
		default:
		}

		snap := s.collector.Collect()
		s.hist.Append(snap)

		select {
		case <-stop:
			return
		case <-deadline.C:
			s.complete(started)
			return
		case <-ticker.C:
		}
	}
}

func (s *Session) complete(started time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A Stop racing the deadline already moved the state on.
	if s.state != StateRunning || s.startedAt != started {
		return
	}
	s.state = StateComplete
	s.log.Info("session complete", "samples", s.hist.Len())
}

package session

import (
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin-dev/resmon/internal/history"
	"github.com/seojin-dev/resmon/internal/model"
)

// fakeCollector counts passes without touching the OS.
type fakeCollector struct {
	mu     sync.Mutex
	calls  int
	resets int
}

func (f *fakeCollector) Collect() model.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return model.Snapshot{
		Timestamp: time.Now(),
		CPU:       model.CPUReading{Percent: float64(f.calls)},
	}
}

func (f *fakeCollector) ResetClock() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeCollector) stats() (calls, resets int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.resets
}

func newTestSession(period, duration time.Duration) (*Session, *fakeCollector, *history.History) {
	fc := &fakeCollector{}
	h := history.New()
	return New(hclog.NewNullLogger(), fc, h, period, duration), fc, h
}

func TestSession_InitialState(t *testing.T) {
	s, _, _ := newTestSession(time.Second, time.Minute)

	st := s.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Zero(t, st.Samples)
}

func TestSession_FullRunCompletes(t *testing.T) {
	s, _, h := newTestSession(20*time.Millisecond, 200*time.Millisecond)

	require.NoError(t, s.Start())
	assert.Equal(t, StateRunning, s.Status().State)

	s.Wait()

	st := s.Status()
	assert.Equal(t, StateComplete, st.State)
	assert.Zero(t, st.Remaining)
	// Immediate sample plus one per tick: nominally 11, allow jitter.
	assert.GreaterOrEqual(t, h.Len(), 8)
	assert.LessOrEqual(t, h.Len(), 13)
}

func TestSession_PeriodLongerThanDuration(t *testing.T) {
	s, _, h := newTestSession(5*time.Second, 60*time.Millisecond)

	require.NoError(t, s.Start())
	s.Wait()

	assert.Equal(t, StateComplete, s.Status().State)
	assert.Equal(t, 1, h.Len(), "exactly one sample before the deadline")
}

func TestSession_DoubleStartRejected(t *testing.T) {
	s, fc, _ := newTestSession(20*time.Millisecond, 300*time.Millisecond)

	require.NoError(t, s.Start())
	err := s.Start()
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	s.Wait()

	_, resets := fc.stats()
	assert.Equal(t, 1, resets, "only one loop may ever have been launched")
}

func TestSession_RestartAfterComplete(t *testing.T) {
	s, fc, h := newTestSession(20*time.Millisecond, 40*time.Millisecond)

	require.NoError(t, s.Start())
	s.Wait()
	firstLen := h.Len()
	require.Greater(t, firstLen, 0)

	require.NoError(t, s.Start())
	s.Wait()

	_, resets := fc.stats()
	assert.Equal(t, 2, resets)
	assert.Equal(t, StateComplete, s.Status().State)
	// Restart cleared the old run's samples before recording new ones.
	assert.LessOrEqual(t, h.Len(), firstLen+2)
}

// slowCollector tags each snapshot with the clock generation so a snapshot
// from an earlier run is recognizable, and sleeps long enough that a stop
// reliably lands while a sample is in flight.
type slowCollector struct {
	mu    sync.Mutex
	gen   int
	delay time.Duration
}

func (c *slowCollector) Collect() model.Snapshot {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()
	time.Sleep(c.delay)
	return model.Snapshot{
		Timestamp: time.Now(),
		CPU:       model.CPUReading{Percent: float64(gen)},
	}
}

func (c *slowCollector) ResetClock() {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
}

func TestSession_RestartAfterStopDrainsOldLoop(t *testing.T) {
	c := &slowCollector{delay: 80 * time.Millisecond}
	h := history.New()
	s := New(hclog.NewNullLogger(), c, h, 10*time.Millisecond, 10*time.Second)

	require.NoError(t, s.Start())
	time.Sleep(20 * time.Millisecond) // stop lands mid-sample
	require.NoError(t, s.Stop())

	// Restarting must wait out the old loop's in-flight sample, so nothing
	// from the first run survives the clear.
	require.NoError(t, s.Start())
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, s.Stop())
	s.Wait()

	snaps := h.Snapshots()
	require.NotEmpty(t, snaps)
	for i, snap := range snaps {
		assert.Equal(t, 2.0, snap.CPU.Percent,
			"snapshot %d must belong to the second run", i)
	}
}

func TestSession_StopWinsOverPendingTick(t *testing.T) {
	c := &slowCollector{delay: 50 * time.Millisecond}
	h := history.New()
	s := New(hclog.NewNullLogger(), c, h, 10*time.Millisecond, 10*time.Second)

	require.NoError(t, s.Start())
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.Stop())
	s.Wait()

	// Ticks queued up behind the slow in-flight sample must not sneak one
	// more sample in after the stop.
	assert.Equal(t, 1, h.Len())
}

func TestSession_StopBeforeNextSample(t *testing.T) {
	s, _, h := newTestSession(20*time.Millisecond, 10*time.Second)

	require.NoError(t, s.Start())
	time.Sleep(70 * time.Millisecond)

	require.NoError(t, s.Stop())
	assert.Equal(t, StateComplete, s.Status().State)

	s.Wait()
	n := h.Len()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, n, h.Len(), "no samples after the loop exited")
}

func TestSession_StopWhenNotRunning(t *testing.T) {
	s, _, _ := newTestSession(time.Second, time.Minute)

	assert.ErrorIs(t, s.Stop(), ErrNotRunning)
}

func TestSession_RejectsInvalidConfig(t *testing.T) {
	for _, c := range []struct {
		name             string
		period, duration time.Duration
	}{
		{"zero period", 0, time.Minute},
		{"negative period", -time.Second, time.Minute},
		{"zero duration", time.Second, 0},
	} {
		t.Run(c.name, func(t *testing.T) {
			s, _, _ := newTestSession(c.period, c.duration)

			assert.Error(t, s.Start())
			assert.Equal(t, StateIdle, s.Status().State, "session must stay idle")
		})
	}
}

func TestSession_StartClearsHistory(t *testing.T) {
	s, _, h := newTestSession(20*time.Millisecond, 40*time.Millisecond)
	h.Append(model.Snapshot{CPU: model.CPUReading{Percent: 999}})

	require.NoError(t, s.Start())
	s.Wait()

	snaps := h.Snapshots()
	require.NotEmpty(t, snaps)
	assert.Equal(t, 1.0, snaps[0].CPU.Percent, "stale snapshot must be gone")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "complete", StateComplete.String())
}

package report

import (
	"os"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin-dev/resmon/internal/history"
	"github.com/seojin-dev/resmon/internal/model"
)

func recordedHistory(t *testing.T, n int, withSensors bool) *history.History {
	t.Helper()
	h := history.New()
	base := time.Now()
	for i := 0; i < n; i++ {
		snap := model.Snapshot{
			Timestamp: base.Add(time.Duration(i) * 500 * time.Millisecond),
			Elapsed:   float64(i) * 0.5,
			CPU:       model.CPUReading{Percent: 20 + float64(i)},
			Memory:    model.MemoryReading{Percent: 40},
			Disk:      model.DiskReading{ReadRate: 1 << 20, WriteRate: 2 << 20},
			Network:   model.NetworkReading{SentRate: 512, RecvRate: 1024},
		}
		if withSensors {
			snap.Temperature = model.TemperatureReading{
				Available: true,
				Sensors:   map[string][]float64{"coretemp": {45 + float64(i)}},
			}
			snap.GPU = model.GPUReading{Available: true, Usage: float64(i * 10)}
		}
		h.Append(snap)
	}
	return h
}

func TestExport_WritesPDF(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(hclog.NewNullLogger(), dir)

	path, err := g.Export(recordedHistory(t, 10, true).Channels())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, path, dir)
	assert.Contains(t, path, ".pdf")
}

func TestExport_UnavailableChannelsGetPlaceholders(t *testing.T) {
	g := NewGenerator(hclog.NewNullLogger(), t.TempDir())

	// No temperature or GPU readings at all; export must still succeed with
	// placeholder panels instead of flat-zero charts.
	path, err := g.Export(recordedHistory(t, 5, false).Channels())
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestExport_SingleSample(t *testing.T) {
	g := NewGenerator(hclog.NewNullLogger(), t.TempDir())

	// One point cannot be charted but the report itself must not fail.
	path, err := g.Export(recordedHistory(t, 1, true).Channels())
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestExport_EmptyHistory(t *testing.T) {
	g := NewGenerator(hclog.NewNullLogger(), t.TempDir())

	_, err := g.Export(history.New().Channels())
	assert.ErrorIs(t, err, ErrEmptyHistory)
}

func TestExport_UnwritableTarget(t *testing.T) {
	g := NewGenerator(hclog.NewNullLogger(), "/nonexistent/path/for/reports")

	_, err := g.Export(recordedHistory(t, 5, false).Channels())
	assert.Error(t, err)
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{10, 20, 30})

	assert.InDelta(t, 20.0, s.Mean, 1e-9)
	assert.InDelta(t, 10.0, s.Min, 1e-9)
	assert.InDelta(t, 30.0, s.Max, 1e-9)
	// Sample stdev, n-1 divisor.
	assert.InDelta(t, 10.0, s.Stdev, 1e-9)
}

func TestSummarize_SingleValue(t *testing.T) {
	s := Summarize([]float64{42})

	assert.Equal(t, 42.0, s.Mean)
	assert.Equal(t, 42.0, s.Min)
	assert.Equal(t, 42.0, s.Max)
	assert.Equal(t, 0.0, s.Stdev, "stdev is defined as 0 when n <= 1")
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, Mean(nil))
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00 B"},
		{1023, "1023.00 B"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024 * 2, "2.00 GB"},
		{1024.0 * 1024 * 1024 * 1024 * 1.25, "1.25 TB"},
		{1024.0 * 1024 * 1024 * 1024 * 1024 * 3, "3.00 PB"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatBytes(c.in))
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "1.50 KB/s", FormatRate(1536))
}

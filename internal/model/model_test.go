package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperatureReading_Mean(t *testing.T) {
	r := TemperatureReading{
		Available: true,
		Sensors: map[string][]float64{
			"coretemp": {40, 50},
			"nvme":     {30},
		},
	}

	assert.InDelta(t, 40.0, r.Mean(), 1e-9)
}

func TestTemperatureReading_MeanUnavailable(t *testing.T) {
	assert.Equal(t, 0.0, TemperatureReading{}.Mean())
	assert.Equal(t, 0.0, TemperatureReading{Sensors: map[string][]float64{"empty": {}}}.Mean())
}

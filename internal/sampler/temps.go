package sampler

import (
	"github.com/shirou/gopsutil/v3/host"

	"github.com/seojin-dev/resmon/internal/model"
)

type tempSource struct{}

// Read groups sensor readings by sensor key. Best-effort: any platform-level
// failure, or a machine with no sensors, yields an unavailable reading.
func (tempSource) Read() model.TemperatureReading {
	stats, err := host.SensorsTemperatures()
	if len(stats) == 0 {
		// err may also be a partial warning; with no readings at all the
		// channel is unavailable either way.
		_ = err
		return model.TemperatureReading{}
	}

	groups := make(map[string][]float64)
	for _, st := range stats {
		groups[st.SensorKey] = append(groups[st.SensorKey], st.Temperature)
	}

	return model.TemperatureReading{Available: true, Sensors: groups}
}

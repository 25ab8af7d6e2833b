package sampler

import (
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/seojin-dev/resmon/internal/model"
)

type memSource struct{}

func (memSource) Read() model.MemoryReading {
	var r model.MemoryReading

	if vm, err := mem.VirtualMemory(); err == nil {
		r.Percent = vm.UsedPercent
		r.Total = vm.Total
		r.Used = vm.Used
		r.Available = vm.Available
	}
	if swap, err := mem.SwapMemory(); err == nil {
		r.SwapPercent = swap.UsedPercent
		r.SwapTotal = swap.Total
		r.SwapUsed = swap.Used
	}

	return r
}

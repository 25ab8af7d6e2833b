package sampler

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/seojin-dev/resmon/internal/model"
)

const gpuQueryTimeout = 2 * time.Second

// gpuSource shells out to the NVIDIA vendor utility. The timeout keeps a hung
// driver from starving the sampling cadence. A missing binary, non-zero exit,
// timeout, or malformed output all mean "no GPU", never an error.
type gpuSource struct {
	command string
	timeout time.Duration
}

func newGPUSource() *gpuSource {
	return &gpuSource{command: "nvidia-smi", timeout: gpuQueryTimeout}
}

func (s *gpuSource) Read() model.GPUReading {
	out, err := runCmd(s.timeout, s.command,
		"--query-gpu=utilization.gpu,memory.used,temperature.gpu",
		"--format=csv,noheader,nounits")
	if err != nil {
		return model.GPUReading{}
	}

	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return model.GPUReading{}
	}

	usage, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	memMB, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	tempC, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return model.GPUReading{}
	}

	return model.GPUReading{
		Available: true,
		Usage:     usage,
		MemoryMB:  memMB,
		TempC:     tempC,
	}
}

func runCmd(timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}

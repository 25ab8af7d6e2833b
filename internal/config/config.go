// Package config carries the runtime options for resmon. Values come from
// built-in defaults, then a .env file / environment, then command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the externally settable surface of the monitor.
type Config struct {
	Period    time.Duration // sampling period
	Duration  time.Duration // session length
	OutputDir string        // where report PDFs land
	LogLevel  string
	EnableGPU bool
	Headless  bool // record one session and export without the TUI
}

func Default() Config {
	return Config{
		Period:    500 * time.Millisecond,
		Duration:  60 * time.Second,
		OutputDir: ".",
		LogLevel:  "info",
		EnableGPU: true,
	}
}

// FromFlags builds the config from env overrides and flags.
func FromFlags(args []string) Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Period = getEnvDuration("RESMON_PERIOD", cfg.Period)
	cfg.Duration = getEnvDuration("RESMON_DURATION", cfg.Duration)
	cfg.OutputDir = getEnv("RESMON_OUTPUT_DIR", cfg.OutputDir)
	cfg.LogLevel = getEnv("RESMON_LOG_LEVEL", cfg.LogLevel)
	cfg.EnableGPU = getEnvBool("RESMON_GPU", cfg.EnableGPU)

	fs := flag.NewFlagSet("resmon", flag.ContinueOnError)
	fs.DurationVar(&cfg.Period, "period", cfg.Period, "sampling period")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "session duration")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "report output directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace|debug|info|warn|error")
	fs.BoolVar(&cfg.EnableGPU, "gpu", cfg.EnableGPU, "enable GPU sampling")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "record one session and export a report without the TUI")
	_ = fs.Parse(args)

	return cfg
}

// Validate rejects settings the session would refuse at start time.
func (c Config) Validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("sampling period must be > 0, got %v", c.Period)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("session duration must be > 0, got %v", c.Duration)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

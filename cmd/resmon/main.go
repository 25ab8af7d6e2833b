package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/seojin-dev/resmon/internal/config"
	"github.com/seojin-dev/resmon/internal/history"
	"github.com/seojin-dev/resmon/internal/report"
	"github.com/seojin-dev/resmon/internal/sampler"
	"github.com/seojin-dev/resmon/internal/session"
	"github.com/seojin-dev/resmon/internal/ui"
)

func main() {
	cfg := config.FromFlags(os.Args[1:])
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "resmon",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	opts := sampler.Options{EnableGPU: cfg.EnableGPU}
	smp := sampler.New(logger.Named("sampler"), opts)
	hist := history.New()
	sess := session.New(logger.Named("session"), smp, hist, cfg.Period, cfg.Duration)
	reports := report.NewGenerator(logger.Named("report"), cfg.OutputDir)

	if cfg.Headless {
		if err := runHeadless(logger, sess, hist, reports); err != nil {
			logger.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// The TUI gets its own sampler so idle-preview reads never contend with
	// the session loop's counter state.
	preview := sampler.New(logger.Named("preview"), opts)
	if err := ui.Run(cfg, sess, hist, preview, reports); err != nil {
		fmt.Fprintln(os.Stderr, "error running program:", err)
		os.Exit(1)
	}
}

// runHeadless records one full session, exports the report, and exits.
func runHeadless(logger hclog.Logger, sess *session.Session, hist *history.History, reports *report.Generator) error {
	if err := sess.Start(); err != nil {
		return err
	}

	for sess.Status().State == session.StateRunning {
		st := sess.Status()
		logger.Info("recording", "remaining", st.Remaining.Round(time.Second), "samples", st.Samples)
		time.Sleep(time.Second)
	}
	sess.Wait()

	path, err := reports.Export(hist.Channels())
	if err != nil {
		return err
	}
	logger.Info("done", "report", path)
	return nil
}

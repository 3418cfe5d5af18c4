// Package main runs batches of seeded headless matches and reports how
// long they last and which kind wins.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/rps/config"
	"github.com/pthm-cable/rps/sim"
	"github.com/pthm-cable/rps/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	matches := flag.Int("matches", 100, "Number of matches to play")
	seed := flag.Int64("seed", 42, "Base seed; match i uses seed + i*1000")
	maxTicks := flag.Int("max-ticks", 1000000, "Abandon a match after N ticks (0 = unlimited)")
	workers := flag.Int("workers", 0, "Parallel workers (0 = NumCPU)")
	outputDir := flag.String("output", "", "Output directory for matches.csv (empty = no files)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	params := sim.ParamsFromConfig(cfg)

	slog.Info("starting sweep",
		"matches", *matches,
		"seed", *seed,
		"max_ticks", *maxTicks,
		"entities", params.Counts.Total(),
	)

	start := time.Now()
	results, err := runSweep(params, sweepOptions{
		Matches:  *matches,
		BaseSeed: *seed,
		MaxTicks: int32(*maxTicks),
		Workers:  *workers,
	})
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if err := output.WriteMatches(results); err != nil {
		slog.Error("failed to write matches", "error", err)
	}

	slog.Info("sweep complete",
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"summary", telemetry.Summarize(results),
	)
}

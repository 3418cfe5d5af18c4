package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rps/audio"
	"github.com/pthm-cable/rps/config"
	"github.com/pthm-cable/rps/game"
	"github.com/pthm-cable/rps/render"
	"github.com/pthm-cable/rps/session"
	"github.com/pthm-cable/rps/sim"
	"github.com/pthm-cable/rps/telemetry"
	"github.com/pthm-cable/rps/tui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	useTUI := flag.Bool("tui", false, "Run in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (empty = use config)")
	framePath := flag.String("frame", "", "Write the final frame of a headless run to this PNG file")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks per match (0 = unlimited)")
	matches := flag.Int("matches", 1, "Number of matches to play in headless mode")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster)")

	flag.Parse()

	opts := runOptions{
		configPath:     *configPath,
		headless:       *headless,
		tui:            *useTUI,
		logStats:       *logStats,
		outputDir:      *outputDir,
		metricsAddr:    *metricsAddr,
		framePath:      *framePath,
		seed:           *seed,
		maxTicks:       *maxTicks,
		matches:        *matches,
		stepsPerUpdate: *stepsPerUpdate,
	}
	if err := run(opts); err != nil {
		slog.Error("rps failed", "error", err)
		os.Exit(1)
	}
}

// runOptions carries the parsed command line.
type runOptions struct {
	configPath     string
	headless       bool
	tui            bool
	logStats       bool
	outputDir      string
	metricsAddr    string
	framePath      string
	seed           int64
	maxTicks       int
	matches        int
	stepsPerUpdate int
}

// run wires every component and plays until done. Deferred cleanup always
// runs, so the current match reaches matches.csv even when run fails.
func run(o runOptions) error {
	// Initialize config before anything else
	if err := config.Init(o.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	rngSeed := o.seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// JSON logs to stdout, except in the terminal UI where they would corrupt the screen
	var logOut io.Writer = os.Stdout
	if o.tui {
		logOut = io.Discard
		if o.outputDir != "" {
			if err := os.MkdirAll(o.outputDir, 0755); err == nil {
				if f, err := os.Create(filepath.Join(o.outputDir, "rps.log")); err == nil {
					defer f.Close()
					logOut = f
				}
			}
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	params := sim.ParamsFromConfig(cfg)
	s, err := sim.NewSimulation(params, rand.New(rand.NewSource(rngSeed)))
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	output, err := telemetry.NewOutputManager(o.outputDir)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	var metrics *telemetry.Metrics
	addr := cfg.Metrics.Addr
	if o.metricsAddr != "" {
		addr = o.metricsAddr
	}
	if addr != "" {
		metrics = telemetry.NewMetrics()
		go func() {
			if err := telemetry.ServeMetrics(ctx, addr, metrics); err != nil {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	sessOpts := session.Options{
		Seed:        rngSeed,
		StatsWindow: cfg.Telemetry.StatsWindow,
		LogStats:    o.logStats,
		Output:      output,
		Metrics:     metrics,
	}
	if !o.headless {
		blip, err := audio.New(cfg.Audio)
		if err != nil {
			slog.Warn("audio disabled", "error", err)
		}
		if blip != nil {
			defer blip.Close()
			sessOpts.Audio = blip
		}
	}

	sess := session.New(s, sessOpts)
	defer sess.Close()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"entities", params.Counts.Total(),
		"headless", o.headless,
		"tui", o.tui,
	)

	switch {
	case o.headless:
		runHeadless(ctx, sess, o.matches, o.maxTicks)
		sess.Close() // records a match cut short by max ticks
		slog.Info("headless run complete", "summary", telemetry.Summarize(sess.Results()))
		if o.framePath != "" {
			frame := render.Frame{
				Width:      int(params.Arena.Width),
				Height:     int(params.Arena.Height),
				SpriteSize: float64(cfg.Entity.SpriteSize),
				Result:     sess.Last(),
				Counts:     sess.Counts(),
			}
			if err := render.SavePNG(o.framePath, frame); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
			slog.Info("frame written", "path", o.framePath)
		}

	case o.tui:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initializing terminal screen: %w", err)
		}
		defer screen.Fini()

		app := tui.NewApp(screen, sess, tui.Options{
			FPS:       cfg.Screen.TargetFPS,
			Countdown: render.NewCountdown(cfg.Countdown.Seconds, cfg.Countdown.GoLabel),
			MaxTicks:  o.maxTicks,
		})
		app.Run(ctx)

	default:
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Rock Paper Scissors")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g := game.NewGame(sess, game.Options{
			StepsPerUpdate: o.stepsPerUpdate,
			SpriteSize:     float32(cfg.Entity.SpriteSize),
			Countdown:      render.NewCountdown(cfg.Countdown.Seconds, cfg.Countdown.GoLabel),
		})

		for !rl.WindowShouldClose() && ctx.Err() == nil {
			g.Update()
			g.Draw()

			if o.maxTicks > 0 && int(g.Tick()) >= o.maxTicks {
				break
			}
		}
	}
	return nil
}

// runHeadless plays matches back to back without a front-end.
func runHeadless(ctx context.Context, sess *session.Session, matches, maxTicks int) {
	for {
		for !sess.Over() {
			if ctx.Err() != nil {
				return
			}
			res := sess.Step()
			if maxTicks > 0 && int(res.Tick) >= maxTicks && !res.Terminated {
				slog.Info("max ticks reached", "match", sess.Match(), "tick", res.Tick)
				break
			}
		}
		if sess.Match()+1 >= matches {
			return
		}
		sess.Replay()
	}
}

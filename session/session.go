// Package session drives a simulation match by match and routes every
// executed tick to telemetry, metrics and audio. All front-ends share it.
package session

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/sim"
	"github.com/pthm-cable/rps/telemetry"
)

// Player sounds a conversion won by the given kind. A nil Player is silent.
type Player interface {
	Play(winner components.Kind)
}

// Options configures a session. Every sink is optional.
type Options struct {
	Seed        int64
	StatsWindow int  // Ticks per telemetry row
	LogStats    bool // Log each telemetry window via slog

	Output  *telemetry.OutputManager
	Metrics *telemetry.Metrics
	Audio   Player
}

// Session owns one Simulation and replays it on request.
type Session struct {
	sim       *sim.Simulation
	collector *telemetry.Collector
	opts      Options

	match    int
	last     sim.StepResult
	recorded bool // result of the current match already emitted
	results  []telemetry.MatchResult
}

// New wraps s and starts its first match. opts.Seed only labels the
// recorded matches; s already owns its random source.
func New(s *sim.Simulation, opts Options) *Session {
	sess := &Session{
		sim:       s,
		collector: telemetry.NewCollector(opts.StatsWindow),
		opts:      opts,
	}
	sess.begin()
	return sess
}

func (s *Session) begin() {
	s.collector.StartMatch(s.match, s.opts.Seed)
	s.recorded = false
	s.last = sim.StepResult{Entities: s.sim.Entities()}
	s.opts.Metrics.SetPopulation(s.sim.Counts())
	slog.Info("match started", "match", s.match, "entities", s.sim.Len())
}

// Step advances the simulation one tick and records the outcome.
// Once the match is over it returns the final state without recording anything.
func (s *Session) Step() sim.StepResult {
	if s.sim.State() == sim.Over {
		s.last = s.sim.Step()
		return s.last
	}

	start := time.Now()
	res := s.sim.Step()
	elapsed := time.Since(start)
	s.last = res

	counts := s.sim.Counts()
	s.collector.Record(res)
	s.opts.Metrics.ObserveStep(res, counts, elapsed)
	if s.opts.Audio != nil {
		for _, conv := range res.Conversions {
			s.opts.Audio.Play(conv.To)
		}
	}

	if res.Terminated || s.collector.ShouldFlush(res.Tick) {
		s.flushWindow(res.Tick, counts)
	}
	if res.Terminated {
		s.record(res)
	}
	return res
}

func (s *Session) flushWindow(tick int32, counts sim.Counts) {
	stats := s.collector.Flush(tick, counts)
	if s.opts.LogStats {
		slog.Info("stats", "window", stats)
	}
	if err := s.opts.Output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}

func (s *Session) record(res sim.StepResult) {
	if s.recorded {
		return
	}
	s.recorded = true

	result := s.collector.Result(res)
	s.results = append(s.results, result)
	s.opts.Metrics.ObserveMatch(result)
	if err := s.opts.Output.WriteMatch(result); err != nil {
		slog.Error("failed to write match", "error", err)
	}

	if result.Finished {
		slog.Info("match over",
			"match", result.Match,
			"winner", result.Winner.String(),
			"ticks", result.Ticks,
			"conversions", result.Conversions,
		)
	} else {
		slog.Info("match abandoned", "match", result.Match, "ticks", result.Ticks)
	}
}

// Replay starts a new match with a fresh population. A match still running
// is recorded as unfinished first.
func (s *Session) Replay() {
	s.record(s.last)
	s.sim.Reset()
	s.match++
	s.begin()
}

// Close records the current match if it has not been recorded yet.
func (s *Session) Close() {
	s.record(s.last)
}

// Last returns the most recent step result.
func (s *Session) Last() sim.StepResult { return s.last }

// Over reports whether the current match has ended.
func (s *Session) Over() bool { return s.sim.State() == sim.Over }

// Match returns the zero-based index of the current match.
func (s *Session) Match() int { return s.match }

// Counts returns the current population per kind.
func (s *Session) Counts() sim.Counts { return s.sim.Counts() }

// Sim returns the underlying simulation.
func (s *Session) Sim() *sim.Simulation { return s.sim }

// Results returns every recorded match in order.
func (s *Session) Results() []telemetry.MatchResult { return s.results }

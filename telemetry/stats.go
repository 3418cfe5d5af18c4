package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/rps/components"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	Match           int   `csv:"match"`
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population counts at window end
	Rock     int `csv:"rock"`
	Paper    int `csv:"paper"`
	Scissors int `csv:"scissors"`

	// Conversions during window, by the kind gained
	Conversions    int `csv:"conversions"`
	RockGained     int `csv:"rock_gained"`
	PaperGained    int `csv:"paper_gained"`
	ScissorsGained int `csv:"scissors_gained"`
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("match", s.Match),
		slog.Int("tick", int(s.WindowEndTick)),
		slog.Int("rock", s.Rock),
		slog.Int("paper", s.Paper),
		slog.Int("scissors", s.Scissors),
		slog.Int("conversions", s.Conversions),
	)
}

// MatchResult records the outcome of one finished (or abandoned) match.
type MatchResult struct {
	Match       int             `csv:"match"`
	Seed        int64           `csv:"seed"`
	Ticks       int32           `csv:"ticks"`
	Finished    bool            `csv:"finished"`
	Winner      components.Kind `csv:"winner"`
	Conversions int             `csv:"conversions"`
}

// Summary aggregates a set of match results.
type Summary struct {
	Matches    int
	Unfinished int

	// Tick statistics over finished matches
	MeanTicks float64
	StdTicks  float64
	P10Ticks  float64
	P50Ticks  float64
	P90Ticks  float64

	Wins [components.NumKinds]int
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("matches", s.Matches),
		slog.Int("unfinished", s.Unfinished),
		slog.Float64("mean_ticks", s.MeanTicks),
		slog.Float64("std_ticks", s.StdTicks),
		slog.Float64("p50_ticks", s.P50Ticks),
		slog.Int("rock_wins", s.Wins[components.Rock]),
		slog.Int("paper_wins", s.Wins[components.Paper]),
		slog.Int("scissors_wins", s.Wins[components.Scissors]),
	)
}

// Summarize computes win counts and tick-length statistics.
// Unfinished matches count towards Matches only.
func Summarize(results []MatchResult) Summary {
	sum := Summary{Matches: len(results)}

	ticks := make([]float64, 0, len(results))
	for _, r := range results {
		if !r.Finished {
			sum.Unfinished++
			continue
		}
		if r.Winner.Valid() {
			sum.Wins[r.Winner]++
		}
		ticks = append(ticks, float64(r.Ticks))
	}

	if len(ticks) == 0 {
		return sum
	}

	mean, std := stat.MeanStdDev(ticks, nil)
	if math.IsNaN(std) {
		std = 0 // single sample
	}
	sum.MeanTicks = mean
	sum.StdTicks = std

	sort.Float64s(ticks)
	// Empirical quantiles stay on observed tick counts
	sum.P10Ticks = stat.Quantile(0.10, stat.Empirical, ticks, nil)
	sum.P50Ticks = stat.Quantile(0.50, stat.Empirical, ticks, nil)
	sum.P90Ticks = stat.Quantile(0.90, stat.Empirical, ticks, nil)

	return sum
}

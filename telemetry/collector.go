package telemetry

import (
	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/sim"
)

// Collector accumulates step results within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	match int
	seed  int64

	// Current window tracking
	windowStartTick int32
	gained          [components.NumKinds]int
	conversions     int

	// Whole-match totals
	matchConversions int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: int32(windowTicks)}
}

// StartMatch resets all counters for a new match.
func (c *Collector) StartMatch(match int, seed int64) {
	c.match = match
	c.seed = seed
	c.windowStartTick = 0
	c.gained = [components.NumKinds]int{}
	c.conversions = 0
	c.matchConversions = 0
}

// Record adds the conversions of one step.
func (c *Collector) Record(res sim.StepResult) {
	for _, conv := range res.Conversions {
		if conv.To.Valid() {
			c.gained[conv.To]++
		}
	}
	c.conversions += len(res.Conversions)
	c.matchConversions += len(res.Conversions)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, counts sim.Counts) WindowStats {
	stats := WindowStats{
		Match:           c.match,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Rock:     counts.Rock,
		Paper:    counts.Paper,
		Scissors: counts.Scissors,

		Conversions:    c.conversions,
		RockGained:     c.gained[components.Rock],
		PaperGained:    c.gained[components.Paper],
		ScissorsGained: c.gained[components.Scissors],
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.gained = [components.NumKinds]int{}
	c.conversions = 0

	return stats
}

// Result builds the match record from the latest step result.
func (c *Collector) Result(res sim.StepResult) MatchResult {
	return MatchResult{
		Match:       c.match,
		Seed:        c.seed,
		Ticks:       res.Tick,
		Finished:    res.Terminated,
		Winner:      res.Winner,
		Conversions: c.matchConversions,
	}
}

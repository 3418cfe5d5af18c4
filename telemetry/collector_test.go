package telemetry

import (
	"testing"

	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/sim"
	"github.com/pthm-cable/rps/systems"
)

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(10)
	c.StartMatch(3, 77)

	c.Record(sim.StepResult{Tick: 1, Conversions: []systems.Conversion{
		{Index: 1, By: 0, From: components.Scissors, To: components.Rock},
		{Index: 2, By: 0, From: components.Scissors, To: components.Rock},
	}})
	c.Record(sim.StepResult{Tick: 5, Conversions: []systems.Conversion{
		{Index: 3, By: 4, From: components.Rock, To: components.Paper},
	}})

	if c.ShouldFlush(9) {
		t.Error("ShouldFlush(9) = true, want false")
	}
	if !c.ShouldFlush(10) {
		t.Error("ShouldFlush(10) = false, want true")
	}

	stats := c.Flush(10, sim.Counts{Rock: 5, Paper: 3, Scissors: 2})
	if stats.Match != 3 || stats.WindowEndTick != 10 || stats.WindowStartTick != 0 {
		t.Errorf("window = %+v, want match 3 ticks [0, 10]", stats)
	}
	if stats.Conversions != 3 || stats.RockGained != 2 || stats.PaperGained != 1 || stats.ScissorsGained != 0 {
		t.Errorf("conversion counts = %+v", stats)
	}
	if stats.Rock != 5 || stats.Paper != 3 || stats.Scissors != 2 {
		t.Errorf("population = %+v", stats)
	}

	next := c.Flush(20, sim.Counts{Rock: 10})
	if next.Conversions != 0 || next.WindowStartTick != 10 {
		t.Errorf("second window = %+v, want reset counters starting at 10", next)
	}

	res := c.Result(sim.StepResult{Tick: 20, Terminated: true, Winner: components.Rock})
	want := MatchResult{Match: 3, Seed: 77, Ticks: 20, Finished: true, Winner: components.Rock, Conversions: 3}
	if res != want {
		t.Errorf("Result = %+v, want %+v", res, want)
	}
}

func TestCollectorStartMatchResets(t *testing.T) {
	c := NewCollector(0)
	if c.ShouldFlush(0) || !c.ShouldFlush(1) {
		t.Errorf("ShouldFlush(0), ShouldFlush(1) = %v, %v; want a window clamped to 1 tick", c.ShouldFlush(0), c.ShouldFlush(1))
	}
	c.Record(sim.StepResult{Conversions: []systems.Conversion{{To: components.Paper}}})
	c.StartMatch(1, 0)
	if got := c.Result(sim.StepResult{}).Conversions; got != 0 {
		t.Errorf("conversions after StartMatch = %d, want 0", got)
	}
}

package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/rps/components"
)

func TestSummarize(t *testing.T) {
	results := []MatchResult{
		{Match: 0, Ticks: 100, Finished: true, Winner: components.Rock},
		{Match: 1, Ticks: 200, Finished: true, Winner: components.Paper},
		{Match: 2, Ticks: 300, Finished: true, Winner: components.Rock},
		{Match: 3, Ticks: 5000, Finished: false},
	}

	sum := Summarize(results)

	if sum.Matches != 4 || sum.Unfinished != 1 {
		t.Errorf("matches = %d unfinished = %d, want 4 and 1", sum.Matches, sum.Unfinished)
	}
	if math.Abs(sum.MeanTicks-200) > 1e-9 {
		t.Errorf("MeanTicks = %v, want 200", sum.MeanTicks)
	}
	// Sample standard deviation of {100, 200, 300}
	if math.Abs(sum.StdTicks-100) > 1e-9 {
		t.Errorf("StdTicks = %v, want 100", sum.StdTicks)
	}
	quantiles := []struct {
		name      string
		got, want float64
	}{
		{"P10Ticks", sum.P10Ticks, 100},
		{"P50Ticks", sum.P50Ticks, 200},
		{"P90Ticks", sum.P90Ticks, 300},
	}
	for _, q := range quantiles {
		if q.got != q.want {
			t.Errorf("%s = %v, want %v", q.name, q.got, q.want)
		}
	}
	if sum.Wins[components.Rock] != 2 || sum.Wins[components.Paper] != 1 || sum.Wins[components.Scissors] != 0 {
		t.Errorf("Wins = %v, want [2 1 0]", sum.Wins)
	}
}

func TestSummarizeSingleAndEmpty(t *testing.T) {
	sum := Summarize([]MatchResult{{Ticks: 42, Finished: true, Winner: components.Scissors}})
	if sum.MeanTicks != 42 || sum.StdTicks != 0 {
		t.Errorf("single match: mean %v std %v, want 42 and 0", sum.MeanTicks, sum.StdTicks)
	}
	if sum.P10Ticks != 42 || sum.P90Ticks != 42 {
		t.Errorf("single match: p10 %v p90 %v, want 42 and 42", sum.P10Ticks, sum.P90Ticks)
	}

	empty := Summarize(nil)
	if empty.Matches != 0 || empty.MeanTicks != 0 {
		t.Errorf("empty summary = %+v, want zero", empty)
	}
}

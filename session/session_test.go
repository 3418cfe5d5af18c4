package session

import (
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/sim"
	"github.com/pthm-cable/rps/systems"
	"github.com/pthm-cable/rps/telemetry"
)

func duelParams() sim.Params {
	return sim.Params{
		Counts:   sim.Counts{Rock: 1, Paper: 1, Scissors: 1},
		Arena:    systems.Bounds{Width: 400, Height: 300},
		Radius:   15,
		SpeedMin: -3,
		SpeedMax: 3,
		Jitter:   20,
	}
}

// duel builds a match that ends on its first tick: rock meets scissors.
func duel(t *testing.T) *sim.Simulation {
	t.Helper()
	s, err := sim.NewSimulationFromEntities(duelParams(), []sim.EntityState{
		{Kind: components.Rock, Position: components.Position{X: 100, Y: 100}, Velocity: components.Velocity{X: 1}},
		{Kind: components.Scissors, Position: components.Position{X: 110, Y: 100}, Velocity: components.Velocity{X: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSessionRecordsFinishedMatch(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	metrics := telemetry.NewMetrics()

	sess := New(duel(t), Options{Seed: 9, StatsWindow: 60, Output: out, Metrics: metrics})

	res := sess.Step()
	if !res.Terminated || res.Winner != components.Rock {
		t.Fatalf("Step = terminated %v winner %v, want rock win", res.Terminated, res.Winner)
	}
	if !sess.Over() {
		t.Error("Over() = false after termination")
	}

	// Further steps are no-ops and must not record a second result
	sess.Step()
	sess.Step()
	sess.Close()

	results := sess.Results()
	if len(results) != 1 {
		t.Fatalf("Results() = %v, want exactly one", results)
	}
	want := telemetry.MatchResult{Match: 0, Seed: 9, Ticks: 1, Finished: true, Winner: components.Rock, Conversions: 1}
	if results[0] != want {
		t.Errorf("result = %+v, want %+v", results[0], want)
	}

	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "matches.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "rock") {
		t.Errorf("matches.csv missing winner:\n%s", data)
	}
}

func TestSessionReplay(t *testing.T) {
	sess := New(duel(t), Options{StatsWindow: 10})
	sess.Step()

	sess.Replay()
	if sess.Match() != 1 {
		t.Errorf("Match() = %d, want 1", sess.Match())
	}
	if sess.Over() {
		t.Error("Over() = true right after Replay")
	}
	if got := sess.Counts(); got.Rock != 1 || got.Scissors != 1 {
		t.Errorf("Counts() after Replay = %+v, want the initial duel", got)
	}

	// Replay while running records the abandoned match
	sess.Replay()
	results := sess.Results()
	if len(results) != 2 {
		t.Fatalf("Results() = %+v, want two entries", results)
	}
	if !results[0].Finished || results[1].Finished {
		t.Errorf("finished flags = %v, %v; want true, false", results[0].Finished, results[1].Finished)
	}
	if results[1].Match != 1 {
		t.Errorf("abandoned match index = %d, want 1", results[1].Match)
	}
}

func TestSessionRandomMatchTerminates(t *testing.T) {
	s, err := sim.NewSimulation(sim.Params{
		Counts:   sim.Counts{Rock: 5, Paper: 5, Scissors: 5},
		Arena:    systems.Bounds{Width: 200, Height: 150},
		Radius:   15,
		SpeedMin: -3,
		SpeedMax: 3,
		Jitter:   10,
	}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	sess := New(s, Options{Seed: 1, StatsWindow: 100})

	for i := 0; i < 200000 && !sess.Over(); i++ {
		res := sess.Step()
		if got := len(res.Entities); got != 15 {
			t.Fatalf("entity count %d, want 15", got)
		}
	}
	if !sess.Over() {
		t.Skip("match did not finish within the tick budget")
	}
	if len(sess.Results()) != 1 || !sess.Results()[0].Finished {
		t.Errorf("Results() = %+v, want one finished match", sess.Results())
	}
}

type recordingPlayer struct {
	played []components.Kind
}

func (p *recordingPlayer) Play(winner components.Kind) {
	p.played = append(p.played, winner)
}

func TestSessionPlaysConversions(t *testing.T) {
	player := &recordingPlayer{}
	sess := New(duel(t), Options{Audio: player})

	sess.Step()
	sess.Step() // over: nothing more to play

	want := []components.Kind{components.Rock}
	if !reflect.DeepEqual(player.played, want) {
		t.Errorf("played = %v, want %v", player.played, want)
	}
}

package main

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/pthm-cable/rps/sim"
	"github.com/pthm-cable/rps/telemetry"
)

// sweepOptions controls a batch of headless matches.
type sweepOptions struct {
	Matches  int
	BaseSeed int64
	MaxTicks int32 // 0 = run every match to completion
	Workers  int   // 0 = runtime.NumCPU()
}

// matchSeed derives the seed of match i so results do not depend on scheduling.
func matchSeed(base int64, i int) int64 {
	return base + int64(i)*1000
}

// runSweep plays opts.Matches matches on a bounded worker pool. Each worker
// owns its simulation and RNG. Results are ordered by match index.
func runSweep(p sim.Params, opts sweepOptions) ([]telemetry.MatchResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if opts.Matches <= 0 {
		return nil, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, opts.Matches)

	results := make([]telemetry.MatchResult, opts.Matches)
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = playMatch(p, idx, matchSeed(opts.BaseSeed, idx), opts.MaxTicks)
			}
		}()
	}

	for i := 0; i < opts.Matches; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// playMatch runs one match until it ends or hits maxTicks. p must be valid.
func playMatch(p sim.Params, match int, seed int64, maxTicks int32) telemetry.MatchResult {
	s, err := sim.NewSimulation(p, rand.New(rand.NewSource(seed)))
	if err != nil {
		panic(err)
	}

	c := telemetry.NewCollector(1)
	c.StartMatch(match, seed)

	var res sim.StepResult
	for s.State() == sim.Running {
		res = s.Step()
		c.Record(res)
		if maxTicks > 0 && res.Tick >= maxTicks {
			break
		}
	}
	return c.Result(res)
}

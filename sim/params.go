package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/rps/config"
	"github.com/pthm-cable/rps/systems"
)

// ErrInvalidParams is wrapped by every parameter validation failure.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// maxDrawSpan bounds the width of every integer range drawn at spawn time,
// so hi-lo+1 always fits an int.
const maxDrawSpan = 1 << 30

// Counts holds a number per kind.
type Counts struct {
	Rock     int `csv:"rock"`
	Paper    int `csv:"paper"`
	Scissors int `csv:"scissors"`
}

// Total returns the sum over all kinds.
func (c Counts) Total() int {
	return c.Rock + c.Paper + c.Scissors
}

// Params configures a simulation instance.
type Params struct {
	Counts Counts         // Initial population per kind
	Arena  systems.Bounds // Arena size; lower bounds are 0
	Radius float32        // Half-side of every entity's bounding box

	// Velocity components are drawn uniformly from [SpeedMin, SpeedMax].
	SpeedMin int
	SpeedMax int

	// Spawn offset from the kind's anchor is drawn uniformly from [-Jitter, Jitter] per axis.
	Jitter int
}

// ParamsFromConfig builds simulation parameters from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Counts: Counts{
			Rock:     cfg.Population.Rock,
			Paper:    cfg.Population.Paper,
			Scissors: cfg.Population.Scissors,
		},
		Arena:    systems.Bounds{Width: cfg.Derived.ArenaW32, Height: cfg.Derived.ArenaH32},
		Radius:   cfg.Derived.Radius32,
		SpeedMin: cfg.Entity.SpeedMin,
		SpeedMax: cfg.Entity.SpeedMax,
		Jitter:   cfg.Entity.Jitter,
	}
}

// Validate checks p for values the simulation cannot run with.
func (p Params) Validate() error {
	if p.Counts.Rock <= 0 || p.Counts.Paper <= 0 || p.Counts.Scissors <= 0 {
		return fmt.Errorf("%w: counts must be positive, got %+v", ErrInvalidParams, p.Counts)
	}
	if err := p.validateGeometry(); err != nil {
		return err
	}
	if p.SpeedMin > p.SpeedMax {
		return fmt.Errorf("%w: speed range [%d, %d] is empty", ErrInvalidParams, p.SpeedMin, p.SpeedMax)
	}
	// SpeedMin <= SpeedMax, so the unsigned difference is exact even when int64 would overflow
	if uint64(int64(p.SpeedMax))-uint64(int64(p.SpeedMin)) >= maxDrawSpan {
		return fmt.Errorf("%w: speed range [%d, %d] is too wide", ErrInvalidParams, p.SpeedMin, p.SpeedMax)
	}
	if p.SpeedMin == 0 && p.SpeedMax == 0 {
		return fmt.Errorf("%w: speed range [0, 0] cannot produce a moving entity", ErrInvalidParams)
	}
	if p.Jitter < 0 {
		return fmt.Errorf("%w: jitter must not be negative, got %d", ErrInvalidParams, p.Jitter)
	}
	if p.Jitter >= maxDrawSpan/2 {
		return fmt.Errorf("%w: jitter %d is too large", ErrInvalidParams, p.Jitter)
	}
	return nil
}

// validateGeometry checks the arena and radius only.
func (p Params) validateGeometry() error {
	if !finite(p.Arena.Width) || !finite(p.Arena.Height) || !finite(p.Radius) {
		return fmt.Errorf("%w: arena %vx%v and radius %v must be finite",
			ErrInvalidParams, p.Arena.Width, p.Arena.Height, p.Radius)
	}
	if p.Arena.Width <= 0 || p.Arena.Height <= 0 {
		return fmt.Errorf("%w: arena must have positive size, got %vx%v", ErrInvalidParams, p.Arena.Width, p.Arena.Height)
	}
	if p.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidParams, p.Radius)
	}
	if p.Arena.Width < 2*p.Radius || p.Arena.Height < 2*p.Radius {
		return fmt.Errorf("%w: arena %vx%v cannot hold an entity of radius %v",
			ErrInvalidParams, p.Arena.Width, p.Arena.Height, p.Radius)
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

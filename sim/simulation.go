// Package sim implements the rock-paper-scissors simulation controller.
//
// A Simulation owns every entity. Callers advance it one tick at a time with
// Step and read the returned copy for display; nothing outside the package
// mutates entity state.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/systems"
)

// State is the controller's lifecycle state.
type State uint8

const (
	Running State = iota
	Over
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Over:
		return "over"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// StepResult is the outcome of one call to Step.
type StepResult struct {
	Tick        int32                // Ticks completed in the current match
	Entities    []EntityState        // Copy of every entity, in index order
	Conversions []systems.Conversion // Conversions applied this tick, in order
	Terminated  bool
	Winner      components.Kind // Valid only when Terminated
}

// Simulation runs one match at a time.
// It is not safe for concurrent use.
type Simulation struct {
	world   *ecs.World
	mapper  *ecs.Map3[components.Position, components.Velocity, components.Kind]
	posMap  *ecs.Map[components.Position]
	velMap  *ecs.Map[components.Velocity]
	kindMap *ecs.Map[components.Kind]
	physics *systems.PhysicsSystem

	// entities holds handles in creation order; an entity's index is its position here.
	entities []ecs.Entity

	params  Params
	rng     *rand.Rand
	initial []EntityState // explicit starting collection, nil for random spawns

	state  State
	winner components.Kind
	tick   int32

	// Per-tick scratch buffers
	positions   []components.Position
	kinds       []*components.Kind
	pairs       []systems.Pair
	conversions []systems.Conversion
}

// NewSimulation validates p and spawns a random population drawn from rng.
func NewSimulation(p Params, rng *rand.Rand) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParams)
	}

	s := &Simulation{params: p, rng: rng}
	s.build(spawnPopulation(p, rng))
	return s, nil
}

// NewSimulationFromEntities builds a simulation from an explicit collection.
// Only the arena and radius of p are used. Reset restores states.
func NewSimulationFromEntities(p Params, states []EntityState) (*Simulation, error) {
	if err := p.validateGeometry(); err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: empty entity collection", ErrInvalidParams)
	}
	for i, st := range states {
		if !st.Kind.Valid() {
			return nil, fmt.Errorf("%w: entity %d has invalid kind %d", ErrInvalidParams, i, uint8(st.Kind))
		}
		if !finite(st.Position.X) || !finite(st.Position.Y) || !finite(st.Velocity.X) || !finite(st.Velocity.Y) {
			return nil, fmt.Errorf("%w: entity %d has a non-finite position or velocity", ErrInvalidParams, i)
		}
		if st.Velocity.IsZero() {
			return nil, fmt.Errorf("%w: entity %d has zero velocity", ErrInvalidParams, i)
		}
	}

	s := &Simulation{
		params:  p,
		initial: append([]EntityState(nil), states...),
	}
	s.build(s.initial)
	return s, nil
}

// build replaces the world with a fresh one holding states.
func (s *Simulation) build(states []EntityState) {
	s.world = ecs.NewWorld()
	s.mapper = ecs.NewMap3[components.Position, components.Velocity, components.Kind](s.world)
	s.posMap = ecs.NewMap[components.Position](s.world)
	s.velMap = ecs.NewMap[components.Velocity](s.world)
	s.kindMap = ecs.NewMap[components.Kind](s.world)
	s.physics = systems.NewPhysicsSystem(s.world, s.params.Arena, s.params.Radius)

	s.entities = s.entities[:0]
	for _, st := range states {
		pos, vel, kind := st.Position, st.Velocity, st.Kind
		s.entities = append(s.entities, s.mapper.NewEntity(&pos, &vel, &kind))
	}

	n := len(s.entities)
	s.positions = make([]components.Position, n)
	s.kinds = make([]*components.Kind, n)

	s.state = Running
	s.winner = 0
	s.tick = 0
}

// Reset discards every entity and starts a new match with the original
// parameters. Random simulations draw a new layout from the same source.
func (s *Simulation) Reset() {
	if s.initial != nil {
		s.build(s.initial)
	} else {
		s.build(spawnPopulation(s.params, s.rng))
	}
	slog.Debug("simulation reset", "entities", len(s.entities))
}

// Step advances the simulation by one tick: move, detect contacts, resolve
// conversions, then check for a single surviving kind.
//
// A collection that already holds a single kind ends the match without any
// mutation. Once over, Step only reports the final state.
func (s *Simulation) Step() StepResult {
	if s.state == Over {
		return s.result(nil)
	}
	if k, ok := s.singleKind(); ok {
		s.finish(k)
		return s.result(nil)
	}

	s.physics.Update()

	for i, e := range s.entities {
		s.positions[i] = *s.posMap.Get(e)
		s.kinds[i] = s.kindMap.Get(e)
	}

	s.pairs = systems.DetectCollisions(s.pairs[:0], s.positions, s.params.Radius)
	s.conversions = systems.ResolveCollisions(s.pairs, s.kinds, s.conversions[:0])
	s.tick++

	var convs []systems.Conversion
	if len(s.conversions) > 0 {
		convs = append(convs, s.conversions...)
	}

	if k, ok := s.singleKind(); ok {
		s.finish(k)
	}
	return s.result(convs)
}

func (s *Simulation) finish(k components.Kind) {
	s.state = Over
	s.winner = k
	slog.Debug("match over", "winner", k.String(), "tick", s.tick)
}

func (s *Simulation) result(convs []systems.Conversion) StepResult {
	return StepResult{
		Tick:        s.tick,
		Entities:    s.Entities(),
		Conversions: convs,
		Terminated:  s.state == Over,
		Winner:      s.winner,
	}
}

// singleKind reports the kind shared by every entity, if there is one.
func (s *Simulation) singleKind() (components.Kind, bool) {
	if len(s.entities) == 0 {
		return 0, false
	}
	first := *s.kindMap.Get(s.entities[0])
	for _, e := range s.entities[1:] {
		if *s.kindMap.Get(e) != first {
			return 0, false
		}
	}
	return first, true
}

// Entities returns a copy of every entity in index order.
func (s *Simulation) Entities() []EntityState {
	out := make([]EntityState, len(s.entities))
	for i, e := range s.entities {
		out[i] = EntityState{
			Kind:     *s.kindMap.Get(e),
			Position: *s.posMap.Get(e),
			Velocity: *s.velMap.Get(e),
		}
	}
	return out
}

// Counts returns the current number of entities per kind.
func (s *Simulation) Counts() Counts {
	var c Counts
	for _, e := range s.entities {
		switch *s.kindMap.Get(e) {
		case components.Rock:
			c.Rock++
		case components.Paper:
			c.Paper++
		case components.Scissors:
			c.Scissors++
		}
	}
	return c
}

// State returns the lifecycle state.
func (s *Simulation) State() State { return s.state }

// Winner returns the surviving kind once the match is over.
func (s *Simulation) Winner() (components.Kind, bool) {
	return s.winner, s.state == Over
}

// Tick returns the number of ticks completed in the current match.
func (s *Simulation) Tick() int32 { return s.tick }

// Len returns the number of entities.
func (s *Simulation) Len() int { return len(s.entities) }

// Params returns the parameters the simulation was built with.
func (s *Simulation) Params() Params { return s.params }

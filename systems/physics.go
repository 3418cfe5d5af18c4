// Package systems contains the simulation systems: movement, collision
// detection and conversion.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rps/components"
)

// Bounds represents the arena bounds. The lower bound is 0 on both axes.
type Bounds struct {
	Width, Height float32
}

// Contains reports whether pos keeps a body of the given radius fully inside the arena.
func (b Bounds) Contains(pos components.Position, radius float32) bool {
	return pos.X >= radius && pos.X <= b.Width-radius &&
		pos.Y >= radius && pos.Y <= b.Height-radius
}

// Integrate advances pos by one tick of vel and reflects off the walls.
// Each axis is handled independently: a body crossing a wall is clamped to
// touch it and that velocity component is negated. A corner hit reflects
// both axes in the same tick.
func Integrate(pos *components.Position, vel *components.Velocity, radius float32, b Bounds) {
	pos.X += vel.X
	pos.Y += vel.Y

	if pos.X-radius < 0 {
		pos.X = radius
		vel.X = -vel.X
	} else if pos.X+radius > b.Width {
		pos.X = b.Width - radius
		vel.X = -vel.X
	}

	if pos.Y-radius < 0 {
		pos.Y = radius
		vel.Y = -vel.Y
	} else if pos.Y+radius > b.Height {
		pos.Y = b.Height - radius
		vel.Y = -vel.Y
	}
}

// PhysicsSystem moves every entity and bounces it off the arena walls.
type PhysicsSystem struct {
	filter *ecs.Filter2[components.Position, components.Velocity]
	bounds Bounds
	radius float32
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, bounds Bounds, radius float32) *PhysicsSystem {
	return &PhysicsSystem{
		filter: ecs.NewFilter2[components.Position, components.Velocity](w),
		bounds: bounds,
		radius: radius,
	}
}

// Update runs the physics system.
func (s *PhysicsSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		Integrate(pos, vel, s.radius, s.bounds)
	}
}

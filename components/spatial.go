// Package components defines ECS components for the simulation.
package components

// Position represents an entity's arena position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's per-tick displacement.
type Velocity struct {
	X, Y float32
}

// IsZero reports whether both components are zero.
func (v Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

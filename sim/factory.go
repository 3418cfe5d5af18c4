package sim

import (
	"math/rand"

	"github.com/pthm-cable/rps/components"
)

// EntityState is a plain copy of one entity.
type EntityState struct {
	Kind     components.Kind
	Position components.Position
	Velocity components.Velocity
}

// anchor returns the spawn cluster centre for kind k.
// Rock and paper sit on the upper corners of a triangle, scissors at its bottom vertex.
func (p Params) anchor(k components.Kind) (x, y int) {
	w, h := int(p.Arena.Width), int(p.Arena.Height)
	switch k {
	case components.Rock:
		return w / 4, h / 4
	case components.Paper:
		return 3 * w / 4, h / 4
	default:
		return w / 2, 3 * h / 4
	}
}

func (p Params) count(k components.Kind) int {
	switch k {
	case components.Rock:
		return p.Counts.Rock
	case components.Paper:
		return p.Counts.Paper
	default:
		return p.Counts.Scissors
	}
}

// randInt returns a uniform integer in [lo, hi]. hi-lo must be below maxDrawSpan.
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// spawnPopulation creates the initial entity states: all rock, then paper,
// then scissors, each clustered around its anchor. p must be valid.
func spawnPopulation(p Params, rng *rand.Rand) []EntityState {
	states := make([]EntityState, 0, p.Counts.Total())

	for _, k := range components.Kinds {
		ax, ay := p.anchor(k)
		for i := 0; i < p.count(k); i++ {
			x := ax + randInt(rng, -p.Jitter, p.Jitter)
			y := ay + randInt(rng, -p.Jitter, p.Jitter)

			vx := randInt(rng, p.SpeedMin, p.SpeedMax)
			vy := randInt(rng, p.SpeedMin, p.SpeedMax)
			for vx == 0 && vy == 0 {
				vx = randInt(rng, p.SpeedMin, p.SpeedMax)
				vy = randInt(rng, p.SpeedMin, p.SpeedMax)
			}

			states = append(states, EntityState{
				Kind:     k,
				Position: components.Position{X: float32(x), Y: float32(y)},
				Velocity: components.Velocity{X: float32(vx), Y: float32(vy)},
			})
		}
	}

	return states
}

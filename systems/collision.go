package systems

import "github.com/pthm-cable/rps/components"

// Pair is an unordered pair of entity indices with I < J.
type Pair struct {
	I, J int
}

// Overlaps reports whether the bounding boxes of two bodies intersect.
// Boxes are squares of side 2*radius centred on each position. Intervals
// are open: boxes that only share an edge do not overlap.
func Overlaps(a, b components.Position, radius float32) bool {
	side := 2 * radius
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < side && dy < side
}

// DetectCollisions appends every overlapping pair to dst and returns it.
// All pairs are checked; pairs are emitted by ascending I, then ascending J.
// Reuse dst across ticks to avoid allocations.
func DetectCollisions(dst []Pair, positions []components.Position, radius float32) []Pair {
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if Overlaps(positions[i], positions[j], radius) {
				dst = append(dst, Pair{I: i, J: j})
			}
		}
	}
	return dst
}

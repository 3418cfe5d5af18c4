package systems

import "github.com/pthm-cable/rps/components"

// prey maps each kind to the kind it beats.
var prey = [components.NumKinds]components.Kind{
	components.Rock:     components.Scissors,
	components.Paper:    components.Rock,
	components.Scissors: components.Paper,
}

// Beats reports whether a defeats b.
func Beats(a, b components.Kind) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return prey[a] == b
}

// Winner resolves a contact between a and b.
// Returns false when the kinds are equal (tie). The result does not depend
// on argument order.
func Winner(a, b components.Kind) (components.Kind, bool) {
	switch {
	case Beats(a, b):
		return a, true
	case Beats(b, a):
		return b, true
	default:
		return 0, false
	}
}

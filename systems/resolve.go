package systems

import (
	"sort"

	"github.com/pthm-cable/rps/components"
)

// Conversion records a single type change applied during resolution.
type Conversion struct {
	Index int             // entity that changed
	By    int             // entity that converted it
	From  components.Kind // kind before the change
	To    components.Kind // winner's kind
}

// SortPairs orders pairs for resolution: higher index descending, then
// lower index descending for pairs that share the higher index.
func SortPairs(pairs []Pair) {
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].J != pairs[b].J {
			return pairs[a].J > pairs[b].J
		}
		return pairs[a].I > pairs[b].I
	})
}

// ResolveCollisions applies the conversion rule to every pair in resolution
// order and appends the conversions performed to dst.
//
// Resolution is sequential: each pair sees the kinds left by the pairs
// before it in the same tick, so conversions can cascade. Pairs whose
// indices fall outside kinds are skipped. pairs is sorted in place.
func ResolveCollisions(pairs []Pair, kinds []*components.Kind, dst []Conversion) []Conversion {
	SortPairs(pairs)

	for _, p := range pairs {
		if p.I < 0 || p.J < 0 || p.I >= len(kinds) || p.J >= len(kinds) {
			continue
		}

		a, b := kinds[p.I], kinds[p.J]
		winner, ok := Winner(*a, *b)
		if !ok {
			continue
		}

		if winner == *a {
			dst = append(dst, Conversion{Index: p.J, By: p.I, From: *b, To: winner})
			*b = winner
		} else {
			dst = append(dst, Conversion{Index: p.I, By: p.J, From: *a, To: winner})
			*a = winner
		}
	}

	return dst
}

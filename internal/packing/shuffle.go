package packing

import (
	"math/rand"
	"sort"
)

// SortByAreaDescending sorts parts by descending intrinsic area, in place.
func SortByAreaDescending(parts []Part) {
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].Area() > parts[j].Area()
	})
}

// ShuffleNearEqualArea partitions parts (already sorted by descending area)
// into maximal contiguous runs of near-equal area — every element's area a
// satisfies |a - a0| <= max(1, a0/50), where a0 is the first element of the
// run — and shuffles each run in place using rng. The 2% band is a fixed
// design constant, not a tunable: it preserves the big-to-small ordering
// that drives first-fit-decreasing while exploring tie-break diversity.
func ShuffleNearEqualArea(parts []Part, rng *rand.Rand) {
	n := len(parts)
	for start := 0; start < n; {
		a0 := parts[start].Area()
		band := a0 / 50
		if band < 1 {
			band = 1
		}

		end := start + 1
		for end < n {
			a := parts[end].Area()
			diff := a0 - a
			if diff < 0 {
				diff = -diff
			}
			if diff > band {
				break
			}
			end++
		}

		shuffleRange(parts[start:end], rng)
		start = end
	}
}

// shuffleRange performs a Fisher-Yates shuffle over s using rng.
func shuffleRange(s []Part, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

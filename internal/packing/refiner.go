package packing

import (
	"math/rand"
	"sort"
)

// DefaultRefineRounds is the number of heavy-refinement rounds the driver
// runs per attempt.
const DefaultRefineRounds = 3

// RefineHeavy dissolves the two highest-waste sheets each round, pools
// their parts with re-packings of the rest, and re-packs the pool. A round
// is kept only on strict lexicographic score improvement; the first round
// that fails to improve (or whose pool does not fully fit) ends refinement
// early.
func RefineHeavy(sheets []*SheetLayout, strategy Strategy, allowRotation bool, rng *rand.Rand, rounds int) []*SheetLayout {
	current := cloneAll(sheets)

	for round := 0; round < rounds; round++ {
		if len(current) <= 1 {
			break
		}

		victims, survivors := splitVictims(current)

		pool := make([]Part, 0, len(victims)+len(survivors))
		for _, s := range survivors {
			clone := s.clone()
			clone.rebuild()
			for _, p := range clone.Placed {
				pool = append(pool, Part{Name: p.Part.Name, W: p.Part.W, H: p.Part.H})
			}
		}
		for _, v := range victims {
			for _, p := range v.Placed {
				pool = append(pool, Part{Name: p.Part.Name, W: p.Part.W, H: p.Part.H})
			}
		}

		SortByAreaDescending(pool)
		ShuffleNearEqualArea(pool, rng)

		sheetW, sheetH, kerf := current[0].SheetW, current[0].SheetH, current[0].Kerf
		newSheets, err := FirstFit(pool, sheetW, sheetH, kerf, strategy, allowRotation)
		if err != nil {
			break
		}

		if scoreSheets(newSheets).Less(scoreSheets(current)) {
			current = newSheets
			continue
		}

		break
	}

	return current
}

// splitVictims ranks sheets by descending scrap area and returns the top
// two as victims and the rest as survivors, in their original order.
func splitVictims(sheets []*SheetLayout) (victims, survivors []*SheetLayout) {
	order := make([]int, len(sheets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sheets[order[a]].ScrapArea() > sheets[order[b]].ScrapArea()
	})

	isVictim := make(map[int]bool, 2)
	for k := 0; k < len(order) && k < 2; k++ {
		isVictim[order[k]] = true
	}

	for i, s := range sheets {
		if isVictim[i] {
			victims = append(victims, s)
		} else {
			survivors = append(survivors, s)
		}
	}

	return victims, survivors
}

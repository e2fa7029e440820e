package packing

import (
	"fmt"
	"math/rand"
)

// PieceSpec is one (width, height, quantity) entry of a requested piece
// list, as it arrives from a caller.
type PieceSpec struct {
	W   int
	H   int
	Qty int
}

// FlattenPieces expands a piece list into individual Parts, named P1, P2,
// … in flattening order.
func FlattenPieces(pieces []PieceSpec) []Part {
	parts := make([]Part, 0, len(pieces))
	n := 0
	for _, ps := range pieces {
		for q := 0; q < ps.Qty; q++ {
			n++
			parts = append(parts, Part{Name: fmt.Sprintf("P%d", n), W: ps.W, H: ps.H})
		}
	}
	return parts
}

// Optimize is the primary entry point: it runs attempts independent
// multi-start searches, each randomizing near-equal-area parts, packing
// them with first-fit, compacting across sheets, and heavy-refining the
// result, and keeps the lexicographically best (sheet count, scrap) result
// across all attempts. Ties are broken by attempt order: the first attempt
// to reach a given score wins. attempts == 0 (or every attempt failing on
// an OversizedPartError) yields an empty, non-nil result.
func Optimize(sheetW, sheetH, kerf int, pieces []PieceSpec, strategy Strategy, allowRotation bool, attempts int, seed int64) ([]*SheetLayout, error) {
	if err := validateSheet(sheetW, sheetH, kerf); err != nil {
		return nil, err
	}
	if attempts <= 0 {
		return []*SheetLayout{}, nil
	}

	base := FlattenPieces(pieces)

	var (
		best      []*SheetLayout
		bestScore Score
		haveBest  bool
	)

	for attempt := 0; attempt < attempts; attempt++ {
		rng := rand.New(rand.NewSource(seed + int64(attempt)))

		parts := make([]Part, len(base))
		copy(parts, base)
		SortByAreaDescending(parts)
		ShuffleNearEqualArea(parts, rng)

		sheets, err := FirstFit(parts, sheetW, sheetH, kerf, strategy, allowRotation)
		if err != nil {
			continue
		}

		sheets = Compact(sheets, strategy, allowRotation)
		sheets = RefineHeavy(sheets, strategy, allowRotation, rng, DefaultRefineRounds)

		sc := scoreSheets(sheets)
		if !haveBest || sc.Less(bestScore) {
			bestScore = sc
			best = sheets
			haveBest = true
		}
	}

	if !haveBest {
		return []*SheetLayout{}, nil
	}

	return cloneAll(best), nil
}

func validateSheet(sheetW, sheetH, kerf int) error {
	if sheetW <= 0 || sheetH <= 0 {
		return fmt.Errorf("packing: invalid sheet size %dx%d", sheetW, sheetH)
	}
	if kerf < 0 {
		return fmt.Errorf("packing: invalid kerf %d", kerf)
	}
	return nil
}

package packing

import "sort"

// Compact iterates the global compactor to a fixed point: it tries to empty
// later sheets by migrating individual parts into earlier sheets. Every
// migration that a receiving sheet accepts is kept, whether or not it
// improves the global score (no rollback within a pass); only a strict
// score improvement restarts the scan.
//
// strategy and allowRotation are the driver's configured values; migrated
// parts are re-placed on the receiving sheet under these values rather than
// the receiving sheet's own configured strategy/rotation, by design.
func Compact(sheets []*SheetLayout, strategy Strategy, allowRotation bool) []*SheetLayout {
	sheets = cloneAll(sheets)

	for compactOnePass(&sheets, strategy, allowRotation) {
	}

	return sheets
}

// compactOnePass runs one full scan over donor sheets (from last to
// second), attempting at most one migration per donor: the ascending-area
// list it scans is a snapshot taken before the donor's first successful
// migration, and that migration's rebuild() re-places the donor's
// remaining parts at fresh coordinates, invalidating the rest of the
// snapshot. It returns true the moment a migration makes the score
// strictly better than the scan's starting score, in which case the
// caller should restart the outer loop; it keeps every migration it
// performs regardless of whether the move improved the score.
func compactOnePass(sheets *[]*SheetLayout, strategy Strategy, allowRotation bool) bool {
	startScore := scoreSheets(*sheets)

	for i := len(*sheets) - 1; i >= 1; i-- {
		donor := (*sheets)[i]

		for _, p := range sortedAscendingArea(donor.Placed) {
			if !migrateOne(*sheets, i, p, strategy, allowRotation) {
				continue
			}

			removePlaced(donor, p)

			if len(donor.Placed) > 0 {
				donor.rebuild()
			} else {
				*sheets = dropSheet(*sheets, i)
			}

			// At most one migration per donor per scan: continuing
			// past this point would walk stale PlacedPart values from
			// before rebuild() re-placed the donor's remaining parts.
			break
		}

		if scoreSheets(*sheets).Less(startScore) {
			return true
		}
	}

	return false
}

// migrateOne tries to re-place a fresh Part carrying p's effective
// dimensions onto one of sheets[0:donorIdx], temporarily substituting the
// receiving sheet's strategy/rotation with the compactor's configured
// values. Returns true on the first acceptance.
func migrateOne(sheets []*SheetLayout, donorIdx int, p PlacedPart, strategy Strategy, allowRotation bool) bool {
	fresh := Part{Name: p.Part.Name, W: p.EffW(), H: p.EffH()}

	for i := 0; i < donorIdx; i++ {
		recv := sheets[i]
		origStrategy, origRotation := recv.Strategy, recv.AllowRotation
		recv.Strategy, recv.AllowRotation = strategy, allowRotation
		ok := recv.TryPlace(fresh)
		recv.Strategy, recv.AllowRotation = origStrategy, origRotation
		if ok {
			return true
		}
	}

	return false
}

// sortedAscendingArea returns a copy of placed sorted by ascending
// effective area; the donor's own slice is left untouched.
func sortedAscendingArea(placed []PlacedPart) []PlacedPart {
	out := make([]PlacedPart, len(placed))
	copy(out, placed)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Area() < out[b].Area()
	})
	return out
}

// removePlaced removes the first PlacedPart on sheet equal to p.
func removePlaced(sheet *SheetLayout, p PlacedPart) {
	for i, q := range sheet.Placed {
		if q == p {
			sheet.Placed = append(sheet.Placed[:i], sheet.Placed[i+1:]...)
			return
		}
	}
}

func dropSheet(sheets []*SheetLayout, i int) []*SheetLayout {
	out := make([]*SheetLayout, 0, len(sheets)-1)
	out = append(out, sheets[:i]...)
	out = append(out, sheets[i+1:]...)
	return out
}

func cloneAll(sheets []*SheetLayout) []*SheetLayout {
	out := make([]*SheetLayout, len(sheets))
	for i, s := range sheets {
		out[i] = s.clone()
	}
	return out
}

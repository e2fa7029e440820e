package packing

// Score is the (sheet count, total scrap area) pair compared
// lexicographically; smaller is better.
type Score struct {
	Sheets int
	Scrap  int
}

// Less reports whether s is strictly better than other.
func (s Score) Less(other Score) bool {
	if s.Sheets != other.Sheets {
		return s.Sheets < other.Sheets
	}
	return s.Scrap < other.Scrap
}

// scoreSheets computes the (sheet count, total scrap) score for a sheet list.
func scoreSheets(sheets []*SheetLayout) Score {
	sc := Score{Sheets: len(sheets)}
	for _, s := range sheets {
		sc.Scrap += s.ScrapArea()
	}
	return sc
}

// rebuild resets the sheet's free-rect and placed lists and re-places its
// current parts in descending effective-area order under its own configured
// strategy and rotation flag. It assumes every part already fit before and
// therefore fits again.
func (s *SheetLayout) rebuild() {
	parts := make([]Part, len(s.Placed))
	for i, p := range s.Placed {
		// Re-derive an orientation-free Part from the intrinsic
		// dimensions: the part is free to re-orient during rebuild.
		parts[i] = Part{Name: p.Part.Name, W: p.Part.W, H: p.Part.H}
	}
	sortByEffectiveAreaDesc(parts, s.Placed)

	fresh := NewSheetLayout(s.SheetW, s.SheetH, s.Kerf, s.Strategy, s.AllowRotation)
	for _, part := range parts {
		fresh.TryPlace(part)
	}

	s.Placed = fresh.Placed
	s.free = fresh.free
}

// sortByEffectiveAreaDesc sorts parts (freshly derived from placed, in the
// same order) by the effective area they occupied, descending.
func sortByEffectiveAreaDesc(parts []Part, placed []PlacedPart) {
	areas := make([]int, len(placed))
	for i, p := range placed {
		areas[i] = p.Area()
	}

	for i := 1; i < len(parts); i++ {
		j := i
		for j > 0 && areas[j-1] < areas[j] {
			areas[j-1], areas[j] = areas[j], areas[j-1]
			parts[j-1], parts[j] = parts[j], parts[j-1]
			j--
		}
	}
}

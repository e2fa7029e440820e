package packing

// FirstFit packs parts in the given order: each part is tried against
// existing sheets in index order, and placed on the first one that accepts
// it. If no existing sheet accepts a part, a new sheet is opened and tried;
// if the new, empty sheet also refuses it, FirstFit returns an
// *OversizedPartError.
func FirstFit(parts []Part, sheetW, sheetH, kerf int, strategy Strategy, allowRotation bool) ([]*SheetLayout, error) {
	sheets := make([]*SheetLayout, 0, 4)

	for _, part := range parts {
		placed := false
		for _, sheet := range sheets {
			if sheet.TryPlace(part) {
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		sheet := NewSheetLayout(sheetW, sheetH, kerf, strategy, allowRotation)
		if !sheet.TryPlace(part) {
			return nil, &OversizedPartError{PartName: part.Name, SheetW: sheetW, SheetH: sheetH}
		}
		sheets = append(sheets, sheet)
	}

	return sheets, nil
}

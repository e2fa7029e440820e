package packing

import "github.com/google/uuid"

// Offcut is a scrap region left on a finished sheet that is large enough to
// be saved as reusable stock for a future job, rather than discarded.
type Offcut struct {
	ID         string
	SheetIndex int
	X, Y, W, H int
}

// Area returns the offcut's area.
func (o Offcut) Area() int {
	return o.W * o.H
}

// DetectOffcuts reports the sheet's free regions that meet the given
// minimum dimension and area thresholds. It is a read-only report over an
// already-finished SheetLayout: it inspects the sheet's free-rectangle
// bookkeeping but never mutates it or influences packing decisions.
func DetectOffcuts(sheet *SheetLayout, sheetIndex, minDimension, minArea int) []Offcut {
	var out []Offcut

	for _, fr := range sheet.FreeRects() {
		if fr.W < minDimension || fr.H < minDimension {
			continue
		}
		if fr.Area() < minArea {
			continue
		}

		out = append(out, Offcut{
			ID:         uuid.New().String()[:8],
			SheetIndex: sheetIndex,
			X:          fr.X,
			Y:          fr.Y,
			W:          fr.W,
			H:          fr.H,
		})
	}

	return out
}

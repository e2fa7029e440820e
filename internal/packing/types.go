// Package packing implements the sheet-cutting layout engine: a
// free-rectangle placement heuristic specialized with a strip-column bias,
// an inter-sheet compactor, a heavy refinement pass, and a multi-start
// driver that searches for the lexicographically best (sheet count, scrap)
// result.
package packing

import "strings"

// Strategy selects the scoring rule used by the scored placement pass.
type Strategy int

const (
	// BSSF is Best Short Side Fit: minimizes the shorter leftover side.
	BSSF Strategy = iota
	// BAF is Best Area Fit: minimizes the leftover area.
	BAF
	// BLSF is Best Long Side Fit: minimizes the longer leftover side.
	BLSF
)

// ParseStrategy parses a strategy tag case-insensitively, falling back to
// BSSF for anything it does not recognize.
func ParseStrategy(s string) Strategy {
	switch strings.ToUpper(s) {
	case "BAF":
		return BAF
	case "BLSF":
		return BLSF
	default:
		return BSSF
	}
}

// String returns the canonical tag for a Strategy.
func (s Strategy) String() string {
	switch s {
	case BAF:
		return "BAF"
	case BLSF:
		return "BLSF"
	default:
		return "BSSF"
	}
}

// Part is a canonical rectangular part to be cut. A Part is immutable after
// creation; its Name is assigned at flattening time from a piece list.
type Part struct {
	Name string
	W    int
	H    int
}

// Area returns the intrinsic area of the part.
func (p Part) Area() int {
	return p.W * p.H
}

// PlacedPart is a Part positioned on a specific sheet.
type PlacedPart struct {
	Part    Part
	X       int
	Y       int
	Rotated bool
}

// EffW returns the effective (post-rotation) width.
func (p PlacedPart) EffW() int {
	if p.Rotated {
		return p.Part.H
	}
	return p.Part.W
}

// EffH returns the effective (post-rotation) height.
func (p PlacedPart) EffH() int {
	if p.Rotated {
		return p.Part.W
	}
	return p.Part.H
}

// Area returns the effective placed area.
func (p PlacedPart) Area() int {
	return p.EffW() * p.EffH()
}

// FreeRect is an axis-aligned rectangle of currently-unoccupied sheet area.
type FreeRect struct {
	X, Y, W, H int
}

// Area returns the area of the free rectangle.
func (f FreeRect) Area() int {
	return f.W * f.H
}

// SheetLayout is one physical sheet: its dimensions, kerf, the scoring
// strategy and rotation flag it was built with, its placed parts in
// placement order, and the free-rectangle bookkeeping used to place more
// parts.
type SheetLayout struct {
	SheetW        int
	SheetH        int
	Kerf          int
	Strategy      Strategy
	AllowRotation bool

	Placed []PlacedPart
	free   []FreeRect
}

// NewSheetLayout creates an empty sheet with a single free rectangle
// covering the whole sheet.
func NewSheetLayout(sheetW, sheetH, kerf int, strategy Strategy, allowRotation bool) *SheetLayout {
	s := &SheetLayout{
		SheetW:        sheetW,
		SheetH:        sheetH,
		Kerf:          kerf,
		Strategy:      strategy,
		AllowRotation: allowRotation,
		Placed:        make([]PlacedPart, 0, 32),
		free:          make([]FreeRect, 0, 32),
	}
	s.free = append(s.free, FreeRect{X: 0, Y: 0, W: sheetW, H: sheetH})
	return s
}

// UsedArea returns the sum of effective placed areas.
func (s *SheetLayout) UsedArea() int {
	total := 0
	for _, p := range s.Placed {
		total += p.Area()
	}
	return total
}

// ScrapArea returns the sheet area not covered by placed parts.
func (s *SheetLayout) ScrapArea() int {
	return s.SheetW*s.SheetH - s.UsedArea()
}

// FreeRects exposes a copy of the current free-rectangle list. It is an
// implementation detail of the engine; callers should not rely on its order
// or exact contents beyond the invariants of the packing algorithm.
func (s *SheetLayout) FreeRects() []FreeRect {
	out := make([]FreeRect, len(s.free))
	copy(out, s.free)
	return out
}

// clone deep-copies the sheet, including its free-rectangle bookkeeping.
func (s *SheetLayout) clone() *SheetLayout {
	c := &SheetLayout{
		SheetW:        s.SheetW,
		SheetH:        s.SheetH,
		Kerf:          s.Kerf,
		Strategy:      s.Strategy,
		AllowRotation: s.AllowRotation,
		Placed:        make([]PlacedPart, len(s.Placed)),
		free:          make([]FreeRect, len(s.free)),
	}
	copy(c.Placed, s.Placed)
	copy(c.free, s.free)
	return c
}

package packing

import "testing"

func TestOptimizeSinglePieceExactSheet(t *testing.T) {
	t.Parallel()

	sheets, err := Optimize(100, 100, 0, []PieceSpec{{W: 100, H: 100, Qty: 1}}, BSSF, true, 1, 1)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(sheets))
	}
	if len(sheets[0].Placed) != 1 {
		t.Fatalf("placed = %d, want 1", len(sheets[0].Placed))
	}
	p := sheets[0].Placed[0]
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("placement = (%d,%d), want (0,0)", p.X, p.Y)
	}
	if sheets[0].UsedArea() != 10000 {
		t.Fatalf("used area = %d, want 10000", sheets[0].UsedArea())
	}
	if sheets[0].ScrapArea() != 0 {
		t.Fatalf("scrap = %d, want 0", sheets[0].ScrapArea())
	}
}

func TestOptimizeFourNonCombinableSquares(t *testing.T) {
	t.Parallel()

	sheets, err := Optimize(100, 100, 0, []PieceSpec{{W: 60, H: 60, Qty: 4}}, BSSF, true, 10, 7)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(sheets) != 4 {
		t.Fatalf("sheets = %d, want 4", len(sheets))
	}

	total := 0
	for _, s := range sheets {
		total += s.ScrapArea()
	}
	if want := 4 * (10000 - 3600); total != want {
		t.Fatalf("total scrap = %d, want %d", total, want)
	}
}

func TestOptimizeFourQuarterTiles(t *testing.T) {
	t.Parallel()

	sheets, err := Optimize(100, 100, 0, []PieceSpec{{W: 50, H: 50, Qty: 4}}, BSSF, false, 5, 3)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(sheets))
	}
	if len(sheets[0].Placed) != 4 {
		t.Fatalf("placed = %d, want 4", len(sheets[0].Placed))
	}
	if sheets[0].ScrapArea() != 0 {
		t.Fatalf("scrap = %d, want 0", sheets[0].ScrapArea())
	}
	assertNoOverlapAndContained(t, sheets[0])
}

func TestOptimizeKerfSeparatesFourTiles(t *testing.T) {
	t.Parallel()

	sheets, err := Optimize(100, 100, 2, []PieceSpec{{W: 49, H: 49, Qty: 4}}, BSSF, false, 5, 11)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(sheets))
	}
	if len(sheets[0].Placed) != 4 {
		t.Fatalf("placed = %d, want 4", len(sheets[0].Placed))
	}

	want := map[[2]int]bool{{0, 0}: true, {51, 0}: true, {0, 51}: true, {51, 51}: true}
	for _, p := range sheets[0].Placed {
		if !want[[2]int{p.X, p.Y}] {
			t.Fatalf("unexpected placement at (%d,%d)", p.X, p.Y)
		}
	}

	if want, got := 10000-4*2401, sheets[0].ScrapArea(); got != want {
		t.Fatalf("scrap = %d, want %d", got, want)
	}
	assertNoOverlapAndContained(t, sheets[0])
	assertKerfRespected(t, sheets[0])
}

func TestOptimizeStripOfTenPieces(t *testing.T) {
	t.Parallel()

	sheets, err := Optimize(100, 100, 0, []PieceSpec{{W: 40, H: 10, Qty: 10}}, BSSF, true, 20, 42)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(sheets))
	}
	assertNoOverlapAndContained(t, sheets[0])
	assertConservation(t, sheets, []PieceSpec{{W: 40, H: 10, Qty: 10}}, true)
}

func TestOptimizeOversizedPartYieldsEmptyResult(t *testing.T) {
	t.Parallel()

	sheets, err := Optimize(50, 50, 0, []PieceSpec{{W: 60, H: 10, Qty: 1}}, BSSF, false, 1, 1)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(sheets) != 0 {
		t.Fatalf("sheets = %d, want 0", len(sheets))
	}
}

func TestOptimizeZeroAttemptsYieldsEmptyResult(t *testing.T) {
	t.Parallel()

	sheets, err := Optimize(100, 100, 0, []PieceSpec{{W: 10, H: 10, Qty: 1}}, BSSF, true, 0, 1)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(sheets) != 0 {
		t.Fatalf("sheets = %d, want 0", len(sheets))
	}
}

func TestOptimizeDeterministicUnderFixedSeed(t *testing.T) {
	t.Parallel()

	pieces := []PieceSpec{{W: 30, H: 20, Qty: 6}, {W: 15, H: 15, Qty: 8}, {W: 40, H: 40, Qty: 2}}

	a, err := Optimize(100, 100, 1, pieces, BAF, true, 15, 99)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	b, err := Optimize(100, 100, 1, pieces, BAF, true, 15, 99)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("sheet counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i].Placed) != len(b[i].Placed) {
			t.Fatalf("sheet %d placed counts differ", i)
		}
		for j := range a[i].Placed {
			if a[i].Placed[j] != b[i].Placed[j] {
				t.Fatalf("sheet %d placement %d differs: %+v vs %+v", i, j, a[i].Placed[j], b[i].Placed[j])
			}
		}
	}
}

func TestOptimizeInvalidSheetSizeErrors(t *testing.T) {
	t.Parallel()

	if _, err := Optimize(0, 100, 0, nil, BSSF, false, 1, 1); err == nil {
		t.Fatal("expected error for zero sheet width")
	}
	if _, err := Optimize(100, 100, -1, nil, BSSF, false, 1, 1); err == nil {
		t.Fatal("expected error for negative kerf")
	}
}

// assertNoOverlapAndContained checks the no-overlap and containment
// invariants of spec.md section 8 for every pair of placed parts on sheet.
func assertNoOverlapAndContained(t *testing.T, sheet *SheetLayout) {
	t.Helper()

	for _, p := range sheet.Placed {
		if p.X < 0 || p.Y < 0 || p.X+p.EffW() > sheet.SheetW || p.Y+p.EffH() > sheet.SheetH {
			t.Fatalf("placement out of bounds: %+v on %dx%d sheet", p, sheet.SheetW, sheet.SheetH)
		}
	}

	for i := 0; i < len(sheet.Placed); i++ {
		for j := i + 1; j < len(sheet.Placed); j++ {
			a, b := sheet.Placed[i], sheet.Placed[j]
			if rectsOverlap(a.X, a.Y, a.EffW(), a.EffH(), b.X, b.Y, b.EffW(), b.EffH()) {
				t.Fatalf("placements overlap: %+v and %+v", a, b)
			}
		}
	}
}

// assertKerfRespected checks that, when kerf > 0, any pair of placements
// separated along one axis while overlapping on the other (i.e. abutting)
// leaves a gap of at least kerf.
func assertKerfRespected(t *testing.T, sheet *SheetLayout) {
	t.Helper()
	if sheet.Kerf <= 0 {
		return
	}

	for i := 0; i < len(sheet.Placed); i++ {
		for j := i + 1; j < len(sheet.Placed); j++ {
			a, b := sheet.Placed[i], sheet.Placed[j]
			xOv := rangeOverlap(a.X, a.X+a.EffW(), b.X, b.X+b.EffW())
			yOv := rangeOverlap(a.Y, a.Y+a.EffH(), b.Y, b.Y+b.EffH())

			if yOv && !xOv {
				if gap := rangeGap(a.X, a.X+a.EffW(), b.X, b.X+b.EffW()); gap < sheet.Kerf {
					t.Fatalf("horizontal gap %d < kerf %d between %+v and %+v", gap, sheet.Kerf, a, b)
				}
			}
			if xOv && !yOv {
				if gap := rangeGap(a.Y, a.Y+a.EffH(), b.Y, b.Y+b.EffH()); gap < sheet.Kerf {
					t.Fatalf("vertical gap %d < kerf %d between %+v and %+v", gap, sheet.Kerf, a, b)
				}
			}
		}
	}
}

func rangeOverlap(a0, a1, b0, b1 int) bool {
	return a0 < b1 && b0 < a1
}

// rangeGap returns the gap between two disjoint ranges; callers only call
// it when the ranges do not overlap.
func rangeGap(a0, a1, b0, b1 int) int {
	if a1 <= b0 {
		return b0 - a1
	}
	return a0 - b1
}

func rectsOverlap(ax, ay, aw, ah, bx, by, bw, bh int) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

// assertConservation checks that the multiset of effective (w,h) placed
// parts, modulo rotation equivalence when rotation is allowed, equals the
// multiset induced by pieces.
func assertConservation(t *testing.T, sheets []*SheetLayout, pieces []PieceSpec, allowRotation bool) {
	t.Helper()

	want := map[[2]int]int{}
	for _, ps := range pieces {
		key := [2]int{ps.W, ps.H}
		if allowRotation && ps.W > ps.H {
			key = [2]int{ps.H, ps.W}
		}
		want[key] += ps.Qty
	}

	got := map[[2]int]int{}
	for _, s := range sheets {
		for _, p := range s.Placed {
			w, h := p.EffW(), p.EffH()
			key := [2]int{w, h}
			if allowRotation && w > h {
				key = [2]int{h, w}
			}
			got[key]++
		}
	}

	for k, v := range want {
		if got[k] != v {
			t.Fatalf("conservation mismatch for %v: got %d, want %d", k, got[k], v)
		}
	}
}

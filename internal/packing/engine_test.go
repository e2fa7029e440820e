package packing

import "testing"

func TestTryPlaceExactFitPrefersLowerLeft(t *testing.T) {
	t.Parallel()

	sheet := NewSheetLayout(100, 50, 0, BSSF, false)
	if !sheet.TryPlace(Part{Name: "a", W: 100, H: 20}) {
		t.Fatal("expected first placement to succeed")
	}
	if p := sheet.Placed[0]; p.X != 0 || p.Y != 0 {
		t.Fatalf("first placement at (%d,%d), want (0,0)", p.X, p.Y)
	}

	// Exact-fit on full width, should stack directly above.
	if !sheet.TryPlace(Part{Name: "b", W: 100, H: 20}) {
		t.Fatal("expected second placement to succeed")
	}
	if p := sheet.Placed[1]; p.X != 0 || p.Y != 20 {
		t.Fatalf("second placement at (%d,%d), want (0,20)", p.X, p.Y)
	}
}

func TestTryPlaceRejectsWhenNoFit(t *testing.T) {
	t.Parallel()

	sheet := NewSheetLayout(10, 10, 0, BSSF, false)
	if !sheet.TryPlace(Part{Name: "a", W: 10, H: 10}) {
		t.Fatal("expected exact-fill placement to succeed")
	}
	if sheet.TryPlace(Part{Name: "b", W: 1, H: 1}) {
		t.Fatal("expected placement to fail on a full sheet")
	}
}

func TestTryPlaceRotationRespected(t *testing.T) {
	t.Parallel()

	sheet := NewSheetLayout(10, 20, 0, BSSF, false)
	if sheet.TryPlace(Part{Name: "a", W: 20, H: 10}) {
		t.Fatal("expected placement to fail when rotation is disallowed")
	}

	rotSheet := NewSheetLayout(10, 20, 0, BSSF, true)
	if !rotSheet.TryPlace(Part{Name: "a", W: 20, H: 10}) {
		t.Fatal("expected placement to succeed when rotation is allowed")
	}
	if !rotSheet.Placed[0].Rotated {
		t.Fatal("expected placement to be rotated")
	}
}

func TestTryPlaceKerfInsetsInteriorCutsOnly(t *testing.T) {
	t.Parallel()

	sheet := NewSheetLayout(20, 10, 3, BSSF, false)
	if !sheet.TryPlace(Part{Name: "a", W: 10, H: 10}) {
		t.Fatal("expected first placement to succeed")
	}
	if !sheet.TryPlace(Part{Name: "b", W: 7, H: 10}) {
		t.Fatal("expected second placement to succeed")
	}
	b := sheet.Placed[1]
	if b.X != 13 {
		t.Fatalf("second placement at x=%d, want x=13 (10 + kerf 3)", b.X)
	}
}

func TestFreeRectsStayNonContainedAfterPlacements(t *testing.T) {
	t.Parallel()

	sheet := NewSheetLayout(50, 50, 1, BAF, true)
	parts := []Part{
		{Name: "a", W: 20, H: 10},
		{Name: "b", W: 15, H: 15},
		{Name: "c", W: 10, H: 30},
		{Name: "d", W: 5, H: 5},
	}
	for _, p := range parts {
		sheet.TryPlace(p)
	}

	free := sheet.FreeRects()
	for i := range free {
		for j := range free {
			if i == j {
				continue
			}
			if containedIn(free[i], free[j]) {
				t.Fatalf("free rect %+v is contained in %+v", free[i], free[j])
			}
		}
	}
}

func TestMergeRectsJoinsSharedEdges(t *testing.T) {
	t.Parallel()

	a := FreeRect{X: 0, Y: 0, W: 10, H: 5}
	b := FreeRect{X: 10, Y: 0, W: 10, H: 5}
	m, ok := mergeRects(a, b)
	if !ok {
		t.Fatal("expected horizontal merge")
	}
	if m != (FreeRect{X: 0, Y: 0, W: 20, H: 5}) {
		t.Fatalf("merged = %+v, want {0 0 20 5}", m)
	}

	c := FreeRect{X: 0, Y: 5, W: 10, H: 5}
	m2, ok := mergeRects(a, c)
	if !ok {
		t.Fatal("expected vertical merge")
	}
	if m2 != (FreeRect{X: 0, Y: 0, W: 10, H: 10}) {
		t.Fatalf("merged = %+v, want {0 0 10 10}", m2)
	}
}

func TestStrategiesAllPlaceWithoutOverlap(t *testing.T) {
	t.Parallel()

	for _, strategy := range []Strategy{BSSF, BAF, BLSF} {
		sheet := NewSheetLayout(80, 80, 2, strategy, true)
		parts := []Part{
			{Name: "a", W: 30, H: 20},
			{Name: "b", W: 25, H: 25},
			{Name: "c", W: 10, H: 60},
			{Name: "d", W: 40, H: 10},
			{Name: "e", W: 15, H: 15},
		}
		for _, p := range parts {
			if !sheet.TryPlace(p) {
				t.Fatalf("strategy %v: expected %+v to fit", strategy, p)
			}
		}
		assertNoOverlapAndContained(t, sheet)
		assertKerfRespected(t, sheet)
	}
}

package packing

import "testing"

func TestCompactMigratesPartsIntoEarlierSheets(t *testing.T) {
	t.Parallel()

	sheets, err := FirstFit([]Part{
		{Name: "a", W: 90, H: 90},
		{Name: "b", W: 10, H: 10},
		{Name: "c", W: 10, H: 10},
	}, 100, 100, 0, BSSF, false)
	if err != nil {
		t.Fatalf("FirstFit: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheets before compaction = %d, want 1", len(sheets))
	}

	// Force a second, near-empty donor sheet by hand to exercise the
	// compactor's migration path independently of first-fit's own
	// placement choices.
	donor := NewSheetLayout(100, 100, 0, BSSF, false)
	donor.TryPlace(Part{Name: "d", W: 5, H: 5})
	sheets = append(sheets, donor)

	before := scoreSheets(sheets)
	compacted := Compact(sheets, BSSF, false)
	after := scoreSheets(compacted)

	if after.Sheets > before.Sheets {
		t.Fatalf("compaction increased sheet count: %d -> %d", before.Sheets, after.Sheets)
	}
	if len(compacted) == 2 {
		// Migration should have at least been attempted; if the donor
		// part still didn't fit anywhere else, it is legitimately kept.
		t.Logf("compaction left %d sheets (donor part may not have fit earlier)", len(compacted))
	}

	total := 0
	for _, s := range compacted {
		total += len(s.Placed)
	}
	if total != 4 {
		t.Fatalf("placed parts after compaction = %d, want 4 (conservation)", total)
	}
}

func TestCompactNeverWorsensScore(t *testing.T) {
	t.Parallel()

	sheets, err := FirstFit([]Part{
		{Name: "a", W: 60, H: 60},
		{Name: "b", W: 60, H: 60},
		{Name: "c", W: 60, H: 60},
	}, 100, 100, 0, BSSF, false)
	if err != nil {
		t.Fatalf("FirstFit: %v", err)
	}

	before := scoreSheets(sheets)
	after := scoreSheets(Compact(sheets, BSSF, false))
	if after.Sheets > before.Sheets || (after.Sheets == before.Sheets && after.Scrap > before.Scrap) {
		t.Fatalf("compaction worsened score: %+v -> %+v", before, after)
	}
}

package cutlist

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteSmoke(t *testing.T) {
	t.Parallel()

	cl := &CutList{
		Name:          "kitchen cabinets",
		RunID:         "a1b2c3d4",
		SheetW:        2440,
		SheetH:        1220,
		Kerf:          3,
		Strategy:      "BSSF",
		AllowRotation: true,
		Sheets: []CutSheet{
			{
				Index:     0,
				UsedArea:  2853200,
				ScrapArea: 124800,
				Parts: []CutPart{
					{Name: "P1", X: 0, Y: 0, Width: 600, Height: 400, Rotated: false},
				},
				Offcuts: []CutOffcut{
					{ID: "a1b2c3d4", X: 600, Y: 0, Width: 1840, Height: 1220},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, cl, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	contains := []string{
		"CutListClass {",
		`Name "kitchen_cabinets"`,
		`RunId "a1b2c3d4"`,
		"Sheet 2440 1220",
		"Kerf 3",
		`Strategy "BSSF"`,
		"AllowRotation 1",
		"Sheets {",
		"CutSheetClass 0 {",
		"UsedArea 2853200",
		"ScrapArea 124800",
		"Parts {",
		"CutPartClass p1 {",
		`Name "P1"`,
		"Pos 0 0",
		"Size 600 400",
		"Rotated 0",
		"Offcuts {",
		"CutOffcutClass a1b2c3d4 {",
	}
	for _, s := range contains {
		if !strings.Contains(out, s) {
			t.Fatalf("output does not contain %q\n%s", s, out)
		}
	}
}

func TestWriteYAMLRoundTrips(t *testing.T) {
	t.Parallel()

	cl := &CutList{
		Name:     "panel run",
		RunID:    "deadbeef",
		SheetW:   1000,
		SheetH:   500,
		Kerf:     2,
		Strategy: "BAF",
		Sheets: []CutSheet{
			{Index: 0, UsedArea: 50000, ScrapArea: 450000},
		},
	}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, cl); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	out := buf.String()
	for _, s := range []string{"run_id: deadbeef", "sheet_w: 1000", "sheet_h: 500", "kerf: 2"} {
		if !strings.Contains(out, s) {
			t.Fatalf("yaml output does not contain %q\n%s", s, out)
		}
	}
}

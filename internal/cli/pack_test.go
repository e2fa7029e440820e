package cli

import "testing"

func TestParseWxH(t *testing.T) {
	t.Parallel()

	w, h, err := parseWxH("2440x1220")
	if err != nil {
		t.Fatalf("parseWxH: %v", err)
	}
	if w != 2440 || h != 1220 {
		t.Fatalf("parseWxH = (%d, %d), want (2440, 1220)", w, h)
	}

	if _, _, err := parseWxH("nope"); err == nil {
		t.Fatal("expected error for malformed sheet size")
	}
}

func TestParsePieceFlag(t *testing.T) {
	t.Parallel()

	p, err := parsePieceFlag("600x400x4")
	if err != nil {
		t.Fatalf("parsePieceFlag: %v", err)
	}
	if p.Width != 600 || p.Height != 400 || p.Quantity != 4 {
		t.Fatalf("unexpected piece: %+v", p)
	}

	p2, err := parsePieceFlag("100x50")
	if err != nil {
		t.Fatalf("parsePieceFlag: %v", err)
	}
	if p2.Quantity != 1 {
		t.Fatalf("default quantity = %d, want 1", p2.Quantity)
	}

	if _, err := parsePieceFlag("bad"); err == nil {
		t.Fatal("expected error for malformed piece")
	}
}

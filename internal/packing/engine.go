package packing

// Strip-bias constants. Empirical, fixed by design; do not retune without a
// regression suite to validate packing quality against.
const (
	stripBiasBase       = 10000
	stripBiasLeftEdge   = 200
	stripBiasColumn     = 5000
	stripBiasYCapFactor = 200
)

// candidate is one (free rect, orientation) placement option under
// consideration during try-place.
type candidate struct {
	freeIdx     int
	orientation int // 0 = unrotated, 1 = rotated
	pw, ph      int
	placedX     int
	placedY     int
	fr          FreeRect
}

// TryPlace attempts to place part on the sheet using the configured scoring
// strategy and rotation flag. On success it appends a PlacedPart and updates
// the free-rectangle list via split, guillotine pruning and merge, and
// returns true. On failure the sheet is left unchanged and it returns false.
func (s *SheetLayout) TryPlace(part Part) bool {
	candidates := s.candidates(part)
	if len(candidates) == 0 {
		return false
	}

	if c, ok := bestExactFit(candidates); ok {
		s.commit(part, c)
		return true
	}

	if c, ok := s.bestScored(candidates); ok {
		s.commit(part, c)
		return true
	}

	return false
}

// candidates enumerates every (free rect, orientation) pair the part fits
// into at all, in free-rect/orientation order.
func (s *SheetLayout) candidates(part Part) []candidate {
	orientations := []int{0}
	if s.AllowRotation {
		orientations = append(orientations, 1)
	}

	out := make([]candidate, 0, len(s.free)*2)
	for fi, fr := range s.free {
		for _, orient := range orientations {
			pw, ph := part.W, part.H
			if orient == 1 {
				pw, ph = part.H, part.W
			}
			if pw <= fr.W && ph <= fr.H {
				out = append(out, candidate{
					freeIdx:     fi,
					orientation: orient,
					pw:          pw,
					ph:          ph,
					placedX:     fr.X,
					placedY:     fr.Y,
					fr:          fr,
				})
			}
		}
	}

	return out
}

// bestExactFit picks the lexicographically-least exact-fit candidate, i.e.
// one whose chosen orientation exactly matches the free rect on at least
// one axis. Tie-break: (fr.y, fr.x, freeIdx, orientation, placedX, placedY,
// pw, ph).
func bestExactFit(candidates []candidate) (candidate, bool) {
	var best candidate
	found := false

	for _, c := range candidates {
		if !(c.pw == c.fr.W || c.ph == c.fr.H) {
			continue
		}
		if !found || lessExact(c, best) {
			best = c
			found = true
		}
	}

	return best, found
}

func lessExact(a, b candidate) bool {
	if a.fr.Y != b.fr.Y {
		return a.fr.Y < b.fr.Y
	}
	if a.fr.X != b.fr.X {
		return a.fr.X < b.fr.X
	}
	if a.freeIdx != b.freeIdx {
		return a.freeIdx < b.freeIdx
	}
	if a.orientation != b.orientation {
		return a.orientation < b.orientation
	}
	if a.placedX != b.placedX {
		return a.placedX < b.placedX
	}
	if a.placedY != b.placedY {
		return a.placedY < b.placedY
	}
	if a.pw != b.pw {
		return a.pw < b.pw
	}
	return a.ph < b.ph
}

// bestScored picks the lexicographically-least scored candidate under the
// sheet's configured strategy. Tie-break: (primary0, primary1, fr.y, fr.x,
// stripBias, freeIdx, orientation, placedX, placedY, pw, ph).
func (s *SheetLayout) bestScored(candidates []candidate) (candidate, bool) {
	type scored struct {
		candidate
		p0, p1, bias int
	}

	var best scored
	found := false

	for _, c := range candidates {
		p0, p1 := s.primary(c)
		bias := s.stripBias(c)

		cur := scored{candidate: c, p0: p0, p1: p1, bias: bias}
		if !found || lessScored(cur, best) {
			best = cur
			found = true
		}
	}

	if !found {
		return candidate{}, false
	}
	return best.candidate, true
}

func lessScored(a, b struct {
	candidate
	p0, p1, bias int
}) bool {
	if a.p0 != b.p0 {
		return a.p0 < b.p0
	}
	if a.p1 != b.p1 {
		return a.p1 < b.p1
	}
	if a.fr.Y != b.fr.Y {
		return a.fr.Y < b.fr.Y
	}
	if a.fr.X != b.fr.X {
		return a.fr.X < b.fr.X
	}
	if a.bias != b.bias {
		return a.bias < b.bias
	}
	if a.freeIdx != b.freeIdx {
		return a.freeIdx < b.freeIdx
	}
	if a.orientation != b.orientation {
		return a.orientation < b.orientation
	}
	if a.placedX != b.placedX {
		return a.placedX < b.placedX
	}
	if a.placedY != b.placedY {
		return a.placedY < b.placedY
	}
	if a.pw != b.pw {
		return a.pw < b.pw
	}
	return a.ph < b.ph
}

// primary returns the two-element primary scoring key for the sheet's
// configured strategy.
func (s *SheetLayout) primary(c candidate) (int, int) {
	leftoverW := c.fr.W - c.pw
	leftoverH := c.fr.H - c.ph
	shortSide := min(leftoverW, leftoverH)
	longSide := max(leftoverW, leftoverH)
	areaLeft := leftoverW * leftoverH

	switch s.Strategy {
	case BAF:
		return areaLeft, shortSide
	case BLSF:
		return longSide, shortSide
	default: // BSSF and any unrecognized tag
		return shortSide, areaLeft
	}
}

// stripBias scores how well a candidate continues an existing vertical
// strip of equally-wide parts against the left edge. Smaller is better.
func (s *SheetLayout) stripBias(c candidate) int {
	bias := stripBiasBase

	if c.fr.X == 0 {
		bias -= stripBiasLeftEdge
	}

	for _, q := range s.Placed {
		if q.X == c.fr.X && q.EffW() == c.pw && q.Y+q.EffH() <= c.fr.Y+1 {
			bias -= stripBiasColumn
			break
		}
	}

	yCap := c.fr.Y
	if yCap > stripBiasYCapFactor {
		yCap = stripBiasYCapFactor
	}
	bias -= yCap

	return bias
}

// commit places the winning candidate: appends the PlacedPart and updates
// the free-rectangle list via split, guillotine pruning and merge.
func (s *SheetLayout) commit(part Part, c candidate) {
	placed := PlacedPart{Part: part, X: c.placedX, Y: c.placedY, Rotated: c.orientation == 1}
	fr := c.fr
	x, y, pw, ph := c.placedX, c.placedY, c.pw, c.ph

	kx := 0
	if x+pw < fr.X+fr.W {
		kx = s.Kerf
	}
	ky := 0
	if y+ph < fr.Y+fr.H {
		ky = s.Kerf
	}

	// Remove the chosen free rect; everything else stays for pruning.
	rest := make([]FreeRect, 0, len(s.free)+2)
	for i, f := range s.free {
		if i != c.freeIdx {
			rest = append(rest, f)
		}
	}

	// Split remnants: right before top (observable tie-break order).
	if rw := (fr.X + fr.W) - (x + pw + kx); rw > 0 {
		rest = append(rest, FreeRect{X: x + pw + kx, Y: fr.Y, W: rw, H: fr.H})
	}
	if th := (fr.Y + fr.H) - (y + ph + ky); th > 0 {
		rest = append(rest, FreeRect{X: fr.X, Y: y + ph + ky, W: fr.W, H: th})
	}

	u := FreeRect{X: x, Y: y, W: pw, H: ph}
	rest = pruneAgainst(rest, u)
	rest = normalizeFree(rest)

	s.free = rest
	s.Placed = append(s.Placed, placed)
}

// pruneAgainst applies MAXRECTS-style guillotine pruning: every free
// rectangle that intersects u is replaced by up to four sub-rectangles
// covering the part of it strictly outside u.
func pruneAgainst(free []FreeRect, u FreeRect) []FreeRect {
	out := make([]FreeRect, 0, len(free))
	for _, fr := range free {
		if !intersects(fr, u) {
			out = append(out, fr)
			continue
		}

		if u.Y > fr.Y {
			out = append(out, FreeRect{X: fr.X, Y: fr.Y, W: fr.W, H: u.Y - fr.Y})
		}
		if u.Y+u.H < fr.Y+fr.H {
			out = append(out, FreeRect{X: fr.X, Y: u.Y + u.H, W: fr.W, H: fr.Y + fr.H - (u.Y + u.H)})
		}

		bandLo := max(fr.Y, u.Y)
		bandHi := min(fr.Y+fr.H, u.Y+u.H)
		if bandHi > bandLo {
			if u.X > fr.X {
				out = append(out, FreeRect{X: fr.X, Y: bandLo, W: u.X - fr.X, H: bandHi - bandLo})
			}
			if u.X+u.W < fr.X+fr.W {
				out = append(out, FreeRect{X: u.X + u.W, Y: bandLo, W: fr.X + fr.W - (u.X + u.W), H: bandHi - bandLo})
			}
		}
	}

	return dropZero(out)
}

func intersects(a, b FreeRect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

func dropZero(rs []FreeRect) []FreeRect {
	out := rs[:0]
	for _, r := range rs {
		if r.W > 0 && r.H > 0 {
			out = append(out, r)
		}
	}
	return out
}

// normalizeFree drops strictly-contained rectangles, then iteratively
// merges rectangles that share a full edge, until a full pass yields no
// change.
func normalizeFree(free []FreeRect) []FreeRect {
	free = dropContained(free)

	for {
		merged, changed := mergePass(free)
		free = merged
		if !changed {
			return free
		}
	}
}

func dropContained(free []FreeRect) []FreeRect {
	keep := make([]bool, len(free))
	for i := range keep {
		keep[i] = true
	}

	for i := range free {
		if !keep[i] {
			continue
		}
		for j := range free {
			if i == j || !keep[j] {
				continue
			}
			if containedIn(free[i], free[j]) {
				keep[i] = false
				break
			}
		}
	}

	out := make([]FreeRect, 0, len(free))
	for i, r := range free {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out
}

func containedIn(a, b FreeRect) bool {
	return a.X >= b.X && a.Y >= b.Y && a.X+a.W <= b.X+b.W && a.Y+a.H <= b.Y+b.H
}

func mergePass(free []FreeRect) ([]FreeRect, bool) {
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			if m, ok := mergeRects(free[i], free[j]); ok {
				out := make([]FreeRect, 0, len(free)-1)
				out = append(out, m)
				for k, r := range free {
					if k != i && k != j {
						out = append(out, r)
					}
				}
				return out, true
			}
		}
	}
	return free, false
}

func mergeRects(a, b FreeRect) (FreeRect, bool) {
	if a.Y == b.Y && a.H == b.H {
		if a.X+a.W == b.X {
			return FreeRect{X: a.X, Y: a.Y, W: a.W + b.W, H: a.H}, true
		}
		if b.X+b.W == a.X {
			return FreeRect{X: b.X, Y: b.Y, W: a.W + b.W, H: a.H}, true
		}
	}
	if a.X == b.X && a.W == b.W {
		if a.Y+a.H == b.Y {
			return FreeRect{X: a.X, Y: a.Y, W: a.W, H: a.H + b.H}, true
		}
		if b.Y+b.H == a.Y {
			return FreeRect{X: b.X, Y: b.Y, W: a.W, H: a.H + b.H}, true
		}
	}
	return FreeRect{}, false
}

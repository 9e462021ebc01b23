package nonogram

// LineSolver narrows one row or column: given the line's run hints and
// the current candidate mask of every cell, it computes the union of
// colors each cell takes across all fillings that satisfy both, or
// reports that no filling exists.
//
// Scratch space is reused between calls. The memo table is invalidated
// in O(1) by bumping a generation counter instead of clearing it;
// buffers grow to the largest line seen and never shrink.
type LineSolver struct {
	seen   [][]uint64 // generation at which (run, cell) was memoized
	fits   [][]bool   // memoized satisfiability of (run, cell)
	gen    uint64
	result []Mask
}

// NewLineSolver sizes the scratch space for lines of up to lineLen
// cells. Longer lines still work; the tables grow on demand.
func NewLineSolver(lineLen int) *LineSolver {
	s := &LineSolver{}
	s.grow(lineLen, lineLen)
	return s
}

// UpdateLine narrows cells in place to the union of colors used at
// each position across every valid filling of the line. It returns
// false, leaving cells untouched, if no filling satisfies both the
// runs and the incoming masks.
func (s *LineSolver) UpdateLine(runs []Run, cells []Mask) bool {
	s.grow(len(cells), len(runs))

	s.gen++
	if s.gen == 0 {
		// Counter wrapped: stale entries could alias, start over.
		for _, row := range s.seen {
			for i := range row {
				row[i] = 0
			}
		}
		s.gen = 1
	}

	if cap(s.result) < len(cells) {
		s.result = make([]Mask, len(cells))
	}
	s.result = s.result[:len(cells)]
	for i := range s.result {
		s.result[i] = 0
	}

	if !s.fill(runs, cells, 0, 0) {
		return false
	}

	copy(cells, s.result)
	return true
}

func (s *LineSolver) grow(lineLen, runCount int) {
	needed := max(lineLen, runCount) + 1
	if len(s.seen) >= needed {
		return
	}
	s.seen = make([][]uint64, needed)
	s.fits = make([][]bool, needed)
	for i := range s.seen {
		s.seen[i] = make([]uint64, needed)
		s.fits[i] = make([]bool, needed)
	}
	s.gen = 0
}

func canPlace(cells []Mask, color, lo, hi int) bool {
	if hi >= len(cells) {
		return false
	}
	mask, ok := colorMask(color)
	if !ok {
		return false
	}
	for i := lo; i <= hi; i++ {
		if cells[i]&mask == 0 {
			return false
		}
	}
	return true
}

func (s *LineSolver) place(color, lo, hi int) {
	mask, ok := colorMask(color)
	if !ok {
		return
	}
	for i := lo; i <= hi; i++ {
		s.result[i] |= mask
	}
}

// fill reports whether the line suffix starting at cell can absorb the
// run suffix starting at run. Every move that leads to a satisfiable
// continuation ORs its colors into the result buffer; both the
// background move and the place-run move may contribute, so a cell can
// end up with several candidate colors. Short-circuiting on the first
// satisfiable move would lose that union.
func (s *LineSolver) fill(runs []Run, cells []Mask, run, cell int) bool {
	if cell == len(cells) {
		return run == len(runs)
	}
	if s.seen[run][cell] == s.gen {
		return s.fits[run][cell]
	}

	answer := false

	if canPlace(cells, 0, cell, cell) && s.fill(runs, cells, run, cell+1) {
		s.place(0, cell, cell)
		answer = true
	}

	if run < len(runs) && runs[run].Len > 0 {
		lo, hi := cell, cell+runs[run].Len-1
		color := runs[run].Color
		next := hi + 1

		ok := canPlace(cells, color, lo, hi)
		separated := false
		if ok && run+1 < len(runs) && runs[run+1].Color == color {
			// Same-color neighbors need one background cell between.
			separated = true
			ok = canPlace(cells, 0, next, next)
			next++
		}

		if ok && s.fill(runs, cells, run+1, next) {
			answer = true
			s.place(color, lo, hi)
			if separated {
				s.place(0, hi+1, hi+1)
			}
		}
	}

	s.fits[run][cell] = answer
	s.seen[run][cell] = s.gen
	return answer
}

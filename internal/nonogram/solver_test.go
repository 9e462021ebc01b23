package nonogram

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette(n int) []string {
	palette := make([]string, n)
	palette[0] = "#ffffff"
	for i := 1; i < n; i++ {
		palette[i] = fmt.Sprintf("#%06x", i)
	}
	return palette
}

func puzzleFromGrid(colors int, grid [][]int) *Puzzle {
	rowRuns, colRuns := RunsFromGrid(grid)
	return &Puzzle{
		Palette: testPalette(colors),
		RowRuns: rowRuns,
		ColRuns: colRuns,
	}
}

func colorGrid(t *testing.T, s *Solution) [][]int {
	t.Helper()
	out := make([][]int, len(s.Grid))
	for r, row := range s.Grid {
		out[r] = make([]int, len(row))
		for c, mask := range row {
			require.True(t, mask.Single(), "cell %d:%d undetermined (mask %b)", r, c, mask)
			out[r][c] = mask.Color()
		}
	}
	return out
}

func TestSolveDegeneratePuzzle(t *testing.T) {
	t.Parallel()

	p := &Puzzle{
		Palette: testPalette(2),
		RowRuns: [][]Run{{{1, 1}}},
		ColRuns: [][]Run{{{1, 1}}},
	}

	s, err := Solve(p)
	require.NoError(t, err)
	assert.Equal(t, [][]Mask{{0b10}}, s.Grid)
	assert.True(t, s.Solved())
}

func TestSolvePaletteBounds(t *testing.T) {
	t.Parallel()

	var sizeErr PaletteSizeError

	_, err := Solve(&Puzzle{Palette: testPalette(64)})
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 64, sizeErr.Colors)

	_, err = Solve(&Puzzle{})
	assert.ErrorAs(t, err, &sizeErr)

	// 63 colors is the top of the allowed range.
	p := &Puzzle{
		Palette: testPalette(63),
		RowRuns: [][]Run{{{1, 62}}},
		ColRuns: [][]Run{{{1, 62}}},
	}
	s, err := Solve(p)
	require.NoError(t, err)
	assert.Equal(t, 62, s.Grid[0][0].Color())
}

func TestSolvePlusSign(t *testing.T) {
	t.Parallel()

	p := &Puzzle{
		Palette: testPalette(2),
		RowRuns: [][]Run{
			{{1, 1}}, {{3, 1}}, {{5, 1}}, {{3, 1}}, {{1, 1}},
		},
		ColRuns: [][]Run{
			{{1, 1}}, {{3, 1}}, {{5, 1}}, {{3, 1}}, {{1, 1}},
		},
	}

	s, err := Solve(p)
	require.NoError(t, err)

	want := [][]int{
		{0, 0, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{1, 1, 1, 1, 1},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 0, 0},
	}
	assert.Equal(t, want, colorGrid(t, s))
}

func TestSolveRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		colors int
		grid   [][]int
	}{
		{
			name:   "striped",
			colors: 3,
			grid: [][]int{
				{1, 1, 1},
				{2, 2, 2},
				{1, 1, 1},
			},
		},
		{
			name:   "ring",
			colors: 2,
			grid: [][]int{
				{1, 1, 1, 1},
				{1, 0, 0, 1},
				{1, 0, 0, 1},
				{1, 1, 1, 1},
			},
		},
		{
			name:   "mixed colors",
			colors: 3,
			grid: [][]int{
				{1, 2, 1},
				{0, 1, 0},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s, err := Solve(puzzleFromGrid(test.colors, test.grid))
			require.NoError(t, err)
			assert.Equal(t, test.grid, colorGrid(t, s))
		})
	}
}

func TestSolveUnsolvable(t *testing.T) {
	t.Parallel()

	p := &Puzzle{
		Palette: testPalette(2),
		RowRuns: [][]Run{{{2, 1}}, {{2, 1}}},
		ColRuns: [][]Run{{{1, 1}}, {{1, 1}}},
	}

	s, err := Solve(p)
	assert.ErrorIs(t, err, ErrUnsolvable)
	assert.Nil(t, s)
}

func TestSolveStepsSequence(t *testing.T) {
	t.Parallel()

	p := &Puzzle{
		Palette: testPalette(2),
		RowRuns: [][]Run{
			{{1, 1}}, {{3, 1}}, {{5, 1}}, {{3, 1}}, {{1, 1}},
		},
		ColRuns: [][]Run{
			{{1, 1}}, {{3, 1}}, {{5, 1}}, {{3, 1}}, {{1, 1}},
		},
	}

	steps, err := SolveSteps(p)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(steps.Grids), 2)

	full := FullMask(2)
	for _, row := range steps.Grids[0] {
		for _, mask := range row {
			assert.Equal(t, full, mask)
		}
	}

	s, err := Solve(p)
	require.NoError(t, err)
	assert.Equal(t, s.Grid, steps.Grids[len(steps.Grids)-1])
}

// Masks may only lose bits between rounds; that is what makes the
// checksum a sound convergence check.
func TestSolveStepsMonotonic(t *testing.T) {
	t.Parallel()

	p := &Puzzle{
		Palette: testPalette(2),
		RowRuns: [][]Run{
			{{1, 1}}, {{3, 1}}, {{5, 1}}, {{3, 1}}, {{1, 1}},
		},
		ColRuns: [][]Run{
			{{1, 1}}, {{3, 1}}, {{5, 1}}, {{3, 1}}, {{1, 1}},
		},
	}

	steps, err := SolveSteps(p)
	require.NoError(t, err)

	prevSum := ^uint64(0)
	for i, grid := range steps.Grids {
		var sum uint64
		for r, row := range grid {
			for c, mask := range row {
				if i > 0 {
					old := steps.Grids[i-1][r][c]
					assert.Equal(t, mask, mask&old,
						"cell %d:%d gained a bit between rounds %d and %d", r, c, i-1, i)
				}
				sum += uint64(mask)
			}
		}
		// Recorded rounds all changed something, so under monotonic
		// narrowing their checksums strictly decrease.
		assert.Less(t, sum, prevSum)
		prevSum = sum
	}
}

// A sum collision without an element-wise match needs one term to grow
// while another shrinks. Narrowing forbids growth, so equal sums mean
// equal grids.
func TestChecksumCollisionNeedsBitGain(t *testing.T) {
	t.Parallel()

	before := []Mask{0b11, 0b01}
	after := []Mask{0b10, 0b10} // same sum, but 0b10 is not a subset of 0b01

	var sumBefore, sumAfter uint64
	for i := range before {
		sumBefore += uint64(before[i])
		sumAfter += uint64(after[i])
	}
	assert.Equal(t, sumBefore, sumAfter)
	assert.NotEqual(t, after[1], after[1]&before[1])
}

// After convergence the grid is a fixpoint of every line: one more
// solver pass may not move anything.
func TestSolveFixpointIdempotent(t *testing.T) {
	t.Parallel()

	p := &Puzzle{
		Palette: testPalette(2),
		RowRuns: [][]Run{
			{{1, 1}}, {{3, 1}}, {{5, 1}}, {{3, 1}}, {{1, 1}},
		},
		ColRuns: [][]Run{
			{{1, 1}}, {{3, 1}}, {{5, 1}}, {{3, 1}}, {{1, 1}},
		},
	}

	s, err := Solve(p)
	require.NoError(t, err)

	solver := NewLineSolver(5)
	for r, runs := range p.RowRuns {
		line := append([]Mask(nil), s.Grid[r]...)
		require.True(t, solver.UpdateLine(runs, line))
		assert.Equal(t, s.Grid[r], line)
	}
	for c, runs := range p.ColRuns {
		line := make([]Mask, len(s.Grid))
		for r := range s.Grid {
			line[r] = s.Grid[r][c]
		}
		before := append([]Mask(nil), line...)
		require.True(t, solver.UpdateLine(runs, line))
		assert.Equal(t, before, line)
	}
}

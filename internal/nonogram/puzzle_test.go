package nonogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsFromGrid(t *testing.T) {
	t.Parallel()

	grid := [][]int{
		{1, 1, 0, 2},
		{0, 1, 1, 2},
	}

	rowRuns, colRuns := RunsFromGrid(grid)

	assert.Equal(t, [][]Run{
		{{2, 1}, {1, 2}},
		{{2, 1}, {1, 2}},
	}, rowRuns)
	assert.Equal(t, [][]Run{
		{{1, 1}},
		{{2, 1}},
		{{1, 1}},
		{{2, 2}},
	}, colRuns)
}

func TestPuzzleBytes(t *testing.T) {
	t.Parallel()

	p := &Puzzle{
		Palette: []string{"#ffffff", "#336699"},
		RowRuns: [][]Run{{{1, 1}}},
		ColRuns: [][]Run{{{1, 1}}},
	}

	buf, err := p.Bytes()
	require.NoError(t, err)

	decoded, err := DecodePuzzle(buf)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestSolutionSolved(t *testing.T) {
	t.Parallel()

	solved := Solution{Grid: [][]Mask{{0b10, 0b01}}}
	assert.True(t, solved.Solved())

	partial := Solution{Grid: [][]Mask{{0b10, 0b11}}}
	assert.False(t, partial.Solved())
}

func TestMaskColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Mask(0b1).Color())
	assert.Equal(t, 3, Mask(0b1000).Color())
	assert.Equal(t, -1, Mask(0b1010).Color())
	assert.Equal(t, -1, Mask(0).Color())
}

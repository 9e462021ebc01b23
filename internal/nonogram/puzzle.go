package nonogram

import (
	"bytes"
	"encoding/gob"
)

// Run is one contiguous block of a single color in a line's hint.
// Consecutive runs of the same color require a separating background
// cell; runs of different colors may touch.
type Run struct {
	Len   int
	Color int
}

// Puzzle is a colored nonogram definition: an ordered palette of
// renderable colors (background first) and one ordered run list per
// row and per column.
type Puzzle struct {
	Palette []string
	RowRuns [][]Run
	ColRuns [][]Run
}

func (p Puzzle) Rows() int { return len(p.RowRuns) }
func (p Puzzle) Cols() int { return len(p.ColRuns) }

func DecodePuzzle(buf []byte) (*Puzzle, error) {
	var p Puzzle
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (p Puzzle) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(p)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunsFromGrid derives row and column hints from a fully colored grid,
// skipping background (zero) blocks.
func RunsFromGrid(grid [][]int) (rowRuns, colRuns [][]Run) {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}

	rowRuns = make([][]Run, rows)
	for r := range grid {
		runs := []Run{}
		for c := 0; c < cols; {
			color := grid[r][c]
			start := c
			for c < cols && grid[r][c] == color {
				c++
			}
			if color > 0 {
				runs = append(runs, Run{Len: c - start, Color: color})
			}
		}
		rowRuns[r] = runs
	}

	colRuns = make([][]Run, cols)
	for c := 0; c < cols; c++ {
		runs := []Run{}
		for r := 0; r < rows; {
			color := grid[r][c]
			start := r
			for r < rows && grid[r][c] == color {
				r++
			}
			if color > 0 {
				runs = append(runs, Run{Len: r - start, Color: color})
			}
		}
		colRuns[c] = runs
	}
	return rowRuns, colRuns
}

package nonogram

import (
	"bytes"
	"encoding/gob"
	"log/slog"
)

var Log *slog.Logger = slog.Default()

// Solution is the converged grid: one possibility mask per cell, rows
// outermost, plus the palette the masks index into. Cells whose mask
// kept more than one bit are undetermined (the puzzle needs guessing
// this engine does not do).
type Solution struct {
	Palette []string
	Grid    [][]Mask
}

func DecodeSolution(buf []byte) (*Solution, error) {
	var s Solution
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s Solution) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Solved reports whether every cell came out determined.
func (s Solution) Solved() bool {
	for _, row := range s.Grid {
		for _, mask := range row {
			if !mask.Single() {
				return false
			}
		}
	}
	return true
}

// Steps is the round-by-round snapshot sequence of a solve: the
// all-unknown initial grid followed by the grid after every round that
// changed something.
type Steps struct {
	Palette []string
	Grids   [][][]Mask
}

// Solve runs row/column propagation to fixpoint and returns the final
// grid. It fails with a PaletteSizeError before solving starts, or
// with ErrUnsolvable when any line turns out infeasible; no partial
// grid is ever returned.
func Solve(p *Puzzle) (*Solution, error) {
	grid, _, err := propagate(p, false)
	if err != nil {
		return nil, err
	}
	return &Solution{Palette: p.Palette, Grid: grid}, nil
}

// SolveSteps is Solve with every intermediate round recorded, for
// progressive rendering.
func SolveSteps(p *Puzzle) (*Steps, error) {
	_, grids, err := propagate(p, true)
	if err != nil {
		return nil, err
	}
	return &Steps{Palette: p.Palette, Grids: grids}, nil
}

// propagate repeats rounds of (solve every live row, solve every live
// column, intersect the two views) until the wrapping checksum of all
// masks stops changing. Masks only ever lose bits, so an unchanged
// checksum means an unchanged grid.
func propagate(p *Puzzle, record bool) ([][]Mask, [][][]Mask, error) {
	colors := len(p.Palette)
	if colors == 0 || colors > MaxPaletteSize {
		return nil, nil, PaletteSizeError{Colors: colors}
	}
	full := FullMask(colors)

	rows, cols := p.Rows(), p.Cols()

	rowMasks := newGrid(rows, cols, full)
	colMasks := newGrid(cols, rows, full)
	deadRows := make([]bool, rows)
	deadCols := make([]bool, cols)
	solver := NewLineSolver(max(rows, cols))

	var grids [][][]Mask
	if record {
		grids = append(grids, copyGrid(rowMasks))
	}

	rounds := 0
	prev := ^uint64(0)
	for {
		if !updateLines(solver, deadRows, p.RowRuns, rowMasks) {
			return nil, nil, ErrUnsolvable
		}
		if !updateLines(solver, deadCols, p.ColRuns, colMasks) {
			return nil, nil, ErrUnsolvable
		}

		sum := intersectViews(rowMasks, colMasks)
		rounds++
		if sum == prev {
			break
		}
		prev = sum
		if record {
			grids = append(grids, copyGrid(rowMasks))
		}
	}

	Log.Debug("propagation converged",
		slog.Int("rows", rows), slog.Int("cols", cols), slog.Int("rounds", rounds))

	return rowMasks, grids, nil
}

// updateLines re-solves every line of one view, skipping lines already
// fully determined. Once every cell of a line is single-bit the line
// is at its minimal fixpoint and re-solving it cannot change anything.
func updateLines(solver *LineSolver, dead []bool, runs [][]Run, masks [][]Mask) bool {
	for i, lineRuns := range runs {
		if dead[i] {
			continue
		}
		if !solver.UpdateLine(lineRuns, masks[i]) {
			return false
		}
		dead[i] = allSingle(masks[i])
	}
	return true
}

// intersectViews is the only place information crosses between the row
// and column views: each cell gets the AND of both, stored back into
// both. Returns the wrapping sum of all cell masks as the round's
// checksum.
func intersectViews(rowMasks, colMasks [][]Mask) uint64 {
	var total uint64
	for r := range rowMasks {
		for c := range rowMasks[r] {
			combined := rowMasks[r][c] & colMasks[c][r]
			rowMasks[r][c] = combined
			colMasks[c][r] = combined
			total += uint64(combined)
		}
	}
	return total
}

func newGrid(outer, inner int, fill Mask) [][]Mask {
	grid := make([][]Mask, outer)
	for i := range grid {
		line := make([]Mask, inner)
		for j := range line {
			line[j] = fill
		}
		grid[i] = line
	}
	return grid
}

func copyGrid(grid [][]Mask) [][]Mask {
	out := make([][]Mask, len(grid))
	for i, line := range grid {
		out[i] = append([]Mask(nil), line...)
	}
	return out
}

func allSingle(line []Mask) bool {
	for _, mask := range line {
		if !mask.Single() {
			return false
		}
	}
	return true
}

package crawler

import (
	"fmt"
	"strings"

	"github.com/vancomm/nonogram-server/internal/nonogram"
)

// extractDArray pulls the numbers out of the page's "var d=[...];"
// script block: quadruples of integers that encode the whole puzzle.
func extractDArray(html string) ([][4]int64, error) {
	const marker = "var d="
	start := strings.Index(html, marker)
	if start < 0 {
		return nil, fmt.Errorf("%w: no d array", ErrMissingData)
	}
	after := html[start+len(marker):]
	end := strings.Index(after, "];")
	if end < 0 {
		return nil, fmt.Errorf("%w: d array not terminated", ErrMissingData)
	}
	slice := after[:end+1]

	var (
		nums    []int64
		cur     int64
		sign    int64 = 1
		pending bool
	)
	flush := func() {
		if pending {
			nums = append(nums, sign*cur)
			cur, sign, pending = 0, 1, false
		}
	}
	for _, ch := range slice {
		switch {
		case ch == '-':
			flush()
			sign = -1
			pending = true
		case '0' <= ch && ch <= '9':
			cur = cur*10 + int64(ch-'0')
			pending = true
		default:
			flush()
		}
	}
	flush()

	if len(nums)%4 != 0 {
		return nil, fmt.Errorf("%w: d array length %d", ErrInvalidData, len(nums))
	}

	out := make([][4]int64, 0, len(nums)/4)
	for i := 0; i < len(nums); i += 4 {
		out = append(out, [4]int64{nums[i], nums[i+1], nums[i+2], nums[i+3]})
	}
	return out, nil
}

// modJS matches JavaScript's % on possibly negative operands, which
// the site's obfuscation relies on.
func modJS(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func unscramble(entry [4]int64) int64 {
	return modJS(entry[0], entry[3]) + modJS(entry[1], entry[3]) - modJS(entry[2], entry[3])
}

// decodePuzzle rebuilds the solution grid hidden in the d array and
// derives palette and hints from it. The layout, reverse engineered
// from the site's player script: d[1..3] hold cols/rows/color count,
// d[4] is the base the palette entries are offset against, d[5..] the
// palette, then a scrambled entry count followed by one offset
// quadruple per horizontal block of the solution.
func decodePuzzle(kind Kind, d [][4]int64) (*nonogram.Puzzle, error) {
	if len(d) < 6 {
		return nil, fmt.Errorf("%w: d array too short", ErrInvalidData)
	}

	cols := unscramble(d[1])
	rows := unscramble(d[2])
	colors := unscramble(d[3])
	if rows <= 0 || cols <= 0 || colors <= 0 {
		return nil, fmt.Errorf("%w: decoded dimensions %dx%d(%d)", ErrInvalidData, rows, cols, colors)
	}

	if int64(len(d)) < 5+colors {
		return nil, fmt.Errorf("%w: color data truncated", ErrInvalidData)
	}

	base := d[4]
	palette := []string{"#ffffff"}
	switch kind {
	case BlackWhite:
		palette = append(palette, "#000000")
	default:
		for i := int64(0); i < colors; i++ {
			entry := d[5+i]
			r := modJS(entry[0]-base[1], 256)
			g := modJS(entry[1]-base[0], 256)
			b := modJS(entry[2]-base[3], 256)
			palette = append(palette, fmt.Sprintf("#%02x%02x%02x", r, g, b))
		}
	}

	v := colors + 5
	if int64(len(d)) <= v+1 {
		return nil, fmt.Errorf("%w: grid data truncated", ErrInvalidData)
	}
	blocks := modJS(d[v][0], d[v][3])*modJS(d[v][0], d[v][3]) +
		modJS(d[v][1], d[v][3])*2 +
		modJS(d[v][2], d[v][3])

	ia := d[v+1]
	last := v + 1 + blocks
	if int64(len(d)) <= last {
		return nil, fmt.Errorf("%w: grid data out of bounds", ErrInvalidData)
	}

	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
	}
	for _, entry := range d[v+2 : last+1] {
		row := entry[3] - ia[3] - 1
		start := entry[0] - ia[0] - 1
		length := entry[1] - ia[1]
		color := entry[2] - ia[2]
		if row < 0 || row >= rows || start < 0 || start >= cols || length <= 0 {
			continue
		}
		end := min(start+length, cols)
		for c := start; c < end; c++ {
			grid[row][c] = int(color)
		}
	}

	rowRuns, colRuns := nonogram.RunsFromGrid(grid)
	return &nonogram.Puzzle{
		Palette: palette,
		RowRuns: rowRuns,
		ColRuns: colRuns,
	}, nil
}

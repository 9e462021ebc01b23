package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/nonogram-server/internal/crawler"
	"github.com/vancomm/nonogram-server/internal/nonogram"
	"github.com/vancomm/nonogram-server/internal/repository"
)

type SolveOptionsDTO struct {
	Kind    string `schema:"kind"`
	Refresh bool   `schema:"refresh"`
}

func ParseSolveOptionsDTO(src map[string][]string) (crawler.Kind, bool, error) {
	var dto SolveOptionsDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, src); err != nil {
		return "", false, err
	}
	switch dto.Kind {
	case "", string(crawler.Color):
		return crawler.Color, dto.Refresh, nil
	case string(crawler.BlackWhite):
		return crawler.BlackWhite, dto.Refresh, nil
	}
	return "", false, fmt.Errorf("unknown puzzle kind %q", dto.Kind)
}

type PuzzleDTO struct {
	PuzzleId string            `json:"puzzle_id"`
	SiteId   string            `json:"site_id"`
	Kind     string            `json:"kind"`
	Palette  []string          `json:"palette"`
	Grid     [][]nonogram.Mask `json:"grid"`
	Colors   [][]int           `json:"colors"`
	Solved   bool              `json:"solved"`
}

func NewPuzzleDTO(row *repository.Puzzle, s *nonogram.Solution) *PuzzleDTO {
	return &PuzzleDTO{
		PuzzleId: strconv.FormatInt(row.PuzzleId, 10),
		SiteId:   row.SiteId,
		Kind:     row.Kind,
		Palette:  s.Palette,
		Grid:     s.Grid,
		Colors:   cellColors(s.Grid),
		Solved:   s.Solved(),
	}
}

type StepsDTO struct {
	SiteId  string              `json:"site_id"`
	Kind    string              `json:"kind"`
	Palette []string            `json:"palette"`
	Steps   [][][]nonogram.Mask `json:"steps"`
}

type StepFrameDTO struct {
	Step    int               `json:"step"`
	Total   int               `json:"total"`
	Palette []string          `json:"palette"`
	Grid    [][]nonogram.Mask `json:"grid"`
	Colors  [][]int           `json:"colors"`
}

// cellColors resolves each mask to its color index, -1 for cells still
// holding several candidates (rendered as undetermined).
func cellColors(grid [][]nonogram.Mask) [][]int {
	out := make([][]int, len(grid))
	for r, row := range grid {
		out[r] = make([]int, len(row))
		for c, mask := range row {
			out[r][c] = mask.Color()
		}
	}
	return out
}

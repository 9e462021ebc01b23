package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/nonogram-server/internal/config"
	"github.com/vancomm/nonogram-server/internal/crawler"
	"github.com/vancomm/nonogram-server/internal/nonogram"
	"github.com/vancomm/nonogram-server/internal/repository"
)

type PuzzleHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	crawler *crawler.Client
	ws      *config.WebSocket
}

func NewPuzzleHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cr *crawler.Client,
	ws *config.WebSocket,
) *PuzzleHandler {
	return &PuzzleHandler{
		logger:  logger,
		repo:    repository.New(db),
		crawler: cr,
		ws:      ws,
	}
}

// loadSolved returns the cached row for (kind, id), crawling and
// solving on a cache miss (or when refresh forces one). Solutions are
// stored alongside the puzzle, so a cache hit costs no solving at all.
func (h PuzzleHandler) loadSolved(
	ctx context.Context, kind crawler.Kind, siteId string, refresh bool,
) (*repository.Puzzle, *nonogram.Solution, error) {
	if !refresh {
		row, err := h.repo.FetchPuzzle(ctx, siteId, string(kind))
		if err == nil && row.Solution != nil {
			solution, err := nonogram.DecodeSolution(row.Solution)
			if err == nil {
				return row, solution, nil
			}
			h.logger.Warn("discarding undecodable cached solution",
				slog.String("siteId", siteId), slog.Any("error", err))
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, err
		}
	}

	puzzle, err := h.crawler.Fetch(ctx, kind, siteId)
	if err != nil {
		return nil, nil, err
	}

	solution, err := nonogram.Solve(puzzle)
	if err != nil {
		return nil, nil, err
	}

	data, err := puzzle.Bytes()
	if err != nil {
		return nil, nil, err
	}
	solved, err := solution.Bytes()
	if err != nil {
		return nil, nil, err
	}

	row, err := h.repo.FetchPuzzle(ctx, siteId, string(kind))
	if errors.Is(err, pgx.ErrNoRows) {
		row, err = h.repo.CreatePuzzle(ctx, repository.CreatePuzzleParams{
			SiteId:   siteId,
			Kind:     string(kind),
			Data:     data,
			Solution: solved,
		})
	} else if err == nil {
		row, err = h.repo.UpdatePuzzle(ctx, row.PuzzleId, repository.UpdatePuzzleParams{
			Data:     data,
			Solution: solved,
		})
	}
	if err != nil {
		return nil, nil, err
	}
	return row, solution, nil
}

// loadPuzzle fetches just the puzzle definition, preferring the cache.
func (h PuzzleHandler) loadPuzzle(
	ctx context.Context, kind crawler.Kind, siteId string, refresh bool,
) (*nonogram.Puzzle, error) {
	if !refresh {
		row, err := h.repo.FetchPuzzle(ctx, siteId, string(kind))
		if err == nil {
			puzzle, err := nonogram.DecodePuzzle(row.Data)
			if err == nil {
				return puzzle, nil
			}
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return h.crawler.Fetch(ctx, kind, siteId)
}

func (h PuzzleHandler) sendFailure(w http.ResponseWriter, err error) {
	var sizeErr nonogram.PaletteSizeError
	switch {
	case errors.Is(err, nonogram.ErrUnsolvable) || errors.As(err, &sizeErr):
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.Is(err, crawler.ErrMissingData) || errors.Is(err, crawler.ErrInvalidData):
		w.WriteHeader(http.StatusBadGateway)
	default:
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to solve puzzle", slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, h.logger, wrapError(err))
}

func (h PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	siteId := r.PathValue("id")

	kind, refresh, err := ParseSolveOptionsDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	row, solution, err := h.loadSolved(r.Context(), kind, siteId, refresh)
	if err != nil {
		h.sendFailure(w, err)
		return
	}

	sendJSONOrLog(w, h.logger, NewPuzzleDTO(row, solution))
}

func (h PuzzleHandler) Steps(w http.ResponseWriter, r *http.Request) {
	siteId := r.PathValue("id")

	kind, refresh, err := ParseSolveOptionsDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	puzzle, err := h.loadPuzzle(r.Context(), kind, siteId, refresh)
	if err != nil {
		h.sendFailure(w, err)
		return
	}

	steps, err := nonogram.SolveSteps(puzzle)
	if err != nil {
		h.sendFailure(w, err)
		return
	}

	sendJSONOrLog(w, h.logger, &StepsDTO{
		SiteId:  siteId,
		Kind:    string(kind),
		Palette: steps.Palette,
		Steps:   steps.Grids,
	})
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/nonogram-server/internal/nonogram"
)

// frameDelay paces the stream so a naive client can render frames as
// they arrive and still see the solve unfold.
const frameDelay = 150 * time.Millisecond

// Watch streams the solve round by round over a websocket: one JSON
// frame per recorded snapshot, then a normal close.
func (h PuzzleHandler) Watch(w http.ResponseWriter, r *http.Request) {
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

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	total := len(steps.Grids)
	for i, grid := range steps.Grids {
		frame := &StepFrameDTO{
			Step:    i,
			Total:   total,
			Palette: steps.Palette,
			Grid:    grid,
			Colors:  cellColors(grid),
		}
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Debug("watch stream interrupted", slog.Any("error", err))
			return
		}
		if i+1 < total {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(frameDelay):
			}
		}
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(time.Second),
	)
}

package app

import (
	"net/http"

	"github.com/vancomm/nonogram-server/internal/crawler"
	"github.com/vancomm/nonogram-server/internal/handlers"
)

func (a *App) loadRoutes() {
	puzzle := handlers.NewPuzzleHandler(
		a.logger, a.db, crawler.New(nil), a.ws,
	)

	a.router.HandleFunc("GET /puzzle/{id}", puzzle.Solve)
	a.router.HandleFunc("GET /puzzle/{id}/steps", puzzle.Steps)
	a.router.HandleFunc("/puzzle/{id}/watch", puzzle.Watch)

	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

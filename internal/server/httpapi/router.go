// Package httpapi provides the small REST surface next to the websocket
// endpoint: a notes read API for clients that missed the join snapshot and a
// health probe.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/corkboard/internal/common"
	"github.com/dmitrijs2005/corkboard/internal/logging"
	"github.com/dmitrijs2005/corkboard/internal/server/board"
)

type Router struct {
	store  board.NoteStore
	logger logging.Logger
}

// NewRouter assembles the HTTP mux. ws handles websocket upgrades and is
// mounted at /ws.
func NewRouter(store board.NoteStore, ws http.Handler, l logging.Logger, allowedOrigin string) http.Handler {
	rt := &Router{store: store, logger: l.With("module", "httpapi")}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors(allowedOrigin))

	r.Get("/ping", rt.ping)
	r.Get("/api/notes", rt.listNotes)
	r.Handle("/ws", ws)

	return r
}

func cors(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rt *Router) ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

func (rt *Router) listNotes(w http.ResponseWriter, r *http.Request) {
	boardID := r.URL.Query().Get("boardId")

	list, err := rt.store.ListByBoard(r.Context(), boardID)
	if err != nil {
		if errors.Is(err, common.ErrorMissingBoardID) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing boardId"})
			return
		}
		rt.logger.Error(r.Context(), "list notes failed", "board", boardID, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

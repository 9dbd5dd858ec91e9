package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/lanecross/internal/multiplayer"
	"github.com/vovakirdan/lanecross/internal/transport/websocket"
)

// SessionHandler lists live sessions and upgrades spectators.
type SessionHandler struct {
	sessions *multiplayer.SessionRegistry
	hub      *websocket.Hub
}

func NewSessionHandler(sessions *multiplayer.SessionRegistry, hub *websocket.Hub) *SessionHandler {
	return &SessionHandler{sessions: sessions, hub: hub}
}

// Routes registers routes for live sessions.
func (h *SessionHandler) Routes(r chi.Router) {
	r.Get("/sessions", h.List)
	r.Get("/sessions/{id}", h.Get)
}

// List GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.List())
}

// Get GET /sessions/{id} returns the current frame.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	frame, ok := h.sessions.Frame(multiplayer.SessionID(chi.URLParam(r, "id")))
	if !ok {
		errorJSON(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

// Watch GET /ws/sessions/{id} streams frames of a live session.
func (h *SessionHandler) Watch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	frame, ok := h.sessions.Frame(multiplayer.SessionID(id))
	if !ok {
		errorJSON(w, http.StatusNotFound, "session not found")
		return
	}
	initial, err := websocket.EncodeFrame(frame)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.hub.ServeWS(w, r, id, initial)
}

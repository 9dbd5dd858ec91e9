package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/lanecross/internal/storage"
)

// ScoreStore is the read side of the score database.
type ScoreStore interface {
	TopScores(limit int) ([]storage.ScoreEntry, error)
	TopScoresForSeed(seed string, limit int) ([]storage.ScoreEntry, error)
	RecentVersusMatches(limit int) ([]storage.VersusRecord, error)
	GetStats() (*storage.Stats, error)
}

var _ ScoreStore = (*storage.Store)(nil)

// ScoreHandler serves the scoreboard.
type ScoreHandler struct {
	store ScoreStore
}

func NewScoreHandler(store ScoreStore) *ScoreHandler {
	return &ScoreHandler{store: store}
}

// Routes registers routes for scores.
func (h *ScoreHandler) Routes(r chi.Router) {
	r.Get("/scores", h.Solo)
	r.Get("/scores/versus", h.Versus)
	r.Get("/scores/stats", h.Stats)
}

func (h *ScoreHandler) available(w http.ResponseWriter) bool {
	if h.store == nil {
		errorJSON(w, http.StatusServiceUnavailable, "scores are not enabled")
		return false
	}
	return true
}

// Solo GET /scores?seed=4242424242&limit=10
func (h *ScoreHandler) Solo(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	limit := clamp(parseInt(r.URL.Query().Get("limit"), 10), 1, 100)

	var (
		entries []storage.ScoreEntry
		err     error
	)
	if seed := r.URL.Query().Get("seed"); seed != "" {
		entries, err = h.store.TopScoresForSeed(seed, limit)
	} else {
		entries, err = h.store.TopScores(limit)
	}
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Versus GET /scores/versus?limit=20
func (h *ScoreHandler) Versus(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	limit := clamp(parseInt(r.URL.Query().Get("limit"), 20), 1, 100)

	matches, err := h.store.RecentVersusMatches(limit)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	if matches == nil {
		matches = []storage.VersusRecord{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// Stats GET /scores/stats
func (h *ScoreHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	stats, err := h.store.GetStats()
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

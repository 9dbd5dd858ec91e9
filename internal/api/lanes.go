package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/lanecross/internal/crossing"
)

// LaneHandler serves generated lane content.
type LaneHandler struct {
	entropy crossing.EntropySource
}

func NewLaneHandler() *LaneHandler {
	return &LaneHandler{entropy: crossing.DefaultEntropy}
}

// Routes registers routes for lane previews.
func (h *LaneHandler) Routes(r chi.Router) {
	r.Get("/lanes", h.Preview)
}

// Preview GET /lanes?seed=42&from=0&count=14
func (h *LaneHandler) Preview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := parseInt(q.Get("from"), 0)
	count := clamp(parseInt(q.Get("count"), 2*crossing.BlockSize), 1, crossing.MaxPreviewRows)

	writeJSON(w, http.StatusOK, crossing.PreviewLanes(q.Get("seed"), from, count, h.entropy))
}

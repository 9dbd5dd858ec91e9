// Package api serves the lane-crossing HTTP surface: lane previews, the
// scoreboard, the list of live sessions and websocket spectating.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/lanecross/internal/multiplayer"
	"github.com/vovakirdan/lanecross/internal/transport/websocket"
)

// Deps are the collaborators the router needs. Scores may be nil when no
// database is configured; the score endpoints then answer 503.
type Deps struct {
	Sessions       *multiplayer.SessionRegistry
	Hub            *websocket.Hub
	Scores         ScoreStore
	AllowedOrigins []string
}

// NewRouter builds the router with middlewares and routes.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	lh := NewLaneHandler()
	sh := NewScoreHandler(deps.Scores)
	ss := NewSessionHandler(deps.Sessions, deps.Hub)

	r.Route("/api", func(sub chi.Router) {
		sub.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"status":   "ok",
				"sessions": deps.Sessions.Count(),
			})
		})
		lh.Routes(sub)
		sh.Routes(sub)
		ss.Routes(sub)
	})
	r.Get("/ws/sessions/{id}", ss.Watch)

	return r
}

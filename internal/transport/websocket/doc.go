// Package websocket streams live lane-crossing sessions to spectators.
//
// A central Hub owns every spectator connection. Clients subscribe to one
// session by ID when they connect; frames published for that session are
// fanned out to its subscribers only. Each connection runs a read pump
// (which only keeps the connection alive and detects disconnects) and a
// write pump that batches queued frames and sends periodic pings.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	r.Get("/ws/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, chi.URLParam(r, "id"), nil)
//	})
//
//	hub.PublishFrame(frame)
//
// Messages are JSON objects: {"session_id": "...", "event": "frame", "frame": {...}}.
// Slow clients whose send buffer fills up are disconnected.
package websocket

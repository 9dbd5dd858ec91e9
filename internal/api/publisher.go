package api

import (
	"context"
	"time"

	"github.com/vovakirdan/lanecross/internal/multiplayer"
	"github.com/vovakirdan/lanecross/internal/transport/websocket"
)

// PublishInterval is how often live sessions are pushed to spectators.
const PublishInterval = 100 * time.Millisecond

// Publisher copies frames of live sessions to the websocket hub.
type Publisher struct {
	sessions *multiplayer.SessionRegistry
	hub      *websocket.Hub
	interval time.Duration
	live     map[multiplayer.SessionID]bool
}

// NewPublisher creates a publisher. A non-positive interval uses PublishInterval.
func NewPublisher(sessions *multiplayer.SessionRegistry, hub *websocket.Hub, interval time.Duration) *Publisher {
	if interval <= 0 {
		interval = PublishInterval
	}
	return &Publisher{
		sessions: sessions,
		hub:      hub,
		interval: interval,
		live:     make(map[multiplayer.SessionID]bool),
	}
}

// Run publishes until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PublishOnce()
		}
	}
}

// PublishOnce sends one frame per watched session and notifies spectators
// of sessions that disappeared since the previous call.
func (p *Publisher) PublishOnce() {
	seen := make(map[multiplayer.SessionID]bool, len(p.live))
	for _, info := range p.sessions.List() {
		seen[info.ID] = true
		if !p.hub.Watching(string(info.ID)) {
			continue
		}
		if frame, ok := p.sessions.Frame(info.ID); ok {
			p.hub.PublishFrame(frame)
		}
	}

	for id := range p.live {
		if !seen[id] {
			p.hub.PublishEnded(string(id))
		}
	}
	p.live = seen
}

package multiplayer

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/vovakirdan/lanecross/internal/crossing"
)

// PlayerFrame is one world inside a spectator Frame.
type PlayerFrame struct {
	Player   PlayerID          `json:"player"`
	Name     string            `json:"name"`
	Snapshot crossing.Snapshot `json:"snapshot"`
}

// Frame is what spectators receive for a live session.
type Frame struct {
	Session SessionID     `json:"session"`
	Mode    MatchMode     `json:"mode"`
	Players []PlayerFrame `json:"players"`
	Outcome Outcome       `json:"outcome"`
}

// FrameSource produces the current frame of a session. Implementations
// must be safe to call from any goroutine.
type FrameSource interface {
	Frame() Frame
}

// SoloSource exposes a single world published through a SnapshotCell.
type SoloSource struct {
	Name string
	Cell *SnapshotCell
}

// Frame implements FrameSource.
func (s SoloSource) Frame() Frame {
	snap, _ := s.Cell.Load()
	return Frame{
		Mode:    MatchModeSolo,
		Players: []PlayerFrame{{Player: Player1, Name: s.Name, Snapshot: snap}},
	}
}

// SessionInfo describes a live session.
type SessionInfo struct {
	ID        SessionID `json:"id"`
	Mode      MatchMode `json:"mode"`
	Player    string    `json:"player"`
	StartedAt time.Time `json:"started_at"`
}

type liveSession struct {
	info   SessionInfo
	source FrameSource
}

// SessionRegistry tracks live sessions.
// Thread-safe for concurrent access.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]liveSession
}

// NewSessionRegistry creates a new session registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[SessionID]liveSession),
	}
}

// Register adds a session to the registry, replacing any with the same ID.
func (r *SessionRegistry) Register(info SessionInfo, source FrameSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[info.ID] = liveSession{info: info, source: source}
}

// Unregister removes a session from the registry.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns the live sessions, oldest first.
func (r *SessionRegistry) List() []SessionInfo {
	r.mu.RLock()
	out := make([]SessionInfo, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s.info)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b SessionInfo) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Frame returns the current frame of a session.
func (r *SessionRegistry) Frame(id SessionID) (Frame, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return Frame{}, false
	}
	f := s.source.Frame()
	f.Session = id
	return f, true
}

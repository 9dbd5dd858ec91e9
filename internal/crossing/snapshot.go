package crossing

import "github.com/vovakirdan/lanecross/internal/core"

// LaneState is a lane as seen in a Snapshot.
type LaneState struct {
	LaneInfo
	Phase float64 `json:"phase"`
}

// Snapshot is an immutable copy of everything a renderer or spectator
// needs. It shares no memory with the World and may be read from any
// goroutine.
type Snapshot struct {
	Seed        string      `json:"seed"`
	MatchSeed   uint64      `json:"match_seed,string"`
	GridWidth   int         `json:"grid_width"`
	GridHeight  int         `json:"grid_height"`
	Player      Player      `json:"player"`
	Score       int         `json:"score"`
	GameOver    bool        `json:"game_over"`
	Bottom      int         `json:"bottom"`
	Top         int         `json:"top"`
	ScrollCount int         `json:"scroll_count"`
	Lanes       []LaneState `json:"lanes"`     // bottom to top
	Obstacles   []core.Box  `json:"obstacles"` // lanes bottom to top, then slot order
}

// Snapshot captures the current state of the world.
func (w *World) Snapshot() Snapshot {
	lanes := make([]LaneState, len(w.lanes))
	for i := range w.lanes {
		l := &w.lanes[i]
		lanes[i] = LaneState{
			LaneInfo: LaneInfo{Kind: l.Kind(), Direction: l.Direction(), WorldRow: l.WorldRow()},
			Phase:    l.Phase(),
		}
	}

	obstacles := make([]core.Box, 0, len(w.lanes)*2)
	for box := range w.VisibleObstacles() {
		obstacles = append(obstacles, box)
	}

	return Snapshot{
		Seed:        w.seed,
		MatchSeed:   w.matchSeed,
		GridWidth:   w.gridW,
		GridHeight:  w.gridH,
		Player:      w.player,
		Score:       w.score,
		GameOver:    w.gameOver,
		Bottom:      w.bottom,
		Top:         w.top,
		ScrollCount: w.scrollCount,
		Lanes:       lanes,
		Obstacles:   obstacles,
	}
}

// LaneAt returns the lane state at grid y.
func (s Snapshot) LaneAt(y int) (LaneState, bool) {
	if y < 0 || y >= len(s.Lanes) {
		return LaneState{}, false
	}
	return s.Lanes[y], true
}

package crossing

import (
	"iter"
	"slices"

	"github.com/vovakirdan/lanecross/internal/core"
)

// Grid defaults. The window must hold one block plus a two-row buffer so
// the next block's safe pair is always visible after a scroll.
const (
	DefaultGridWidth  = 15
	DefaultGridHeight = 9
	MinGridHeight     = BlockSize + 2
	DefaultAlpha      = 0.02
	// relocatedY is where the player lands after a scroll: the second safe
	// row of the new bottom block.
	relocatedY = 1
)

// DifficultyCurve maps the cumulative scroll distance to a speed scale.
type DifficultyCurve interface {
	Scale(scrollCount int) float64
}

// LinearDifficulty is the curve max(1, 1 + Alpha*scrollCount).
type LinearDifficulty struct {
	Alpha float64
}

// Scale implements DifficultyCurve.
func (d LinearDifficulty) Scale(scrollCount int) float64 {
	return max(1, 1+d.Alpha*float64(scrollCount))
}

// World is one player's simulation: the active window of lanes, the
// player token and the scroll state. A World is not safe for concurrent
// use; one goroutine must own it.
type World struct {
	gridW, gridH int

	seed      string
	matchSeed uint64

	lanes  []Lane // index is grid y, bottom to top
	bottom int
	top    int

	player      Player
	score       int
	gameOver    bool
	inputLock   bool
	scrollCount int

	difficulty DifficultyCurve
	entropy    EntropySource
}

// NewWorld creates a world with the given grid size. Width is raised to
// at least 1 and height to at least MinGridHeight. Call Reset to start.
func NewWorld(gridWidth, gridHeight int) *World {
	return &World{
		gridW:      max(gridWidth, 1),
		gridH:      max(gridHeight, MinGridHeight),
		difficulty: LinearDifficulty{Alpha: DefaultAlpha},
		entropy:    DefaultEntropy,
	}
}

// SetDifficulty replaces the difficulty curve. A nil curve restores the default.
func (w *World) SetDifficulty(curve DifficultyCurve) {
	if curve == nil {
		curve = LinearDifficulty{Alpha: DefaultAlpha}
	}
	w.difficulty = curve
}

// SetEntropy replaces the source used for empty seeds.
func (w *World) SetEntropy(src EntropySource) {
	if src == nil {
		src = DefaultEntropy
	}
	w.entropy = src
}

// Reset starts a new session. The seed is normalized, the player is placed
// at (startX, 0) and rows 0..gridHeight-1 are generated.
func (w *World) Reset(seed string, startX int) {
	w.seed = NormalizeSeed(seed, w.entropy)
	w.matchSeed = SeedToU64(w.seed)

	w.player = Player{X: core.Clamp(startX, 0, w.gridW-1), Y: 0}
	w.score = 0
	w.gameOver = false
	w.inputLock = false
	w.scrollCount = 0

	w.lanes = w.lanes[:0]
	for row := 0; row < w.gridH; row++ {
		w.lanes = append(w.lanes, NewLane(GenerateLane(w.matchSeed, row), row))
	}
	w.bottom = 0
	w.top = w.gridH - 1
}

// Tick advances every lane by dt seconds and checks the player for
// collisions. It does nothing once the game is over.
func (w *World) Tick(dt float64) {
	if w.gameOver {
		return
	}

	scale := w.difficulty.Scale(w.scrollCount)
	for i := range w.lanes {
		w.lanes[i].Advance(dt, scale)
	}

	playerBox := w.player.Box()
	for y := range w.lanes {
		if w.lanes[y].CollidesAt(playerBox, w.gridW, y) {
			w.gameOver = true
			break
		}
	}

	w.inputLock = false
}

// HandleInput applies one movement action and reports whether the player
// moved. Moves off the grid are rejected. The first input after a scroll
// is dropped until the next Tick.
func (w *World) HandleInput(a core.Action) bool {
	if w.gameOver || w.inputLock {
		return false
	}

	prev := w.player
	switch a {
	case core.ActionUp:
		if prev.Y >= w.gridH-1 {
			return false
		}
		w.player.Y++
		w.score++
	case core.ActionDown:
		if prev.Y <= 0 {
			return false
		}
		w.player.Y--
		w.score--
	case core.ActionLeft:
		if prev.X <= 0 {
			return false
		}
		w.player.X--
	case core.ActionRight:
		if prev.X >= w.gridW-1 {
			return false
		}
		w.player.X++
	default:
		return false
	}

	if prev.Y != w.player.Y {
		w.applyScrollIfNeeded(prev.Y, w.player.Y)
	}
	return true
}

// applyScrollIfNeeded shifts the window by one block when an upward move
// lands on the first safe row of the next block.
func (w *World) applyScrollIfNeeded(prevY, newY int) bool {
	prevWorld := WorldRowOf(w.bottom, prevY)
	newWorld := WorldRowOf(w.bottom, newY)
	if newWorld <= prevWorld || floorMod(prevWorld, BlockSize) == 0 || floorMod(newWorld, BlockSize) != 0 {
		return false
	}

	w.lanes = slices.Delete(w.lanes, 0, BlockSize)
	w.bottom += BlockSize
	for range BlockSize {
		w.top++
		w.lanes = append(w.lanes, NewLane(GenerateLane(w.matchSeed, w.top), w.top))
	}
	w.scrollCount += BlockSize

	w.player.Y = relocatedY
	w.inputLock = true
	return true
}

// NormalizedSeed returns the canonical seed of the current session.
func (w *World) NormalizedSeed() string { return w.seed }

// MatchSeed returns the 64-bit seed derived from the normalized seed.
func (w *World) MatchSeed() uint64 { return w.matchSeed }

// IsGameOver reports whether the player has been hit.
func (w *World) IsGameOver() bool { return w.gameOver }

// Score returns net upward rows moved.
func (w *World) Score() int { return w.score }

// PlayerPosition returns the player's grid coordinates.
func (w *World) PlayerPosition() (x, y int) { return w.player.X, w.player.Y }

// GridWidth returns the window width in tiles.
func (w *World) GridWidth() int { return w.gridW }

// GridHeight returns the window height in rows.
func (w *World) GridHeight() int { return w.gridH }

// ActiveWorldRowBounds returns the world rows at the bottom and top of the window.
func (w *World) ActiveWorldRowBounds() (bottom, top int) { return w.bottom, w.top }

// ScrollCount returns the total number of rows scrolled this session.
func (w *World) ScrollCount() int { return w.scrollCount }

// InputLocked reports whether the next input will be dropped.
func (w *World) InputLocked() bool { return w.inputLock }

// DifficultyScale returns the speed scale applied on the next Tick.
func (w *World) DifficultyScale() float64 { return w.difficulty.Scale(w.scrollCount) }

// LaneInfo describes one active lane.
type LaneInfo struct {
	Kind      LaneKind  `json:"kind"`
	Direction Direction `json:"direction"`
	WorldRow  int       `json:"world_row"`
}

// LaneSnapshot returns the active lanes ordered bottom to top, so index i
// is grid y = i.
func (w *World) LaneSnapshot() []LaneInfo {
	out := make([]LaneInfo, len(w.lanes))
	for i := range w.lanes {
		l := &w.lanes[i]
		out[i] = LaneInfo{Kind: l.Kind(), Direction: l.Direction(), WorldRow: l.WorldRow()}
	}
	return out
}

// Lane returns the lane at grid y.
func (w *World) Lane(y int) (Lane, bool) {
	if y < 0 || y >= len(w.lanes) {
		return Lane{}, false
	}
	return w.lanes[y], true
}

// VisibleObstacles yields every visible obstacle, lanes bottom to top and
// slots in pattern order.
func (w *World) VisibleObstacles() iter.Seq[core.Box] {
	return func(yield func(core.Box) bool) {
		for y := range w.lanes {
			for box := range w.lanes[y].VisibleObstacles(w.gridW, y) {
				if !yield(box) {
					return
				}
			}
		}
	}
}

// ForEachVisibleObstacle calls fn once per visible obstacle in the same
// order as VisibleObstacles.
func (w *World) ForEachVisibleObstacle(fn func(core.Box)) {
	for box := range w.VisibleObstacles() {
		fn(box)
	}
}

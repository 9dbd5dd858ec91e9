package crossing

import (
	"math"
	"reflect"
	"testing"
	"unicode"

	"github.com/vovakirdan/lanecross/internal/core"
)

func newTestWorld(t *testing.T, seed string, startX int) *World {
	t.Helper()
	w := NewWorld(DefaultGridWidth, DefaultGridHeight)
	w.Reset(seed, startX)
	return w
}

// climb moves the player up n rows without advancing time.
func climb(t *testing.T, w *World, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if !w.HandleInput(core.ActionUp) {
			t.Fatalf("Up #%d rejected", i+1)
		}
	}
}

func TestWorldReset(t *testing.T) {
	w := newTestWorld(t, "42", 7)

	if w.NormalizedSeed() != "4242424242" {
		t.Errorf("NormalizedSeed() = %q, expected %q", w.NormalizedSeed(), "4242424242")
	}
	if w.MatchSeed() != seed42 {
		t.Errorf("MatchSeed() = %d, expected %d", w.MatchSeed(), seed42)
	}
	if x, y := w.PlayerPosition(); x != 7 || y != 0 {
		t.Errorf("PlayerPosition() = (%d, %d), expected (7, 0)", x, y)
	}
	if w.Score() != 0 || w.IsGameOver() || w.ScrollCount() != 0 {
		t.Errorf("fresh world: score=%d gameOver=%v scroll=%d", w.Score(), w.IsGameOver(), w.ScrollCount())
	}
	if b, top := w.ActiveWorldRowBounds(); b != 0 || top != 8 {
		t.Errorf("ActiveWorldRowBounds() = (%d, %d), expected (0, 8)", b, top)
	}

	lanes := w.LaneSnapshot()
	if len(lanes) != 9 {
		t.Fatalf("LaneSnapshot() len = %d, expected 9", len(lanes))
	}
	for i, l := range lanes {
		if l.WorldRow != i {
			t.Errorf("lane %d world row = %d, expected %d", i, l.WorldRow, i)
		}
	}
	if lanes[0].Kind != LaneSafe || lanes[1].Kind != LaneSafe || lanes[7].Kind != LaneSafe {
		t.Errorf("rows 0, 1 and 7 must be safe: %+v", lanes)
	}
	if lanes[2].Kind != LaneTraffic || lanes[2].Direction != DirLeft {
		t.Errorf("row 2 = %+v, expected left-moving traffic", lanes[2])
	}
}

func TestWorldResetRandomSeed(t *testing.T) {
	w := newTestWorld(t, "", 7)

	seed := w.NormalizedSeed()
	if len(seed) != SeedLength {
		t.Fatalf("random seed %q has length %d", seed, len(seed))
	}
	for _, r := range seed {
		if !unicode.IsDigit(r) {
			t.Errorf("random seed %q contains %q", seed, r)
		}
	}
	if w.MatchSeed() != SeedToU64(seed) {
		t.Error("MatchSeed() does not match the normalized seed")
	}
	if w.LaneSnapshot()[0].Kind != LaneSafe {
		t.Error("row 0 must be safe")
	}
}

func TestWorldEntropyInjection(t *testing.T) {
	w := NewWorld(15, 9)
	w.SetEntropy(&digitEntropy{digits: []int{7}})
	w.Reset("", 0)
	if w.NormalizedSeed() != "7777777777" {
		t.Errorf("NormalizedSeed() = %q, expected 7777777777", w.NormalizedSeed())
	}
}

func TestWorldGridClamp(t *testing.T) {
	w := NewWorld(0, 5)
	if w.GridWidth() != 1 {
		t.Errorf("GridWidth() = %d, expected 1", w.GridWidth())
	}
	if w.GridHeight() != MinGridHeight {
		t.Errorf("GridHeight() = %d, expected %d", w.GridHeight(), MinGridHeight)
	}

	w = NewWorld(15, 9)
	w.Reset("x", 99)
	if x, _ := w.PlayerPosition(); x != 14 {
		t.Errorf("start x clamped to %d, expected 14", x)
	}
}

func TestWorldBoundaryMoves(t *testing.T) {
	w := newTestWorld(t, "42", 0)

	if w.HandleInput(core.ActionLeft) {
		t.Error("Left at x=0 should be rejected")
	}
	if w.HandleInput(core.ActionDown) {
		t.Error("Down at y=0 should be rejected")
	}
	if x, y := w.PlayerPosition(); x != 0 || y != 0 {
		t.Errorf("rejected moves changed position to (%d, %d)", x, y)
	}

	w.player.X = w.GridWidth() - 1
	if w.HandleInput(core.ActionRight) {
		t.Error("Right at the last column should be rejected")
	}

	w.player.Y = w.GridHeight() - 1
	if w.HandleInput(core.ActionUp) {
		t.Error("Up at the top row should be rejected")
	}
	if w.Score() != 0 {
		t.Errorf("rejected moves changed score to %d", w.Score())
	}

	if w.HandleInput(core.ActionPause) {
		t.Error("non-movement actions should be ignored")
	}
}

func TestWorldSideMoves(t *testing.T) {
	w := newTestWorld(t, "42", 7)
	if !w.HandleInput(core.ActionLeft) || !w.HandleInput(core.ActionLeft) || !w.HandleInput(core.ActionRight) {
		t.Fatal("side moves rejected")
	}
	if x, _ := w.PlayerPosition(); x != 6 {
		t.Errorf("x = %d, expected 6", x)
	}
	if w.Score() != 0 {
		t.Errorf("side moves changed score to %d", w.Score())
	}
}

func TestWorldScrollEdgeTrigger(t *testing.T) {
	w := newTestWorld(t, "42", 7)

	for step := 1; step <= 6; step++ {
		climb(t, w, 1)
		if b, top := w.ActiveWorldRowBounds(); b != 0 || top != 8 {
			t.Fatalf("step %d scrolled early: bounds (%d, %d)", step, b, top)
		}
		if _, y := w.PlayerPosition(); y != step {
			t.Fatalf("step %d: y = %d", step, y)
		}
	}

	// Reaching world row 7 shifts the window by one block.
	climb(t, w, 1)
	if b, top := w.ActiveWorldRowBounds(); b != 7 || top != 15 {
		t.Errorf("ActiveWorldRowBounds() = (%d, %d), expected (7, 15)", b, top)
	}
	if x, y := w.PlayerPosition(); x != 7 || y != 1 {
		t.Errorf("PlayerPosition() = (%d, %d), expected (7, 1)", x, y)
	}
	if w.ScrollCount() != 7 {
		t.Errorf("ScrollCount() = %d, expected 7", w.ScrollCount())
	}
	if w.Score() != 7 {
		t.Errorf("Score() = %d, expected 7", w.Score())
	}

	lanes := w.LaneSnapshot()
	for i, l := range lanes {
		if l.WorldRow != 7+i {
			t.Errorf("lane %d world row = %d, expected %d", i, l.WorldRow, 7+i)
		}
	}
	if lanes[0].Kind != LaneSafe || lanes[1].Kind != LaneSafe {
		t.Error("new bottom pair must be safe")
	}
	if lanes[7].Kind != LaneSafe || lanes[8].Kind != LaneSafe {
		t.Error("next block's safe pair must be visible at the top")
	}
	if lanes[2] != (LaneInfo{Kind: LaneTraffic, Direction: DirRight, WorldRow: 9}) {
		t.Errorf("lane 2 = %+v, expected right-moving row 9", lanes[2])
	}
}

func TestWorldScrollNotOnDownOrWithinBlock(t *testing.T) {
	w := newTestWorld(t, "42", 7)
	climb(t, w, 7)
	w.Tick(0)

	// Down onto world row 7 never scrolls.
	if !w.HandleInput(core.ActionDown) {
		t.Fatal("Down rejected")
	}
	if b, _ := w.ActiveWorldRowBounds(); b != 7 {
		t.Errorf("Down scrolled the window to bottom %d", b)
	}

	// Leaving a block boundary row upward does not scroll either.
	if !w.HandleInput(core.ActionUp) {
		t.Fatal("Up rejected")
	}
	if b, _ := w.ActiveWorldRowBounds(); b != 7 {
		t.Errorf("Up from row 7 scrolled the window to bottom %d", b)
	}

	// The next boundary is world row 14, six rows up.
	climb(t, w, 5)
	if b, _ := w.ActiveWorldRowBounds(); b != 7 {
		t.Fatalf("scrolled before reaching row 14: bottom %d", b)
	}
	climb(t, w, 1)
	if b, top := w.ActiveWorldRowBounds(); b != 14 || top != 22 {
		t.Errorf("bounds = (%d, %d), expected (14, 22)", b, top)
	}
	if w.ScrollCount() != 14 {
		t.Errorf("ScrollCount() = %d, expected 14", w.ScrollCount())
	}
}

func TestWorldInputSuppressedAfterScroll(t *testing.T) {
	w := newTestWorld(t, "42", 7)
	climb(t, w, 7)

	if !w.InputLocked() {
		t.Fatal("input should be locked after a scroll")
	}
	if w.HandleInput(core.ActionLeft) {
		t.Error("first input after scroll should be dropped")
	}
	if x, y := w.PlayerPosition(); x != 7 || y != 1 {
		t.Errorf("dropped input moved player to (%d, %d)", x, y)
	}

	w.Tick(0)
	if w.InputLocked() {
		t.Error("Tick should clear the input lock")
	}
	if !w.HandleInput(core.ActionLeft) {
		t.Error("input after the next tick should be applied")
	}
	if x, _ := w.PlayerPosition(); x != 6 {
		t.Errorf("x = %d, expected 6", x)
	}
}

func TestWorldCollisionEndsGame(t *testing.T) {
	w := newTestWorld(t, "42", 3)
	climb(t, w, 1)

	// Row 1 becomes a lane whose first obstacle covers [3, 5) after 5s.
	w.lanes[1] = NewLane(uniformSpec(DirRight), 1)
	w.Tick(5)

	if !w.IsGameOver() {
		t.Fatal("player overlapping an obstacle should end the game")
	}

	lane, _ := w.Lane(1)
	phase := lane.Phase()
	w.Tick(1)
	if lane, _ = w.Lane(1); lane.Phase() != phase {
		t.Error("Tick after game over should not move lanes")
	}
	if w.HandleInput(core.ActionUp) {
		t.Error("HandleInput after game over should be rejected")
	}
	if w.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", w.Score())
	}

	w.Reset("42", 3)
	if w.IsGameOver() {
		t.Error("Reset should start a new session")
	}
}

func TestWorldNoCollisionNextToObstacle(t *testing.T) {
	w := newTestWorld(t, "42", 5)
	climb(t, w, 1)

	w.lanes[1] = NewLane(uniformSpec(DirRight), 1)
	w.Tick(5) // obstacle covers [3, 5), player tile is [5, 6)

	if w.IsGameOver() {
		t.Error("touching an obstacle edge should not end the game")
	}
}

func TestWorldVisibleObstacles(t *testing.T) {
	w := newTestWorld(t, "42", 7)

	count := 0
	w.ForEachVisibleObstacle(func(core.Box) { count++ })
	if count != 0 {
		t.Errorf("fresh world shows %d obstacles, expected 0", count)
	}

	w.lanes[3] = NewLane(uniformSpec(DirRight), 3)
	w.lanes[5] = NewLane(uniformSpec(DirLeft), 5)
	w.lanes[3].Advance(14, 1)
	w.lanes[5].Advance(5, 1)

	var boxes []core.Box
	w.ForEachVisibleObstacle(func(b core.Box) { boxes = append(boxes, b) })

	expected := []core.Box{
		{X: 12, Y: 3, W: 2, H: 1},
		{X: 7, Y: 3, W: 2, H: 1},
		{X: 2, Y: 3, W: 2, H: 1},
		{X: 10, Y: 5, W: 2, H: 1},
	}
	if !reflect.DeepEqual(boxes, expected) {
		t.Errorf("ForEachVisibleObstacle() = %v, expected %v", boxes, expected)
	}
	if snap := w.Snapshot(); !reflect.DeepEqual(snap.Obstacles, expected) {
		t.Errorf("Snapshot().Obstacles = %v, expected %v", snap.Obstacles, expected)
	}
}

func TestWorldDifficultyScale(t *testing.T) {
	w := newTestWorld(t, "42", 7)
	if w.DifficultyScale() != 1 {
		t.Errorf("DifficultyScale() = %v, expected 1", w.DifficultyScale())
	}

	climb(t, w, 7)
	if got := w.DifficultyScale(); math.Abs(got-1.14) > 1e-9 {
		t.Errorf("DifficultyScale() after one block = %v, expected 1.14", got)
	}

	w.SetDifficulty(LinearDifficulty{Alpha: 0})
	if w.DifficultyScale() != 1 {
		t.Errorf("DifficultyScale() with alpha 0 = %v, expected 1", w.DifficultyScale())
	}

	w.SetDifficulty(nil)
	if got := w.DifficultyScale(); math.Abs(got-1.14) > 1e-9 {
		t.Errorf("nil curve should restore the default, got %v", got)
	}
}

func TestLinearDifficulty(t *testing.T) {
	d := LinearDifficulty{Alpha: DefaultAlpha}
	tests := []struct {
		scroll   int
		expected float64
	}{
		{0, 1},
		{7, 1.14},
		{70, 2.4},
		{-100, 1},
	}
	for _, tc := range tests {
		if got := d.Scale(tc.scroll); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Scale(%d) = %v, expected %v", tc.scroll, got, tc.expected)
		}
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() Snapshot {
		w := newTestWorld(t, "determinism", 7)
		for tick := 0; tick < 600 && !w.IsGameOver(); tick++ {
			switch tick % 40 {
			case 0:
				w.HandleInput(core.ActionUp)
			case 20:
				w.HandleInput(core.ActionLeft)
			case 30:
				w.HandleInput(core.ActionRight)
			}
			w.Tick(1.0 / 60.0)
		}
		return w.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical seeds and inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestCoordinateConversions(t *testing.T) {
	if ScreenRowOf(9, 0) != 8 || ScreenRowOf(9, 8) != 0 {
		t.Error("ScreenRowOf should flip grid y")
	}
	for y := 0; y < 9; y++ {
		if GridYFromScreen(9, ScreenRowOf(9, y)) != y {
			t.Errorf("screen round trip failed for y=%d", y)
		}
		if GridYOf(14, WorldRowOf(14, y)) != y {
			t.Errorf("world round trip failed for y=%d", y)
		}
	}
	if WorldRowOf(7, 1) != 8 {
		t.Errorf("WorldRowOf(7, 1) = %d, expected 8", WorldRowOf(7, 1))
	}
}

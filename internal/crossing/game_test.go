package crossing

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/lanecross/internal/core"
)

func newTestGame(seed string) *Game {
	g := NewGame(DefaultGameOptions())
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func TestStartColumn(t *testing.T) {
	tests := []struct {
		startX, width, expected int
	}{
		{-1, 15, 7},
		{0, 15, 0},
		{20, 15, 14},
		{3, 15, 3},
	}
	for _, tc := range tests {
		if got := StartColumn(tc.startX, tc.width); got != tc.expected {
			t.Errorf("StartColumn(%d, %d) = %d, expected %d", tc.startX, tc.width, got, tc.expected)
		}
	}
}

func TestGameStep(t *testing.T) {
	g := newTestGame("abc")

	if g.World().NormalizedSeed() != "abcabcabca" {
		t.Errorf("seed = %q, expected abcabcabca", g.World().NormalizedSeed())
	}
	if x, _ := g.World().PlayerPosition(); x != 7 {
		t.Errorf("start x = %d, expected centre column 7", x)
	}

	res := g.Step(core.NewInputFrame(core.ActionUp))
	if res.State.Score != 1 {
		t.Errorf("Score after Up = %d, expected 1", res.State.Score)
	}
	if g.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", g.Ticks())
	}

	// Several moves in one frame are all applied in order.
	g.Step(core.NewInputFrame(core.ActionLeft, core.ActionLeft, core.ActionRight))
	if x, _ := g.World().PlayerPosition(); x != 6 {
		t.Errorf("x = %d, expected 6", x)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame("pause")

	res := g.Step(core.NewInputFrame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Pause action should pause the game")
	}

	g.Step(core.NewInputFrame(core.ActionUp))
	if g.State().Score != 0 || g.Ticks() != 0 {
		t.Errorf("paused game advanced: score=%d ticks=%d", g.State().Score, g.Ticks())
	}

	g.Step(core.NewInputFrame(core.ActionPause))
	if g.State().Paused {
		t.Error("second Pause should resume")
	}
}

func TestGameReportsScroll(t *testing.T) {
	g := newTestGame("42")

	scrolled := false
	for i := 0; i < 7; i++ {
		res := g.Step(core.NewInputFrame(core.ActionUp))
		if res.State.GameOver {
			// obstacles are far from the start column during the first ticks
			t.Fatalf("unexpected game over at step %d", i)
		}
		scrolled = res.Scrolled
	}
	if !scrolled {
		t.Error("seventh Up should report a scroll")
	}
}

func TestGameRestartKeepsSeed(t *testing.T) {
	g := newTestGame("")
	seed := g.World().NormalizedSeed()

	g.Step(core.NewInputFrame(core.ActionUp))
	g.Restart()

	if g.World().NormalizedSeed() != seed {
		t.Errorf("Restart changed seed from %q to %q", seed, g.World().NormalizedSeed())
	}
	if g.State().Score != 0 || g.Ticks() != 0 {
		t.Error("Restart should reset score and ticks")
	}
}

func TestGameOverFreezesStep(t *testing.T) {
	g := newTestGame("42")
	g.world.gameOver = true

	res := g.Step(core.NewInputFrame(core.ActionUp))
	if !res.State.GameOver || res.State.Score != 0 || g.Ticks() != 0 {
		t.Errorf("Step after game over changed state: %+v ticks=%d", res.State, g.Ticks())
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame("42")
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Score: 0") {
		t.Error("render should include the score")
	}
	if !strings.Contains(out, "4242424242") {
		t.Error("render should include the seed")
	}
	if !strings.Contains(out, "@@") {
		t.Error("render should include the player")
	}

	g.world.gameOver = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("render should show game over")
	}
}

func TestDrawBoardPlacesRows(t *testing.T) {
	w := newTestWorld(t, "42", 0)
	w.lanes[3] = NewLane(uniformSpec(DirRight), 3)
	w.lanes[3].Advance(5.5, 1) // obstacle covers [3.5, 5.5)

	bw, bh := BoardSize(w.GridWidth(), w.GridHeight())
	screen := core.NewScreen(bw, bh)
	DrawBoard(screen, w.Snapshot(), 0, 0, core.ColorWhite)

	// Player on grid y 0 sits on the last inner row.
	if screen.Get(1, bh-2) != PlayerChar {
		t.Errorf("player not drawn at bottom-left, got %q", screen.Get(1, bh-2))
	}
	// Safe row 0 is drawn next to the player.
	if screen.Get(3, bh-2) != SafeChar {
		t.Errorf("safe row not drawn, got %q", screen.Get(3, bh-2))
	}

	row := 1 + ScreenRowOf(w.GridHeight(), 3)
	for col := 7; col < 11; col++ {
		if screen.GetCell(1+col, row).Rune != ObstacleChar {
			t.Errorf("column %d of row 3 should be an obstacle", col)
		}
	}
	if screen.Get(1+11, row) == ObstacleChar {
		t.Error("obstacle drawn past its right edge")
	}
	if screen.GetCell(1+7, row).Color != core.ColorBrightYellow {
		t.Error("right-moving obstacles should be yellow")
	}
}

func TestSnapshotJSON(t *testing.T) {
	w := newTestWorld(t, "42", 7)
	data, err := json.Marshal(w.Snapshot())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`"seed":"4242424242"`,
		`"match_seed":"12463331892937108195"`,
		`"kind":"safe"`,
		`"direction":"left"`,
		`"player":{"x":7,"y":0}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot JSON missing %s", want)
		}
	}

	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.MatchSeed != seed42 || len(back.Lanes) != 9 || back.Lanes[2].Kind != LaneTraffic {
		t.Errorf("decoded snapshot = %+v", back)
	}
}

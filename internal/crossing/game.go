package crossing

import (
	"fmt"

	"github.com/vovakirdan/lanecross/internal/core"
)

// GameOptions configures a solo Game.
type GameOptions struct {
	GridWidth  int
	GridHeight int
	StartX     int // negative means the centre column
	Difficulty DifficultyCurve
	Entropy    EntropySource
}

// DefaultGameOptions returns the standard 15x9 board.
func DefaultGameOptions() GameOptions {
	return GameOptions{
		GridWidth:  DefaultGridWidth,
		GridHeight: DefaultGridHeight,
		StartX:     -1,
	}
}

// Game wraps a World with the pause and restart behaviour of an
// interactive solo session.
type Game struct {
	world  *World
	opts   GameOptions
	config core.RuntimeConfig
	paused bool
	ticks  int
}

// NewGame creates a solo game. Call Reset before stepping it.
func NewGame(opts GameOptions) *Game {
	w := NewWorld(opts.GridWidth, opts.GridHeight)
	w.SetDifficulty(opts.Difficulty)
	w.SetEntropy(opts.Entropy)
	return &Game{world: w, opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "crossing"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Crossing"
}

// StartColumn resolves a configured start column for a grid width.
func StartColumn(startX, gridWidth int) int {
	if startX < 0 {
		return gridWidth / 2
	}
	return core.Clamp(startX, 0, gridWidth-1)
}

// Reset starts a new session with cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.paused = false
	g.ticks = 0
	g.world.Reset(cfg.Seed, StartColumn(g.opts.StartX, g.world.GridWidth()))
}

// Restart replays the current session's seed from the beginning.
func (g *Game) Restart() {
	cfg := g.config
	cfg.Seed = g.world.NormalizedSeed()
	g.Reset(cfg)
}

// Step applies the frame's moves in order, then advances the world by
// one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world.IsGameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	before := g.world.ScrollCount()
	for _, a := range in.Moves() {
		g.world.HandleInput(a)
	}
	g.world.Tick(g.config.TickSeconds())
	g.ticks++

	return core.StepResult{
		State:    g.State(),
		Scrolled: g.world.ScrollCount() != before,
	}
}

// Render draws the board centered on dst with a HUD line above it.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.world.Snapshot()

	bw, bh := BoardSize(snap.GridWidth, snap.GridHeight)
	x0 := max((dst.Width()-bw)/2, 0)
	y0 := max((dst.Height()-bh-1)/2, 0) + 1

	dst.DrawText(x0, y0-1, HUDLine("", snap))
	DrawBoard(dst, snap, x0, y0, core.ColorWhite)

	if g.paused {
		DrawMessage(dst, "PAUSED", "Press P to resume")
	}
	if snap.GameOver {
		DrawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R to retry seed %s", snap.Score, snap.Seed))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: g.world.IsGameOver(),
		Paused:   g.paused,
	}
}

// World exposes the underlying simulation for read-only queries.
func (g *Game) World() *World {
	return g.world
}

// Ticks returns the number of simulated ticks since Reset.
func (g *Game) Ticks() int {
	return g.ticks
}

package tui

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanecross/internal/config"
	"github.com/vovakirdan/lanecross/internal/crossing"
	"github.com/vovakirdan/lanecross/internal/multiplayer"
	"github.com/vovakirdan/lanecross/internal/storage"
)

// ScoreStore is the subset of the score database the UI uses.
// *storage.Store satisfies it.
type ScoreStore interface {
	multiplayer.MatchResultSaver
	SaveScore(player, seed string, score int) (int64, error)
	TopScores(limit int) ([]storage.ScoreEntry, error)
	TopScoresForSeed(seed string, limit int) ([]storage.ScoreEntry, error)
	RecentVersusMatches(limit int) ([]storage.VersusRecord, error)
}

var _ ScoreStore = (*storage.Store)(nil)

// Options carries the collaborators shared by every screen of a session.
type Options struct {
	Config   config.CrossingConfig
	Preset   config.DifficultyPreset      // empty keeps Config.Difficulty
	Store    ScoreStore                   // nil disables scores
	Sessions *multiplayer.SessionRegistry // nil disables spectating
	Session  multiplayer.SessionID        // empty generates one
	Player   string
	Context  context.Context // cancelled when the session ends
	Logger   *log.Logger
}

func (o Options) context() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o Options) sessionID() multiplayer.SessionID {
	if o.Session == "" {
		return multiplayer.NewSessionID()
	}
	return o.Session
}

func (o Options) player() string {
	if o.Player == "" {
		return "player"
	}
	return o.Player
}

// crossingConfig returns the config with the preset applied.
func (o Options) crossingConfig() config.CrossingConfig {
	cfg := o.Config
	if o.Preset != "" {
		config.ApplyPreset(&cfg, o.Preset)
	}
	cfg.Normalize()
	return cfg
}

func (o Options) gameOptions() crossing.GameOptions {
	cfg := o.crossingConfig()
	return crossing.GameOptions{
		GridWidth:  cfg.Grid.Width,
		GridHeight: cfg.Grid.Height,
		StartX:     cfg.Player.StartX,
		Difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

func (o Options) versusConfig(seed string) multiplayer.VersusConfig {
	cfg := o.crossingConfig()
	vc := multiplayer.DefaultVersusConfig()
	vc.Seed = seed
	vc.GridWidth = cfg.Grid.Width
	vc.GridHeight = cfg.Grid.Height
	vc.StartX = cfg.Player.StartX
	vc.TickRate = cfg.Simulation.TickRate
	vc.Difficulty = config.NewDifficultyManager(cfg.Difficulty)
	vc.Player1 = o.player() + "/p1"
	vc.Player2 = o.player() + "/p2"
	return vc
}

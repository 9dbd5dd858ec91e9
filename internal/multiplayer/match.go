package multiplayer

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanecross/internal/core"
	"github.com/vovakirdan/lanecross/internal/crossing"
)

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	// MatchEndCompleted means both players were hit.
	MatchEndCompleted MatchEndReason = iota

	// MatchEndCancelled means the match was stopped early.
	MatchEndCancelled
)

// String returns a human-readable description of the end reason.
func (r MatchEndReason) String() string {
	switch r {
	case MatchEndCompleted:
		return "completed"
	case MatchEndCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MatchResult contains the outcome of a finished versus round.
type MatchResult struct {
	MatchID  MatchID
	Seed     string
	Reason   MatchEndReason
	Outcome  Outcome
	Score1   int
	Score2   int
	Duration time.Duration
}

// MatchResultSaver is implemented by storage to persist completed matches.
// Defined here so matches do not depend on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(data MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID      string
	Seed         string
	Player1      string
	Player2      string
	Score1       int
	Score2       int
	Outcome      string // "p1", "p2" or "tie"
	DurationSecs int
}

// VersusConfig configures a versus match.
type VersusConfig struct {
	Seed       string // raw seed; empty picks random digits once for both worlds
	GridWidth  int
	GridHeight int
	StartX     int // negative means the centre column
	TickRate   int
	Difficulty crossing.DifficultyCurve
	Entropy    crossing.EntropySource
	Player1    string // display names stored with results
	Player2    string
}

// DefaultVersusConfig returns the standard two-player setup.
func DefaultVersusConfig() VersusConfig {
	return VersusConfig{
		GridWidth:  crossing.DefaultGridWidth,
		GridHeight: crossing.DefaultGridHeight,
		StartX:     -1,
		TickRate:   60,
		Player1:    "player1",
		Player2:    "player2",
	}
}

// VersusMatch runs two worlds from the same normalized seed, each on its
// own goroutine with its own input queue. The match ends when both
// players have been hit.
type VersusMatch struct {
	cfg     VersusConfig
	seed    string
	startX  int
	runners [2]*Runner

	mu      sync.Mutex
	id      MatchID
	cancel  context.CancelFunc
	done    chan struct{}
	started time.Time
	result  *MatchResult
	saver   MatchResultSaver
	onEnd   func(MatchResult)
	logger  *log.Logger
}

// NewVersusMatch creates a match. The seed is normalized once so both
// worlds generate identical lanes.
func NewVersusMatch(cfg VersusConfig) *VersusMatch {
	if cfg.TickRate < 1 {
		cfg.TickRate = 60
	}
	m := &VersusMatch{
		cfg:    cfg,
		seed:   crossing.NormalizeSeed(cfg.Seed, cfg.Entropy),
		logger: log.Default(),
	}
	for i := range m.runners {
		w := crossing.NewWorld(cfg.GridWidth, cfg.GridHeight)
		w.SetDifficulty(cfg.Difficulty)
		m.runners[i] = NewRunner(w, NewInputQueue(DefaultQueueSize), cfg.TickRate)
	}
	m.startX = crossing.StartColumn(cfg.StartX, m.runners[0].world.GridWidth())
	m.resetWorlds()
	return m
}

// SetResultSaver sets the saver used for completed matches.
func (m *VersusMatch) SetResultSaver(saver MatchResultSaver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saver = saver
}

// SetLogger replaces the match logger.
func (m *VersusMatch) SetLogger(logger *log.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// OnEnd registers a callback invoked once per round when it ends.
func (m *VersusMatch) OnEnd(fn func(MatchResult)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnd = fn
}

// ID returns the identifier of the current round.
func (m *VersusMatch) ID() MatchID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id
}

// Seed returns the normalized seed shared by both worlds.
func (m *VersusMatch) Seed() string {
	return m.seed
}

// Runner returns the runner for a seat.
func (m *VersusMatch) Runner(p PlayerID) (*Runner, bool) {
	i, ok := p.index()
	if !ok {
		return nil, false
	}
	return m.runners[i], true
}

// Push queues a movement action for a player. Non-movement actions and
// unknown players are ignored.
func (m *VersusMatch) Push(p PlayerID, a core.Action) {
	i, ok := p.index()
	if !ok || !a.IsMove() {
		return
	}
	m.runners[i].queue.Push(a)
}

// Snapshots returns the latest snapshot of each world.
func (m *VersusMatch) Snapshots() (p1, p2 crossing.Snapshot) {
	return m.runners[0].Latest(), m.runners[1].Latest()
}

// Outcome returns the verdict once both players are out, or OutcomePending.
func (m *VersusMatch) Outcome() Outcome {
	s1, s2 := m.Snapshots()
	if !s1.GameOver || !s2.GameOver {
		return OutcomePending
	}
	return DecideOutcome(s1.Score, s2.Score)
}

// Running reports whether the round's goroutines are active.
func (m *VersusMatch) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// Start launches both runners. Calling Start on a running match does nothing.
func (m *VersusMatch) Start(parent context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	m.started = time.Now()
	m.result = nil
	m.logger.Info("versus match started", "match", m.id, "seed", m.seed)

	var wg sync.WaitGroup
	for _, r := range m.runners {
		wg.Add(1)
		go func(r *Runner) {
			defer wg.Done()
			r.Run(ctx) //nolint:errcheck // cancellation is reported through the result
		}(r)
	}

	go func() {
		wg.Wait()
		m.finish()
		close(done)
	}()
}

// finish records the round result after both runners have returned.
func (m *VersusMatch) finish() {
	s1, s2 := m.Snapshots()

	m.mu.Lock()
	result := MatchResult{
		MatchID:  m.id,
		Seed:     m.seed,
		Reason:   MatchEndCancelled,
		Outcome:  OutcomePending,
		Score1:   s1.Score,
		Score2:   s2.Score,
		Duration: time.Since(m.started),
	}
	if s1.GameOver && s2.GameOver {
		result.Reason = MatchEndCompleted
		result.Outcome = DecideOutcome(s1.Score, s2.Score)
	}
	m.result = &result
	cancel := m.cancel
	m.cancel = nil
	saver, onEnd, logger := m.saver, m.onEnd, m.logger
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	logger.Info("versus match ended",
		"match", result.MatchID,
		"reason", result.Reason,
		"outcome", result.Outcome,
		"score1", result.Score1,
		"score2", result.Score2,
	)

	if saver != nil && result.Reason == MatchEndCompleted {
		err := saver.SaveMatchResult(MatchResultData{
			MatchID:      string(result.MatchID),
			Seed:         result.Seed,
			Player1:      m.cfg.Player1,
			Player2:      m.cfg.Player2,
			Score1:       result.Score1,
			Score2:       result.Score2,
			Outcome:      result.Outcome.Code(),
			DurationSecs: int(result.Duration.Seconds()),
		})
		if err != nil {
			logger.Error("failed to save match result", "match", result.MatchID, "err", err)
		}
	}

	if onEnd != nil {
		onEnd(result)
	}
}

// Done returns a channel closed when the current round ends. It is nil
// before the first Start.
func (m *VersusMatch) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// Result returns the last finished round's result.
func (m *VersusMatch) Result() (MatchResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return MatchResult{}, false
	}
	return *m.result, true
}

// Stop cancels a running round and waits for its goroutines to exit.
func (m *VersusMatch) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Restart stops the current round, clears both queues and resets both
// worlds with the same normalized seed, then starts a new round.
func (m *VersusMatch) Restart(ctx context.Context) {
	m.Stop()
	m.resetWorlds()
	m.Start(ctx)
}

func (m *VersusMatch) resetWorlds() {
	for _, r := range m.runners {
		r.Reset(m.seed, m.startX)
	}
	m.mu.Lock()
	m.id = NewMatchID()
	m.result = nil
	m.mu.Unlock()
}

// Frame returns the spectator view of both worlds.
func (m *VersusMatch) Frame() Frame {
	s1, s2 := m.Snapshots()
	return Frame{
		Mode: MatchModeVersus,
		Players: []PlayerFrame{
			{Player: Player1, Name: m.cfg.Player1, Snapshot: s1},
			{Player: Player2, Name: m.cfg.Player2, Snapshot: s2},
		},
		Outcome: m.Outcome(),
	}
}

package tui

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanecross/internal/config"
	"github.com/vovakirdan/lanecross/internal/core"
	"github.com/vovakirdan/lanecross/internal/multiplayer"
	"github.com/vovakirdan/lanecross/internal/storage"
)

type fakeStore struct {
	mu      sync.Mutex
	scores  []storage.ScoreEntry
	matches []multiplayer.MatchResultData
	versus  []storage.VersusRecord
	saveErr error
}

func (f *fakeStore) SaveMatchResult(data multiplayer.MatchResultData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches = append(f.matches, data)
	return nil
}

func (f *fakeStore) SaveScore(player, seed string, score int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.scores = append(f.scores, storage.ScoreEntry{
		ID:        int64(len(f.scores) + 1),
		Player:    player,
		Seed:      seed,
		Score:     score,
		CreatedAt: time.Now(),
	})
	return int64(len(f.scores)), nil
}

func (f *fakeStore) TopScores(limit int) ([]storage.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storage.ScoreEntry(nil), f.scores[:min(limit, len(f.scores))]...), nil
}

func (f *fakeStore) TopScoresForSeed(seed string, limit int) ([]storage.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storage.ScoreEntry
	for _, s := range f.scores {
		if s.Seed == seed && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) RecentVersusMatches(limit int) ([]storage.VersusRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storage.VersusRecord(nil), f.versus[:min(limit, len(f.versus))]...), nil
}

func (f *fakeStore) saved() []storage.ScoreEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storage.ScoreEntry(nil), f.scores...)
}

// testOptions starts the token in the right-most column. With seed "42"
// four Ups put it on row 4 where the first obstacle enters on the first
// tick, so a run ends immediately with score 4.
func testOptions(store ScoreStore) Options {
	cfg := config.DefaultCrossingConfig()
	cfg.Player.StartX = 14
	return Options{
		Config: cfg,
		Store:  store,
		Logger: log.New(io.Discard),
	}
}

func testRuntime(seed string) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) tea.Model {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func tick(m tea.Model) (tea.Model, tea.Cmd) {
	return m.Update(TickMsg(time.Now()))
}

func crashSolo(t *testing.T, m Model) Model {
	t.Helper()
	next := press(t, m, runeKey("w"), runeKey("w"), runeKey("w"), runeKey("w"))
	next, _ = tick(next)
	solo := next.(Model)
	if !solo.State().GameOver {
		t.Fatalf("run should be over, state = %+v", solo.State())
	}
	return solo
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := &fakeStore{}
	m := NewModel(testOptions(store), testRuntime("42"))

	if m.Seed() != "4242424242" {
		t.Errorf("Seed() = %q, expected 4242424242", m.Seed())
	}

	m = crashSolo(t, m)
	if m.State().Score != 4 {
		t.Errorf("Score = %d, expected 4", m.State().Score)
	}

	next, _ := tick(m)
	m = next.(Model)

	saved := store.saved()
	if len(saved) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(saved))
	}
	if saved[0].Player != "player" || saved[0].Seed != "4242424242" || saved[0].Score != 4 {
		t.Errorf("saved = %+v", saved[0])
	}

	snap, ok := m.Snapshots().Load()
	if !ok || !snap.GameOver || snap.Score != 4 {
		t.Errorf("published snapshot = %+v (ok=%v)", snap, ok)
	}
}

func TestModelSaveFailureKeepsRunning(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	m := crashSolo(t, NewModel(testOptions(store), testRuntime("42")))

	if m.IsQuitting() || m.BackToMenu() {
		t.Error("a failed save should not leave the game")
	}
}

func TestModelWithoutStore(t *testing.T) {
	m := crashSolo(t, NewModel(testOptions(nil), testRuntime("42")))
	if m.State().Score != 4 {
		t.Errorf("Score = %d, expected 4", m.State().Score)
	}
}

func TestModelRestartKeepsSeed(t *testing.T) {
	store := &fakeStore{}
	m := crashSolo(t, NewModel(testOptions(store), testRuntime("42")))

	next := press(t, m, runeKey("r"))
	next, cmd := tick(next)
	m = next.(Model)

	if cmd == nil {
		t.Error("restart should keep ticking")
	}
	if m.State().GameOver || m.State().Score != 0 {
		t.Errorf("state after restart = %+v", m.State())
	}
	if m.Seed() != "4242424242" {
		t.Errorf("Seed() after restart = %q", m.Seed())
	}

	// A second crash is saved again
	crashSolo(t, m)
	if n := len(store.saved()); n != 2 {
		t.Errorf("saved %d scores, expected 2", n)
	}
}

func TestModelBackOnlyWhenOverOrPaused(t *testing.T) {
	m := NewModel(testOptions(nil), testRuntime("42"))

	next := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).BackToMenu() {
		t.Error("Esc during a run should not leave")
	}

	m = crashSolo(t, m)
	next = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("Esc after game over should go back to the menu")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testOptions(nil), testRuntime("42"))

	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(testOptions(nil), testRuntime("42"))
	view := m.View()

	if !strings.Contains(view, "Q: Quit") {
		t.Errorf("View() is missing the controls line:\n%s", view)
	}
}

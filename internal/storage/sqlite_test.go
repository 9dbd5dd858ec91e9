package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/lanecross/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, run := range []struct {
		player, seed string
		score        int
	}{
		{"amy", "4242424242", 12},
		{"bob", "4242424242", 30},
		{"amy", "abcabcabca", 7},
		{"cat", "4242424242", 30},
	} {
		if _, err := store.SaveScore(run.player, run.seed, run.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}
	// Equal scores keep insertion order.
	if scores[0].Player != "bob" || scores[1].Player != "cat" || scores[3].Score != 7 {
		t.Errorf("TopScores() order = %+v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	seeded, err := store.TopScoresForSeed("abcabcabca", 10)
	if err != nil {
		t.Fatalf("TopScoresForSeed() failed: %v", err)
	}
	if len(seeded) != 1 || seeded[0].Player != "amy" || seeded[0].Seed != "abcabcabca" {
		t.Errorf("TopScoresForSeed() = %+v", seeded)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("p", "0000000000", (i+1)*10) //nolint:errcheck
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 50 || scores[1].Score != 40 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, _ := store.TopScores(0)
	if len(all) != 5 {
		t.Errorf("TopScores(0) should fall back to the default limit, got %d", len(all))
	}
}

func TestStoreHighScores(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty store = %d, expected 0", high)
	}

	store.SaveScore("p", "1111111111", 9)  //nolint:errcheck
	store.SaveScore("p", "1111111111", 14) //nolint:errcheck
	store.SaveScore("p", "2222222222", 21) //nolint:errcheck

	if high, _ := store.HighScore(); high != 21 {
		t.Errorf("HighScore() = %d, expected 21", high)
	}
	if best, _ := store.BestScoreForSeed("1111111111"); best != 14 {
		t.Errorf("BestScoreForSeed() = %d, expected 14", best)
	}
	if best, _ := store.BestScoreForSeed("9999999999"); best != 0 {
		t.Errorf("BestScoreForSeed(unplayed) = %d, expected 0", best)
	}

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores(10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreVersusMatches(t *testing.T) {
	store := openTestStore(t)

	var saver multiplayer.MatchResultSaver = store
	for i, outcome := range []string{"p1", "tie", "p2"} {
		err := saver.SaveMatchResult(multiplayer.MatchResultData{
			MatchID:      string(rune('a' + i)),
			Seed:         "4242424242",
			Player1:      "amy",
			Player2:      "bob",
			Score1:       4,
			Score2:       2,
			Outcome:      outcome,
			DurationSecs: 3,
		})
		if err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	rec, err := store.VersusMatchByID("b")
	if err != nil {
		t.Fatalf("VersusMatchByID() failed: %v", err)
	}
	if rec == nil || rec.Outcome != "tie" || rec.Player2 != "bob" || rec.Duration != 3 {
		t.Errorf("VersusMatchByID(b) = %+v", rec)
	}

	missing, err := store.VersusMatchByID("zzz")
	if err != nil || missing != nil {
		t.Errorf("VersusMatchByID(unknown) = %+v, %v, expected nil, nil", missing, err)
	}

	recent, err := store.RecentVersusMatches(2)
	if err != nil {
		t.Fatalf("RecentVersusMatches() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].MatchID != "c" || recent[1].MatchID != "b" {
		t.Errorf("RecentVersusMatches() = %+v", recent)
	}

	// match_id is unique
	if _, err := store.SaveVersusMatch(VersusRecord{MatchID: "a", Outcome: "p1"}); err == nil {
		t.Error("expected duplicate match ID to fail")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("p", "1111111111", 10) //nolint:errcheck
	store.SaveScore("p", "1111111111", 20) //nolint:errcheck
	store.SaveScore("q", "2222222222", 30) //nolint:errcheck

	store.SaveVersusMatch(VersusRecord{MatchID: "m", Outcome: "p2"}) //nolint:errcheck

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.HighScore != 30 || stats.TotalScore != 60 || stats.Seeds != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 20 || stats.VersusCount != 1 {
		t.Errorf("avg = %v, versus = %d", stats.AvgScore, stats.VersusCount)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", want, want},
		{"sqlite text", "2026-03-04 05:06:07", want},
		{"rfc3339", "2026-03-04T05:06:07Z", want},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTimestamp(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

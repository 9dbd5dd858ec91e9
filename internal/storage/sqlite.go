// Package storage provides SQLite-based persistence for lane-crossing scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/lanecross/internal/multiplayer"
)

// DefaultPath is where the database lives when no path is configured.
const DefaultPath = "~/.lanecross/scores.db"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single solo run.
type ScoreEntry struct {
	ID        int64     `json:"id"`
	Player    string    `json:"player"`
	Seed      string    `json:"seed"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// VersusRecord represents a completed versus match.
type VersusRecord struct {
	ID        int64     `json:"id"`
	MatchID   string    `json:"match_id"`
	Seed      string    `json:"seed"`
	Player1   string    `json:"player1"`
	Player2   string    `json:"player2"`
	Score1    int       `json:"score1"`
	Score2    int       `json:"score2"`
	Outcome   string    `json:"outcome"` // "p1", "p2" or "tie"
	Duration  int       `json:"duration_secs"`
	CreatedAt time.Time `json:"created_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			seed TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_seed ON scores(seed, score DESC);

		CREATE TABLE IF NOT EXISTS versus_matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			seed TEXT NOT NULL,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_versus_matches_seed ON versus_matches(seed);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished solo run.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(player, seed string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (player, seed, score) VALUES (?, ?, ?)",
		player, seed, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best N solo runs across all seeds.
// Ties keep insertion order.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, player, seed, score, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// TopScoresForSeed retrieves the best N runs played on one normalized seed.
func (s *Store) TopScoresForSeed(seed string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, player, seed, score, created_at
		 FROM scores
		 WHERE seed = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		seed, limit,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Seed, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScoreForSeed returns the highest score recorded on a seed.
// Returns 0 if the seed was never played.
func (s *Store) BestScoreForSeed(seed string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE seed = ?",
		seed,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// HighScore returns the highest solo score on any seed.
// Returns 0 if no scores exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all solo scores.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveVersusMatch records the result of a completed versus match.
// Returns the ID of the inserted record.
func (s *Store) SaveVersusMatch(rec VersusRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO versus_matches
		 (match_id, seed, player1, player2, score1, score2, outcome, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Seed,
		rec.Player1,
		rec.Player2,
		rec.Score1,
		rec.Score2,
		rec.Outcome,
		rec.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save versus match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const versusColumns = `id, match_id, seed, player1, player2,
		score1, score2, outcome, duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersus(row rowScanner) (VersusRecord, error) {
	var rec VersusRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.Seed,
		&rec.Player1,
		&rec.Player2,
		&rec.Score1,
		&rec.Score2,
		&rec.Outcome,
		&rec.Duration,
		&createdAt,
	)
	rec.CreatedAt = parseTimestamp(createdAt)
	return rec, err
}

// VersusMatchByID retrieves a versus match by its match ID.
// Returns nil without error if the match is unknown.
func (s *Store) VersusMatchByID(matchID string) (*VersusRecord, error) {
	rec, err := scanVersus(s.db.QueryRow(
		"SELECT "+versusColumns+" FROM versus_matches WHERE match_id = ?",
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query versus match: %w", err)
	}
	return &rec, nil
}

// RecentVersusMatches retrieves the most recent versus matches.
func (s *Store) RecentVersusMatches(limit int) ([]VersusRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+versusColumns+` FROM versus_matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query versus matches: %w", err)
	}
	defer rows.Close()

	var results []VersusRecord
	for rows.Next() {
		rec, err := scanVersus(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveVersusMatch(VersusRecord{
		MatchID:  data.MatchID,
		Seed:     data.Seed,
		Player1:  data.Player1,
		Player2:  data.Player2,
		Score1:   data.Score1,
		Score2:   data.Score2,
		Outcome:  data.Outcome,
		Duration: data.DurationSecs,
	})
	return err
}

var _ multiplayer.MatchResultSaver = (*Store)(nil)

// Stats contains aggregated statistics over all solo runs.
type Stats struct {
	Runs        int       `json:"runs"`
	HighScore   int       `json:"high_score"`
	AvgScore    float64   `json:"avg_score"`
	TotalScore  int64     `json:"total_score"`
	Seeds       int       `json:"seeds"`
	VersusCount int       `json:"versus_matches"`
	LastPlayed  time.Time `json:"last_played"`
}

// GetStats retrieves aggregated statistics.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COUNT(DISTINCT seed)
		 FROM scores`,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.Seeds)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM versus_matches").Scan(&stats.VersusCount); err != nil {
		return nil, fmt.Errorf("storage: cannot count versus matches: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		"SELECT created_at FROM scores ORDER BY created_at DESC, id DESC LIMIT 1",
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// parseTimestamp accepts what the driver returns for DATETIME columns:
// either a time.Time or SQLite's text form.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

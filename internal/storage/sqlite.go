// Package storage provides SQLite-based persistence for country totals and
// match history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/termfolio/pixelsmash/internal/leaderboard"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished match played on this machine.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Country   string
	Score     int
	Level     int
	CreatedAt time.Time
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

	// One writer at a time keeps accumulation serial.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS country_scores (
			country_code TEXT PRIMARY KEY,
			total_score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_country_scores_total ON country_scores(total_score DESC);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			country_code TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_score ON matches(score DESC);
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

// Accumulate adds score to a country's total, creating the row if needed.
func (s *Store) Accumulate(ctx context.Context, country string, score int) error {
	if score <= 0 {
		return fmt.Errorf("storage: cannot accumulate %d: %w", score, leaderboard.ErrInvalidScore)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO country_scores (country_code, total_score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(country_code) DO UPDATE SET
			total_score = total_score + excluded.total_score,
			updated_at = CURRENT_TIMESTAMP`,
		country, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot accumulate score: %w", err)
	}
	return nil
}

// Top returns the highest country totals, ties broken by country code.
func (s *Store) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if limit <= 0 {
		limit = leaderboard.Limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT country_code, total_score, updated_at
		 FROM country_scores
		 ORDER BY total_score DESC, country_code ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query country scores: %w", err)
	}
	defer rows.Close()

	entries := []leaderboard.Entry{}
	for rows.Next() {
		var e leaderboard.Entry
		var updatedAt any
		if err := rows.Scan(&e.CountryCode, &e.TotalScore, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if t := parseTime(updatedAt); !t.IsZero() {
			e.UpdatedAt = t.UTC().Format(time.RFC3339)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// CountryTotal returns a country's total, or 0 if it has none.
func (s *Store) CountryTotal(ctx context.Context, country string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT total_score FROM country_scores WHERE country_code = ?",
		country,
	).Scan(&total)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query country total: %w", err)
	}
	return total, nil
}

// SaveMatch records a finished match. Returns the ID of the inserted record.
func (s *Store) SaveMatch(ctx context.Context, m MatchRecord) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO matches (match_id, country_code, score, level) VALUES (?, ?, ?, ?)",
		m.MatchID, m.Country, m.Score, m.Level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopMatches retrieves the best local matches, highest score first.
func (s *Store) TopMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, match_id, country_code, score, level, created_at
		 FROM matches
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var createdAt any
		if err := rows.Scan(&m.ID, &m.MatchID, &m.Country, &m.Score, &m.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		records = append(records, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the best local match score.
// Returns 0 if no matches exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM matches").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// parseTime converts a DATETIME column, which the driver may return as
// either time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

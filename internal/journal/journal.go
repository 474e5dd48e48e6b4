// Package journal keeps an append-only record of every graded answer in a
// local SQLite database. The journal is an analytics side channel: the JSON
// session state stays authoritative, and journal failures never fail a turn.
package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// DBFile is the journal database file name inside the data directory.
const DBFile = "journal.db"

// Journal provides append and query access to the answer-event log.
type Journal struct {
	db *sqlx.DB
}

// AnswerEvent is one graded response.
type AnswerEvent struct {
	ID            int64   `db:"id"`
	SessionID     string  `db:"session_id"`
	UnitID        string  `db:"unit_id"`
	IsCorrect     bool    `db:"is_correct"`
	ThetaAfter    float64 `db:"theta_after"`
	StandardError float64 `db:"standard_error_after"`
	CreatedAt     string  `db:"created_at"`
}

// Stats summarizes the whole journal.
type Stats struct {
	TotalAnswers   int     `db:"total_answers"`
	CorrectAnswers int     `db:"correct_answers"`
	Accuracy       float64 `db:"-"`
	LastAnswerAt   string  `db:"-"`
}

// Open connects to the journal database in dir, creating the schema on
// first use.
func Open(dir string) (*Journal, error) {
	db, err := sqlx.Connect("sqlite", filepath.Join(dir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	// Single-writer local database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func initSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS answer_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			unit_id TEXT NOT NULL,
			is_correct INTEGER NOT NULL,
			theta_after REAL NOT NULL,
			standard_error_after REAL NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create answer_events table: %w", err)
	}
	return nil
}

// AppendAnswer records one graded response. Events are never updated or
// deleted.
func (j *Journal) AppendAnswer(ctx context.Context, ev AnswerEvent) error {
	if ev.CreatedAt == "" {
		ev.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO answer_events (
			session_id, unit_id, is_correct, theta_after, standard_error_after, created_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.UnitID, ev.IsCorrect, ev.ThetaAfter, ev.StandardError, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

// Stats aggregates counts and accuracy across the journal.
func (j *Journal) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := j.db.QueryRowxContext(ctx, `
		SELECT COUNT(*) AS total_answers,
		       COALESCE(SUM(is_correct), 0) AS correct_answers
		FROM answer_events
	`).StructScan(&s)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	if s.TotalAnswers > 0 {
		s.Accuracy = float64(s.CorrectAnswers) / float64(s.TotalAnswers)
		err = j.db.GetContext(ctx, &s.LastAnswerAt,
			`SELECT created_at FROM answer_events ORDER BY id DESC LIMIT 1`)
		if err != nil {
			return nil, fmt.Errorf("query last answer: %w", err)
		}
	}
	return &s, nil
}

// UnitAccuracy returns the accuracy and attempt count for one unit.
func (j *Journal) UnitAccuracy(ctx context.Context, unitID string) (float64, int, error) {
	var row struct {
		Total   int `db:"total"`
		Correct int `db:"correct"`
	}
	err := j.db.QueryRowxContext(ctx, `
		SELECT COUNT(*) AS total, COALESCE(SUM(is_correct), 0) AS correct
		FROM answer_events WHERE unit_id = ?`, unitID,
	).StructScan(&row)
	if err != nil {
		return 0, 0, fmt.Errorf("query unit accuracy: %w", err)
	}
	if row.Total == 0 {
		return 0, 0, nil
	}
	return float64(row.Correct) / float64(row.Total), row.Total, nil
}

// RecentAnswers returns the newest events, most recent first.
func (j *Journal) RecentAnswers(ctx context.Context, limit int) ([]AnswerEvent, error) {
	if limit <= 0 {
		limit = 10
	}
	var events []AnswerEvent
	err := j.db.SelectContext(ctx, &events,
		`SELECT * FROM answer_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent answers: %w", err)
	}
	return events, nil
}

// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/pomopal/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for pomodoro history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS phases (
			id INTEGER PRIMARY KEY,
			phase TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			planned_seconds INTEGER NOT NULL,
			focused_seconds INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			cycle INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snoozes (
			id INTEGER PRIMARY KEY,
			kind TEXT NOT NULL,
			snoozed_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_phases_ended_at ON phases(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_snoozes_snoozed_at ON snoozes(snoozed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPhase stores a finished phase.
func (s *Store) InsertPhase(ctx context.Context, rec model.PhaseRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO phases (phase, started_at, ended_at, planned_seconds, focused_seconds, skipped, cycle)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Phase,
		rec.StartedAt.UTC().Format(timeLayout),
		rec.EndedAt.UTC().Format(timeLayout),
		rec.PlannedSeconds,
		rec.FocusedSeconds,
		boolToInt(rec.Skipped),
		rec.Cycle,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertSnooze stores a snooze.
func (s *Store) InsertSnooze(ctx context.Context, rec model.SnoozeRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snoozes (kind, snoozed_at) VALUES (?, ?)`,
		rec.Kind,
		rec.SnoozedAt.UTC().Format(timeLayout),
	)
	return err
}

// ListPhases returns finished phases in chronological order.
func (s *Store) ListPhases(ctx context.Context, cfg model.StatsConfig) ([]model.PhaseRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, phase, started_at, ended_at, planned_seconds, focused_seconds, skipped, cycle
		FROM phases
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var phases []model.PhaseRecord
	for rows.Next() {
		var rec model.PhaseRecord
		var startedAt, endedAt string
		var skipped int
		if err := rows.Scan(&rec.ID, &rec.Phase, &startedAt, &endedAt, &rec.PlannedSeconds, &rec.FocusedSeconds, &skipped, &rec.Cycle); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rec.Skipped = skipped != 0
		phases = append(phases, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return phases, nil
}

// ListSnoozes returns snoozes in chronological order.
func (s *Store) ListSnoozes(ctx context.Context, cfg model.StatsConfig) ([]model.SnoozeRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "snoozed_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT kind, snoozed_at FROM snoozes WHERE %s ORDER BY snoozed_at ASC, id ASC`,
		strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var snoozes []model.SnoozeRecord
	for rows.Next() {
		var rec model.SnoozeRecord
		var snoozedAt string
		if err := rows.Scan(&rec.Kind, &snoozedAt); err != nil {
			return nil, err
		}
		if rec.SnoozedAt, err = time.Parse(time.RFC3339Nano, snoozedAt); err != nil {
			return nil, err
		}
		snoozes = append(snoozes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snoozes, nil
}

// CountCompletedWork returns the number of work phases that ran to completion.
func (s *Store) CountCompletedWork(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM phases WHERE phase = 'work' AND skipped = 0`).Scan(&count)
	return count, err
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

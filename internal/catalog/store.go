package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale catalogs must be deleted and recreated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run statuses recorded in the catalog.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run describes one extraction run.
type Run struct {
	ID         string
	Source     string
	Width      int
	Height     int
	FrameCount int
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// FrameRecord describes one extracted frame within a run.
type FrameRecord struct {
	RunID      string
	Index      int
	PTSSeconds float64
	Path       string
}

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// StartRun records the beginning of an extraction run and returns it.
func (s *Store) StartRun(ctx context.Context, source string, width, height int) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Source:    source,
		Width:     width,
		Height:    height,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	err := s.execWithRetry(ctx,
		"INSERT INTO runs (id, source, width, height, status, started_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Source, run.Width, run.Height, run.Status, run.StartedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Run{}, fmt.Errorf("start run: %w", err)
	}
	return run, nil
}

// RecordFrame appends one extracted frame to a run.
func (s *Store) RecordFrame(ctx context.Context, runID string, index int, ptsSeconds float64, path string) error {
	err := s.execWithRetry(ctx,
		"INSERT INTO frames (run_id, idx, pts_seconds, path) VALUES (?, ?, ?, ?)",
		runID, index, ptsSeconds, path)
	if err != nil {
		return fmt.Errorf("record frame: %w", err)
	}
	return nil
}

// FinishRun marks a run as completed or failed with its final frame count.
func (s *Store) FinishRun(ctx context.Context, runID, status string, frameCount int) error {
	err := s.execWithRetry(ctx,
		"UPDATE runs SET status = ?, frame_count = ?, finished_at = ? WHERE id = ?",
		status, frameCount, time.Now().UTC().Format(time.RFC3339Nano), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit
// returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT id, source, width, height, frame_count, status, started_at, finished_at FROM runs ORDER BY started_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&run.ID, &run.Source, &run.Width, &run.Height, &run.FrameCount, &run.Status, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		if finishedAt.Valid {
			run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt.String)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Frames returns a run's frames ordered by index.
func (s *Store) Frames(ctx context.Context, runID string) ([]FrameRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, idx, pts_seconds, path FROM frames WHERE run_id = ? ORDER BY idx", runID)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close()

	var frames []FrameRecord
	for rows.Next() {
		var record FrameRecord
		if err := rows.Scan(&record.RunID, &record.Index, &record.PTSSeconds, &record.Path); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		frames = append(frames, record)
	}
	return frames, rows.Err()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Package manifest records which pages the last generation runs produced,
// so unchanged pages are not rewritten and removed items lose their pages.
package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is the record of one generated page.
type Entry struct {
	AnchorID    string
	Path        string
	Fingerprint string
	RunID       string
	UpdatedAt   time.Time
}

// Run summarizes one generation run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Pages      int
	Written    int
	Unchanged  int
	Removed    int
}

// Store is an sqlite-backed manifest.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Open opens or creates the manifest at path. Use ":memory:" for a
// throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection keeps ":memory:" databases shared between calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		anchor_id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		run_id TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		written INTEGER NOT NULL,
		unchanged INTEGER NOT NULL,
		removed INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the entry of anchorID. ok is false when there is none.
func (s *Store) Get(ctx context.Context, anchorID string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT anchor_id, path, fingerprint, run_id, updated_at FROM pages WHERE anchor_id = ?",
		anchorID,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("query page: %w", err)
	}
	return e, true, nil
}

// Put inserts or replaces the entry of e.AnchorID. A zero UpdatedAt is set
// to the current time.
func (s *Store) Put(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (anchor_id, path, fingerprint, run_id, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(anchor_id) DO UPDATE SET path = excluded.path, fingerprint = excluded.fingerprint,
			run_id = excluded.run_id, updated_at = excluded.updated_at`,
		e.AnchorID, e.Path, e.Fingerprint, e.RunID, e.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert page: %w", err)
	}
	return nil
}

// List returns every entry ordered by anchor ID.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT anchor_id, path, fingerprint, run_id, updated_at FROM pages ORDER BY anchor_id",
	)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Delete removes the entry of anchorID. Deleting a missing entry is not an
// error.
func (s *Store) Delete(ctx context.Context, anchorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE anchor_id = ?", anchorID); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

// RecordRun stores the summary of a finished run.
func (s *Store) RecordRun(ctx context.Context, r Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO runs (id, started_at, finished_at, pages, written, unchanged, removed) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.StartedAt.UnixMilli(), r.FinishedAt.UnixMilli(), r.Pages, r.Written, r.Unchanged, r.Removed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// LastRun returns the most recently finished run.
func (s *Store) LastRun(ctx context.Context) (Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r Run
	var started, finished int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, started_at, finished_at, pages, written, unchanged, removed FROM runs ORDER BY finished_at DESC, rowid DESC LIMIT 1",
	).Scan(&r.ID, &started, &finished, &r.Pages, &r.Written, &r.Unchanged, &r.Removed)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("query run: %w", err)
	}
	r.StartedAt = time.UnixMilli(started)
	r.FinishedAt = time.UnixMilli(finished)
	return r, true, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var updated int64
	if err := row.Scan(&e.AnchorID, &e.Path, &e.Fingerprint, &e.RunID, &updated); err != nil {
		return Entry{}, err
	}
	e.UpdatedAt = time.UnixMilli(updated)
	return e, nil
}

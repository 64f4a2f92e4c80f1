package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quicksearch/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Store persists index snapshots so searches work before the first walk finishes
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the snapshot database at path
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate index database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		path TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		dir TEXT NOT NULL,
		ext TEXT NOT NULL,
		size INTEGER NOT NULL,
		mod_time INTEGER NOT NULL,
		extended INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_extended ON entries(extended);

	CREATE TABLE IF NOT EXISTS snapshots (
		extended INTEGER PRIMARY KEY,
		saved_at INTEGER NOT NULL,
		entry_count INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Replace swaps the stored entries of one set in a single transaction
func (s *Store) Replace(ctx context.Context, extended bool, entries []domain.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback after commit is a no-op
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE extended = ?", extended); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO entries (path, name, dir, ext, size, mod_time, extended)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Path, e.Name, e.Dir, e.Ext, e.Size, e.ModTime.UnixNano(), extended); err != nil {
			return fmt.Errorf("failed to insert %s: %w", e.Path, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (extended, saved_at, entry_count)
		VALUES (?, ?, ?)`, extended, time.Now().Unix(), len(entries)); err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load returns the stored entries of one set
func (s *Store) Load(ctx context.Context, extended bool) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, name, dir, ext, size, mod_time
		FROM entries WHERE extended = ?`, extended)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var (
			e       domain.Entry
			modTime int64
		)
		if err := rows.Scan(&e.Path, &e.Name, &e.Dir, &e.Ext, &e.Size, &modTime); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.ModTime = time.Unix(0, modTime)
		e.Extended = extended
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SavedAt returns when a set was last saved, zero if never
func (s *Store) SavedAt(ctx context.Context, extended bool) (time.Time, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx, "SELECT saved_at FROM snapshots WHERE extended = ?", extended).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot time: %w", err)
	}
	return time.Unix(ts, 0), nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Package history persists per-file editing state so reopening a document
// restores the cursor where it was left.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/texel/internal/log"
)

// schema is applied on open. Single table; versions are additive.
const schema = `
CREATE TABLE IF NOT EXISTS file_history (
	path TEXT PRIMARY KEY,
	cursor_offset INTEGER NOT NULL DEFAULT 0,
	last_session TEXT NOT NULL DEFAULT '',
	opened_count INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Entry is one remembered file.
type Entry struct {
	Path         string
	CursorOffset int
	LastSession  string
	OpenedCount  int
	UpdatedAt    time.Time
}

// Store is a SQLite-backed history store. Each process run gets a fresh
// session id so entries can be traced back to the run that wrote them.
type Store struct {
	db      *sql.DB
	session string
}

// DefaultPath returns the standard history database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "texel", "history.db"), nil
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying history schema: %w", err)
	}

	s := &Store{db: db, session: uuid.NewString()}
	log.Debug(log.CatHistory, "history store opened", "path", path, "session", s.session)
	return s, nil
}

// Session returns this run's session id.
func (s *Store) Session() string { return s.session }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Touch records that path was opened and updates its cursor offset.
func (s *Store) Touch(path string, cursorOffset int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO file_history (path, cursor_offset, last_session, opened_count, updated_at)
		VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			cursor_offset = excluded.cursor_offset,
			last_session = excluded.last_session,
			opened_count = file_history.opened_count + 1,
			updated_at = CURRENT_TIMESTAMP`,
		abs, cursorOffset, s.session)
	if err != nil {
		return fmt.Errorf("recording history for %s: %w", abs, err)
	}
	return nil
}

// SaveCursor updates the cursor offset without counting a new open.
func (s *Store) SaveCursor(path string, cursorOffset int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE file_history SET cursor_offset = ?, last_session = ?, updated_at = CURRENT_TIMESTAMP
		WHERE path = ?`,
		cursorOffset, s.session, abs)
	if err != nil {
		return fmt.Errorf("saving cursor for %s: %w", abs, err)
	}
	return nil
}

// Lookup returns the remembered entry for path, or ok=false when the file
// has never been opened.
func (s *Store) Lookup(path string) (Entry, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, false, fmt.Errorf("resolving path: %w", err)
	}

	var e Entry
	err = s.db.QueryRow(`
		SELECT path, cursor_offset, last_session, opened_count, updated_at
		FROM file_history WHERE path = ?`, abs).
		Scan(&e.Path, &e.CursorOffset, &e.LastSession, &e.OpenedCount, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("looking up history for %s: %w", abs, err)
	}
	return e, true, nil
}

// Recent returns up to limit entries, most recently updated first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT path, cursor_offset, last_session, opened_count, updated_at
		FROM file_history ORDER BY updated_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.CursorOffset, &e.LastSession, &e.OpenedCount, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/richchat/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound      = errors.New("template not found")
	ErrDatabaseError = errors.New("database error")
	ErrClosed        = errors.New("template store is closed")
)

// =============================================================================
// TEMPLATE TYPE
// =============================================================================

// Template is a stored raw message template.
type Template struct {
	Key       string    `json:"key"`
	Raw       string    `json:"raw"`
	Plain     string    `json:"plain"`
	Source    string    `json:"source"`
	Revision  string    `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

// =============================================================================
// TEMPLATE STORE
// =============================================================================

// TemplateStore persists catalog templates in SQLite.
type TemplateStore struct {
	db     *sql.DB
	path   string
	mu     sync.RWMutex
	closed bool
}

// Open opens or creates the store at path. ":memory:" opens a private
// in-memory database.
func Open(path string) (*TemplateStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &TemplateStore{db: db, path: path}, nil
}

// Path returns the database path the store was opened with.
func (s *TemplateStore) Path() string {
	return s.path
}

// Close releases the database.
func (s *TemplateStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// =============================================================================
// WRITES
// =============================================================================

// Put stores t under t.Key and returns the stored row. The revision and
// timestamp only change when the raw text or source differ from what is
// already stored.
func (s *TemplateStore) Put(t Template) (Template, error) {
	var out Template
	err := s.write(func(tx *sql.Tx) error {
		var err error
		out, err = upsert(tx, t)
		return err
	})
	return out, err
}

// ReplaceSource makes templates the complete set of keys loaded from source:
// keys from source that are not in templates are deleted, the rest are
// upserted as by Put.
func (s *TemplateStore) ReplaceSource(source string, templates []Template) ([]Template, error) {
	out := make([]Template, 0, len(templates))
	err := s.write(func(tx *sql.Tx) error {
		rows, err := tx.Query("SELECT key FROM templates WHERE source = ?", source)
		if err != nil {
			return err
		}
		stale := make(map[string]bool)
		for rows.Next() {
			var key string
			if err := rows.Scan(&key); err != nil {
				rows.Close()
				return err
			}
			stale[key] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, t := range templates {
			t.Source = source
			stored, err := upsert(tx, t)
			if err != nil {
				return err
			}
			delete(stale, t.Key)
			out = append(out, stored)
		}
		for key := range stale {
			if _, err := tx.Exec("DELETE FROM templates WHERE key = ?", key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSource removes every template loaded from source and returns how
// many were removed.
func (s *TemplateStore) DeleteSource(source string) (int64, error) {
	var n int64
	err := s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM templates WHERE source = ?", source)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	return n, err
}

func (s *TemplateStore) write(fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

func upsert(tx *sql.Tx, t Template) (Template, error) {
	if t.Key == "" {
		return Template{}, errors.New("template key is empty")
	}

	var current Template
	var updated int64
	err := tx.QueryRow(
		"SELECT key, raw, plain, source, revision, updated_at FROM templates WHERE key = ?", t.Key,
	).Scan(&current.Key, &current.Raw, &current.Plain, &current.Source, &current.Revision, &updated)
	switch {
	case err == nil:
		current.UpdatedAt = time.Unix(updated, 0)
		if current.Raw == t.Raw && current.Source == t.Source {
			return current, nil
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return Template{}, err
	}

	t.Revision = uuid.NewString()
	t.UpdatedAt = time.Unix(time.Now().Unix(), 0)
	_, err = tx.Exec(`
		INSERT INTO templates (key, raw, plain, source, revision, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			raw = excluded.raw,
			plain = excluded.plain,
			source = excluded.source,
			revision = excluded.revision,
			updated_at = excluded.updated_at`,
		t.Key, t.Raw, t.Plain, t.Source, t.Revision, t.UpdatedAt.Unix(),
	)
	if err != nil {
		return Template{}, err
	}
	return t, nil
}

// =============================================================================
// READS
// =============================================================================

const selectTemplate = "SELECT key, raw, plain, source, revision, updated_at FROM templates"

// Get returns the template stored under key.
func (s *TemplateStore) Get(key string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Template{}, ErrClosed
	}

	var t Template
	var updated int64
	err := s.db.QueryRow(selectTemplate+" WHERE key = ?", key).
		Scan(&t.Key, &t.Raw, &t.Plain, &t.Source, &t.Revision, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	t.UpdatedAt = time.Unix(updated, 0)
	return t, nil
}

// List returns every template ordered by key.
func (s *TemplateStore) List() ([]Template, error) {
	return s.query(selectTemplate + " ORDER BY key")
}

// Search returns templates whose key or plain text contains text, ignoring
// ASCII case. An empty query matches nothing.
func (s *TemplateStore) Search(text string) ([]Template, error) {
	if strings.TrimSpace(text) == "" {
		return []Template{}, nil
	}
	pattern := "%" + escapeLike(text) + "%"
	return s.query(selectTemplate+` WHERE plain LIKE ? ESCAPE '\' OR key LIKE ? ESCAPE '\' ORDER BY key`, pattern, pattern)
}

// Count returns the number of stored templates.
func (s *TemplateStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM templates").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (s *TemplateStore) query(q string, args ...any) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	results := []Template{}
	for rows.Next() {
		var t Template
		var updated int64
		if err := rows.Scan(&t.Key, &t.Raw, &t.Plain, &t.Source, &t.Revision, &updated); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		t.UpdatedAt = time.Unix(updated, 0)
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return results, nil
}

// escapeLike escapes LIKE wildcards so text matches literally.
func escapeLike(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(text)
}

// =============================================================================
// LIST FORMATTING
// =============================================================================

// FormatTemplateList formats templates as a table of key, revision and
// preview for terminal display.
func FormatTemplateList(templates []Template) string {
	if len(templates) == 0 {
		return "No templates found."
	}

	keyWidth := len("Key")
	for _, t := range templates {
		if w := util.StringWidth(t.Key); w > keyWidth {
			keyWidth = w
		}
	}
	if keyWidth > 32 {
		keyWidth = 32
	}

	var sb strings.Builder
	sb.WriteString(formatPadded("Key", keyWidth) + " " + formatPadded("Revision", 8) + " Preview\n")
	sb.WriteString(strings.Repeat("-", keyWidth+10+30) + "\n")
	for _, t := range templates {
		rev := t.Revision
		if len(rev) > 8 {
			rev = rev[:8]
		}
		preview := strings.ReplaceAll(t.Plain, "\n", " ")
		sb.WriteString(formatPadded(util.TruncateWidth(t.Key, keyWidth), keyWidth) + " " +
			formatPadded(rev, 8) + " " +
			util.TruncateWidth(preview, 30) + "\n")
	}
	return sb.String()
}

// formatPadded pads a string to the specified display width with spaces.
func formatPadded(s string, width int) string {
	w := util.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

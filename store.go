package devlog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/devlog/content"
)

// Store is the build cache: a SQLite table of parsed documents keyed by source
// path and checksum. It lets a restart or a reload skip front matter parsing
// and Markdown compilation for files that did not change. It is never the
// source of truth; deleting the file only costs a full parse.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL with a busy timeout so a watcher reload and a CLI run can share the
	// file; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    path TEXT PRIMARY KEY,
    checksum TEXT NOT NULL,
    title TEXT NOT NULL,
    schema INTEGER NOT NULL,
    date TEXT NOT NULL,
    created_date TEXT NOT NULL,
    updated_date TEXT NOT NULL,
    description TEXT NOT NULL,
    tags TEXT NOT NULL,
    url TEXT NOT NULL,
    body_raw TEXT NOT NULL,
    body_html TEXT NOT NULL,
    cached_at TEXT NOT NULL
);
`)
	return err
}

// Lookup returns the cached document for path if it was stored with the same
// checksum.
func (s *Store) Lookup(path, checksum string) (content.Document, bool, error) {
	var (
		doc                    content.Document
		schema                 int
		date, created, updated string
		tags                   string
	)
	err := s.db.QueryRow(`SELECT title, schema, date, created_date, updated_date, description, tags, url, body_raw, body_html FROM documents WHERE path = ? AND checksum = ?`, path, checksum).
		Scan(&doc.Title, &schema, &date, &created, &updated, &doc.Description, &tags, &doc.URL, &doc.Body.Raw, &doc.Body.HTML)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Document{}, false, nil
	}
	if err != nil {
		return content.Document{}, false, err
	}
	doc.Schema = content.DateSchema(schema)
	doc.SourcePath = path
	if doc.Date, err = parseStoredTime(date); err != nil {
		return content.Document{}, false, err
	}
	if doc.CreatedDate, err = parseStoredTime(created); err != nil {
		return content.Document{}, false, err
	}
	if doc.UpdatedDate, err = parseStoredTime(updated); err != nil {
		return content.Document{}, false, err
	}
	if err := json.Unmarshal([]byte(tags), &doc.Tags); err != nil {
		return content.Document{}, false, fmt.Errorf("decode tags of %s: %w", path, err)
	}
	return doc, true, nil
}

// Save upserts a parsed document.
func (s *Store) Save(path, checksum string, doc content.Document) error {
	tags := doc.Tags
	if tags == nil {
		tags = []content.Tag{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO documents (path, checksum, title, schema, date, created_date, updated_date, description, tags, url, body_raw, body_html, cached_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		path, checksum, doc.Title, int(doc.Schema),
		formatStoredTime(doc.Date), formatStoredTime(doc.CreatedDate), formatStoredTime(doc.UpdatedDate),
		doc.Description, string(encoded), doc.URL, doc.Body.Raw, doc.Body.HTML,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Retain deletes every cached document whose path is not in paths.
func (s *Store) Retain(paths []string) error {
	keep := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		keep[p] = struct{}{}
	}
	rows, err := s.db.Query(`SELECT path FROM documents`)
	if err != nil {
		return err
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return err
		}
		if _, ok := keep[p]; !ok {
			stale = append(stale, p)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()
	for _, p := range stale {
		if _, err := s.db.Exec(`DELETE FROM documents WHERE path = ?`, p); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of cached documents.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// Purge empties the cache.
func (s *Store) Purge() error {
	_, err := s.db.Exec(`DELETE FROM documents`)
	return err
}

func formatStoredTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseStoredTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, v)
}

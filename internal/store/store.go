// Package store handles the local SQLite cache: fetched model cards and a
// log of proposed metadata updates.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrCardNotCached indicates no fresh cached copy of the card exists.
var ErrCardNotCached = errors.New("store: card not cached")

// Store is the SQLite handle.
type Store struct {
	db *sql.DB
}

// CachedCard is one cached model card.
type CachedCard struct {
	ModelID   string
	Revision  string
	Path      string
	Content   string
	FetchedAt time.Time
}

// UpdateRecord is one logged metadata update proposal.
type UpdateRecord struct {
	ModelID   string
	Fields    string // "field=value" pairs, comma separated
	ChangeURL string
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS cards (
	model_id   TEXT NOT NULL,
	revision   TEXT NOT NULL,
	path       TEXT NOT NULL,
	content    TEXT NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (model_id, revision, path)
);

CREATE TABLE IF NOT EXISTS updates (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	model_id   TEXT NOT NULL,
	fields     TEXT NOT NULL,
	change_url TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// DefaultPath returns the cache database path under the user cache dir.
func DefaultPath() string {
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "hubcard", "cache.db")
	}
	return filepath.Join(".", "hubcard-cache.db")
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCard caches a fetched card, replacing any previous copy.
func (s *Store) SaveCard(card CachedCard) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO cards (model_id, revision, path, content, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		card.ModelID, card.Revision, card.Path, card.Content, card.FetchedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache card %s: %w", card.ModelID, err)
	}
	return nil
}

// GetCard returns the cached card if it was fetched within maxAge.
// maxAge <= 0 accepts any cached copy.
func (s *Store) GetCard(modelID, revision, path string, maxAge time.Duration) (*CachedCard, error) {
	row := s.db.QueryRow(
		`SELECT content, fetched_at FROM cards WHERE model_id = ? AND revision = ? AND path = ?`,
		modelID, revision, path,
	)

	var content string
	var fetchedAt int64
	if err := row.Scan(&content, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotCached
		}
		return nil, fmt.Errorf("read cached card %s: %w", modelID, err)
	}

	card := &CachedCard{
		ModelID:   modelID,
		Revision:  revision,
		Path:      path,
		Content:   content,
		FetchedAt: time.Unix(fetchedAt, 0),
	}
	if maxAge > 0 && time.Since(card.FetchedAt) > maxAge {
		return nil, ErrCardNotCached
	}
	return card, nil
}

// InvalidateCard drops any cached copy of the card.
func (s *Store) InvalidateCard(modelID, revision, path string) error {
	_, err := s.db.Exec(
		`DELETE FROM cards WHERE model_id = ? AND revision = ? AND path = ?`,
		modelID, revision, path,
	)
	if err != nil {
		return fmt.Errorf("invalidate cached card %s: %w", modelID, err)
	}
	return nil
}

// LogUpdate appends a metadata update proposal to the log.
func (s *Store) LogUpdate(rec UpdateRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO updates (model_id, fields, change_url, created_at) VALUES (?, ?, ?, ?)`,
		rec.ModelID, rec.Fields, rec.ChangeURL, createdAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("log update for %s: %w", rec.ModelID, err)
	}
	return nil
}

// Updates returns the most recent update proposals, newest first.
func (s *Store) Updates(limit int) ([]UpdateRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT model_id, fields, change_url, created_at FROM updates ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list updates: %w", err)
	}
	defer rows.Close()

	var records []UpdateRecord
	for rows.Next() {
		var rec UpdateRecord
		var createdAt int64
		if err := rows.Scan(&rec.ModelID, &rec.Fields, &rec.ChangeURL, &createdAt); err != nil {
			return nil, fmt.Errorf("scan update row: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Compile-time interface verification.
var _ Sink = (*SQLiteSink)(nil)

// SQLiteSink persists articles and digests in a local SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (or creates) the database at path and ensures the
// schema exists. Use ":memory:" for an in-memory database.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}

	s := &SQLiteSink{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSink) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id           TEXT PRIMARY KEY,
			url          TEXT NOT NULL UNIQUE,
			content      TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			saved_at     TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS digests (
			id          TEXT PRIMARY KEY,
			url         TEXT NOT NULL UNIQUE,
			summary     TEXT NOT NULL,
			translation TEXT NOT NULL,
			saved_at    TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("store: create schema: %w", err)
	}
	return nil
}

// SaveArticle upserts the full text for a URL. Re-saving identical content
// is a no-op, detected by content hash, so repeat scrapes stay idempotent.
func (s *SQLiteSink) SaveArticle(ctx context.Context, url, text string) error {
	hash := fmt.Sprintf("%016x", xxhash.Sum64String(text))

	var existing string
	err := s.db.QueryRowContext(ctx,
		`SELECT content_hash FROM articles WHERE url = ?`, url,
	).Scan(&existing)
	if err == nil && existing == hash {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return storageError("article lookup", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, url, content, content_hash, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			content = excluded.content,
			content_hash = excluded.content_hash,
			saved_at = excluded.saved_at
	`, uuid.New().String(), url, text, hash, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return storageError("article save", err)
	}
	return nil
}

// SaveDigest upserts the summary/translation pair for a URL.
func (s *SQLiteSink) SaveDigest(ctx context.Context, url, summary, translation string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO digests (id, url, summary, translation, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			summary = excluded.summary,
			translation = excluded.translation,
			saved_at = excluded.saved_at
	`, uuid.New().String(), url, summary, translation, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return storageError("digest save", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

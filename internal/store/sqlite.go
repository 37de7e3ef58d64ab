// Package store provides the SQLite-backed article store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/factnet/factnet/internal/model"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		headline TEXT NOT NULL,
		content TEXT NOT NULL,
		source TEXT NOT NULL,
		url TEXT NOT NULL UNIQUE,
		category TEXT,
		category_confidence REAL NOT NULL DEFAULT 0,
		is_trusted INTEGER NOT NULL DEFAULT 0,
		upvotes INTEGER NOT NULL DEFAULT 0,
		downvotes INTEGER NOT NULL DEFAULT 0,
		published_at TIMESTAMP NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at);
	CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);
	CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
	`
	_, err := db.Exec(schema)
	return err
}

// UpsertArticles inserts articles, deduplicating on URL
func (s *SQLiteStore) UpsertArticles(ctx context.Context, articles []model.Article) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO articles
		 (id, headline, content, source, url, category, category_confidence,
		  is_trusted, upvotes, downvotes, published_at, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, a := range articles {
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		res, err := stmt.ExecContext(ctx,
			id, a.Headline, a.Content, a.Source, a.URL, nullable(a.Category),
			a.CategoryConfidence, a.IsTrusted, a.Upvotes, a.Downvotes,
			a.PublishedAt.UTC(), a.FetchedAt.UTC())
		if err != nil {
			return 0, fmt.Errorf("insert article %s: %w", a.URL, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// RecentTrusted returns the candidate pool for similarity checks
func (s *SQLiteStore) RecentTrusted(ctx context.Context, maxAge time.Duration, limit int) ([]model.Article, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, headline, content, source, url, COALESCE(category, ''),
		        category_confidence, is_trusted, upvotes, downvotes,
		        published_at, fetched_at
		 FROM articles
		 WHERE is_trusted = 1 AND published_at >= ?
		 ORDER BY published_at DESC
		 LIMIT ?`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent trusted: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanArticles(rows)
}

// Uncategorized returns articles awaiting categorization
func (s *SQLiteStore) Uncategorized(ctx context.Context) ([]model.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, headline, content, source, url, COALESCE(category, ''),
		        category_confidence, is_trusted, upvotes, downvotes,
		        published_at, fetched_at
		 FROM articles
		 WHERE category IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("query uncategorized: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanArticles(rows)
}

// SetCategory records a categorization decision
func (s *SQLiteStore) SetCategory(ctx context.Context, id, category string, confidence float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE articles SET category = ?, category_confidence = ? WHERE id = ?`,
		category, confidence, id)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("article not found: %s", id)
	}
	return nil
}

// Count returns the total number of stored articles
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// Close closes the database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanArticles(rows *sql.Rows) ([]model.Article, error) {
	var articles []model.Article
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.ID, &a.Headline, &a.Content, &a.Source, &a.URL,
			&a.Category, &a.CategoryConfidence, &a.IsTrusted,
			&a.Upvotes, &a.Downvotes, &a.PublishedAt, &a.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

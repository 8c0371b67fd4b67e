package db

import (
	"database/sql"
)

// MigrateUp creates the feeds and articles tables with their indexes.
// All statements are idempotent so the worker can run this on every start.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS feeds (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    url        TEXT NOT NULL UNIQUE,
    category   TEXT NOT NULL DEFAULT 'tech',
    active     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id           SERIAL PRIMARY KEY,
    feed_id      INTEGER NOT NULL REFERENCES feeds(id) ON DELETE CASCADE,
    title        TEXT NOT NULL,
    link         TEXT NOT NULL UNIQUE,
    content      TEXT NOT NULL DEFAULT '',
    summary      TEXT NOT NULL DEFAULT '',
    summary_en   TEXT NOT NULL DEFAULT '',
    published_at TIMESTAMPTZ NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// ORDER BY published_at DESC is used by every listing query
		`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC)`,
		// join and per-feed lookups
		`CREATE INDEX IF NOT EXISTS idx_articles_feed_id ON articles(feed_id)`,
		// re-summarization scans articles with an empty summary
		`CREATE INDEX IF NOT EXISTS idx_articles_missing_summary ON articles(id) WHERE summary = ''`,
		// the ingestion cycle only loads active feeds
		`CREATE INDEX IF NOT EXISTS idx_feeds_active ON feeds(active) WHERE active = TRUE`,
		// category filter on the article listing
		`CREATE INDEX IF NOT EXISTS idx_feeds_category ON feeds(category)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown removes the schema in reverse dependency order.
// Use with caution: this deletes all stored feeds and articles.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS articles CASCADE`,
		`DROP TABLE IF EXISTS feeds CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Package postgres implements the repository interfaces on PostgreSQL
// through database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/repository"
)

type FeedRepo struct{ db *sql.DB }

func NewFeedRepo(db *sql.DB) repository.FeedRepository {
	return &FeedRepo{db: db}
}

func scanFeed(rows *sql.Rows) (*entity.Feed, error) {
	var feed entity.Feed
	if err := rows.Scan(
		&feed.ID, &feed.Name, &feed.URL, &feed.Category, &feed.Active,
		&feed.CreatedAt, &feed.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &feed, nil
}

func (repo *FeedRepo) Get(ctx context.Context, id int64) (*entity.Feed, error) {
	defer observe("feeds_get", time.Now())
	const query = `
SELECT id, name, url, category, active, created_at, updated_at
FROM feeds
WHERE id = $1
LIMIT 1`
	var feed entity.Feed
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&feed.ID, &feed.Name, &feed.URL, &feed.Category, &feed.Active,
		&feed.CreatedAt, &feed.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &feed, nil
}

func (repo *FeedRepo) GetByURL(ctx context.Context, url string) (*entity.Feed, error) {
	defer observe("feeds_get_by_url", time.Now())
	const query = `
SELECT id, name, url, category, active, created_at, updated_at
FROM feeds
WHERE url = $1
LIMIT 1`
	var feed entity.Feed
	err := repo.db.QueryRowContext(ctx, query, url).Scan(
		&feed.ID, &feed.Name, &feed.URL, &feed.Category, &feed.Active,
		&feed.CreatedAt, &feed.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByURL: %w", err)
	}
	return &feed, nil
}

func (repo *FeedRepo) List(ctx context.Context) ([]*entity.Feed, error) {
	defer observe("feeds_list", time.Now())
	const query = `
SELECT id, name, url, category, active, created_at, updated_at
FROM feeds
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	feeds := make([]*entity.Feed, 0, 50)
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		feeds = append(feeds, feed)
	}
	return feeds, rows.Err()
}

func (repo *FeedRepo) ListActive(ctx context.Context) ([]*entity.Feed, error) {
	defer observe("feeds_list_active", time.Now())
	const query = `
SELECT id, name, url, category, active, created_at, updated_at
FROM feeds
WHERE active = TRUE
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	defer func() { _ = rows.Close() }()

	feeds := make([]*entity.Feed, 0, 50)
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("ListActive: %w", err)
		}
		feeds = append(feeds, feed)
	}
	return feeds, rows.Err()
}

func (repo *FeedRepo) Create(ctx context.Context, feed *entity.Feed) error {
	defer observe("feeds_create", time.Now())
	const query = `
INSERT INTO feeds (name, url, category, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		feed.Name, feed.URL, feed.Category, feed.Active,
	).Scan(&feed.ID, &feed.CreatedAt, &feed.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *FeedRepo) Update(ctx context.Context, feed *entity.Feed) error {
	defer observe("feeds_update", time.Now())
	const query = `
UPDATE feeds
SET name = $1, url = $2, category = $3, active = $4, updated_at = NOW()
WHERE id = $5`
	result, err := repo.db.ExecContext(ctx, query,
		feed.Name, feed.URL, feed.Category, feed.Active, feed.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: rows affected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *FeedRepo) Delete(ctx context.Context, id int64) error {
	defer observe("feeds_delete", time.Now())
	const query = `DELETE FROM feeds WHERE id = $1`
	result, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: rows affected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

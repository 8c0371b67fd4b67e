package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/repository"
)

type ArticleRepo struct{ db *sql.DB }

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const articleColumns = "id, feed_id, title, link, content, summary, summary_en, published_at, created_at"

func scanArticle(rows *sql.Rows) (*entity.Article, error) {
	var a entity.Article
	if err := rows.Scan(
		&a.ID, &a.FeedID, &a.Title, &a.Link, &a.Content,
		&a.Summary, &a.SummaryEN, &a.PublishedAt, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (repo *ArticleRepo) ExistsByLink(ctx context.Context, link string) (bool, error) {
	defer observe("articles_exists_by_link", time.Now())
	const query = `SELECT EXISTS(SELECT 1 FROM articles WHERE link = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, link).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByLink: %w", err)
	}
	return exists, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	defer observe("articles_create", time.Now())
	const query = `
INSERT INTO articles (feed_id, title, link, content, summary, summary_en, published_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		article.FeedID, article.Title, article.Link, article.Content,
		article.Summary, article.SummaryEN, article.PublishedAt,
	).Scan(&article.ID, &article.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	defer observe("articles_get", time.Now())
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1 LIMIT 1`, articleColumns)
	var a entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.FeedID, &a.Title, &a.Link, &a.Content,
		&a.Summary, &a.SummaryEN, &a.PublishedAt, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &a, nil
}

// defaultListLimit caps unbounded article listings.
const defaultListLimit = 50

// List applies the filter priority date > (start, end) > days and returns
// articles newest first, joined with their feed metadata.
func (repo *ArticleRepo) List(ctx context.Context, f repository.ArticleFilters) ([]repository.ArticleWithFeed, error) {
	defer observe("articles_list", time.Now())
	query := `
SELECT a.id, a.feed_id, a.title, a.link, a.content, a.summary, a.summary_en,
       a.published_at, a.created_at, f.name, f.category
FROM articles a
JOIN feeds f ON f.id = a.feed_id`

	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		conds = append(conds, "f.category = "+arg(f.Category))
	}

	switch {
	case f.Date != nil:
		dayStart := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
		conds = append(conds,
			"a.published_at >= "+arg(dayStart),
			"a.published_at < "+arg(dayStart.AddDate(0, 0, 1)))
	case f.StartDate != nil || f.EndDate != nil:
		if f.StartDate != nil {
			conds = append(conds, "a.published_at >= "+arg(*f.StartDate))
		}
		if f.EndDate != nil {
			conds = append(conds, "a.published_at <= "+arg(*f.EndDate))
		}
	case f.Days > 0:
		conds = append(conds, "a.published_at >= "+arg(time.Now().AddDate(0, 0, -f.Days)))
	}

	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += "\nORDER BY a.published_at DESC\nLIMIT " + arg(limit)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := make([]repository.ArticleWithFeed, 0, limit)
	for rows.Next() {
		var a entity.Article
		var r repository.ArticleWithFeed
		if err := rows.Scan(
			&a.ID, &a.FeedID, &a.Title, &a.Link, &a.Content,
			&a.Summary, &a.SummaryEN, &a.PublishedAt, &a.CreatedAt,
			&r.FeedName, &r.Category,
		); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		r.Article = &a
		results = append(results, r)
	}
	return results, rows.Err()
}

func (repo *ArticleRepo) UpdateSummaries(ctx context.Context, id int64, summary, summaryEN string) error {
	defer observe("articles_update_summaries", time.Now())
	const query = `
UPDATE articles
SET summary = $1, summary_en = $2
WHERE id = $3`
	result, err := repo.db.ExecContext(ctx, query, summary, summaryEN, id)
	if err != nil {
		return fmt.Errorf("UpdateSummaries: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateSummaries: rows affected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ListMissingSummary returns articles whose primary summary is still empty,
// oldest first, for the re-summarization tool.
func (repo *ArticleRepo) ListMissingSummary(ctx context.Context, limit int) ([]*entity.Article, error) {
	defer observe("articles_list_missing_summary", time.Now())
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE summary = ''
ORDER BY id ASC
LIMIT $1`, articleColumns)
	return repo.listWithLimit(ctx, "ListMissingSummary", query, limit)
}

func (repo *ArticleRepo) ListAll(ctx context.Context, limit int) ([]*entity.Article, error) {
	defer observe("articles_list_all", time.Now())
	query := fmt.Sprintf(`
SELECT %s
FROM articles
ORDER BY id ASC
LIMIT $1`, articleColumns)
	return repo.listWithLimit(ctx, "ListAll", query, limit)
}

func (repo *ArticleRepo) listWithLimit(ctx context.Context, op, query string, limit int) ([]*entity.Article, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

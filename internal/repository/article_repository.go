package repository

import (
	"context"
	"time"

	"ai-rss-hub/internal/domain/entity"
)

// ArticleFilters contains optional filters for article listing.
// Exactly one of Date, (StartDate, EndDate), or Days is applied;
// Date takes priority over the range, the range over Days.
type ArticleFilters struct {
	Category  string     // Optional: filter by feed category
	Date      *time.Time // Optional: articles published on this calendar day
	StartDate *time.Time // Optional: articles published >= this date
	EndDate   *time.Time // Optional: articles published <= this date
	Days      int        // Optional: articles from the last N days
	Limit     int        // Maximum number of rows to return
}

// ArticleWithFeed pairs an article with its feed metadata for output rendering.
type ArticleWithFeed struct {
	Article  *entity.Article
	FeedName string
	Category string
}

type ArticleRepository interface {
	// ExistsByLink reports whether an article with the exact link is already stored.
	ExistsByLink(ctx context.Context, link string) (bool, error)
	Create(ctx context.Context, article *entity.Article) error
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// List retrieves articles ordered by published_at DESC applying the filters.
	List(ctx context.Context, filters ArticleFilters) ([]ArticleWithFeed, error)
	// UpdateSummaries writes both language summaries in a single statement.
	UpdateSummaries(ctx context.Context, id int64, summary, summaryEN string) error
	// ListMissingSummary retrieves articles whose primary summary is empty,
	// oldest first, up to limit. Used by the re-summarization tool.
	ListMissingSummary(ctx context.Context, limit int) ([]*entity.Article, error)
	// ListAll retrieves articles regardless of summary state, up to limit.
	ListAll(ctx context.Context, limit int) ([]*entity.Article, error)
}

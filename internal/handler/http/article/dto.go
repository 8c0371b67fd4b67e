// Package article provides HTTP handlers for article query endpoints.
package article

import (
	"time"

	"ai-rss-hub/internal/repository"
)

// DTO is the JSON representation of an article with its feed metadata.
type DTO struct {
	ID          int64     `json:"id"`
	FeedID      int64     `json:"feed_id"`
	FeedName    string    `json:"feed_name"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary"`
	SummaryEN   string    `json:"summary_en"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(a repository.ArticleWithFeed) DTO {
	return DTO{
		ID:          a.Article.ID,
		FeedID:      a.Article.FeedID,
		FeedName:    a.FeedName,
		Category:    a.Category,
		Title:       a.Article.Title,
		Link:        a.Article.Link,
		Summary:     a.Article.Summary,
		SummaryEN:   a.Article.SummaryEN,
		PublishedAt: a.Article.PublishedAt,
		CreatedAt:   a.Article.CreatedAt,
	}
}

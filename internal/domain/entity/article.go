package entity

import "time"

// Article represents a single feed entry persisted by the ingestion pipeline.
// Link is the deduplication key and is unique across all feeds. Summary holds
// the Chinese summary, SummaryEN the English one; both are empty until the
// summarization step succeeds and are the only fields mutated after creation.
type Article struct {
	ID          int64
	FeedID      int64
	Title       string
	Link        string
	Content     string
	Summary     string
	SummaryEN   string
	PublishedAt time.Time
	CreatedAt   time.Time
}

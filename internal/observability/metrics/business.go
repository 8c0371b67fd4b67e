package metrics

import (
	"strconv"
	"time"
)

// RecordArticleSummarized records the result of a summarization attempt.
func RecordArticleSummarized(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ArticlesSummarizedTotal.WithLabelValues(status).Inc()
}

// RecordSummarizationDuration records the time taken to summarize an article.
func RecordSummarizationDuration(duration time.Duration) {
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordFeedCrawl records metrics for one processed feed.
func RecordFeedCrawl(feedID int64, duration time.Duration, entriesFound, inserted, duplicated int64) {
	id := strconv.FormatInt(feedID, 10)
	FeedCrawlDuration.WithLabelValues(id).Observe(duration.Seconds())
	if entriesFound > 0 {
		FeedEntriesSeenTotal.WithLabelValues(id).Add(float64(entriesFound))
	}
	if inserted > 0 {
		ArticlesIngestedTotal.WithLabelValues(id).Add(float64(inserted))
	}
	if duplicated > 0 {
		ArticlesDuplicatedTotal.WithLabelValues(id).Add(float64(duplicated))
	}
}

// RecordFeedCrawlError records an error during feed processing.
func RecordFeedCrawlError(feedID int64, errorType string) {
	FeedCrawlErrors.WithLabelValues(strconv.FormatInt(feedID, 10), errorType).Inc()
}

// RecordIngestionCycle records aggregate metrics for one full cycle.
func RecordIngestionCycle(duration time.Duration, feedsProcessed int, newArticles int64) {
	IngestionCycleDuration.Observe(duration.Seconds())
	IngestionCycleArticles.Observe(float64(newArticles))
	IngestionCycleFeeds.Set(float64(feedsProcessed))
}

// UpdateArticlesTotal updates the article count gauge.
func UpdateArticlesTotal(count int) {
	ArticlesTotal.Set(float64(count))
}

// UpdateFeedsTotal updates the feed count gauge.
func UpdateFeedsTotal(count int) {
	FeedsTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

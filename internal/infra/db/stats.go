package db

import (
	"context"
	"database/sql"
	"log/slog"

	"ai-rss-hub/internal/observability/metrics"
)

// RecordStats refreshes the database-level gauges: stored article and feed
// totals plus connection pool usage. The worker calls it after each
// ingestion cycle. Count failures are logged and leave the gauges at their
// previous values.
func RecordStats(ctx context.Context, database *sql.DB) {
	stats := database.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)

	var articles int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&articles); err != nil {
		slog.Warn("failed to count articles", slog.Any("error", err))
		return
	}
	metrics.UpdateArticlesTotal(articles)

	var feeds int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM feeds`).Scan(&feeds); err != nil {
		slog.Warn("failed to count feeds", slog.Any("error", err))
		return
	}
	metrics.UpdateFeedsTotal(feeds)
}

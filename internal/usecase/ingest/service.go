// Package ingest orchestrates the feed ingestion cycle: fetching active
// feeds, deduplicating entries by link, persisting new articles, and
// generating bilingual summaries under bounded concurrency.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/infra/summarizer"
	"ai-rss-hub/internal/observability/metrics"
	"ai-rss-hub/internal/repository"
)

// DefaultMaxConcurrentSummaries bounds the summarization fan-out when no
// explicit limit is configured.
const DefaultMaxConcurrentSummaries = 2

// FeedItem is a normalized feed entry handed over by a FeedFetcher.
// PublishedAt is nil when no date field of the entry could be parsed.
type FeedItem struct {
	Title       string
	Link        string
	Content     string
	PublishedAt *time.Time
}

// FeedFetcher retrieves and normalizes the entries of one feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// ContentFetcher retrieves full article text for entries whose feed body
// is too thin. Optional; nil disables enhancement.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Summarizer produces bilingual summaries. See the summarizer package for
// the result taxonomy.
type Summarizer interface {
	Enabled() bool
	Summarize(ctx context.Context, title, content string) summarizer.Result
}

// Config controls ingestion behavior.
type Config struct {
	// MaxConcurrentSummaries bounds parallel summarization requests per feed.
	MaxConcurrentSummaries int

	// ContentFetchThreshold is the minimum feed content length (bytes) below
	// which the ContentFetcher is consulted. Zero keeps enhancement off
	// unless a fetcher is set with a positive threshold.
	ContentFetchThreshold int
}

// CycleStats summarizes one ingestion cycle.
type CycleStats struct {
	FeedsProcessed int
	NewArticles    int64
	Duration       time.Duration
}

// Service runs ingestion cycles over all active feeds.
type Service struct {
	FeedRepo       repository.FeedRepository
	ArticleRepo    repository.ArticleRepository
	Summarizer     Summarizer
	FeedFetcher    FeedFetcher
	ContentFetcher ContentFetcher
	config         Config
}

// NewService creates an ingestion Service. summ and contentFetcher may be
// nil: without a summarizer the cycle still persists articles, without a
// content fetcher entries keep their feed-provided body.
func NewService(
	feedRepo repository.FeedRepository,
	articleRepo repository.ArticleRepository,
	summ Summarizer,
	feedFetcher FeedFetcher,
	contentFetcher ContentFetcher,
	cfg Config,
) Service {
	if cfg.MaxConcurrentSummaries <= 0 {
		cfg.MaxConcurrentSummaries = DefaultMaxConcurrentSummaries
	}
	return Service{
		FeedRepo:       feedRepo,
		ArticleRepo:    articleRepo,
		Summarizer:     summ,
		FeedFetcher:    feedFetcher,
		ContentFetcher: contentFetcher,
		config:         cfg,
	}
}

// RunCycle processes every active feed sequentially and returns aggregate
// statistics. The only error it can return is a failure to list feeds;
// per-feed failures are logged, counted as zero, and never abort the cycle.
func (s *Service) RunCycle(ctx context.Context) (*CycleStats, error) {
	logger := slog.Default()
	start := time.Now()

	feeds, err := s.FeedRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active feeds: %w", err)
	}

	stats := &CycleStats{FeedsProcessed: len(feeds)}
	for _, feed := range feeds {
		stats.NewArticles += s.safeProcessFeed(ctx, feed)
	}
	stats.Duration = time.Since(start)

	metrics.RecordIngestionCycle(stats.Duration, stats.FeedsProcessed, stats.NewArticles)
	logger.Info("ingestion cycle completed",
		slog.Int("feeds_processed", stats.FeedsProcessed),
		slog.Int64("new_articles", stats.NewArticles),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

// safeProcessFeed contains panics from a single feed so one bad source
// cannot take down the cycle.
func (s *Service) safeProcessFeed(ctx context.Context, feed *entity.Feed) (newCount int64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("feed processing panicked",
				slog.Int64("feed_id", feed.ID),
				slog.String("feed_url", feed.URL),
				slog.Any("panic", r))
			metrics.RecordFeedCrawlError(feed.ID, "panic")
			newCount = 0
		}
	}()
	return s.processFeed(ctx, feed)
}

// pendingSummary is an article waiting for its summaries. The title rides
// along because the prompt includes it next to the content.
type pendingSummary struct {
	article *entity.Article
	title   string
	content string
}

// processFeed ingests one feed: fetch, dedup by link, persist, then fan out
// summarization for the new articles. Articles are stored before any
// summarization so a crash mid-cycle loses no content.
func (s *Service) processFeed(ctx context.Context, feed *entity.Feed) int64 {
	logger := slog.Default()
	feedStart := time.Now()

	items, err := s.FeedFetcher.Fetch(ctx, feed.URL)
	if err != nil {
		logger.Warn("failed to fetch feed",
			slog.Int64("feed_id", feed.ID),
			slog.String("feed_url", feed.URL),
			slog.Any("error", err))
		metrics.RecordFeedCrawlError(feed.ID, "fetch_failed")
		return 0
	}

	if len(items) == 0 {
		logger.Info("feed is empty",
			slog.Int64("feed_id", feed.ID),
			slog.String("feed_url", feed.URL))
		return 0
	}

	var (
		newCount   int64
		duplicated int64
		pending    []pendingSummary
	)

	for _, item := range items {
		exists, err := s.ArticleRepo.ExistsByLink(ctx, item.Link)
		if err != nil {
			logger.Warn("failed to check article existence",
				slog.Int64("feed_id", feed.ID),
				slog.String("link", item.Link),
				slog.Any("error", err))
			metrics.RecordFeedCrawlError(feed.ID, "dedup_check_failed")
			continue
		}
		if exists {
			duplicated++
			continue
		}

		content := s.enhanceContent(ctx, item)

		publishedAt := time.Now()
		if item.PublishedAt != nil {
			publishedAt = *item.PublishedAt
		}

		art := &entity.Article{
			FeedID:      feed.ID,
			Title:       item.Title,
			Link:        item.Link,
			Content:     content,
			PublishedAt: publishedAt,
			CreatedAt:   time.Now(),
		}
		if err := s.ArticleRepo.Create(ctx, art); err != nil {
			logger.Warn("failed to store article",
				slog.Int64("feed_id", feed.ID),
				slog.String("link", item.Link),
				slog.Any("error", err))
			metrics.RecordFeedCrawlError(feed.ID, "store_failed")
			continue
		}
		newCount++

		if s.summarizable(content) {
			pending = append(pending, pendingSummary{article: art, title: art.Title, content: content})
		}
	}

	s.summarizePending(ctx, feed, pending)

	feedDuration := time.Since(feedStart)
	metrics.RecordFeedCrawl(feed.ID, feedDuration, int64(len(items)), newCount, duplicated)
	logger.Info("feed processed",
		slog.Int64("feed_id", feed.ID),
		slog.Int("entries", len(items)),
		slog.Int64("new_articles", newCount),
		slog.Int64("duplicated", duplicated),
		slog.Duration("duration", feedDuration),
	)

	return newCount
}

// summarizable reports whether content is worth queueing for the AI backend.
func (s *Service) summarizable(content string) bool {
	if s.Summarizer == nil || !s.Summarizer.Enabled() {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(content)) >= summarizer.MinContentRunes
}

// summarizePending fans out summarization for one feed's new articles under
// a counting semaphore, joins all workers, then applies usable results by
// slice index. Unusable results leave the stored article untouched.
func (s *Service) summarizePending(ctx context.Context, feed *entity.Feed, pending []pendingSummary) {
	if len(pending) == 0 {
		return
	}

	logger := slog.Default()
	sem := make(chan struct{}, s.config.MaxConcurrentSummaries)
	eg, egCtx := errgroup.WithContext(ctx)
	results := make([]summarizer.Result, len(pending))

	for i, p := range pending {
		i, p := i, p
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			results[i] = s.Summarizer.Summarize(egCtx, p.title, p.content)
			metrics.RecordSummarizationDuration(time.Since(start))
			return nil
		})
	}

	// Workers only record into their own slot and never return errors.
	_ = eg.Wait()

	for i, p := range pending {
		res := results[i]
		if !res.Usable() {
			metrics.RecordArticleSummarized(false)
			logger.Warn("summary not usable, keeping article without summary",
				slog.Int64("feed_id", feed.ID),
				slog.String("link", p.article.Link),
				slog.String("kind", res.Kind.String()),
				slog.String("status", res.Sentinel()))
			continue
		}

		if err := s.ArticleRepo.UpdateSummaries(ctx, p.article.ID, res.Primary, res.Secondary); err != nil {
			logger.Warn("failed to store summaries",
				slog.Int64("article_id", p.article.ID),
				slog.String("link", p.article.Link),
				slog.Any("error", err))
			continue
		}
		metrics.RecordArticleSummarized(true)
	}
}

// enhanceContent swaps in full article text when the feed body is below the
// configured threshold. It never fails; any problem falls back to the feed
// content.
func (s *Service) enhanceContent(ctx context.Context, item FeedItem) string {
	if s.ContentFetcher == nil || s.config.ContentFetchThreshold <= 0 {
		return item.Content
	}

	if len(item.Content) >= s.config.ContentFetchThreshold {
		return item.Content
	}

	fullContent, err := s.ContentFetcher.FetchContent(ctx, item.Link)
	if err != nil {
		slog.Warn("content fetch failed, using feed content",
			slog.String("link", item.Link),
			slog.Any("error", err))
		return item.Content
	}

	if len(fullContent) > len(item.Content) {
		return fullContent
	}
	return item.Content
}

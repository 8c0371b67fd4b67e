// Package scraper fetches RSS/Atom feeds and normalizes their entries.
// It uses the gofeed library for parsing with reliability patterns around
// the network call.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"ai-rss-hub/internal/resilience/circuitbreaker"
	"ai-rss-hub/internal/resilience/retry"
	"ai-rss-hub/internal/usecase/ingest"
)

const userAgent = "AIRSSHubBot/1.0"

// RSSFetcher implements ingest.FeedFetcher using the gofeed library.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses a feed, returning normalized entries.
// Entries without a link are dropped here with a warning.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	var items []ingest.FeedItem

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}

		items = cbResult.([]ingest.FeedItem)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ingest.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		item, ok := NormalizeItem(it)
		if !ok {
			slog.Warn("skipping feed entry without link",
				slog.String("feed_url", feedURL),
				slog.String("title", it.Title))
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// Command resummarize backfills bilingual summaries for stored articles.
// By default it targets articles without a summary; -force re-summarizes
// articles that already have one.
//
// Usage:
//
//	resummarize [-limit n] [-concurrency n] [-force]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"ai-rss-hub/internal/domain/entity"
	pgRepo "ai-rss-hub/internal/infra/adapter/persistence/postgres"
	"ai-rss-hub/internal/infra/db"
	"ai-rss-hub/internal/infra/summarizer"
	"ai-rss-hub/internal/observability/logging"
)

func main() {
	limit := flag.Int("limit", 100, "maximum number of articles to process")
	concurrency := flag.Int("concurrency", 2, "parallel summarization requests")
	force := flag.Bool("force", false, "re-summarize articles that already have a summary")
	flag.Parse()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if *limit <= 0 || *concurrency <= 0 {
		logger.Error("limit and concurrency must be positive",
			slog.Int("limit", *limit),
			slog.Int("concurrency", *concurrency))
		os.Exit(1)
	}

	summ, err := summarizer.NewFromEnv()
	if err != nil {
		logger.Error("failed to configure summarizer", slog.Any("error", err))
		os.Exit(1)
	}
	if !summ.Enabled() {
		logger.Error("no AI backend configured, nothing to do")
		os.Exit(1)
	}

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	artRepo := pgRepo.NewArticleRepo(database)

	var articles []*entity.Article
	if *force {
		articles, err = artRepo.ListAll(ctx, *limit)
	} else {
		articles, err = artRepo.ListMissingSummary(ctx, *limit)
	}
	if err != nil {
		logger.Error("failed to list articles", slog.Any("error", err))
		os.Exit(1)
	}

	if len(articles) == 0 {
		logger.Info("no articles to summarize")
		return
	}
	logger.Info("resummarization started",
		slog.Int("articles", len(articles)),
		slog.Int("concurrency", *concurrency),
		slog.Bool("force", *force))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		updated   int
		unusable  int
		storeErrs int
	)
	sem := make(chan struct{}, *concurrency)

	for _, art := range articles {
		if ctx.Err() != nil {
			break
		}
		art := art
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			res := summ.Summarize(ctx, art.Title, art.Content)
			if !res.Usable() {
				mu.Lock()
				unusable++
				mu.Unlock()
				logger.Warn("summary not usable",
					slog.Int64("article_id", art.ID),
					slog.String("kind", res.Kind.String()),
					slog.String("status", res.Sentinel()))
				return
			}

			if err := artRepo.UpdateSummaries(ctx, art.ID, res.Primary, res.Secondary); err != nil {
				mu.Lock()
				storeErrs++
				mu.Unlock()
				logger.Error("failed to store summaries",
					slog.Int64("article_id", art.ID),
					slog.Any("error", err))
				return
			}

			mu.Lock()
			updated++
			mu.Unlock()
		}()
	}
	wg.Wait()

	logger.Info("resummarization completed",
		slog.Int("updated", updated),
		slog.Int("unusable", unusable),
		slog.Int("store_errors", storeErrs))
	if storeErrs > 0 {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"ai-rss-hub/internal/config"
	"ai-rss-hub/internal/handler/http/respond"
	pgRepo "ai-rss-hub/internal/infra/adapter/persistence/postgres"
	"ai-rss-hub/internal/infra/db"
	"ai-rss-hub/internal/infra/fetcher"
	"ai-rss-hub/internal/infra/scraper"
	"ai-rss-hub/internal/infra/summarizer"
	workerPkg "ai-rss-hub/internal/infra/worker"
	"ai-rss-hub/internal/observability/logging"
	"ai-rss-hub/internal/repository"
	"ai-rss-hub/internal/usecase/ingest"
	pkgconfig "ai-rss-hub/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Seed feeds from FEEDS_FILE before the first cycle so a fresh deploy
	// has something to ingest.
	feedRepo := pgRepo.NewFeedRepo(database)
	if err := config.SeedFromEnv(ctx, feedRepo, logger); err != nil {
		logger.Error("feed seeding failed", slog.Any("error", err))
		os.Exit(1)
	}

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("cycle_timeout", workerConfig.CycleTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	svc := setupIngestService(logger, database, feedRepo)

	startCronWorker(ctx, logger, svc, database, workerConfig, workerMetrics, healthServer)
}

// initDatabase opens the database connection and applies migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupIngestService wires the ingestion pipeline: repositories, the feed
// fetcher, the optional content fetcher, and the summarizer.
func setupIngestService(logger *slog.Logger, database *sql.DB, feedRepo repository.FeedRepository) *ingest.Service {
	artRepo := pgRepo.NewArticleRepo(database)

	summ, err := summarizer.NewFromEnv()
	if err != nil {
		logger.Error("failed to configure summarizer", slog.Any("error", err))
		os.Exit(1)
	}

	feedFetcher := scraper.NewRSSFetcher(newFeedHTTPClient())

	contentFetchConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load content fetch configuration", slog.Any("error", err))
		logger.Warn("content fetching disabled due to configuration error")
		contentFetchConfig = fetcher.DefaultConfig()
		contentFetchConfig.Enabled = false
	}

	var contentFetcher ingest.ContentFetcher
	threshold := 0
	if contentFetchConfig.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentFetchConfig)
		threshold = contentFetchConfig.Threshold
		logger.Info("content fetching enabled",
			slog.Int("threshold", contentFetchConfig.Threshold),
			slog.Duration("timeout", contentFetchConfig.Timeout))
	} else {
		logger.Info("content fetching disabled")
	}

	svc := ingest.NewService(feedRepo, artRepo, summ, feedFetcher, contentFetcher, ingest.Config{
		MaxConcurrentSummaries: pkgconfig.GetEnvInt("MAX_CONCURRENT_SUMMARIES", ingest.DefaultMaxConcurrentSummaries),
		ContentFetchThreshold:  threshold,
	})
	return &svc
}

// newFeedHTTPClient builds the HTTP client shared by feed fetches.
// TLS 1.2+ is enforced.
func newFeedHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// startCronWorker runs the ingestion job on the configured schedule and
// blocks until ctx is cancelled.
func startCronWorker(ctx context.Context, logger *slog.Logger, svc *ingest.Service, database *sql.DB, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runIngestJob(logger, svc, database, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping cron")
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.CycleTimeout):
		logger.Warn("cron jobs did not finish before shutdown timeout")
	}
}

// runIngestJob executes a single ingestion cycle with timeout and metrics.
// The database gauges are refreshed after every cycle, failed ones included,
// so the totals reflect whatever the cycle managed to store.
func runIngestJob(logger *slog.Logger, svc *ingest.Service, database *sql.DB, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("ingestion cycle started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.CycleTimeout)
	defer cancel()
	defer db.RecordStats(ctx, database)

	stats, err := svc.RunCycle(ctx)
	if err != nil {
		logger.Error("ingestion cycle failed", slog.Any("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordFeedsProcessed(stats.FeedsProcessed)
	metrics.RecordArticlesIngested(stats.NewArticles)
	metrics.RecordLastSuccess()

	logger.Info("ingestion cycle completed",
		slog.Int("feeds_processed", stats.FeedsProcessed),
		slog.Int64("new_articles", stats.NewArticles),
		slog.Duration("duration", stats.Duration),
	)
}

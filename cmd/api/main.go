package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"ai-rss-hub/internal/config"
	hhttp "ai-rss-hub/internal/handler/http"
	harticle "ai-rss-hub/internal/handler/http/article"
	hfeed "ai-rss-hub/internal/handler/http/feed"
	"ai-rss-hub/internal/handler/http/requestid"
	hrss "ai-rss-hub/internal/handler/http/rss"
	pgRepo "ai-rss-hub/internal/infra/adapter/persistence/postgres"
	"ai-rss-hub/internal/infra/db"
	"ai-rss-hub/internal/infra/fetcher"
	"ai-rss-hub/internal/infra/scraper"
	"ai-rss-hub/internal/infra/summarizer"
	"ai-rss-hub/internal/observability/logging"
	"ai-rss-hub/internal/repository"
	artUC "ai-rss-hub/internal/usecase/article"
	feedUC "ai-rss-hub/internal/usecase/feed"
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

	securityCfg, err := config.LoadSecurityConfig()
	if err != nil {
		logger.Error("failed to load security configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if securityCfg.APIToken == "" {
		logger.Warn("API_TOKEN is not set, write endpoints will reject all requests")
	}

	feedRepo := pgRepo.NewFeedRepo(database)
	if err := config.SeedFromEnv(context.Background(), feedRepo, logger); err != nil {
		logger.Error("feed seeding failed", slog.Any("error", err))
		os.Exit(1)
	}

	handler := setupServer(logger, database, securityCfg, getVersion())
	runServer(logger, handler, getVersion())
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires services, routes, and the middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB, securityCfg *config.SecurityConfig, version string) http.Handler {
	feedRepo := pgRepo.NewFeedRepo(database)
	artRepo := pgRepo.NewArticleRepo(database)

	feedSvc := &feedUC.Service{Repo: feedRepo}
	artSvc := &artUC.Service{Repo: artRepo}
	ingestSvc := setupIngestService(logger, feedRepo, artRepo)

	cycleTimeout := pkgconfig.GetEnvDuration("CYCLE_TIMEOUT", 30*time.Minute)

	auth := hhttp.TokenAuth{Token: securityCfg.APIToken}

	mux := http.NewServeMux()

	// Health and metrics, no auth.
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /api/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hfeed.Register(mux, feedSvc, ingestSvc, cycleTimeout, auth.Protect, logger)
	harticle.Register(mux, artSvc)
	hrss.Register(mux, hrss.Handler{
		Svc:       artSvc,
		Generator: hrss.NewGeneratorFromEnv(),
	})

	return applyMiddleware(logger, mux, securityCfg)
}

// setupIngestService builds the ingestion pipeline backing the manual fetch
// endpoint. It shares environment configuration with the worker process.
func setupIngestService(logger *slog.Logger, feedRepo repository.FeedRepository, artRepo repository.ArticleRepository) *ingest.Service {
	summ, err := summarizer.NewFromEnv()
	if err != nil {
		logger.Error("failed to configure summarizer", slog.Any("error", err))
		os.Exit(1)
	}

	feedFetcher := scraper.NewRSSFetcher(&http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	})

	contentFetchConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Warn("invalid content fetch configuration, content fetching disabled", slog.Any("error", err))
		contentFetchConfig = fetcher.DefaultConfig()
		contentFetchConfig.Enabled = false
	}

	var contentFetcher ingest.ContentFetcher
	threshold := 0
	if contentFetchConfig.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentFetchConfig)
		threshold = contentFetchConfig.Threshold
	}

	svc := ingest.NewService(feedRepo, artRepo, summ, feedFetcher, contentFetcher, ingest.Config{
		MaxConcurrentSummaries: pkgconfig.GetEnvInt("MAX_CONCURRENT_SUMMARIES", ingest.DefaultMaxConcurrentSummaries),
		ContentFetchThreshold:  threshold,
	})
	return &svc
}

// applyMiddleware wraps the mux with the middleware chain, outermost first:
// request ID, logging, recovery, security headers, rate limiting, input
// validation, body limit, timeout, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, securityCfg *config.SecurityConfig) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(securityCfg.RateLimitRequests, securityCfg.RateLimitWindow)
	logger.Info("rate limiting initialized",
		slog.Int("requests", securityCfg.RateLimitRequests),
		slog.Duration("window", securityCfg.RateLimitWindow))

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second))(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = rateLimiter.Limit(chain)
	chain = hhttp.SecurityHeaders()(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris protection
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

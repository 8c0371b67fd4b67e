package feed

import (
	"log/slog"
	"net/http"
	"time"

	feedUC "ai-rss-hub/internal/usecase/feed"
)

// Register registers all feed-related HTTP handlers with the given mux.
// Mutating routes (create, manual fetch) are wrapped with the authz
// middleware supplied by the caller.
func Register(
	mux *http.ServeMux,
	svc *feedUC.Service,
	runner CycleRunner,
	cycleTimeout time.Duration,
	authz func(http.Handler) http.Handler,
	logger *slog.Logger,
) {
	mux.Handle("GET /api/feeds", ListHandler{Svc: svc})
	mux.Handle("POST /api/feeds", authz(CreateHandler{Svc: svc}))
	mux.Handle("POST /api/feeds/fetch", authz(FetchHandler{
		Runner:  runner,
		Timeout: cycleTimeout,
		Logger:  logger,
	}))
}

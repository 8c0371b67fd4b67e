package feed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ai-rss-hub/internal/handler/http/respond"
	"ai-rss-hub/internal/usecase/ingest"
)

// CycleRunner triggers one ingestion cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*ingest.CycleStats, error)
}

// FetchHandler handles POST /api/feeds/fetch requests.
// It runs one ingestion cycle synchronously and returns its statistics.
type FetchHandler struct {
	Runner  CycleRunner
	Timeout time.Duration
	Logger  *slog.Logger
}

type fetchResponse struct {
	FeedsProcessed  int     `json:"feeds_processed"`
	NewArticles     int64   `json:"new_articles"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (h FetchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	stats, err := h.Runner.RunCycle(ctx)
	if err != nil {
		h.Logger.Error("manual fetch failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, fetchResponse{
		FeedsProcessed:  stats.FeedsProcessed,
		NewArticles:     stats.NewArticles,
		DurationSeconds: stats.Duration.Seconds(),
	})
}

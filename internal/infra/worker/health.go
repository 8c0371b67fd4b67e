package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthServer exposes liveness and readiness probes for the worker
// process, which has no request-serving HTTP surface of its own.
//
//	GET /health        liveness, always 200 while the process responds
//	GET /health/ready  readiness, 200 once the cron scheduler is running
type HealthServer struct {
	addr   string
	logger *slog.Logger
	ready  atomic.Bool
	server *http.Server
}

type probeResponse struct {
	Status string `json:"status"`
}

// NewHealthServer builds a server for addr. It starts not-ready; the
// caller flips readiness with SetReady once startup finishes.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	return &HealthServer{addr: addr, logger: logger}
}

// Start serves probes until ctx is cancelled, then shuts down with a
// 5 second grace period. It blocks; run it in a goroutine. A graceful
// shutdown returns http.ErrServerClosed.
func (h *HealthServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleLiveness)
	mux.HandleFunc("/health/ready", h.handleReadiness)

	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		if err := h.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return http.ErrServerClosed

	case err := <-errChan:
		if err != http.ErrServerClosed {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady flips the readiness probe. The worker calls it with true after
// the scheduler starts and could call it with false ahead of shutdown.
func (h *HealthServer) SetReady(ready bool) {
	h.ready.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, r *http.Request) {
	h.writeProbe(w, http.StatusOK, "ok")
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if h.ready.Load() {
		h.writeProbe(w, http.StatusOK, "ok")
		return
	}
	h.writeProbe(w, http.StatusServiceUnavailable, "not ready")
}

func (h *HealthServer) writeProbe(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(probeResponse{Status: status}); err != nil {
		h.logger.Error("failed to encode probe response", slog.Any("error", err))
	}
}

// Package observability provides structured logging and Prometheus metrics
// for the feed ingestion service.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
package observability

package http

import (
	"fmt"
	"net/http"

	"ai-rss-hub/internal/handler/http/respond"
)

const (
	maxAuthHeaderBytes = 8192
	maxPathBytes       = 2048
)

// InputValidation returns middleware that rejects oversized request
// surfaces before any handler runs: Authorization headers above 8KB and
// URI paths above 2KB. Body size is bounded separately by
// LimitRequestBody.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderBytes {
				respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("authorization header too large"))
				return
			}

			if len(r.URL.Path) > maxPathBytes {
				respond.SafeError(w, http.StatusRequestURITooLong, fmt.Errorf("request URI too long"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package article

import (
	"net/http"

	artUC "ai-rss-hub/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *artUC.Service) {
	mux.Handle("GET /api/articles", ListHandler{Svc: svc})
}

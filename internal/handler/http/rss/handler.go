package rss

import (
	"net/http"
	"os"

	"ai-rss-hub/internal/handler/http/respond"
	artUC "ai-rss-hub/internal/usecase/article"
)

// NewGeneratorFromEnv builds a Generator from RSS_TITLE, RSS_LINK, and
// RSS_DESCRIPTION, with defaults suitable for a self-hosted deployment.
func NewGeneratorFromEnv() Generator {
	g := Generator{
		Title:       os.Getenv("RSS_TITLE"),
		Link:        os.Getenv("RSS_LINK"),
		Description: os.Getenv("RSS_DESCRIPTION"),
	}
	if g.Title == "" {
		g.Title = "AI RSS Hub"
	}
	if g.Link == "" {
		g.Link = "http://localhost:8080/rss"
	}
	return g
}

// defaultItemCount is the number of articles included in a generated feed.
const defaultItemCount = 50

// Handler serves regenerated RSS feeds from stored articles.
type Handler struct {
	Svc       *artUC.Service
	Generator Generator
}

// serve renders one feed with the given mode and optional category filter.
func (h Handler) serve(w http.ResponseWriter, r *http.Request, mode SummaryMode, category string) {
	articles, err := h.Svc.List(r.Context(), artUC.ListInput{
		Limit:    defaultItemCount,
		Category: category,
	})
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.Generator.Generate(articles, mode)))
}

// Register registers the RSS endpoints with the given mux.
func Register(mux *http.ServeMux, h Handler) {
	mux.HandleFunc("GET /rss", func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, ModeBilingual, "")
	})
	mux.HandleFunc("GET /rss/zh", func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, ModeChinese, "")
	})
	mux.HandleFunc("GET /rss/en", func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, ModeEnglish, "")
	})
	mux.HandleFunc("GET /rss/bilingual", func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, ModeBilingual, "")
	})
	mux.HandleFunc("GET /rss/category/{category}", func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, ModeBilingual, r.PathValue("category"))
	})
}

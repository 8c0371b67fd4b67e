package feed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/usecase/feed"
	"ai-rss-hub/internal/usecase/ingest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/* ──────────────────────────────── stubs ──────────────────────────────── */

type stubFeedRepo struct {
	byURL   map[string]*entity.Feed
	feeds   []*entity.Feed
	created []*entity.Feed
}

func (r *stubFeedRepo) Get(context.Context, int64) (*entity.Feed, error) { return nil, nil }
func (r *stubFeedRepo) GetByURL(_ context.Context, url string) (*entity.Feed, error) {
	return r.byURL[url], nil
}
func (r *stubFeedRepo) List(context.Context) ([]*entity.Feed, error) { return r.feeds, nil }
func (r *stubFeedRepo) ListActive(context.Context) ([]*entity.Feed, error) {
	active := make([]*entity.Feed, 0, len(r.feeds))
	for _, f := range r.feeds {
		if f.Active {
			active = append(active, f)
		}
	}
	return active, nil
}
func (r *stubFeedRepo) Create(_ context.Context, f *entity.Feed) error {
	f.ID = int64(len(r.created) + 1)
	r.created = append(r.created, f)
	return nil
}
func (r *stubFeedRepo) Update(context.Context, *entity.Feed) error { return nil }
func (r *stubFeedRepo) Delete(context.Context, int64) error        { return nil }

type stubRunner struct {
	stats *ingest.CycleStats
	err   error
}

func (r *stubRunner) RunCycle(context.Context) (*ingest.CycleStats, error) {
	return r.stats, r.err
}

/* ──────────────────────────────── Create ──────────────────────────────── */

func TestCreateHandler(t *testing.T) {
	repo := &stubFeedRepo{byURL: map[string]*entity.Feed{}}
	h := CreateHandler{Svc: &feed.Service{Repo: repo}}

	body := `{"name":"Hacker News","url":"https://news.ycombinator.com/rss","category":"tech"}`
	req := httptest.NewRequest(http.MethodPost, "/api/feeds", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var dto DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.ID == 0 || dto.Name != "Hacker News" || !dto.Active {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestCreateHandler_DuplicateURL(t *testing.T) {
	repo := &stubFeedRepo{byURL: map[string]*entity.Feed{
		"https://news.ycombinator.com/rss": {ID: 1},
	}}
	h := CreateHandler{Svc: &feed.Service{Repo: repo}}

	body := `{"name":"dup","url":"https://news.ycombinator.com/rss"}`
	req := httptest.NewRequest(http.MethodPost, "/api/feeds", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCreateHandler_InvalidBody(t *testing.T) {
	h := CreateHandler{Svc: &feed.Service{Repo: &stubFeedRepo{byURL: map[string]*entity.Feed{}}}}

	req := httptest.NewRequest(http.MethodPost, "/api/feeds", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

/* ──────────────────────────────── List ──────────────────────────────── */

func TestListHandler_ActiveOnly(t *testing.T) {
	repo := &stubFeedRepo{feeds: []*entity.Feed{
		{ID: 1, Name: "a", Active: true},
		{ID: 2, Name: "b", Active: false},
	}}
	h := ListHandler{Svc: &feed.Service{Repo: repo}}

	req := httptest.NewRequest(http.MethodGet, "/api/feeds?active_only=true", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var dtos []DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dtos); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(dtos) != 1 || dtos[0].ID != 1 {
		t.Fatalf("unexpected dtos: %+v", dtos)
	}
}

/* ──────────────────────────────── Fetch ──────────────────────────────── */

func TestFetchHandler(t *testing.T) {
	h := FetchHandler{
		Runner: &stubRunner{stats: &ingest.CycleStats{
			FeedsProcessed: 3,
			NewArticles:    7,
		}},
		Logger: discardLogger(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/feeds/fetch", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp fetchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FeedsProcessed != 3 || resp.NewArticles != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

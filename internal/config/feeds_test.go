package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-rss-hub/internal/domain/entity"
)

func writeFeedsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/* ──────────────────────────────── loading ──────────────────────────────── */

func TestLoadFeedsFile(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - name: Hacker News
    url: https://news.ycombinator.com/rss
    category: tech
  - name: 阮一峰的网络日志
    url: https://www.ruanyifeng.com/blog/atom.xml
`)

	seeds, err := LoadFeedsFile(path)
	require.NoError(t, err)
	require.Len(t, seeds, 2)

	assert.Equal(t, "Hacker News", seeds[0].Name)
	assert.Equal(t, "tech", seeds[0].Category)
	assert.Equal(t, "阮一峰的网络日志", seeds[1].Name)
	assert.Empty(t, seeds[1].Category)
}

func TestLoadFeedsFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing name", content: "feeds:\n  - url: https://example.com/rss\n"},
		{name: "missing url", content: "feeds:\n  - name: no-url\n"},
		{name: "not yaml", content: "{not yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFeedsFile(writeFeedsFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFeedsFile_NotFound(t *testing.T) {
	_, err := LoadFeedsFile("/nonexistent/feeds.yaml")
	assert.Error(t, err)
}

/* ──────────────────────────────── seeding ──────────────────────────────── */

type seedStubRepo struct {
	byURL   map[string]*entity.Feed
	created []*entity.Feed
}

func (r *seedStubRepo) Get(context.Context, int64) (*entity.Feed, error) { return nil, nil }
func (r *seedStubRepo) GetByURL(_ context.Context, url string) (*entity.Feed, error) {
	return r.byURL[url], nil
}
func (r *seedStubRepo) List(context.Context) ([]*entity.Feed, error)       { return nil, nil }
func (r *seedStubRepo) ListActive(context.Context) ([]*entity.Feed, error) { return nil, nil }
func (r *seedStubRepo) Create(_ context.Context, f *entity.Feed) error {
	f.ID = int64(len(r.created) + 1)
	r.created = append(r.created, f)
	return nil
}
func (r *seedStubRepo) Update(context.Context, *entity.Feed) error { return nil }
func (r *seedStubRepo) Delete(context.Context, int64) error        { return nil }

func TestSeedFeeds(t *testing.T) {
	repo := &seedStubRepo{byURL: map[string]*entity.Feed{
		"https://existing.example.com/rss": {ID: 42},
	}}

	seeds := []SeedFeed{
		{Name: "Existing", URL: "https://existing.example.com/rss"},
		{Name: "New Feed", URL: "https://new.example.com/rss", Category: "ai"},
		{Name: "No Category", URL: "https://nocat.example.com/rss"},
	}

	created, err := SeedFeeds(context.Background(), repo, seeds, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, created)
	require.Len(t, repo.created, 2)
	assert.Equal(t, "ai", repo.created[0].Category)
	assert.True(t, repo.created[0].Active)
	assert.Equal(t, entity.DefaultCategory, repo.created[1].Category)
}

func TestSeedFromEnv_Unset(t *testing.T) {
	t.Setenv("FEEDS_FILE", "")

	repo := &seedStubRepo{byURL: map[string]*entity.Feed{}}
	err := SeedFromEnv(context.Background(), repo, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestSeedFromEnv(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - name: Hacker News
    url: https://news.ycombinator.com/rss
`)
	t.Setenv("FEEDS_FILE", path)

	repo := &seedStubRepo{byURL: map[string]*entity.Feed{}}
	err := SeedFromEnv(context.Background(), repo, discardLogger())
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Hacker News", repo.created[0].Name)
}

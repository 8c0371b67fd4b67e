package scraper

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeItem(t *testing.T) {
	t.Run("entry without link is dropped", func(t *testing.T) {
		_, ok := NormalizeItem(&gofeed.Item{Title: "no link here"})
		assert.False(t, ok)
	})

	t.Run("blank link is dropped", func(t *testing.T) {
		_, ok := NormalizeItem(&gofeed.Item{Title: "t", Link: "   "})
		assert.False(t, ok)
	})

	t.Run("missing title gets fallback", func(t *testing.T) {
		item, ok := NormalizeItem(&gofeed.Item{Link: "https://example.com/a"})
		assert.True(t, ok)
		assert.Equal(t, untitledFallback, item.Title)
	})

	t.Run("link is trimmed", func(t *testing.T) {
		item, ok := NormalizeItem(&gofeed.Item{Title: "t", Link: " https://example.com/a \n"})
		assert.True(t, ok)
		assert.Equal(t, "https://example.com/a", item.Link)
	})
}

func TestExtractContent(t *testing.T) {
	t.Run("content preferred over description", func(t *testing.T) {
		got := extractContent(&gofeed.Item{Content: "full body", Description: "teaser"})
		assert.Equal(t, "full body", got)
	})

	t.Run("description used when content empty", func(t *testing.T) {
		got := extractContent(&gofeed.Item{Description: "teaser only"})
		assert.Equal(t, "teaser only", got)
	})

	t.Run("html stripped to text", func(t *testing.T) {
		got := extractContent(&gofeed.Item{
			Content: "<p>First   paragraph.</p><script>evil()</script><p>Second one.</p>",
		})
		assert.Equal(t, "First paragraph. Second one.", got)
	})

	t.Run("empty when no body fields", func(t *testing.T) {
		assert.Empty(t, extractContent(&gofeed.Item{}))
	})
}

func TestExtractPublished(t *testing.T) {
	parsed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("published parsed wins", func(t *testing.T) {
		got := extractPublished(&gofeed.Item{
			PublishedParsed: &parsed,
			UpdatedParsed:   &updated,
		})
		assert.Equal(t, &parsed, got)
	})

	t.Run("updated parsed is second choice", func(t *testing.T) {
		got := extractPublished(&gofeed.Item{UpdatedParsed: &updated})
		assert.Equal(t, &updated, got)
	})

	t.Run("rfc822 published string", func(t *testing.T) {
		got := extractPublished(&gofeed.Item{Published: "Mon, 02 Mar 2026 15:04:05 +0000"})
		assert.NotNil(t, got)
		assert.Equal(t, 2026, got.Year())
		assert.Equal(t, time.March, got.Month())
	})

	t.Run("iso updated string via dateparse", func(t *testing.T) {
		got := extractPublished(&gofeed.Item{Updated: "2026-03-02T15:04:05Z"})
		assert.NotNil(t, got)
		assert.Equal(t, 2, got.Day())
	})

	t.Run("nil when nothing parses", func(t *testing.T) {
		got := extractPublished(&gofeed.Item{Published: "not a date"})
		assert.Nil(t, got)
	})
}

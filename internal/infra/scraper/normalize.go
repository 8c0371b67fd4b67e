package scraper

import (
	"net/mail"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"ai-rss-hub/internal/usecase/ingest"
)

// untitledFallback is stored when a feed entry carries no title.
const untitledFallback = "无标题"

// NormalizeItem converts a raw gofeed entry into a FeedItem.
// Returns false when the entry has no link and cannot be deduplicated.
func NormalizeItem(it *gofeed.Item) (ingest.FeedItem, bool) {
	link := strings.TrimSpace(it.Link)
	if link == "" {
		return ingest.FeedItem{}, false
	}

	title := strings.TrimSpace(it.Title)
	if title == "" {
		title = untitledFallback
	}

	return ingest.FeedItem{
		Title:       title,
		Link:        link,
		Content:     extractContent(it),
		PublishedAt: extractPublished(it),
	}, true
}

// extractContent picks the first non-empty body field and strips any HTML
// so downstream summarization works on plain text.
func extractContent(it *gofeed.Item) string {
	raw := it.Content
	if raw == "" {
		raw = it.Description
	}
	if raw == "" {
		return ""
	}
	return stripHTML(raw)
}

// stripHTML reduces an HTML fragment to its visible text with collapsed
// whitespace. Unparseable input is returned trimmed as-is.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// dateExtractor attempts to derive a publication time from one entry field.
type dateExtractor func(*gofeed.Item) *time.Time

// dateExtractors is evaluated in order: the structured timestamps gofeed
// already parsed, then the raw strings through increasingly tolerant parsers.
var dateExtractors = []dateExtractor{
	func(it *gofeed.Item) *time.Time { return it.PublishedParsed },
	func(it *gofeed.Item) *time.Time { return it.UpdatedParsed },
	func(it *gofeed.Item) *time.Time { return parseDateString(it.Published) },
	func(it *gofeed.Item) *time.Time { return parseDateString(it.Updated) },
}

// extractPublished returns the entry's publication time or nil when no
// field yields one. The caller decides what to substitute.
func extractPublished(it *gofeed.Item) *time.Time {
	for _, extract := range dateExtractors {
		if t := extract(it); t != nil {
			return t
		}
	}
	return nil
}

// parseDateString parses a date string with the RFC 5322 parser first,
// falling back to dateparse for the long tail of feed date formats.
func parseDateString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := mail.ParseDate(s); err == nil {
		return &t
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return &t
	}
	return nil
}

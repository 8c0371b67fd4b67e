// Package rss renders stored articles back out as RSS 2.0 documents.
package rss

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"ai-rss-hub/internal/repository"
)

// SummaryMode selects which summary language the generated feed carries.
type SummaryMode string

const (
	ModeChinese   SummaryMode = "zh"
	ModeEnglish   SummaryMode = "en"
	ModeBilingual SummaryMode = "bilingual"
)

// descriptionExcerptRunes caps the content excerpt used when an article
// has no summary yet.
const descriptionExcerptRunes = 200

// Generator builds RSS 2.0 XML documents from stored articles.
type Generator struct {
	// Title and Link describe the channel itself.
	Title string
	Link  string
	// Description is the channel description; a default is used when empty.
	Description string
}

// Generate renders the given articles as an RSS 2.0 document.
func (g Generator) Generate(articles []repository.ArticleWithFeed, mode SummaryMode) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", g.Title, 4)
	writeElement(&buf, "link", g.Link, 4)
	desc := g.Description
	if desc == "" {
		desc = "Aggregated articles with AI generated summaries"
	}
	writeElement(&buf, "description", desc, 4)
	writeElement(&buf, "lastBuildDate", time.Now().UTC().Format(time.RFC1123Z), 4)
	writeElement(&buf, "generator", "ai-rss-hub", 4)

	for _, a := range articles {
		writeItem(&buf, a, mode)
	}

	buf.WriteString("  </channel>\n</rss>")
	return buf.String()
}

func writeItem(buf *bytes.Buffer, a repository.ArticleWithFeed, mode SummaryMode) {
	buf.WriteString("    <item>\n")

	writeElement(buf, "title", a.Article.Title, 6)
	writeElement(buf, "link", a.Article.Link, 6)

	if a.Article.Link != "" {
		buf.WriteString(`      <guid isPermaLink="true">`)
		xml.EscapeText(buf, []byte(a.Article.Link))
		buf.WriteString("</guid>\n")
	}

	writeElement(buf, "description", itemDescription(a, mode), 6)
	writeElement(buf, "category", a.Category, 6)
	if !a.Article.PublishedAt.IsZero() {
		writeElement(buf, "pubDate", a.Article.PublishedAt.UTC().Format(time.RFC1123Z), 6)
	}
	writeElement(buf, "source", a.FeedName, 6)

	buf.WriteString("    </item>\n")
}

// itemDescription picks the description text for one item based on the
// requested summary language, falling back to a content excerpt when no
// summary has been generated yet.
func itemDescription(a repository.ArticleWithFeed, mode SummaryMode) string {
	zh := a.Article.Summary
	en := a.Article.SummaryEN

	var desc string
	switch mode {
	case ModeEnglish:
		desc = en
		if desc == "" {
			desc = zh
		}
	case ModeBilingual:
		switch {
		case zh != "" && en != "":
			desc = fmt.Sprintf("中文：%s\nEnglish: %s", zh, en)
		case zh != "":
			desc = zh
		default:
			desc = en
		}
	default: // ModeChinese
		desc = zh
	}

	if desc == "" {
		desc = excerpt(a.Article.Content, descriptionExcerptRunes)
	}
	return desc
}

func excerpt(content string, maxRunes int) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= maxRunes {
		return content
	}
	return string(runes[:maxRunes]) + "..."
}

// writeElement writes an XML element with proper escaping. Empty content
// is skipped entirely.
func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

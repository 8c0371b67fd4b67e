package summarizer

import (
	"context"
	"strings"
)

// NoOp returns the leading content as both summaries without calling any API.
// Used in development environments and tests.
type NoOp struct {
	MaxLength int
}

// Enabled implements Summarizer.
func (NoOp) Enabled() bool { return true }

// Summarize implements Summarizer.
func (n NoOp) Summarize(_ context.Context, _, content string) Result {
	max := n.MaxLength
	if max <= 0 {
		max = 100
	}
	trimmed := strings.TrimSpace(content)
	if len([]rune(trimmed)) < MinContentRunes {
		return tooShortResult()
	}
	s := TruncateSummary(trimmed, max)
	return okResult(s, s)
}

package fetcher

import "errors"

// Sentinel errors for content fetching. Callers treat all of them as
// non-fatal; the ingestion pipeline falls back to the feed-provided body.
var (
	ErrInvalidURL       = errors.New("invalid URL")
	ErrPrivateIP        = errors.New("URL resolves to private IP")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrBodyTooLarge     = errors.New("response body too large")
	ErrTimeout          = errors.New("content fetch timeout")
	ErrExtractionFailed = errors.New("content extraction failed")
)

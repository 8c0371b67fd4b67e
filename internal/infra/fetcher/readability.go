package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"

	"ai-rss-hub/internal/resilience/circuitbreaker"
)

// ReadabilityFetcher extracts clean article text from HTML pages using
// go-shiori/go-readability. It validates URLs against SSRF, limits response
// size and redirects, and wraps requests in a circuit breaker.
//
// Safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ContentFetchConfig
}

// NewReadabilityFetcher creates a ReadabilityFetcher with the given
// configuration. Redirect targets are re-validated on every hop.
func NewReadabilityFetcher(config ContentFetchConfig) *ReadabilityFetcher {
	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             "content-fetch",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	})

	f := &ReadabilityFetcher{
		circuitBreaker: cb,
		config:         config,
	}

	f.client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return f
}

// FetchContent fetches the page at urlStr and returns the extracted article
// text. It implements ingest.ContentFetcher.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// doFetch performs the HTTP request and Readability extraction without the
// circuit breaker.
func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", "AIRSSHubBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		// Surface redirect validation errors without the url.Error wrapper.
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// Read one byte past the limit to detect oversized responses without
	// trusting Content-Length.
	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			ErrBodyTooLarge, len(htmlBytes), f.config.MaxBodySize)
	}

	// Prefer the final URL after redirects for relative link resolution.
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		parsedURL = nil
	}
	if resp.Request != nil && resp.Request.URL != nil {
		parsedURL = resp.Request.URL
	}

	article, err := readability.FromReader(io.NopCloser(bytes.NewReader(htmlBytes)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	if article.TextContent == "" {
		if article.Content == "" {
			return "", fmt.Errorf("%w: no readable content found", ErrExtractionFailed)
		}
		slog.Debug("using article Content instead of TextContent",
			slog.String("url", urlStr),
			slog.Int("content_length", len(article.Content)))
		return article.Content, nil
	}

	return article.TextContent, nil
}

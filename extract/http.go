package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AmazeeLabs/chat-ai/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "chat-ai-indexer/1.0"

	// maxBodySize caps how much of a response we are willing to read.
	maxBodySize = 8 << 20
)

// HTTPExtractor fetches a page over HTTP and reduces it to plain text.
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
}

// HTTPOption configures an HTTPExtractor.
type HTTPOption func(*HTTPExtractor)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(e *HTTPExtractor) {
		e.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with fetch requests.
func WithUserAgent(ua string) HTTPOption {
	return func(e *HTTPExtractor) {
		e.userAgent = ua
	}
}

// NewHTTPExtractor creates an extractor with a sane default timeout.
func NewHTTPExtractor(opts ...HTTPOption) *HTTPExtractor {
	e := &HTTPExtractor{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *HTTPExtractor) Extract(ctx context.Context, source string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request for %s: %v", core.ErrExtraction, source, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %v", core.ErrExtraction, source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: fetch %s: unexpected status %d", core.ErrExtraction, source, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", core.ErrExtraction, source, err)
	}

	return HTMLToText(string(body)), nil
}

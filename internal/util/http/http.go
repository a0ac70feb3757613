// Package http provides HTTP utilities shared by the classifier clients.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/chromatone/internal/version"
)

const (
	// DefaultFetchTimeout bounds small GET requests such as health checks.
	DefaultFetchTimeout = 10 * time.Second

	// MaxErrorBody caps how much of an error response body is read.
	MaxErrorBody = 64 << 10
)

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultFetchTimeout is used.
	Timeout time.Duration

	// Headers specifies additional HTTP headers to send with the request.
	Headers map[string]string
}

// NewClient returns an HTTP client. A zero timeout leaves the request
// unbounded so the transport defaults apply.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// SetUserAgent stamps the request with the application User-Agent.
func SetUserAgent(req *http.Request) {
	req.Header.Set("User-Agent", version.UserAgent())
}

// ReadErrorBody reads at most MaxErrorBody bytes from an error response.
func ReadErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, MaxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}

// Fetch retrieves content from a URL with context and timeout support.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	SetUserAgent(req)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := NewClient(timeout).Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

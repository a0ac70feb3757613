package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/jmylchreest/chromatone/internal/util/http"
)

// DefaultBaseURL is used when no endpoint is configured.
const DefaultBaseURL = "http://127.0.0.1:5000"

// HTTPClient talks to the prediction service over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     hclog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout bounds each request. Zero keeps the transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		h.httpClient = httputil.NewClient(d)
	}
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(h *HTTPClient) {
		h.logger = l
	}
}

// NewHTTPClient creates a client for the service at baseURL. An empty
// baseURL falls back to DefaultBaseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httputil.NewClient(0),
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured endpoint.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Predict uploads img to {baseURL}/predict and returns the normalised result.
// There is no retry; cancelling ctx aborts the request.
func (c *HTTPClient) Predict(ctx context.Context, img Image) (*Result, error) {
	body, contentType, err := encodeMultipart(img)
	if err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	url := c.baseURL + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	httputil.SetUserAgent(req)

	c.logger.Debug("sending prediction request", "url", url, "file", img.Name, "bytes", len(img.Data))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &BackendError{
			Message: fmt.Sprintf("Could not connect to the backend at %s: %v", c.baseURL, err),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	c.logger.Debug("prediction response", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(httputil.ReadErrorBody(resp.Body))
		reason := statusText(resp)
		if text == "" {
			text = fmt.Sprintf("Backend error: %d %s", resp.StatusCode, reason)
		}
		return nil, &BackendError{
			StatusCode: resp.StatusCode,
			Status:     reason,
			Message:    text,
		}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &BackendError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Message:    fmt.Sprintf("invalid response from backend: %v", err),
			Err:        err,
		}
	}

	return Normalize(&result), nil
}

// Health calls {baseURL}/health.
func (c *HTTPClient) Health(ctx context.Context) error {
	if _, err := httputil.Fetch(ctx, c.baseURL+"/health", httputil.FetchOptions{}); err != nil {
		return &BackendError{Message: fmt.Sprintf("health check failed: %v", err), Err: err}
	}
	return nil
}

func encodeMultipart(img Image) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := img.Name
	if name == "" {
		name = "upload"
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FormField, name))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// statusText returns the reason phrase from resp.Status, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

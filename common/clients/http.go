package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger interface for client logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// HTTPClient wraps http.Client with context-aware helpers. Every call carries
// a bounded timeout; the external suggestion APIs otherwise have none.
type HTTPClient struct {
	client *http.Client
	logger Logger
}

// NewHTTPClient creates a new HTTP client wrapper. The timeout bounds the
// whole exchange including reading the body.
func NewHTTPClient(timeout time.Duration, logger Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// DoRequest creates and executes an HTTP request
func (c *HTTPClient) DoRequest(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.client.Do(req)
}

// GetJSON issues a GET request and decodes the JSON response into out
func (c *HTTPClient) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	resp, err := c.DoRequest(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}

	return nil
}

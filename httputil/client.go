package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultMaxRetry  = 5
	defaultBaseDelay = 600 * time.Millisecond
)

// HTTPError is a non-2xx response after retries were exhausted or for a
// status that is not worth retrying.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s for %s: %s", e.Status, e.URL, e.Body)
}

// Retryable reports whether the status indicates a transient upstream
// condition (429 or any 5xx).
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		(e.StatusCode >= 500 && e.StatusCode < 600)
}

// Client is a GET-JSON client with exponential backoff on 429/5xx and an
// optional request rate limiter. Other 4xx statuses, network errors and
// malformed JSON surface immediately.
type Client struct {
	httpc     *http.Client
	limiter   *rate.Limiter
	maxRetry  int
	baseDelay time.Duration
}

func NewClient() *Client {
	return &Client{
		httpc:     &http.Client{Timeout: 30 * time.Second},
		maxRetry:  defaultMaxRetry,
		baseDelay: defaultBaseDelay,
	}
}

// SetRateLimit throttles all requests, retries included, to the given
// requests per second. Zero or negative disables throttling.
func (c *Client) SetRateLimit(requestsPerSecond float64) {
	if requestsPerSecond <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

// SetRetry overrides the retry budget and backoff base delay.
func (c *Client) SetRetry(maxRetry int, baseDelay time.Duration) {
	c.maxRetry = maxRetry
	c.baseDelay = baseDelay
}

// GetJSON fetches url and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	attempt := 0
	for {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return fmt.Errorf("GET %s: %w", url, err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("decode %s: %w", url, err)
			}
			return nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		resp.Body.Close()
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        url,
			Body:       string(body),
		}

		attempt++
		if !httpErr.Retryable() || attempt > c.maxRetry {
			return httpErr
		}

		wait := c.baseDelay * (1 << (attempt - 1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

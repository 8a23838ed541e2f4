package spotify

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

// doRequestWithRetry runs the request, retrying transport errors, 429 and 5xx
// responses with exponential backoff. A Retry-After header overrides the
// computed delay. Only GETs pass through here, so there is no body to replay.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	attempts := c.maxRetries
	if attempts <= 0 {
		attempts = defaultMaxRetries
	}
	base := c.baseBackoff
	if base <= 0 {
		base = defaultBackoff
	}

	ctx := req.Context()
	var lastStatus int
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("spotify adapter: request canceled: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err == nil && !transientStatus(resp.StatusCode) {
			return resp, nil
		}

		var wait time.Duration
		if err != nil {
			lastErr, lastStatus = err, 0
			log.Printf("WARN spotify adapter: retry %d/%d after error: %v", attempt, attempts, err)
		} else {
			lastErr, lastStatus = nil, resp.StatusCode
			wait = parseRetryAfter(resp)
			log.Printf("WARN spotify adapter: retry %d/%d after status %d", attempt, attempts, resp.StatusCode)
			_ = resp.Body.Close()
		}

		if attempt == attempts {
			break
		}
		if wait <= 0 {
			wait = base << (attempt - 1)
		}
		if err := sleepWithContext(ctx, wait); err != nil {
			return nil, err
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("spotify adapter: request failed after %d attempts: %w", attempts, lastErr)
	}
	return nil, fmt.Errorf("spotify adapter: request failed after %d attempts: status %d", attempts, lastStatus)
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// parseRetryAfter accepts both the delta-seconds and the HTTP-date form.
func parseRetryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("spotify adapter: request canceled: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

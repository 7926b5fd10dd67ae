package kb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const fetchMaxRetries = 3

// fetchSleepFunc is the sleep function used between retries (injectable for tests)
var fetchSleepFunc = time.Sleep

// Throttle delays requests to a host. worker.Limiter satisfies it.
type Throttle interface {
	Wait(ctx context.Context, rawURL string) error
}

// StatusError is returned for non-2xx API responses
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// fetcher performs GET requests against the knowledge-base API and decodes JSON
type fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	throttle   Throttle
}

func (f *fetcher) fetch(ctx context.Context, rawURL string, v interface{}) error {
	if f.throttle != nil {
		if err := f.throttle.Wait(ctx, rawURL); err != nil {
			return fmt.Errorf("throttle: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// fetchWithRetry retries transient failures with exponential backoff
func (f *fetcher) fetchWithRetry(ctx context.Context, rawURL string, v interface{}) error {
	var err error
	for attempt := 0; attempt < fetchMaxRetries; attempt++ {
		err = f.fetch(ctx, rawURL, v)
		if err == nil || !isRetryableFetchError(err) || ctx.Err() != nil {
			return err
		}
		if attempt < fetchMaxRetries-1 {
			fetchSleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return err
}

// isRetryableFetchError reports 429, 5xx and transient network failures
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}

	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

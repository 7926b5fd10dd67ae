package validate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/factcheck/internal/model"
	"github.com/ppiankov/factcheck/internal/util"
)

const validateMaxRetries = 3

// validateSleepFunc is the sleep function used between retries (injectable for tests)
var validateSleepFunc = time.Sleep

// Validator probes URLs recovered from answers concurrently
type Validator struct {
	httpClient *http.Client
	maxWorkers int
	robots     *util.RobotsChecker
	userAgent  string
}

// NewValidator creates a new validator. Robots rules are skipped when RespectRobots is false.
func NewValidator(probe model.ProbeConfig, httpCfg model.HTTPConfig) *Validator {
	maxWorkers := probe.Workers
	if maxWorkers <= 0 {
		maxWorkers = 8
	}

	httpCfg.Timeout = probe.Timeout
	client := util.NewHTTPClient(httpCfg)
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 3 {
			return fmt.Errorf("stopped after 3 redirects")
		}
		return nil
	}

	v := &Validator{
		httpClient: client,
		maxWorkers: maxWorkers,
		userAgent:  httpCfg.UserAgent,
	}
	if probe.RespectRobots {
		v.robots = util.NewRobotsChecker(client, httpCfg.UserAgent)
	}
	return v
}

// Validate probes every URL. Results keep the input order.
func (v *Validator) Validate(ctx context.Context, urls []string) []model.ProbeResult {
	if len(urls) == 0 {
		return []model.ProbeResult{}
	}

	results := make([]model.ProbeResult, len(urls))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, v.maxWorkers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.ProbeResult{URL: target, Error: "context cancelled"}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.probe(ctx, target)
		}(i, u)
	}

	wg.Wait()

	return results
}

func (v *Validator) probe(ctx context.Context, target string) model.ProbeResult {
	target = withScheme(target)

	if v.robots != nil {
		allowed, _, err := v.robots.CanFetch(ctx, target)
		if err != nil {
			return model.ProbeResult{URL: target, Error: err.Error(), IsDead: true}
		}
		if !allowed {
			slog.Debug("robots.txt disallows probe", "url", target)
			return model.ProbeResult{URL: target, Disallowed: true}
		}
	}

	return v.probeWithRetry(ctx, target)
}

// probeSingle issues one HEAD request
func (v *Validator) probeSingle(ctx context.Context, target string) model.ProbeResult {
	result := model.ProbeResult{URL: target}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		result.IsDead = true
		return result
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.IsDead = true
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	} else if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		result.IsDead = true
	}

	if final := resp.Request.URL.String(); final != target {
		result.RedirectURL = final
	}

	return result
}

// probeWithRetry retries transient failures with exponential backoff
func (v *Validator) probeWithRetry(ctx context.Context, target string) model.ProbeResult {
	var result model.ProbeResult
	for attempt := 0; attempt < validateMaxRetries; attempt++ {
		result = v.probeSingle(ctx, target)
		if !isRetryable(result) || ctx.Err() != nil {
			return result
		}
		if attempt < validateMaxRetries-1 {
			validateSleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return result
}

// isRetryable returns true for results that indicate transient failures
func isRetryable(result model.ProbeResult) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return result.Error != "" && isRetryableNetworkError(result.Error)
}

// isRetryableNetworkError checks error strings for transient network failures
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

// Answers often carry bare hosts
func withScheme(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

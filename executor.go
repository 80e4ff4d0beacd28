package flyan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

// RateLimiter gates outbound requests. Allow returns how long the caller
// must wait before sending; zero means send now.
type RateLimiter interface {
	Allow(ctx context.Context) (time.Duration, error)
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:126.0) Gecko/20100101 Firefox/126.0",
}

// executor performs all network I/O against the fare-finder API: one GET
// per call, retried with exponential backoff on transient failure. No other
// component touches the wire.
type executor struct {
	client      *http.Client
	maxRetries  int
	timeout     time.Duration
	backoffBase time.Duration
	limiter     RateLimiter
	userAgent   string
	logger      *slog.Logger
}

// get issues the request and returns the raw response body. Transient
// failures (transport errors, timeouts, HTTP 429 and 5xx) are retried up to
// maxRetries times; any other non-2xx response fails immediately. The last
// observed cause is wrapped in a RemoteServiceError, never swallowed.
func (e *executor) get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	var (
		lastErr    error
		lastStatus int
	)

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := e.backoff(attempt)
			e.logger.DebugContext(ctx, "retrying with exponential backoff",
				slog.Duration("backoff", backoff),
				slog.Int("next_attempt", attempt+1))

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, &RemoteServiceError{StatusCode: lastStatus, Attempts: attempt, Cause: ctx.Err()}
			}
		}

		if err := e.waitForSlot(ctx); err != nil {
			return nil, err
		}

		body, status, err := e.do(ctx, rawURL, query)
		if err == nil {
			return body, nil
		}

		if status != 0 && !transientStatus(status) {
			return nil, &RemoteServiceError{StatusCode: status, Attempts: attempt + 1, Cause: err}
		}

		lastErr = err
		lastStatus = status

		e.logger.WarnContext(ctx, "fare-finder request failed",
			slog.String("url", rawURL),
			slog.Int("attempt", attempt+1),
			slog.Int("status", status),
			slog.Any("error", err))
	}

	return nil, &RemoteServiceError{StatusCode: lastStatus, Attempts: e.maxRetries + 1, Cause: lastErr}
}

// do performs a single attempt under its own timeout.
func (e *executor) do(ctx context.Context, rawURL string, query url.Values) ([]byte, int, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	e.setHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// a truncated body is a transport failure, not an HTTP one
		return nil, 0, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return body, resp.StatusCode, nil
}

// waitForSlot blocks until the shared rate limiter hands out a slot.
func (e *executor) waitForSlot(ctx context.Context) error {
	if e.limiter == nil {
		return nil
	}

	for {
		wait, err := e.limiter.Allow(ctx)
		if err != nil {
			return fmt.Errorf("acquire rate limit slot: %w", err)
		}

		if wait <= 0 {
			return nil
		}

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// backoff doubles the base delay per attempt and adds up to 25% jitter.
func (e *executor) backoff(attempt int) time.Duration {
	backoff := e.backoffBase << (attempt - 1)

	return backoff + time.Duration(rand.Int63n(int64(backoff)/4+1))
}

func (e *executor) setHeaders(req *http.Request) {
	req.Header.Set("Accept",
		"text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", e.userAgent)
}

func transientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

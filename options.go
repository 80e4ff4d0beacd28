package flyan

import (
	"log/slog"
	"net/http"
	"time"
)

type settings struct {
	currency    string
	baseURL     string
	homeURL     string
	httpClient  *http.Client
	timeout     time.Duration
	maxRetries  int
	backoffBase time.Duration
	limiter     RateLimiter
	logger      *slog.Logger
	warmup      bool
}

// Option customizes a Client at construction.
type Option func(*settings)

// WithCurrency sets the preferred fare currency. It must be present in the
// bundled currency table or New fails with ErrInvalidCurrency.
func WithCurrency(code string) Option {
	return func(s *settings) {
		if code != "" {
			s.currency = code
		}
	}
}

// WithBaseURL overrides the fare-finder API base URL.
func WithBaseURL(rawURL string) Option {
	return func(s *settings) {
		if rawURL != "" {
			s.baseURL = rawURL
		}
	}
}

// WithHomeURL overrides the homepage used for session warm-up.
func WithHomeURL(rawURL string) Option {
	return func(s *settings) {
		if rawURL != "" {
			s.homeURL = rawURL
		}
	}
}

// WithHTTPClient supplies the underlying http.Client. The caller owns its
// cookie jar and transport settings.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout bounds each individual request attempt.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxRetries sets how many times a transient failure is retried after
// the initial attempt.
func WithMaxRetries(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithBackoff sets the base delay of the exponential backoff between
// attempts.
func WithBackoff(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.backoffBase = d
		}
	}
}

// WithRateLimiter installs a shared limiter consulted before every attempt.
func WithRateLimiter(limiter RateLimiter) Option {
	return func(s *settings) {
		s.limiter = limiter
	}
}

// WithLogger routes the client's debug and warn telemetry.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionWarmup toggles priming the cookie session against the
// homepage during New. Enabled by default.
func WithSessionWarmup(enabled bool) Option {
	return func(s *settings) {
		s.warmup = enabled
	}
}

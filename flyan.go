// Package flyan is an unofficial, read-only Go client for the Ryanair
// fare-finder API. It validates search parameters against bundled airport
// and currency tables, issues HTTP requests with bounded retry, and maps
// the JSON responses into typed flight records. It does not book, hold, or
// mutate anything.
package flyan

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/victorlane/Flyan/config"
	"github.com/victorlane/Flyan/internal/pkg/logger"
	"github.com/victorlane/Flyan/internal/pkg/ratelimit"
	"github.com/victorlane/Flyan/internal/pkg/refdata"
)

const (
	DefaultBaseURL = "https://services-api.ryanair.com/farfnd/v4"
	DefaultHomeURL = "https://www.ryanair.com"

	defaultCurrency    = "EUR"
	defaultTimeout     = 10 * time.Second
	defaultMaxRetries  = 4
	defaultBackoffBase = 500 * time.Millisecond
)

// Client is the search facade. It is immutable after construction and safe
// for concurrent use.
type Client struct {
	currency string
	baseURL  string
	homeURL  string
	ref      *refdata.Store
	exec     *executor
	logger   *slog.Logger
}

// New builds a Client. Without options it talks to the production
// fare-finder API in EUR and primes a cookie session against the homepage.
func New(opts ...Option) (*Client, error) {
	s := settings{
		currency:    defaultCurrency,
		baseURL:     DefaultBaseURL,
		homeURL:     DefaultHomeURL,
		timeout:     defaultTimeout,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		logger:      slog.Default(),
		warmup:      true,
	}

	for _, opt := range opts {
		opt(&s)
	}

	ref, err := refdata.New()
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}

	if !ref.ValidCurrency(s.currency) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, s.currency)
	}

	httpClient := s.httpClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("build cookie jar: %w", err)
		}

		httpClient = &http.Client{Jar: jar}
	}

	client := &Client{
		currency: s.currency,
		baseURL:  s.baseURL,
		homeURL:  s.homeURL,
		ref:      ref,
		logger:   s.logger,
		exec: &executor{
			client:      httpClient,
			maxRetries:  s.maxRetries,
			timeout:     s.timeout,
			backoffBase: s.backoffBase,
			limiter:     s.limiter,
			userAgent:   userAgents[rand.Intn(len(userAgents))],
			logger:      s.logger,
		},
	}

	if s.warmup {
		if err := client.warmSession(context.Background()); err != nil {
			return nil, fmt.Errorf("warm session: %w", err)
		}
	}

	return client, nil
}

// NewFromConfig builds a Client from environment-driven configuration,
// initializing the structured logger and, when redis is configured, the
// distributed outbound rate limiter.
func NewFromConfig(cfg config.Config) (*Client, error) {
	logger.InitStructuredLogger(cfg.LogLevel)

	opts := []Option{
		WithCurrency(cfg.Currency),
		WithBaseURL(cfg.API.BaseURL),
		WithHomeURL(cfg.API.HomeURL),
		WithTimeout(cfg.API.Timeout),
		WithMaxRetries(cfg.API.MaxRetries),
		WithBackoff(cfg.API.BackoffBase),
		WithSessionWarmup(cfg.API.SessionWarmup),
	}

	if cfg.Redis.Addr != "" && cfg.Redis.RateLimitRPS > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		opts = append(opts, WithRateLimiter(ratelimit.New(rdb, "flyan", cfg.Redis.RateLimitRPS)))
	}

	return New(opts...)
}

// Oneways searches one-way fares. Results keep the order the remote
// service returned them in; validation and remote errors propagate
// unchanged.
func (c *Client) Oneways(ctx context.Context, params FlightSearchParams) ([]Flight, error) {
	params = params.normalized()
	if err := params.validate(c.ref); err != nil {
		return nil, err
	}

	ctx = logger.WithRequestID(ctx, uuid.NewString())

	query := params.apiQuery()
	query.Set("currency", c.currency)

	c.logger.DebugContext(ctx, "searching one-way fares",
		slog.String("origin", params.FromAirport),
		slog.String("destination", params.ToAirport))

	payload, err := c.exec.get(ctx, c.baseURL+"/oneWayFares", query)
	if err != nil {
		return nil, err
	}

	return c.mapOneways(ctx, payload)
}

// Returns searches paired outbound and inbound fares.
func (c *Client) Returns(ctx context.Context, params ReturnFlightSearchParams) ([]ReturnFlight, error) {
	params = params.normalized()
	if err := params.validate(c.ref); err != nil {
		return nil, err
	}

	ctx = logger.WithRequestID(ctx, uuid.NewString())

	query := params.apiQuery()
	query.Set("currency", c.currency)

	c.logger.DebugContext(ctx, "searching round-trip fares",
		slog.String("origin", params.FromAirport),
		slog.String("destination", params.ToAirport))

	payload, err := c.exec.get(ctx, c.baseURL+"/roundTripFares", query)
	if err != nil {
		return nil, err
	}

	return c.mapReturns(ctx, payload)
}

// Airport resolves a 3-letter code against the bundled reference table.
func (c *Client) Airport(code string) (Airport, bool) {
	rec, ok := c.ref.Lookup(code)
	if !ok {
		return Airport{}, false
	}

	return airportFromRef(rec), true
}

// Currency reports the client's fare currency.
func (c *Client) Currency() string {
	return c.currency
}

// warmSession primes the cookie jar the way a browser visit would, using
// the same retry policy as searches.
func (c *Client) warmSession(ctx context.Context) error {
	_, err := c.exec.get(ctx, c.homeURL, nil)

	return err
}

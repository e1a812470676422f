// Package geolocation resolves client IP addresses to a coarse location
// using an ip-api compatible HTTP provider.
package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"eyecandy/internal/access/models"
	"eyecandy/internal/platform/config"
	"eyecandy/internal/platform/tracing"
	"eyecandy/pkg/platform/circuit"
	"eyecandy/pkg/platform/privacy"
	"eyecandy/pkg/platform/sentinel"
)

const (
	lookupFields    = "status,message,countryCode,region,city,zip"
	maxResponseSize = 64 << 10

	OutcomeResolved     = "resolved"
	OutcomeUnresolvable = "unresolvable"
	OutcomeError        = "error"
	OutcomeCircuitOpen  = "circuit_open"
)

type providerResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	CountryCode string `json:"countryCode"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
}

// Client looks up locations with caching, request coalescing and a circuit
// breaker in front of the provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *InMemoryCache
	breaker    *circuit.Breaker
	group      singleflight.Group
	logger     *slog.Logger
	metrics    *Metrics
	tracer     tracing.Tracer
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

func WithTracer(t tracing.Tracer) Option {
	return func(cl *Client) {
		if t != nil {
			cl.tracer = t
		}
	}
}

func WithCache(cache *InMemoryCache) Option {
	return func(cl *Client) {
		if cache != nil {
			cl.cache = cache
		}
	}
}

func New(cfg config.GeolocationConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cache:   NewInMemoryCache(cfg.CacheTTL),
		breaker: circuit.New("geolocation",
			circuit.WithFailureThreshold(cfg.FailureThreshold),
			circuit.WithCooldown(cfg.Cooldown),
		),
		logger: slog.Default(),
		tracer: tracing.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Locate resolves ip to a location. Addresses that can never be located
// (empty, malformed, private, loopback, reserved) return an error wrapping
// sentinel.ErrUnresolvable. Provider failures and an open circuit return an
// error wrapping sentinel.ErrUnavailable.
func (c *Client) Locate(ctx context.Context, ip string) (loc *models.GeoLocation, err error) {
	ctx, span := c.tracer.Start(ctx, "geolocation.locate",
		tracing.String("client.ip_prefix", privacy.AnonymizeIP(ip)),
	)
	defer func() { span.End(err) }()

	ip = strings.TrimSpace(ip)
	if !isRoutable(ip) {
		c.metrics.RecordLookup(OutcomeUnresolvable, 0)
		return nil, fmt.Errorf("address %s: %w", privacy.AnonymizeIP(ip), sentinel.ErrUnresolvable)
	}

	if cached, ok := c.cache.Find(ip); ok {
		c.metrics.RecordCache(true)
		span.SetAttributes(tracing.Bool("cache.hit", true))
		return cached, nil
	}
	c.metrics.RecordCache(false)
	span.SetAttributes(tracing.Bool("cache.hit", false))

	ch := c.group.DoChan(ip, func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx), ip)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		found := *res.Val.(*models.GeoLocation)
		return &found, nil
	}
}

func (c *Client) fetch(ctx context.Context, ip string) (*models.GeoLocation, error) {
	if !c.breaker.Allow() {
		c.metrics.RecordLookup(OutcomeCircuitOpen, 0)
		return nil, fmt.Errorf("geolocation circuit open: %w", sentinel.ErrUnavailable)
	}

	start := time.Now()
	resp, err := c.call(ctx, ip)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.recordFailure(ctx, ip, err)
		c.metrics.RecordLookup(OutcomeError, elapsed)
		return nil, fmt.Errorf("geolocation lookup: %w: %w", sentinel.ErrUnavailable, err)
	}
	c.recordSuccess()

	if resp.Status != "success" {
		c.metrics.RecordLookup(OutcomeUnresolvable, elapsed)
		c.logger.DebugContext(ctx, "geolocation unresolvable",
			"ip_prefix", privacy.AnonymizeIP(ip),
			"provider_message", resp.Message,
		)
		return nil, fmt.Errorf("provider: %s: %w", resp.Message, sentinel.ErrUnresolvable)
	}

	loc := &models.GeoLocation{
		Country:    resp.CountryCode,
		State:      resp.Region,
		City:       resp.City,
		PostalCode: resp.Zip,
	}
	c.metrics.RecordLookup(OutcomeResolved, elapsed)
	c.cache.Save(ip, loc)
	c.metrics.SetCacheEntries(c.cache.Len())
	return loc, nil
}

func (c *Client) call(ctx context.Context, ip string) (*providerResponse, error) {
	endpoint := fmt.Sprintf("%s/json/%s?fields=%s", c.baseURL, url.PathEscape(ip), lookupFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var out providerResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return &out, nil
}

func (c *Client) recordFailure(ctx context.Context, ip string, err error) {
	change := c.breaker.RecordFailure()
	c.logger.WarnContext(ctx, "geolocation provider call failed",
		"ip_prefix", privacy.AnonymizeIP(ip),
		"error", err,
	)
	if change.Opened {
		c.metrics.RecordCircuit(circuit.StateOpen.String())
		c.logger.ErrorContext(ctx, "geolocation circuit opened", "breaker", c.breaker.Name())
	}
}

func (c *Client) recordSuccess() {
	if change := c.breaker.RecordSuccess(); change.Closed {
		c.metrics.RecordCircuit(circuit.StateClosed.String())
		c.logger.Info("geolocation circuit closed", "breaker", c.breaker.Name())
	}
}

// PurgeCache drops expired cache entries.
func (c *Client) PurgeCache() {
	c.metrics.SetCacheEntries(c.cache.Purge())
}

// Ping reports whether the provider is reachable from the breaker's point of view.
func (c *Client) Ping(_ context.Context) error {
	if c.breaker.State() == circuit.StateOpen {
		return fmt.Errorf("geolocation circuit open: %w", sentinel.ErrUnavailable)
	}
	return nil
}

func isRoutable(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !(parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() ||
		parsed.IsLinkLocalUnicast() || parsed.IsLinkLocalMulticast() || parsed.IsMulticast())
}

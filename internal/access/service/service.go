// Package service evaluates profile access requests. It gathers the viewer's
// location, the performer's rules and the viewer's entitlements, runs the
// decision engine and tracks the teaser sessions it grants.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	accessmetrics "eyecandy/internal/access/metrics"
	"eyecandy/internal/access/models"
	"eyecandy/internal/access/ports"
	"eyecandy/internal/audit"
	"eyecandy/internal/platform/tracing"
	id "eyecandy/pkg/domain"
	platformsync "eyecandy/pkg/platform/sync"
)

const (
	// evidenceTimeout bounds the concurrent collaborator lookups of one evaluation.
	evidenceTimeout = 5 * time.Second

	// defaultWatchInterval is how often running teasers are checked for expiry.
	defaultWatchInterval = time.Second
)

// TeaserStore persists granted teaser sessions.
type TeaserStore interface {
	Save(ctx context.Context, rec *models.TeaserRecord) error
	FindByID(ctx context.Context, sessionID id.TeaserSessionID) (*models.TeaserRecord, error)
	FindActive(ctx context.Context, viewerKey string, performerID id.PerformerID) (*models.TeaserRecord, error)
	MarkExpired(ctx context.Context, sessionID id.TeaserSessionID) (bool, error)
	Cancel(ctx context.Context, sessionID id.TeaserSessionID) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// TickSource returns a tick channel and a function that releases it.
type TickSource func() (ticks <-chan time.Time, stop func())

// IntervalTicks returns a TickSource backed by a time.Ticker.
func IntervalTicks(every time.Duration) TickSource {
	return func() (<-chan time.Time, func()) {
		t := time.NewTicker(every)
		return t.C, t.Stop
	}
}

type Service struct {
	location     ports.LocationPort
	rules        ports.RulesPort
	entitlements ports.EntitlementPort
	teasers      TeaserStore

	auditor AuditPublisher
	metrics *accessmetrics.Metrics
	tracer  tracing.Tracer
	logger  *slog.Logger
	now     func() time.Time

	// startLocks serializes start-or-resume per (viewer, performer).
	startLocks *platformsync.ShardedMutex

	ticks    TickSource
	rootCtx  context.Context
	stopAll  context.CancelFunc
	watchMu  sync.Mutex
	watchers map[id.TeaserSessionID]context.CancelFunc
	closed   bool
	wg       sync.WaitGroup
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *accessmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracing.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithExpiryWatch sets the tick source used to watch running teasers. A nil
// source disables watching; expiry is then observed only on status polls and
// re-evaluations.
func WithExpiryWatch(ticks TickSource) Option {
	return func(s *Service) {
		s.ticks = ticks
	}
}

// New creates the access service. Panics if a collaborator is nil.
func New(
	location ports.LocationPort,
	rules ports.RulesPort,
	entitlements ports.EntitlementPort,
	teasers TeaserStore,
	opts ...Option,
) *Service {
	if location == nil {
		panic("access.New: location port is required")
	}
	if rules == nil {
		panic("access.New: rules port is required")
	}
	if entitlements == nil {
		panic("access.New: entitlement port is required")
	}
	if teasers == nil {
		panic("access.New: teaser store is required")
	}

	s := &Service{
		location:     location,
		rules:        rules,
		entitlements: entitlements,
		teasers:      teasers,
		tracer:       tracing.NewNoop(),
		logger:       slog.New(slog.DiscardHandler),
		now:          time.Now,
		startLocks:   platformsync.NewShardedMutex(),
		ticks:        IntervalTicks(defaultWatchInterval),
		watchers:     make(map[id.TeaserSessionID]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rootCtx, s.stopAll = context.WithCancel(context.Background())
	return s
}

// Close stops every expiry watcher and waits for them to exit. Watchers
// stopped this way emit nothing; a later status poll still observes expiry.
func (s *Service) Close() {
	s.watchMu.Lock()
	s.closed = true
	s.watchMu.Unlock()
	s.stopAll()
	s.wg.Wait()
}

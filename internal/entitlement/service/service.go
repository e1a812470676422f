// Package service answers whether a viewer holds paid access to a performer
// and records grants made by the payment collaborator.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eyecandy/internal/audit"
	entitlementmetrics "eyecandy/internal/entitlement/metrics"
	"eyecandy/internal/entitlement/models"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	adminmw "eyecandy/pkg/platform/middleware/admin"
	"eyecandy/pkg/platform/sentinel"
	"eyecandy/pkg/requestcontext"
)

type Store interface {
	Save(ctx context.Context, e *models.Entitlement) error
	FindActive(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID, now time.Time) (*models.Entitlement, error)
	RevokeActive(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID, now time.Time) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

type Service struct {
	store     Store
	logger    *slog.Logger
	publisher AuditPublisher
	metrics   *entitlementmetrics.Metrics
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithMetrics(m *entitlementmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type GrantCommand struct {
	ViewerID    id.ViewerID
	PerformerID id.PerformerID
	Kind        models.Kind
	ExpiresAt   *time.Time
}

func (c *GrantCommand) Validate(now time.Time) error {
	if c == nil {
		return dErrors.New(dErrors.CodeBadRequest, "grant is required")
	}
	if c.ViewerID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "viewer ID required")
	}
	if c.PerformerID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	if _, err := models.ParseKind(string(c.Kind)); err != nil {
		return err
	}
	if c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return dErrors.New(dErrors.CodeValidation, "expires_at must be in the future")
	}
	return nil
}

// HasActive reports whether the viewer currently holds a paid entitlement.
func (s *Service) HasActive(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID) (bool, error) {
	if viewerID.IsNil() || performerID.IsNil() {
		return false, nil
	}
	_, err := s.store.FindActive(ctx, viewerID, performerID, s.now())
	switch {
	case err == nil:
		s.metrics.RecordCheck("active")
		return true, nil
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.RecordCheck("none")
		return false, nil
	default:
		s.metrics.RecordCheck("error")
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check entitlement")
	}
}

// Grant records a purchase. Grants without an explicit expiry last for the
// kind's default validity.
func (s *Service) Grant(ctx context.Context, cmd *GrantCommand) (*models.Entitlement, error) {
	now := s.now()
	if err := cmd.Validate(now); err != nil {
		return nil, err
	}
	expiresAt := cmd.ExpiresAt
	if expiresAt == nil {
		t := now.Add(cmd.Kind.DefaultValidity())
		expiresAt = &t
	}
	e := &models.Entitlement{
		ID:          id.NewEntitlementID(),
		ViewerID:    cmd.ViewerID,
		PerformerID: cmd.PerformerID,
		Kind:        cmd.Kind,
		GrantedAt:   now,
		ExpiresAt:   expiresAt,
	}
	if err := s.store.Save(ctx, e); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "entitlement already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant entitlement")
	}

	s.emit(ctx, audit.EventEntitlementGranted, e.ViewerID, e.PerformerID, "kind", string(e.Kind))
	s.metrics.RecordChange("grant", string(e.Kind))
	return e, nil
}

// Revoke ends every active entitlement the viewer holds for the performer.
func (s *Service) Revoke(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID) error {
	if viewerID.IsNil() || performerID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "viewer and performer IDs required")
	}
	n, err := s.store.RevokeActive(ctx, viewerID, performerID, s.now())
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke entitlement")
	}
	if n == 0 {
		return dErrors.New(dErrors.CodeNotFound, "no active entitlement")
	}

	s.emit(ctx, audit.EventEntitlementRevoked, viewerID, performerID, "revoked", n)
	s.metrics.RecordChange("revoke", "")
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.AuditEvent, viewerID id.ViewerID, performerID id.PerformerID, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	actorID := adminmw.ActorID(ctx)
	if s.logger != nil {
		args := append(attributes,
			"viewer_id", viewerID.String(),
			"performer_id", performerID.String(),
			"actor_id", actorID,
			"request_id", requestID,
			"event", string(event),
			"log_type", "audit",
		)
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, audit.Event{
		Action:      string(event),
		ViewerKey:   "viewer:" + viewerID.String(),
		PerformerID: performerID.String(),
		RequestID:   requestID,
		ActorID:     actorID,
	}); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}

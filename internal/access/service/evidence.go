package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"eyecandy/internal/access/models"
	"eyecandy/internal/platform/tracing"
	"eyecandy/pkg/platform/privacy"
	"eyecandy/pkg/platform/sentinel"
)

// Evidence source names used in metrics and spans.
const (
	sourceLocation    = "location"
	sourceRules       = "rules"
	sourceEntitlement = "entitlement"
)

// evidence holds the collaborator results of one evaluation. Each goroutine
// writes only its own fields.
type evidence struct {
	location       *models.GeoLocation
	locationFailed bool

	rules       *models.RuleSet
	rulesFailed bool

	entitled          bool
	entitlementFailed bool
}

// gatherEvidence queries all collaborators concurrently. Failures are turned
// into signals for the engine. The group has no shared context, so a failed
// source never cancels its siblings; the returned error is the first failure
// and only annotates the evaluation span.
func (s *Service) gatherEvidence(ctx context.Context, req EvaluateRequest) (*evidence, error) {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	var (
		g  errgroup.Group
		ev evidence
	)

	g.Go(func() error {
		return s.fetch(ctx, sourceLocation, func(ctx context.Context) error {
			if req.ClientIP == "" {
				return nil
			}
			loc, err := s.location.DetectLocation(ctx, req.ClientIP)
			if errors.Is(err, sentinel.ErrUnresolvable) {
				// An unresolvable address is an empty location, not a failure.
				return nil
			}
			if err != nil {
				ev.locationFailed = true
				s.logger.WarnContext(ctx, "location lookup failed",
					"client_ip", privacy.AnonymizeIP(req.ClientIP),
					"error", err,
				)
				return err
			}
			ev.location = loc
			return nil
		})
	})

	g.Go(func() error {
		return s.fetch(ctx, sourceRules, func(ctx context.Context) error {
			rules, err := s.rules.GetPerformerAccessRules(ctx, req.PerformerID)
			if err != nil {
				ev.rulesFailed = true
				s.logger.ErrorContext(ctx, "performer rules lookup failed",
					"performer_id", req.PerformerID.String(),
					"error", err,
				)
				return err
			}
			ev.rules = rules
			return nil
		})
	})

	if !req.Viewer.IsAnonymous() {
		g.Go(func() error {
			return s.fetch(ctx, sourceEntitlement, func(ctx context.Context) error {
				ok, err := s.entitlements.HasActiveEntitlement(ctx, *req.Viewer.ID, req.PerformerID)
				if err != nil {
					ev.entitlementFailed = true
					s.logger.WarnContext(ctx, "entitlement lookup failed",
						"performer_id", req.PerformerID.String(),
						"error", err,
					)
					return err
				}
				ev.entitled = ok
				return nil
			})
		})
	}

	err := g.Wait()
	return &ev, err
}

// fetch runs one lookup inside its own span and records its latency.
func (s *Service) fetch(ctx context.Context, source string, lookup func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "access.evidence."+source)
	start := time.Now()
	err := lookup(ctx)
	elapsed := time.Since(start)
	span.SetAttributes(tracing.Duration("latency_ms", elapsed))
	span.End(err)
	s.metrics.ObserveEvidence(source, elapsed, err != nil)
	return err
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"eyecandy/internal/access/engine"
	"eyecandy/internal/access/models"
	"eyecandy/internal/audit"
	"eyecandy/internal/platform/tracing"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/privacy"
	"eyecandy/pkg/requestcontext"
)

// unknownClientIP is what the metadata middleware records when the peer
// address is missing.
const unknownClientIP = "unknown"

// EvaluateRequest identifies who is trying to view which profile, and from where.
type EvaluateRequest struct {
	Viewer      models.Viewer
	PerformerID id.PerformerID

	ClientIP          string
	DeviceFingerprint string
	DeviceID          string
}

// ViewerKey is the key teaser sessions are tracked under. Members use their
// ID; anonymous viewers use a pseudonym of their network and device identity
// so raw IPs are never stored. An anonymous request carrying no identity at
// all gets a key of its own, so unidentifiable viewers never share a session.
func (r EvaluateRequest) ViewerKey() string {
	if !r.Viewer.IsAnonymous() {
		return "viewer:" + r.Viewer.ID.String()
	}
	ip := r.ClientIP
	if ip == unknownClientIP {
		ip = ""
	}
	key := privacy.Pseudonymize(ip, r.DeviceFingerprint, r.DeviceID)
	if key == "" {
		return "anon:request:" + uuid.NewString()
	}
	return "anon:" + key
}

// Evaluate decides whether the viewer may see the performer's profile.
// Collaborator failures become decisions with reason error; the only error
// return is a missing performer ID.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (decision *models.Decision, err error) {
	evalTime := s.now()
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "access.evaluate",
		tracing.String("performer_id", req.PerformerID.String()),
		tracing.String("viewer_type", string(req.Viewer.Type)),
	)
	defer func() {
		s.metrics.ObserveEvaluate(time.Since(start))
		span.End(err)
	}()

	if req.PerformerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "performer ID is required")
	}

	ev, evErr := s.gatherEvidence(ctx, req)
	span.SetAttributes(tracing.Bool("evidence_complete", evErr == nil))
	d, err := engine.Evaluate(engine.Input{
		Viewer:            req.Viewer,
		PerformerID:       req.PerformerID,
		Location:          ev.location,
		LocationFailed:    ev.locationFailed,
		Rules:             ev.rules,
		RulesFailed:       ev.rulesFailed,
		Entitled:          ev.entitled,
		EntitlementFailed: ev.entitlementFailed,
	})
	if err != nil {
		return nil, err
	}

	viewerKey := req.ViewerKey()
	if d.AccessLevel == models.AccessTeaser {
		d = s.resolveTeaser(ctx, viewerKey, req.PerformerID, ev.rules.TeaserPolicy, d, evalTime)
	}

	if cerr := d.CheckConsistency(); cerr != nil {
		s.logger.ErrorContext(ctx, "inconsistent access decision",
			"error", cerr,
			"performer_id", req.PerformerID.String(),
			"decided_by", d.DecidedBy,
		)
		decidedBy := d.DecidedBy
		d = engine.ErrorDecision()
		d.DecidedBy = decidedBy
	}

	span.SetAttributes(
		tracing.String("reason", string(d.Reason)),
		tracing.String("access_level", string(d.AccessLevel)),
		tracing.String("decided_by", d.DecidedBy),
	)
	s.metrics.RecordDecision(string(d.Reason), string(d.AccessLevel), d.DecidedBy)
	s.emitDecision(ctx, viewerKey, req.PerformerID, d, evalTime)
	s.logger.DebugContext(ctx, "access evaluated",
		"performer_id", req.PerformerID.String(),
		"client_ip", privacy.AnonymizeIP(req.ClientIP),
		"reason", string(d.Reason),
		"access_level", string(d.AccessLevel),
		"decided_by", d.DecidedBy,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &d, nil
}

// emitDecision records the decision in the audit trail. Failures are logged
// and never change the decision.
func (s *Service) emitDecision(ctx context.Context, viewerKey string, performerID id.PerformerID, d models.Decision, at time.Time) {
	ev := audit.Event{
		Timestamp:   at,
		Action:      string(audit.EventAccessEvaluated),
		ViewerKey:   viewerKey,
		PerformerID: performerID.String(),
		Decision:    string(d.AccessLevel),
		Reason:      string(d.Reason),
		DecidedBy:   d.DecidedBy,
		RequestID:   requestcontext.RequestID(ctx),
	}
	if d.TeaserSessionID != nil {
		ev.SessionID = d.TeaserSessionID.String()
	}
	s.emit(ctx, ev)
}

func (s *Service) emit(ctx context.Context, ev audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", ev.Action,
			"performer_id", ev.PerformerID,
			"error", err,
		)
	}
}

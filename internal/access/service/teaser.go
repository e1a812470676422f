package service

import (
	"context"
	"errors"
	"time"

	"eyecandy/internal/access/engine"
	"eyecandy/internal/access/models"
	"eyecandy/internal/audit"
	"eyecandy/internal/platform/tracing"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/sentinel"
	"eyecandy/pkg/requestcontext"
)

// Teaser lifecycle states reported by TeaserStatus.
const (
	TeaserStateRunning   = "running"
	TeaserStateExpired   = "expired"
	TeaserStateCancelled = "cancelled"
)

// TeaserStatus is the authoritative view of one teaser session.
type TeaserStatus struct {
	SessionID        id.TeaserSessionID
	PerformerID      id.PerformerID
	State            string
	RemainingSeconds int
	StartedAt        time.Time
	ExpiresAt        time.Time
	Decision         models.Decision
}

// resolveTeaser turns an engine teaser grant into a tracked session. An
// existing session for the same viewer and performer is resumed, so the
// countdown is never restarted by re-evaluating.
func (s *Service) resolveTeaser(ctx context.Context, viewerKey string, performerID id.PerformerID, policy *models.TeaserPolicy, granted models.Decision, now time.Time) models.Decision {
	ctx, span := s.tracer.Start(ctx, "access.teaser.resolve")
	var decision models.Decision
	err := s.startLocks.Do(viewerKey+"|"+performerID.String(), func() error {
		rec, err := s.teasers.FindActive(ctx, viewerKey, performerID)
		if err == nil {
			decision = s.resume(ctx, rec, now)
			return nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return err
		}

		rec = &models.TeaserRecord{
			ID:            id.NewTeaserSessionID(),
			ViewerKey:     viewerKey,
			PerformerID:   performerID,
			StartedAt:     now,
			Duration:      policy.Duration(),
			ExpiryMessage: policy.ExpiryMessage,
		}
		err = s.teasers.Save(ctx, rec)
		if errors.Is(err, sentinel.ErrConflict) {
			// Another instance started the session first.
			existing, findErr := s.teasers.FindActive(ctx, viewerKey, performerID)
			if findErr != nil {
				return findErr
			}
			decision = s.resume(ctx, existing, now)
			return nil
		}
		if err != nil {
			return err
		}

		decision = granted
		decision.TeaserSessionID = &rec.ID
		s.metrics.RecordTeaser("started")
		s.emit(ctx, audit.Event{
			Timestamp:   now,
			Action:      string(audit.EventTeaserStarted),
			ViewerKey:   viewerKey,
			PerformerID: performerID.String(),
			SessionID:   rec.ID.String(),
			RequestID:   requestcontext.RequestID(ctx),
		})
		s.watch(rec)
		return nil
	})
	span.End(err)
	if err != nil {
		s.logger.ErrorContext(ctx, "teaser session tracking failed",
			"performer_id", performerID.String(),
			"error", err,
		)
		d := engine.ErrorDecision()
		d.DecidedBy = engine.StageTeaser
		return d
	}
	return decision
}

// resume derives the decision for an existing session from the wall clock.
func (s *Service) resume(ctx context.Context, rec *models.TeaserRecord, now time.Time) models.Decision {
	d := engine.RestoreTeaserSession(rec).Decision(now)
	sessionID := rec.ID
	d.TeaserSessionID = &sessionID
	if d.Reason == models.ReasonTeaserExpired {
		s.settleExpired(ctx, rec)
		return d
	}
	s.metrics.RecordTeaser("resumed")
	return d
}

// settleExpired marks the session expired. Only the first caller across all
// instances emits the teaser_expired event; cancelled sessions never do.
func (s *Service) settleExpired(ctx context.Context, rec *models.TeaserRecord) {
	first, err := s.teasers.MarkExpired(ctx, rec.ID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to mark teaser expired",
				"session_id", rec.ID.String(),
				"error", err,
			)
		}
		return
	}
	if !first {
		return
	}
	s.metrics.RecordTeaser("expired")
	s.emit(ctx, audit.Event{
		Timestamp:   rec.ExpiresAt(),
		Action:      string(audit.EventTeaserExpired),
		ViewerKey:   rec.ViewerKey,
		PerformerID: rec.PerformerID.String(),
		SessionID:   rec.ID.String(),
		RequestID:   requestcontext.RequestID(ctx),
	})
}

// TeaserStatus reports the session's state at the current time. The first
// observation of expiry settles the session.
func (s *Service) TeaserStatus(ctx context.Context, sessionID id.TeaserSessionID) (*TeaserStatus, error) {
	ctx, span := s.tracer.Start(ctx, "access.teaser.status", tracing.String("session_id", sessionID.String()))
	rec, err := s.teasers.FindByID(ctx, sessionID)
	span.End(err)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "teaser session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teaser session")
	}

	now := s.now()
	session := engine.RestoreTeaserSession(rec)
	obs := session.Observe(now)
	d := session.Decision(now)
	d.TeaserSessionID = &rec.ID

	status := &TeaserStatus{
		SessionID:        rec.ID,
		PerformerID:      rec.PerformerID,
		State:            TeaserStateRunning,
		RemainingSeconds: obs.RemainingSeconds,
		StartedAt:        rec.StartedAt,
		ExpiresAt:        rec.ExpiresAt(),
		Decision:         d,
	}
	switch {
	case rec.Settled == models.SettleCancelled:
		status.State = TeaserStateCancelled
	case obs.State == engine.TeaserExpired:
		status.State = TeaserStateExpired
		s.settleExpired(ctx, rec)
	}
	return status, nil
}

// CancelTeaser ends the countdown because the viewer navigated away. No expiry
// event fires for a cancelled session; cancelling twice is a no-op.
func (s *Service) CancelTeaser(ctx context.Context, sessionID id.TeaserSessionID) error {
	rec, err := s.teasers.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "teaser session not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teaser session")
	}
	first, err := s.teasers.Cancel(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "teaser session not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel teaser session")
	}
	s.unwatch(sessionID)
	if !first {
		return nil
	}

	s.metrics.RecordTeaser("cancelled")
	s.emit(ctx, audit.Event{
		Timestamp:   s.now(),
		Action:      string(audit.EventTeaserCancelled),
		ViewerKey:   rec.ViewerKey,
		PerformerID: rec.PerformerID.String(),
		SessionID:   rec.ID.String(),
		RequestID:   requestcontext.RequestID(ctx),
	})
	return nil
}

// watch runs the session countdown in the background and settles the session
// when it expires.
func (s *Service) watch(rec *models.TeaserRecord) {
	if s.ticks == nil {
		return
	}
	s.watchMu.Lock()
	if s.closed {
		s.watchMu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.rootCtx)
	s.watchers[rec.ID] = cancel
	s.wg.Add(1)
	s.watchMu.Unlock()
	s.metrics.AddWatchers(1)

	record := *rec
	go func() {
		defer s.wg.Done()
		defer s.metrics.AddWatchers(-1)
		defer s.unwatch(record.ID)

		ticks, stop := s.ticks()
		defer stop()
		session := engine.RestoreTeaserSession(&record)
		_ = session.Run(ctx, ticks, nil, func() {
			s.settleExpired(context.WithoutCancel(ctx), &record)
		})
	}()
}

func (s *Service) unwatch(sessionID id.TeaserSessionID) {
	s.watchMu.Lock()
	cancel, ok := s.watchers[sessionID]
	delete(s.watchers, sessionID)
	s.watchMu.Unlock()
	if ok {
		cancel()
	}
}

package engine

import (
	"context"
	"math"
	"sync"
	"time"

	"eyecandy/internal/access/models"
	dErrors "eyecandy/pkg/domain-errors"
)

// TeaserState is the countdown state.
type TeaserState int

const (
	TeaserRunning TeaserState = iota
	TeaserExpired
)

func (s TeaserState) String() string {
	if s == TeaserExpired {
		return "expired"
	}
	return "running"
}

// Observation is a point-in-time view of a teaser session.
type Observation struct {
	State            TeaserState
	RemainingSeconds int
}

// TeaserSession is the countdown for one granted teaser. Expiry is decided by
// comparing the wall clock with StartedAt+Duration; the remaining seconds are
// derived on every observation, so a stalled tick source cannot extend it.
type TeaserSession struct {
	startedAt     time.Time
	duration      time.Duration
	expiryMessage string

	expireOnce sync.Once
}

// NewTeaserSession starts a session for an active policy.
func NewTeaserSession(startedAt time.Time, policy *models.TeaserPolicy) (*TeaserSession, error) {
	if !policy.Active() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "teaser session requires an enabled policy with a positive duration")
	}
	return &TeaserSession{
		startedAt:     startedAt,
		duration:      policy.Duration(),
		expiryMessage: policy.ExpiryMessage,
	}, nil
}

// RestoreTeaserSession rebuilds a session from its stored record.
func RestoreTeaserSession(rec *models.TeaserRecord) *TeaserSession {
	return &TeaserSession{
		startedAt:     rec.StartedAt,
		duration:      rec.Duration,
		expiryMessage: rec.ExpiryMessage,
	}
}

// StartedAt returns when the teaser was granted.
func (s *TeaserSession) StartedAt() time.Time { return s.startedAt }

// Duration returns the full preview length taken from the policy.
func (s *TeaserSession) Duration() time.Duration { return s.duration }

// ExpiresAt returns the instant the session stops granting teaser access.
func (s *TeaserSession) ExpiresAt() time.Time { return s.startedAt.Add(s.duration) }

// ExpiryMessage returns the performer's message shown once the teaser ends.
func (s *TeaserSession) ExpiryMessage() string { return s.expiryMessage }

// Observe reports the state at now. Remaining seconds round up so a running
// session never shows zero, and never go negative once expired.
func (s *TeaserSession) Observe(now time.Time) Observation {
	left := s.ExpiresAt().Sub(now)
	if left <= 0 {
		return Observation{State: TeaserExpired, RemainingSeconds: 0}
	}
	return Observation{
		State:            TeaserRunning,
		RemainingSeconds: int(math.Ceil(left.Seconds())),
	}
}

// Decision returns the access decision at now: teaser access while running,
// teaser_expired afterwards. Rule matching is not repeated.
func (s *TeaserSession) Decision(now time.Time) models.Decision {
	obs := s.Observe(now)
	if obs.State == TeaserRunning {
		d := Teaser(obs.RemainingSeconds, s.expiryMessage)
		d.DecidedBy = StageTeaser
		return d
	}
	d := deny(models.ReasonTeaserExpired, TeaserMessage(s.expiryMessage))
	d.DecidedBy = StageTeaser
	return d
}

// Run drives the countdown from a tick source. Each tick re-derives the state
// from the tick's timestamp. onTick receives running observations; onExpired
// fires at most once per session, however many ticks or Run calls follow.
// Run returns nil after expiry or when ticks is closed, and ctx.Err() when the
// countdown is abandoned, in which case no expiry signal fires.
func (s *TeaserSession) Run(ctx context.Context, ticks <-chan time.Time, onTick func(Observation), onExpired func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			obs := s.Observe(now)
			if obs.State == TeaserExpired {
				s.expireOnce.Do(func() {
					if onExpired != nil {
						onExpired()
					}
				})
				return nil
			}
			if onTick != nil {
				onTick(obs)
			}
		}
	}
}

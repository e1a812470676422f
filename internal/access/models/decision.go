package models

import (
	"fmt"
	"time"

	id "eyecandy/pkg/domain"
)

// Reason is the closed set of decision outcomes.
type Reason string

const (
	ReasonNone                 Reason = "none"
	ReasonLocationBlocked      Reason = "location_blocked"
	ReasonUserBlocked          Reason = "user_blocked"
	ReasonSubscriptionRequired Reason = "subscription_required"
	ReasonTeaserExpired        Reason = "teaser_expired"
	ReasonError                Reason = "error"
)

// AccessLevel is how much of the profile the viewer may see.
type AccessLevel string

const (
	AccessFull   AccessLevel = "full"
	AccessTeaser AccessLevel = "teaser"
	AccessNone   AccessLevel = "none"
)

// Decision is the outcome of one profile-view attempt.
type Decision struct {
	Allowed                bool
	Reason                 Reason
	AccessLevel            AccessLevel
	TeaserRemainingSeconds *int
	Message                string
	SubscriptionRequired   *SubscriptionType
	TeaserSessionID        *id.TeaserSessionID

	// DecidedBy names the pipeline stage that produced the decision.
	DecidedBy string
}

// CheckConsistency verifies the structural guarantees every decision upholds:
// allowed decisions carry no denial reason, denials carry one, and teaser
// access always has time remaining.
func (d Decision) CheckConsistency() error {
	if d.Allowed {
		if d.Reason != ReasonNone {
			return fmt.Errorf("allowed decision carries denial reason %q", d.Reason)
		}
		if d.AccessLevel == AccessNone {
			return fmt.Errorf("allowed decision has access level none")
		}
	} else {
		if d.Reason == ReasonNone {
			return fmt.Errorf("denied decision has no reason")
		}
		if d.AccessLevel != AccessNone {
			return fmt.Errorf("denied decision has access level %q", d.AccessLevel)
		}
	}
	if d.AccessLevel == AccessTeaser && (d.TeaserRemainingSeconds == nil || *d.TeaserRemainingSeconds <= 0) {
		return fmt.Errorf("teaser decision without remaining time")
	}
	return nil
}

// SettleState records how a teaser session ended, if it has.
type SettleState string

const (
	SettleNone      SettleState = ""
	SettleExpired   SettleState = "expired"
	SettleCancelled SettleState = "cancelled"
)

// TeaserRecord is the server-side record of a granted teaser. The remaining
// time is always derived from StartedAt and Duration.
type TeaserRecord struct {
	ID            id.TeaserSessionID
	ViewerKey     string
	PerformerID   id.PerformerID
	StartedAt     time.Time
	Duration      time.Duration
	ExpiryMessage string
	Settled       SettleState
}

// ExpiresAt is the instant the teaser stops granting access.
func (r *TeaserRecord) ExpiresAt() time.Time {
	return r.StartedAt.Add(r.Duration)
}

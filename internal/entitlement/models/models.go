// Package models describes paid access grants held by viewers.
package models

import (
	"time"

	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
)

// Kind is the commercial product an entitlement was bought as.
type Kind string

const (
	KindMonthly  Kind = "monthly"
	KindPerVisit Kind = "per_visit"
)

// Default validity applied when a grant carries no explicit expiry.
const (
	MonthlyValidity  = 30 * 24 * time.Hour
	PerVisitValidity = 24 * time.Hour
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMonthly, KindPerVisit:
		return k, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "entitlement kind must be one of monthly, per_visit")
	}
}

// DefaultValidity returns how long a grant of this kind lasts.
func (k Kind) DefaultValidity() time.Duration {
	if k == KindPerVisit {
		return PerVisitValidity
	}
	return MonthlyValidity
}

// Entitlement records that a viewer paid for access to one performer.
type Entitlement struct {
	ID          id.EntitlementID
	ViewerID    id.ViewerID
	PerformerID id.PerformerID
	Kind        Kind
	GrantedAt   time.Time
	ExpiresAt   *time.Time
	RevokedAt   *time.Time
}

// IsActive reports whether the entitlement grants access at now.
func (e *Entitlement) IsActive(now time.Time) bool {
	if e == nil || e.RevokedAt != nil {
		return false
	}
	if now.Before(e.GrantedAt) {
		return false
	}
	return e.ExpiresAt == nil || now.Before(*e.ExpiresAt)
}

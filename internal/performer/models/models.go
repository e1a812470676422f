// Package models holds performer-owned access configuration. Rule, block and
// teaser types are shared with the access engine.
package models

import (
	"time"

	accessmodels "eyecandy/internal/access/models"
	id "eyecandy/pkg/domain"
)

// AccessSettings is the account-level fallback applied when no location rule matches.
type AccessSettings struct {
	PerformerID             id.PerformerID
	DefaultSubscriptionType accessmodels.SubscriptionType
	UpdatedAt               time.Time
}

// DefaultAccessSettings returns the settings of a performer who never configured any.
func DefaultAccessSettings(performerID id.PerformerID) *AccessSettings {
	return &AccessSettings{
		PerformerID:             performerID,
		DefaultSubscriptionType: accessmodels.SubscriptionFree,
	}
}

// DefaultTeaserPolicy is reported for performers without a stored policy.
// It is disabled, so it never grants a teaser.
func DefaultTeaserPolicy() *accessmodels.TeaserPolicy {
	return &accessmodels.TeaserPolicy{Enabled: false, DurationSeconds: 60}
}

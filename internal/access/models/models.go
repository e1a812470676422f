// Package models holds the access decision domain: viewers, performer-authored
// rules and the decisions produced from them.
package models

import (
	"strings"
	"time"

	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
)

// ViewerType distinguishes authenticated principals from anonymous visitors.
type ViewerType string

const (
	ViewerMember    ViewerType = "member"
	ViewerPerformer ViewerType = "performer"
	ViewerAnonymous ViewerType = "anonymous"
)

// Viewer is the principal attempting to view a profile. Anonymous viewers
// carry no ID.
type Viewer struct {
	ID   *id.ViewerID
	Type ViewerType
}

// AnonymousViewer returns the viewer used when no bearer token was presented.
func AnonymousViewer() Viewer {
	return Viewer{Type: ViewerAnonymous}
}

// AuthenticatedViewer returns a viewer with an identity.
func AuthenticatedViewer(viewerID id.ViewerID, t ViewerType) Viewer {
	return Viewer{ID: &viewerID, Type: t}
}

// IsAnonymous reports whether the viewer has no identity.
func (v Viewer) IsAnonymous() bool {
	return v.ID == nil || v.ID.IsNil()
}

// GeoLocation is the viewer's resolved location. Any field may be empty when
// the provider could not resolve it.
type GeoLocation struct {
	Country    string
	State      string
	City       string
	PostalCode string
}

// Field returns the location component addressed by a matcher type.
func (l *GeoLocation) Field(t LocationType) string {
	if l == nil {
		return ""
	}
	switch t {
	case LocationCountry:
		return l.Country
	case LocationState:
		return l.State
	case LocationCity:
		return l.City
	case LocationZipCode:
		return l.PostalCode
	default:
		return ""
	}
}

// IsEmpty reports whether no component was resolved.
func (l *GeoLocation) IsEmpty() bool {
	return l == nil || (l.Country == "" && l.State == "" && l.City == "" && l.PostalCode == "")
}

// LocationType is the granularity a location rule matches on.
type LocationType string

const (
	LocationCountry LocationType = "country"
	LocationState   LocationType = "state"
	LocationCity    LocationType = "city"
	LocationZipCode LocationType = "zip_code"
)

// SpecificityOrder lists matcher types from most to least specific.
var SpecificityOrder = []LocationType{LocationZipCode, LocationCity, LocationState, LocationCountry}

// ParseLocationType validates a matcher type at a trust boundary.
func ParseLocationType(s string) (LocationType, error) {
	switch t := LocationType(s); t {
	case LocationCountry, LocationState, LocationCity, LocationZipCode:
		return t, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "location type must be one of country, state, city, zip_code")
	}
}

// SubscriptionType is the commercial gate a location resolves to.
type SubscriptionType string

const (
	SubscriptionFree     SubscriptionType = "free"
	SubscriptionMonthly  SubscriptionType = "monthly"
	SubscriptionPerVisit SubscriptionType = "per_visit"
	SubscriptionTeaser   SubscriptionType = "teaser"
)

// ParseSubscriptionType validates a subscription type at a trust boundary.
func ParseSubscriptionType(s string) (SubscriptionType, error) {
	switch t := SubscriptionType(s); t {
	case SubscriptionFree, SubscriptionMonthly, SubscriptionPerVisit, SubscriptionTeaser:
		return t, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "subscription type must be one of free, monthly, per_visit, teaser")
	}
}

// RequiresEntitlement reports whether viewers must hold a paid entitlement.
func (t SubscriptionType) RequiresEntitlement() bool {
	return t == SubscriptionMonthly || t == SubscriptionPerVisit
}

// LocationRule is a performer-authored allow or exclude policy for one location.
type LocationRule struct {
	ID               id.RuleID
	PerformerID      id.PerformerID
	Type             LocationType
	Value            string
	IsAllowed        bool
	SubscriptionType SubscriptionType
	CreatedAt        time.Time
}

// Matches reports whether the rule applies to the location. An unresolved
// location component never matches.
func (r LocationRule) Matches(loc *GeoLocation) bool {
	field := NormalizeLocationValue(loc.Field(r.Type))
	if field == "" {
		return false
	}
	return field == NormalizeLocationValue(r.Value)
}

// SameMatcher reports whether two rules target the same location.
func (r LocationRule) SameMatcher(other LocationRule) bool {
	return r.Type == other.Type && NormalizeLocationValue(r.Value) == NormalizeLocationValue(other.Value)
}

// NormalizeLocationValue folds case and surrounding whitespace so "US", "us "
// and "Us" compare equal.
func NormalizeLocationValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// TeaserPolicy configures the time-boxed preview for teaser locations.
type TeaserPolicy struct {
	Enabled         bool
	DurationSeconds int
	ExpiryMessage   string
	UpdatedAt       time.Time
}

// Active reports whether the policy can grant a teaser.
func (p *TeaserPolicy) Active() bool {
	return p != nil && p.Enabled && p.DurationSeconds > 0
}

// Duration returns the preview length.
func (p *TeaserPolicy) Duration() time.Duration {
	if p == nil {
		return 0
	}
	return time.Duration(p.DurationSeconds) * time.Second
}

// BlockReason records why a performer blocked a viewer. It is performer-private.
type BlockReason string

const (
	BlockHarassment            BlockReason = "harassment"
	BlockBadLanguage           BlockReason = "bad_language"
	BlockInappropriateBehavior BlockReason = "inappropriate_behavior"
	BlockSpam                  BlockReason = "spam"
	BlockOther                 BlockReason = "other"
)

// ParseBlockReason validates a block reason at a trust boundary.
func ParseBlockReason(s string) (BlockReason, error) {
	switch r := BlockReason(s); r {
	case BlockHarassment, BlockBadLanguage, BlockInappropriateBehavior, BlockSpam, BlockOther:
		return r, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid block reason")
	}
}

// BlockedUserEntry is a performer's block on one viewer.
type BlockedUserEntry struct {
	PerformerID   id.PerformerID
	BlockedUserID id.ViewerID
	Reason        BlockReason
	Notes         string
	CreatedAt     time.Time
}

// RuleSet is everything the engine needs from a performer's configuration.
type RuleSet struct {
	BlockedUsers            map[id.ViewerID]struct{}
	LocationRules           []LocationRule
	TeaserPolicy            *TeaserPolicy
	DefaultSubscriptionType SubscriptionType
}

// IsBlocked reports whether the viewer is in the blocked set.
func (rs *RuleSet) IsBlocked(viewerID id.ViewerID) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.BlockedUsers[viewerID]
	return ok
}

// DefaultSubscription returns the account-level subscription type, free when unset.
func (rs *RuleSet) DefaultSubscription() SubscriptionType {
	if rs == nil || rs.DefaultSubscriptionType == "" {
		return SubscriptionFree
	}
	return rs.DefaultSubscriptionType
}

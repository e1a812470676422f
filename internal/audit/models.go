package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Action    string

	// ViewerKey is the viewer ID for members or a pseudonymous hash for
	// anonymous viewers. Raw IPs never reach the audit trail.
	ViewerKey   string
	PerformerID string
	SessionID   string
	Decision    string
	Reason      string
	DecidedBy   string
	RequestID   string

	// ActorID names the admin caller on internal endpoints.
	ActorID string
}

type AuditEvent string

const (
	EventAccessEvaluated    AuditEvent = "access_evaluated"
	EventTeaserStarted      AuditEvent = "teaser_started"
	EventTeaserExpired      AuditEvent = "teaser_expired"
	EventTeaserCancelled    AuditEvent = "teaser_cancelled"
	EventUserBlocked        AuditEvent = "user_blocked"
	EventUserUnblocked      AuditEvent = "user_unblocked"
	EventRuleAdded          AuditEvent = "location_rule_added"
	EventRuleRemoved        AuditEvent = "location_rule_removed"
	EventTeaserPolicySet    AuditEvent = "teaser_policy_set"
	EventSettingsUpdated    AuditEvent = "settings_updated"
	EventEntitlementGranted AuditEvent = "entitlement_granted"
	EventEntitlementRevoked AuditEvent = "entitlement_revoked"
)

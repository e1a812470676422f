// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "eyecandy/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing ViewerID where PerformerID is expected.
type (
	ViewerID        uuid.UUID
	PerformerID     uuid.UUID
	RuleID          uuid.UUID
	TeaserSessionID uuid.UUID
	EntitlementID   uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseViewerID(s string) (ViewerID, error) {
	id, err := parseUUID(s, "viewer ID")
	return ViewerID(id), err
}

func ParsePerformerID(s string) (PerformerID, error) {
	id, err := parseUUID(s, "performer ID")
	return PerformerID(id), err
}

func ParseRuleID(s string) (RuleID, error) {
	id, err := parseUUID(s, "rule ID")
	return RuleID(id), err
}

func ParseTeaserSessionID(s string) (TeaserSessionID, error) {
	id, err := parseUUID(s, "teaser session ID")
	return TeaserSessionID(id), err
}

// Constructors for freshly minted identifiers.

func NewRuleID() RuleID                   { return RuleID(uuid.New()) }
func NewTeaserSessionID() TeaserSessionID { return TeaserSessionID(uuid.New()) }
func NewEntitlementID() EntitlementID     { return EntitlementID(uuid.New()) }

// String methods - for logging and debugging.

func (id ViewerID) String() string        { return uuid.UUID(id).String() }
func (id PerformerID) String() string     { return uuid.UUID(id).String() }
func (id RuleID) String() string          { return uuid.UUID(id).String() }
func (id TeaserSessionID) String() string { return uuid.UUID(id).String() }
func (id EntitlementID) String() string   { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id ViewerID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id PerformerID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id RuleID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id TeaserSessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EntitlementID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic.
// Nil UUIDs are rejected: every identifier crossing a trust boundary must name a real entity.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return id, nil
}

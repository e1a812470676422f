package handler

import (
	"time"

	accessmodels "eyecandy/internal/access/models"
	"eyecandy/internal/audit"
	"eyecandy/internal/performer/models"
)

type BlockedUserResponse struct {
	ViewerID  string    `json:"viewer_id"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type BlockedUsersResponse struct {
	BlockedUsers []BlockedUserResponse `json:"blocked_users"`
}

type LocationRuleResponse struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Value            string    `json:"value"`
	IsAllowed        bool      `json:"is_allowed"`
	SubscriptionType string    `json:"subscription_type"`
	CreatedAt        time.Time `json:"created_at"`
}

type LocationRulesResponse struct {
	LocationRules []LocationRuleResponse `json:"location_rules"`
}

type TeaserPolicyResponse struct {
	Enabled         bool       `json:"enabled"`
	DurationSeconds int        `json:"duration_seconds"`
	ExpiryMessage   string     `json:"expiry_message"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type SettingsResponse struct {
	DefaultSubscriptionType string     `json:"default_subscription_type"`
	UpdatedAt               *time.Time `json:"updated_at,omitempty"`
}

type ActivityEventResponse struct {
	OccurredAt time.Time `json:"occurred_at"`
	Action     string    `json:"action"`
	Decision   string    `json:"decision,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	DecidedBy  string    `json:"decided_by,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
}

type ActivityResponse struct {
	Events []ActivityEventResponse `json:"events"`
}

func toBlockedUserResponse(e accessmodels.BlockedUserEntry) BlockedUserResponse {
	return BlockedUserResponse{
		ViewerID:  e.BlockedUserID.String(),
		Reason:    string(e.Reason),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

func toLocationRuleResponse(r accessmodels.LocationRule) LocationRuleResponse {
	return LocationRuleResponse{
		ID:               r.ID.String(),
		Type:             string(r.Type),
		Value:            r.Value,
		IsAllowed:        r.IsAllowed,
		SubscriptionType: string(r.SubscriptionType),
		CreatedAt:        r.CreatedAt,
	}
}

func toTeaserPolicyResponse(p *accessmodels.TeaserPolicy) *TeaserPolicyResponse {
	return &TeaserPolicyResponse{
		Enabled:         p.Enabled,
		DurationSeconds: p.DurationSeconds,
		ExpiryMessage:   p.ExpiryMessage,
		UpdatedAt:       timePtr(p.UpdatedAt),
	}
}

func toSettingsResponse(s *models.AccessSettings) *SettingsResponse {
	return &SettingsResponse{
		DefaultSubscriptionType: string(s.DefaultSubscriptionType),
		UpdatedAt:               timePtr(s.UpdatedAt),
	}
}

// Viewer keys are deliberately left out; performers see what happened, not who.
func toActivityResponse(events []audit.Event) *ActivityResponse {
	out := make([]ActivityEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, ActivityEventResponse{
			OccurredAt: e.Timestamp,
			Action:     e.Action,
			Decision:   e.Decision,
			Reason:     e.Reason,
			DecidedBy:  e.DecidedBy,
			SessionID:  e.SessionID,
		})
	}
	return &ActivityResponse{Events: out}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

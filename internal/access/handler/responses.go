package handler

import (
	"time"

	"eyecandy/internal/access/models"
	"eyecandy/internal/access/service"
)

// AccessDecisionResponse is the decision returned for a profile view.
type AccessDecisionResponse struct {
	Allowed                bool    `json:"allowed"`
	Reason                 string  `json:"reason"`
	AccessLevel            string  `json:"access_level"`
	TeaserRemainingSeconds *int    `json:"teaser_remaining_seconds"`
	Message                string  `json:"message,omitempty"`
	SubscriptionRequired   *string `json:"subscription_required"`
	TeaserSessionID        *string `json:"teaser_session_id,omitempty"`
	DecidedBy              string  `json:"decided_by"`
}

type TeaserStatusResponse struct {
	SessionID        string                 `json:"session_id"`
	PerformerID      string                 `json:"performer_id"`
	State            string                 `json:"state"`
	RemainingSeconds int                    `json:"remaining_seconds"`
	StartedAt        time.Time              `json:"started_at"`
	ExpiresAt        time.Time              `json:"expires_at"`
	Decision         AccessDecisionResponse `json:"decision"`
}

func toDecisionResponse(d *models.Decision) AccessDecisionResponse {
	resp := AccessDecisionResponse{
		Allowed:                d.Allowed,
		Reason:                 string(d.Reason),
		AccessLevel:            string(d.AccessLevel),
		TeaserRemainingSeconds: d.TeaserRemainingSeconds,
		Message:                d.Message,
		DecidedBy:              d.DecidedBy,
	}
	if d.SubscriptionRequired != nil {
		sub := string(*d.SubscriptionRequired)
		resp.SubscriptionRequired = &sub
	}
	if d.TeaserSessionID != nil {
		sessionID := d.TeaserSessionID.String()
		resp.TeaserSessionID = &sessionID
	}
	return resp
}

func toTeaserStatusResponse(st *service.TeaserStatus) *TeaserStatusResponse {
	return &TeaserStatusResponse{
		SessionID:        st.SessionID.String(),
		PerformerID:      st.PerformerID.String(),
		State:            st.State,
		RemainingSeconds: st.RemainingSeconds,
		StartedAt:        st.StartedAt,
		ExpiresAt:        st.ExpiresAt,
		Decision:         toDecisionResponse(&st.Decision),
	}
}

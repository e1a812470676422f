package handler

import (
	dErrors "eyecandy/pkg/domain-errors"
	strutil "eyecandy/pkg/string"
	"eyecandy/pkg/validation"
)

// HTTP request DTOs. They are converted to service commands before processing.

type BlockUserRequest struct {
	ViewerID string `json:"viewer_id" validate:"required,uuid"`
	Reason   string `json:"reason" validate:"required,block_reason"`
	Notes    string `json:"notes" validate:"max=1000"`
}

func (r *BlockUserRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.TrimStrings(&r.ViewerID, &r.Notes)
	strutil.LowerTrim(&r.Reason)
}

func (r *BlockUserRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

type AddLocationRuleRequest struct {
	Type             string `json:"type" validate:"required,location_type"`
	Value            string `json:"value" validate:"notblank,max=100"`
	IsAllowed        *bool  `json:"is_allowed" validate:"required"`
	SubscriptionType string `json:"subscription_type" validate:"omitempty,subscription_type"`
}

func (r *AddLocationRuleRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.TrimStrings(&r.Value)
	strutil.LowerTrim(&r.Type, &r.SubscriptionType)
}

func (r *AddLocationRuleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

type SetTeaserPolicyRequest struct {
	Enabled         *bool  `json:"enabled" validate:"required"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0,max=3600"`
	ExpiryMessage   string `json:"expiry_message" validate:"max=280"`
}

func (r *SetTeaserPolicyRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.TrimStrings(&r.ExpiryMessage)
}

func (r *SetTeaserPolicyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

type UpdateSettingsRequest struct {
	DefaultSubscriptionType string `json:"default_subscription_type" validate:"required,subscription_type"`
}

func (r *UpdateSettingsRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.LowerTrim(&r.DefaultSubscriptionType)
}

func (r *UpdateSettingsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

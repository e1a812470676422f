package handler

import (
	"time"

	dErrors "eyecandy/pkg/domain-errors"
	strutil "eyecandy/pkg/string"
	"eyecandy/pkg/validation"
)

type GrantEntitlementRequest struct {
	ViewerID    string     `json:"viewer_id" validate:"required,uuid"`
	PerformerID string     `json:"performer_id" validate:"required,uuid"`
	Kind        string     `json:"kind" validate:"required,entitlement_kind"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func (r *GrantEntitlementRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.TrimStrings(&r.ViewerID, &r.PerformerID)
	strutil.LowerTrim(&r.Kind)
}

func (r *GrantEntitlementRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

type RevokeEntitlementRequest struct {
	ViewerID    string `json:"viewer_id" validate:"required,uuid"`
	PerformerID string `json:"performer_id" validate:"required,uuid"`
}

func (r *RevokeEntitlementRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.TrimStrings(&r.ViewerID, &r.PerformerID)
}

func (r *RevokeEntitlementRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

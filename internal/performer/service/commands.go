package service

import (
	"strings"

	accessmodels "eyecandy/internal/access/models"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/validation"
)

// BlockUserCommand blocks one viewer from a performer's profile.
type BlockUserCommand struct {
	PerformerID id.PerformerID
	ViewerID    id.ViewerID
	Reason      accessmodels.BlockReason
	Notes       string
}

func (c *BlockUserCommand) Validate() error {
	if c.PerformerID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	if c.ViewerID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "viewer_id is required")
	}
	if c.ViewerID.String() == c.PerformerID.String() {
		return dErrors.New(dErrors.CodeValidation, "performers cannot block themselves")
	}
	if _, err := accessmodels.ParseBlockReason(string(c.Reason)); err != nil {
		return err
	}
	c.Notes = strings.TrimSpace(c.Notes)
	return validation.CheckStringLength("notes", c.Notes, validation.MaxBlockNotesLength)
}

// AddLocationRuleCommand appends a rule to the performer's authored list.
type AddLocationRuleCommand struct {
	PerformerID      id.PerformerID
	Type             accessmodels.LocationType
	Value            string
	IsAllowed        bool
	SubscriptionType accessmodels.SubscriptionType
}

func (c *AddLocationRuleCommand) Validate() error {
	if c.PerformerID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	if _, err := accessmodels.ParseLocationType(string(c.Type)); err != nil {
		return err
	}
	c.Value = strings.TrimSpace(c.Value)
	if c.Value == "" {
		return dErrors.New(dErrors.CodeValidation, "value must not be blank")
	}
	if err := validation.CheckStringLength("value", c.Value, validation.MaxLocationValueLength); err != nil {
		return err
	}
	if c.SubscriptionType == "" {
		c.SubscriptionType = accessmodels.SubscriptionFree
	}
	_, err := accessmodels.ParseSubscriptionType(string(c.SubscriptionType))
	return err
}

// SetTeaserPolicyCommand replaces the performer's teaser policy.
type SetTeaserPolicyCommand struct {
	PerformerID     id.PerformerID
	Enabled         bool
	DurationSeconds int
	ExpiryMessage   string
}

func (c *SetTeaserPolicyCommand) Validate() error {
	if c.PerformerID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	if c.Enabled || c.DurationSeconds != 0 {
		if err := validation.CheckRange("duration_seconds", c.DurationSeconds, 1, validation.MaxTeaserDurationSeconds); err != nil {
			return err
		}
	}
	c.ExpiryMessage = strings.TrimSpace(c.ExpiryMessage)
	return validation.CheckStringLength("expiry_message", c.ExpiryMessage, validation.MaxExpiryMessageLength)
}

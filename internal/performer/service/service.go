// Package service implements performer-side authoring of access rules and
// assembles the rule set the access engine evaluates.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	accessmodels "eyecandy/internal/access/models"
	"eyecandy/internal/audit"
	performermetrics "eyecandy/internal/performer/metrics"
	"eyecandy/internal/performer/models"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/sentinel"
	"eyecandy/pkg/platform/validation"
)

type BlockStore interface {
	AddBlockedUser(ctx context.Context, entry *accessmodels.BlockedUserEntry, limit int) error
	RemoveBlockedUser(ctx context.Context, performerID id.PerformerID, viewerID id.ViewerID) error
	ListBlockedUsers(ctx context.Context, performerID id.PerformerID) ([]accessmodels.BlockedUserEntry, error)
	BlockedViewerIDs(ctx context.Context, performerID id.PerformerID) (map[id.ViewerID]struct{}, error)
}

type RuleStore interface {
	AddLocationRule(ctx context.Context, rule *accessmodels.LocationRule, limit int) error
	RemoveLocationRule(ctx context.Context, performerID id.PerformerID, ruleID id.RuleID) error
	ListLocationRules(ctx context.Context, performerID id.PerformerID) ([]accessmodels.LocationRule, error)
}

type PolicyStore interface {
	FindTeaserPolicy(ctx context.Context, performerID id.PerformerID) (*accessmodels.TeaserPolicy, error)
	SaveTeaserPolicy(ctx context.Context, performerID id.PerformerID, policy *accessmodels.TeaserPolicy) error
	FindSettings(ctx context.Context, performerID id.PerformerID) (*models.AccessSettings, error)
	SaveSettings(ctx context.Context, settings *models.AccessSettings) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service orchestrates performer access configuration.
type Service struct {
	blocks   BlockStore
	rules    RuleStore
	policies PolicyStore
	logger   *slog.Logger
	auditor  *auditEmitter
	metrics  *performermetrics.Metrics
	now      func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor.publisher = publisher
	}
}

func WithMetrics(m *performermetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(blocks BlockStore, rules RuleStore, policies PolicyStore, opts ...Option) *Service {
	s := &Service{
		blocks:   blocks,
		rules:    rules,
		policies: policies,
		auditor:  &auditEmitter{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.auditor.logger = s.logger
	return s
}

// AccessRules assembles the rule set evaluated for every profile view.
func (s *Service) AccessRules(ctx context.Context, performerID id.PerformerID) (*accessmodels.RuleSet, error) {
	if performerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveRuleSetLoad(time.Since(start).Seconds())
		}
	}()

	blocked, err := s.blocks.BlockedViewerIDs(ctx, performerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load blocked users")
	}
	rules, err := s.rules.ListLocationRules(ctx, performerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load location rules")
	}
	policy, err := s.policies.FindTeaserPolicy(ctx, performerID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teaser policy")
	}
	settings, err := s.settings(ctx, performerID)
	if err != nil {
		return nil, err
	}

	return &accessmodels.RuleSet{
		BlockedUsers:            blocked,
		LocationRules:           rules,
		TeaserPolicy:            policy,
		DefaultSubscriptionType: settings.DefaultSubscriptionType,
	}, nil
}

// BlockUser adds a viewer to the performer's block list. Blocking the same
// viewer twice is a conflict.
func (s *Service) BlockUser(ctx context.Context, cmd *BlockUserCommand) (*accessmodels.BlockedUserEntry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	entry := &accessmodels.BlockedUserEntry{
		PerformerID:   cmd.PerformerID,
		BlockedUserID: cmd.ViewerID,
		Reason:        cmd.Reason,
		Notes:         cmd.Notes,
		CreatedAt:     s.now(),
	}
	if err := s.blocks.AddBlockedUser(ctx, entry, validation.MaxBlockedUsers); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "viewer is already blocked")
		case errors.Is(err, sentinel.ErrLimitReached):
			return nil, dErrors.New(dErrors.CodePolicyViolation, "blocked user limit reached")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to block user")
	}

	s.auditor.emit(ctx, audit.EventUserBlocked, cmd.PerformerID,
		"viewer_id", cmd.ViewerID.String(),
		"reason", string(cmd.Reason),
	)
	s.incrementChange("block")
	return entry, nil
}

func (s *Service) UnblockUser(ctx context.Context, performerID id.PerformerID, viewerID id.ViewerID) error {
	if performerID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	if err := s.blocks.RemoveBlockedUser(ctx, performerID, viewerID); err != nil {
		return wrapStoreErr(err, "blocked user not found", "failed to unblock user")
	}
	s.auditor.emit(ctx, audit.EventUserUnblocked, performerID,
		"viewer_id", viewerID.String(),
	)
	s.incrementChange("unblock")
	return nil
}

func (s *Service) ListBlockedUsers(ctx context.Context, performerID id.PerformerID) ([]accessmodels.BlockedUserEntry, error) {
	if performerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	entries, err := s.blocks.ListBlockedUsers(ctx, performerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list blocked users")
	}
	return entries, nil
}

// AddLocationRule appends a rule. Values are trimmed; a rule with the same
// matcher on the same list is a conflict.
func (s *Service) AddLocationRule(ctx context.Context, cmd *AddLocationRuleCommand) (*accessmodels.LocationRule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	rule := &accessmodels.LocationRule{
		ID:               id.NewRuleID(),
		PerformerID:      cmd.PerformerID,
		Type:             cmd.Type,
		Value:            cmd.Value,
		IsAllowed:        cmd.IsAllowed,
		SubscriptionType: cmd.SubscriptionType,
		CreatedAt:        s.now(),
	}
	if err := s.rules.AddLocationRule(ctx, rule, validation.MaxLocationRules); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "a rule for this location already exists")
		case errors.Is(err, sentinel.ErrLimitReached):
			return nil, dErrors.New(dErrors.CodePolicyViolation, "location rule limit reached")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add location rule")
	}

	s.auditor.emit(ctx, audit.EventRuleAdded, cmd.PerformerID,
		"rule_id", rule.ID.String(),
		"location_type", string(rule.Type),
		"is_allowed", rule.IsAllowed,
	)
	s.incrementChange("location_rule_add")
	return rule, nil
}

func (s *Service) RemoveLocationRule(ctx context.Context, performerID id.PerformerID, ruleID id.RuleID) error {
	if performerID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	if err := s.rules.RemoveLocationRule(ctx, performerID, ruleID); err != nil {
		return wrapStoreErr(err, "location rule not found", "failed to remove location rule")
	}
	s.auditor.emit(ctx, audit.EventRuleRemoved, performerID,
		"rule_id", ruleID.String(),
	)
	s.incrementChange("location_rule_remove")
	return nil
}

func (s *Service) ListLocationRules(ctx context.Context, performerID id.PerformerID) ([]accessmodels.LocationRule, error) {
	if performerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	rules, err := s.rules.ListLocationRules(ctx, performerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list location rules")
	}
	return rules, nil
}

// TeaserPolicy returns the stored policy, or a disabled default.
func (s *Service) TeaserPolicy(ctx context.Context, performerID id.PerformerID) (*accessmodels.TeaserPolicy, error) {
	if performerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	policy, err := s.policies.FindTeaserPolicy(ctx, performerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.DefaultTeaserPolicy(), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teaser policy")
	}
	return policy, nil
}

// SetTeaserPolicy replaces the teaser policy. An enabled policy needs a
// duration between 1 second and 1 hour; a disabled one keeps the previous
// duration when none is given.
func (s *Service) SetTeaserPolicy(ctx context.Context, cmd *SetTeaserPolicyCommand) (*accessmodels.TeaserPolicy, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	duration := cmd.DurationSeconds
	if duration == 0 {
		current, err := s.TeaserPolicy(ctx, cmd.PerformerID)
		if err != nil {
			return nil, err
		}
		duration = current.DurationSeconds
	}

	policy := &accessmodels.TeaserPolicy{
		Enabled:         cmd.Enabled,
		DurationSeconds: duration,
		ExpiryMessage:   cmd.ExpiryMessage,
		UpdatedAt:       s.now(),
	}
	if err := s.policies.SaveTeaserPolicy(ctx, cmd.PerformerID, policy); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save teaser policy")
	}

	s.auditor.emit(ctx, audit.EventTeaserPolicySet, cmd.PerformerID,
		"enabled", policy.Enabled,
		"duration_seconds", policy.DurationSeconds,
	)
	s.incrementChange("teaser_policy")
	return policy, nil
}

// Settings returns the account-level settings, defaulting to free access.
func (s *Service) Settings(ctx context.Context, performerID id.PerformerID) (*models.AccessSettings, error) {
	if performerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	return s.settings(ctx, performerID)
}

func (s *Service) settings(ctx context.Context, performerID id.PerformerID) (*models.AccessSettings, error) {
	settings, err := s.policies.FindSettings(ctx, performerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.DefaultAccessSettings(performerID), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load performer settings")
	}
	return settings, nil
}

func (s *Service) SetDefaultSubscription(ctx context.Context, performerID id.PerformerID, subscription accessmodels.SubscriptionType) (*models.AccessSettings, error) {
	if performerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "performer ID required")
	}
	if _, err := accessmodels.ParseSubscriptionType(string(subscription)); err != nil {
		return nil, err
	}
	settings := &models.AccessSettings{
		PerformerID:             performerID,
		DefaultSubscriptionType: subscription,
		UpdatedAt:               s.now(),
	}
	if err := s.policies.SaveSettings(ctx, settings); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save performer settings")
	}

	s.auditor.emit(ctx, audit.EventSettingsUpdated, performerID,
		"default_subscription_type", string(subscription),
	)
	s.incrementChange("settings")
	return settings, nil
}

func (s *Service) incrementChange(kind string) {
	if s.metrics != nil {
		s.metrics.IncrementChange(kind)
	}
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	accessmodels "eyecandy/internal/access/models"
	"eyecandy/internal/audit"
	"eyecandy/internal/performer/models"
	"eyecandy/internal/performer/service"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/httputil"
	"eyecandy/pkg/requestcontext"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// Service defines the performer configuration operations.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	BlockUser(ctx context.Context, cmd *service.BlockUserCommand) (*accessmodels.BlockedUserEntry, error)
	UnblockUser(ctx context.Context, performerID id.PerformerID, viewerID id.ViewerID) error
	ListBlockedUsers(ctx context.Context, performerID id.PerformerID) ([]accessmodels.BlockedUserEntry, error)
	AddLocationRule(ctx context.Context, cmd *service.AddLocationRuleCommand) (*accessmodels.LocationRule, error)
	RemoveLocationRule(ctx context.Context, performerID id.PerformerID, ruleID id.RuleID) error
	ListLocationRules(ctx context.Context, performerID id.PerformerID) ([]accessmodels.LocationRule, error)
	TeaserPolicy(ctx context.Context, performerID id.PerformerID) (*accessmodels.TeaserPolicy, error)
	SetTeaserPolicy(ctx context.Context, cmd *service.SetTeaserPolicyCommand) (*accessmodels.TeaserPolicy, error)
	Settings(ctx context.Context, performerID id.PerformerID) (*models.AccessSettings, error)
	SetDefaultSubscription(ctx context.Context, performerID id.PerformerID, sub accessmodels.SubscriptionType) (*models.AccessSettings, error)
}

// ActivityReader serves the audit trail of decisions about a performer's profile.
type ActivityReader interface {
	ListByPerformer(ctx context.Context, performerID string, limit int) ([]audit.Event, error)
}

type Handler struct {
	service  Service
	activity ActivityReader
	logger   *slog.Logger
}

func New(service Service, activity ActivityReader, logger *slog.Logger) *Handler {
	return &Handler{service: service, activity: activity, logger: logger}
}

// Register mounts the performer routes. Callers must wrap the router with
// authentication that only admits performer tokens.
func (h *Handler) Register(r chi.Router) {
	r.Get("/performers/me/blocked-users", h.HandleListBlockedUsers)
	r.Post("/performers/me/blocked-users", h.HandleBlockUser)
	r.Delete("/performers/me/blocked-users/{viewerID}", h.HandleUnblockUser)
	r.Get("/performers/me/location-rules", h.HandleListLocationRules)
	r.Post("/performers/me/location-rules", h.HandleAddLocationRule)
	r.Delete("/performers/me/location-rules/{ruleID}", h.HandleRemoveLocationRule)
	r.Get("/performers/me/teaser-policy", h.HandleGetTeaserPolicy)
	r.Put("/performers/me/teaser-policy", h.HandleSetTeaserPolicy)
	r.Get("/performers/me/settings", h.HandleGetSettings)
	r.Put("/performers/me/settings", h.HandleUpdateSettings)
	if h.activity != nil {
		r.Get("/performers/me/activity", h.HandleListActivity)
	}
}

// HandleBlockUser adds a viewer to the caller's blocked list.
func (h *Handler) HandleBlockUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[BlockUserRequest](w, r, h.logger)
	if !ok {
		return
	}
	viewerID, err := id.ParseViewerID(req.ViewerID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid viewer id"))
		return
	}

	entry, err := h.service.BlockUser(ctx, &service.BlockUserCommand{
		PerformerID: performerID,
		ViewerID:    viewerID,
		Reason:      accessmodels.BlockReason(req.Reason),
		Notes:       req.Notes,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "block user failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toBlockedUserResponse(*entry))
}

// HandleUnblockUser removes a viewer from the caller's blocked list.
func (h *Handler) HandleUnblockUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}
	viewerID, err := id.ParseViewerID(chi.URLParam(r, "viewerID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid viewer id"))
		return
	}

	if err := h.service.UnblockUser(ctx, performerID, viewerID); err != nil {
		h.logger.ErrorContext(ctx, "unblock user failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListBlockedUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	entries, err := h.service.ListBlockedUsers(ctx, performerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list blocked users failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	resp := &BlockedUsersResponse{BlockedUsers: make([]BlockedUserResponse, 0, len(entries))}
	for _, e := range entries {
		resp.BlockedUsers = append(resp.BlockedUsers, toBlockedUserResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleAddLocationRule authors a new allow or exclude rule.
func (h *Handler) HandleAddLocationRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[AddLocationRuleRequest](w, r, h.logger)
	if !ok {
		return
	}

	rule, err := h.service.AddLocationRule(ctx, &service.AddLocationRuleCommand{
		PerformerID:      performerID,
		Type:             accessmodels.LocationType(req.Type),
		Value:            req.Value,
		IsAllowed:        *req.IsAllowed,
		SubscriptionType: accessmodels.SubscriptionType(req.SubscriptionType),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "add location rule failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toLocationRuleResponse(*rule))
}

func (h *Handler) HandleRemoveLocationRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}
	ruleID, err := id.ParseRuleID(chi.URLParam(r, "ruleID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid rule id"))
		return
	}

	if err := h.service.RemoveLocationRule(ctx, performerID, ruleID); err != nil {
		h.logger.ErrorContext(ctx, "remove location rule failed", "error", err, "request_id", requestID, "rule_id", ruleID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListLocationRules returns rules in the order they were authored.
func (h *Handler) HandleListLocationRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	rules, err := h.service.ListLocationRules(ctx, performerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list location rules failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	resp := &LocationRulesResponse{LocationRules: make([]LocationRuleResponse, 0, len(rules))}
	for _, rule := range rules {
		resp.LocationRules = append(resp.LocationRules, toLocationRuleResponse(rule))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGetTeaserPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	policy, err := h.service.TeaserPolicy(ctx, performerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get teaser policy failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toTeaserPolicyResponse(policy))
}

// HandleSetTeaserPolicy replaces the caller's teaser policy. A zero
// duration keeps the current one.
func (h *Handler) HandleSetTeaserPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SetTeaserPolicyRequest](w, r, h.logger)
	if !ok {
		return
	}

	policy, err := h.service.SetTeaserPolicy(ctx, &service.SetTeaserPolicyCommand{
		PerformerID:     performerID,
		Enabled:         *req.Enabled,
		DurationSeconds: req.DurationSeconds,
		ExpiryMessage:   req.ExpiryMessage,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "set teaser policy failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toTeaserPolicyResponse(policy))
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	settings, err := h.service.Settings(ctx, performerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get settings failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateSettingsRequest](w, r, h.logger)
	if !ok {
		return
	}

	settings, err := h.service.SetDefaultSubscription(ctx, performerID, accessmodels.SubscriptionType(req.DefaultSubscriptionType))
	if err != nil {
		h.logger.ErrorContext(ctx, "update settings failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// HandleListActivity returns the newest audit events for the caller's profile.
func (h *Handler) HandleListActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, ok := h.performerFrom(w, r)
	if !ok {
		return
	}

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxActivityLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be between 1 and "+strconv.Itoa(maxActivityLimit)))
			return
		}
		limit = n
	}

	events, err := h.activity.ListByPerformer(ctx, performerID.String(), limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list activity failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load activity"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toActivityResponse(events))
}

// performerFrom resolves the authenticated performer. Performer accounts use
// the same identifier for their viewer and performer identities.
func (h *Handler) performerFrom(w http.ResponseWriter, r *http.Request) (id.PerformerID, bool) {
	viewer, ok := requestcontext.ViewerFrom(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.PerformerID{}, false
	}
	return id.PerformerID(viewer.ID), true
}

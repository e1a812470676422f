// Package handler exposes entitlement grants to the payment collaborator.
// Routes are internal and sit behind the admin token middleware.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"eyecandy/internal/entitlement/models"
	"eyecandy/internal/entitlement/service"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/httputil"
	"eyecandy/pkg/requestcontext"
)

type Service interface {
	Grant(ctx context.Context, cmd *service.GrantCommand) (*models.Entitlement, error)
	Revoke(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID) error
}

type EntitlementResponse struct {
	ID          string     `json:"id"`
	ViewerID    string     `json:"viewer_id"`
	PerformerID string     `json:"performer_id"`
	Kind        string     `json:"kind"`
	GrantedAt   time.Time  `json:"granted_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/internal/entitlements", h.HandleGrant)
	r.Delete("/internal/entitlements", h.HandleRevoke)
}

func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GrantEntitlementRequest](w, r, h.logger)
	if !ok {
		return
	}
	viewerID, performerID, err := parsePair(req.ViewerID, req.PerformerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	e, err := h.service.Grant(ctx, &service.GrantCommand{
		ViewerID:    viewerID,
		PerformerID: performerID,
		Kind:        models.Kind(req.Kind),
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "grant entitlement failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &EntitlementResponse{
		ID:          e.ID.String(),
		ViewerID:    e.ViewerID.String(),
		PerformerID: e.PerformerID.String(),
		Kind:        string(e.Kind),
		GrantedAt:   e.GrantedAt,
		ExpiresAt:   e.ExpiresAt,
	})
}

func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RevokeEntitlementRequest](w, r, h.logger)
	if !ok {
		return
	}
	viewerID, performerID, err := parsePair(req.ViewerID, req.PerformerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Revoke(ctx, viewerID, performerID); err != nil {
		h.logger.ErrorContext(ctx, "revoke entitlement failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePair(viewer, performer string) (id.ViewerID, id.PerformerID, error) {
	viewerID, err := id.ParseViewerID(viewer)
	if err != nil {
		return id.ViewerID{}, id.PerformerID{}, dErrors.New(dErrors.CodeBadRequest, "invalid viewer id")
	}
	performerID, err := id.ParsePerformerID(performer)
	if err != nil {
		return id.ViewerID{}, id.PerformerID{}, dErrors.New(dErrors.CodeBadRequest, "invalid performer id")
	}
	return viewerID, performerID, nil
}

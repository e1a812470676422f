// Package handler serves profile access decisions and teaser session polling.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eyecandy/internal/access/models"
	"eyecandy/internal/access/service"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/httputil"
	"eyecandy/pkg/requestcontext"
)

type Service interface {
	Evaluate(ctx context.Context, req service.EvaluateRequest) (*models.Decision, error)
	TeaserStatus(ctx context.Context, sessionID id.TeaserSessionID) (*service.TeaserStatus, error)
	CancelTeaser(ctx context.Context, sessionID id.TeaserSessionID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the viewer-facing routes. Authentication is optional;
// callers wrap the router with auth.OptionalAuth.
func (h *Handler) Register(r chi.Router) {
	r.Post("/profiles/{performerID}/access", h.HandleEvaluate)
	r.Get("/teaser-sessions/{sessionID}", h.HandleTeaserStatus)
	r.Delete("/teaser-sessions/{sessionID}", h.HandleCancelTeaser)
}

// HandleEvaluate decides whether the caller may view the profile. Every
// structurally valid request gets 200 with the decision, denials included.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	performerID, err := id.ParsePerformerID(chi.URLParam(r, "performerID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid performer id"))
		return
	}

	decision, err := h.service.Evaluate(ctx, service.EvaluateRequest{
		Viewer:            viewerFrom(ctx),
		PerformerID:       performerID,
		ClientIP:          requestcontext.ClientIP(ctx),
		DeviceFingerprint: requestcontext.DeviceFingerprint(ctx),
		DeviceID:          requestcontext.DeviceID(ctx),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluate access failed", "error", err, "request_id", requestID, "performer_id", performerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toDecisionResponse(decision))
}

// HandleTeaserStatus is the authoritative teaser poll.
func (h *Handler) HandleTeaserStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID, err := id.ParseTeaserSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid teaser session id"))
		return
	}

	status, err := h.service.TeaserStatus(ctx, sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "teaser status failed", "error", err, "request_id", requestID, "session_id", sessionID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toTeaserStatusResponse(status))
}

// HandleCancelTeaser stops the countdown when the viewer navigates away.
func (h *Handler) HandleCancelTeaser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID, err := id.ParseTeaserSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid teaser session id"))
		return
	}

	if err := h.service.CancelTeaser(ctx, sessionID); err != nil {
		h.logger.ErrorContext(ctx, "cancel teaser failed", "error", err, "request_id", requestID, "session_id", sessionID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func viewerFrom(ctx context.Context) models.Viewer {
	v, ok := requestcontext.ViewerFrom(ctx)
	if !ok {
		return models.AnonymousViewer()
	}
	return models.AuthenticatedViewer(v.ID, models.ViewerType(v.Type))
}

package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"eyecandy/internal/access/handler/mocks"
	"eyecandy/internal/access/models"
	"eyecandy/internal/access/service"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	service     *mocks.MockService
	router      http.Handler
	performerID id.PerformerID
	viewerID    id.ViewerID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.performerID = id.PerformerID(uuid.New())
	s.viewerID = id.ViewerID(uuid.New())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithClientMetadata(r.Context(), "203.0.113.7", "test-agent")
			ctx = requestcontext.WithDeviceID(ctx, "device-1")
			ctx = requestcontext.WithDeviceFingerprint(ctx, "fp-1")
			if r.Header.Get("X-Test-Member") != "" {
				ctx = requestcontext.WithViewer(ctx, requestcontext.Viewer{ID: s.viewerID, Type: "member"})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	New(s.service, logger).Register(r)
	s.router = r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(method, path string, member bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if member {
		req.Header.Set("X-Test-Member", "1")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(v))
}

func (s *HandlerSuite) TestEvaluate() {
	path := "/profiles/" + s.performerID.String() + "/access"

	s.Run("anonymous viewer carries request metadata", func() {
		s.service.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req service.EvaluateRequest) (*models.Decision, error) {
				s.True(req.Viewer.IsAnonymous())
				s.Equal(s.performerID, req.PerformerID)
				s.Equal("203.0.113.7", req.ClientIP)
				s.Equal("fp-1", req.DeviceFingerprint)
				s.Equal("device-1", req.DeviceID)
				return &models.Decision{Allowed: true, Reason: models.ReasonNone, AccessLevel: models.AccessFull, DecidedBy: "subscription"}, nil
			})

		rec := s.do(http.MethodPost, path, false)

		s.Equal(http.StatusOK, rec.Code)
		var resp map[string]any
		s.decode(rec, &resp)
		s.Equal(true, resp["allowed"])
		s.Equal("full", resp["access_level"])
		s.Nil(resp["teaser_remaining_seconds"])
		s.Nil(resp["subscription_required"])
		s.NotContains(resp, "teaser_session_id")
	})

	s.Run("authenticated viewer is forwarded", func() {
		s.service.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req service.EvaluateRequest) (*models.Decision, error) {
				s.False(req.Viewer.IsAnonymous())
				s.Require().NotNil(req.Viewer.ID)
				s.Equal(s.viewerID, *req.Viewer.ID)
				s.Equal(models.ViewerType("member"), req.Viewer.Type)
				return &models.Decision{Reason: models.ReasonUserBlocked, AccessLevel: models.AccessNone, DecidedBy: "block"}, nil
			})

		rec := s.do(http.MethodPost, path, true)

		s.Equal(http.StatusOK, rec.Code)
		var resp AccessDecisionResponse
		s.decode(rec, &resp)
		s.False(resp.Allowed)
		s.Equal("user_blocked", resp.Reason)
		s.Equal("block", resp.DecidedBy)
	})

	s.Run("teaser decision exposes countdown and session", func() {
		remaining := 30
		sub := models.SubscriptionMonthly
		sessionID := id.TeaserSessionID(uuid.New())
		s.service.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(&models.Decision{
			Allowed:                true,
			Reason:                 models.ReasonNone,
			AccessLevel:            models.AccessTeaser,
			TeaserRemainingSeconds: &remaining,
			SubscriptionRequired:   &sub,
			TeaserSessionID:        &sessionID,
			DecidedBy:              "subscription",
		}, nil)

		rec := s.do(http.MethodPost, path, false)

		s.Equal(http.StatusOK, rec.Code)
		var resp AccessDecisionResponse
		s.decode(rec, &resp)
		s.Equal("teaser", resp.AccessLevel)
		s.Require().NotNil(resp.TeaserRemainingSeconds)
		s.Equal(30, *resp.TeaserRemainingSeconds)
		s.Require().NotNil(resp.SubscriptionRequired)
		s.Equal("monthly", *resp.SubscriptionRequired)
		s.Require().NotNil(resp.TeaserSessionID)
		s.Equal(sessionID.String(), *resp.TeaserSessionID)
	})

	s.Run("invalid performer id", func() {
		rec := s.do(http.MethodPost, "/profiles/not-a-uuid/access", false)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("service error", func() {
		s.service.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInternal, "boom"))

		rec := s.do(http.MethodPost, path, false)
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *HandlerSuite) TestTeaserStatus() {
	sessionID := id.TeaserSessionID(uuid.New())
	path := "/teaser-sessions/" + sessionID.String()

	s.Run("running session", func() {
		remaining := 12
		started := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		s.service.EXPECT().TeaserStatus(gomock.Any(), sessionID).Return(&service.TeaserStatus{
			SessionID:        sessionID,
			PerformerID:      s.performerID,
			State:            service.TeaserStateRunning,
			RemainingSeconds: remaining,
			StartedAt:        started,
			ExpiresAt:        started.Add(30 * time.Second),
			Decision: models.Decision{
				Allowed:                true,
				Reason:                 models.ReasonNone,
				AccessLevel:            models.AccessTeaser,
				TeaserRemainingSeconds: &remaining,
				DecidedBy:              "teaser_session",
			},
		}, nil)

		rec := s.do(http.MethodGet, path, false)

		s.Equal(http.StatusOK, rec.Code)
		var resp TeaserStatusResponse
		s.decode(rec, &resp)
		s.Equal("running", resp.State)
		s.Equal(12, resp.RemainingSeconds)
		s.Equal(s.performerID.String(), resp.PerformerID)
		s.Equal("teaser_session", resp.Decision.DecidedBy)
	})

	s.Run("unknown session", func() {
		s.service.EXPECT().TeaserStatus(gomock.Any(), sessionID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "teaser session not found"))

		rec := s.do(http.MethodGet, path, false)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed session id", func() {
		rec := s.do(http.MethodGet, "/teaser-sessions/nope", false)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestCancelTeaser() {
	sessionID := id.TeaserSessionID(uuid.New())
	path := "/teaser-sessions/" + sessionID.String()

	s.Run("cancels", func() {
		s.service.EXPECT().CancelTeaser(gomock.Any(), sessionID).Return(nil)

		rec := s.do(http.MethodDelete, path, false)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("unknown session", func() {
		s.service.EXPECT().CancelTeaser(gomock.Any(), sessionID).
			Return(dErrors.New(dErrors.CodeNotFound, "teaser session not found"))

		rec := s.do(http.MethodDelete, path, false)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

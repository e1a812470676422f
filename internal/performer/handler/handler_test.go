package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,ActivityReader

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	accessmodels "eyecandy/internal/access/models"
	"eyecandy/internal/audit"
	"eyecandy/internal/performer/handler/mocks"
	"eyecandy/internal/performer/models"
	"eyecandy/internal/performer/service"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	service     *mocks.MockService
	activity    *mocks.MockActivityReader
	router      http.Handler
	performerID id.PerformerID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.activity = mocks.NewMockActivityReader(s.ctrl)
	s.performerID = id.PerformerID(uuid.New())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	performer := requestcontext.Viewer{ID: id.ViewerID(s.performerID), Type: "performer"}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Test-Anonymous") != "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithViewer(r.Context(), performer)))
		})
	})
	New(s.service, s.activity, logger).Register(r)
	s.router = r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(v))
}

func (s *HandlerSuite) TestBlockUser() {
	viewerID := id.ViewerID(uuid.New())

	s.Run("maps request to command", func() {
		s.service.EXPECT().BlockUser(gomock.Any(), &service.BlockUserCommand{
			PerformerID: s.performerID,
			ViewerID:    viewerID,
			Reason:      "spam",
			Notes:       "keeps posting links",
		}).Return(&accessmodels.BlockedUserEntry{
			PerformerID:   s.performerID,
			BlockedUserID: viewerID,
			Reason:        accessmodels.BlockReason("spam"),
			Notes:         "keeps posting links",
			CreatedAt:     time.Now(),
		}, nil)

		rec := s.do(http.MethodPost, "/performers/me/blocked-users",
			`{"viewer_id":"`+viewerID.String()+`","reason":" SPAM ","notes":" keeps posting links "}`)
		s.Equal(http.StatusCreated, rec.Code)
		var resp BlockedUserResponse
		s.decode(rec, &resp)
		s.Equal(viewerID.String(), resp.ViewerID)
		s.Equal("spam", resp.Reason)
	})

	s.Run("rejects unknown reason before the service", func() {
		rec := s.do(http.MethodPost, "/performers/me/blocked-users",
			`{"viewer_id":"`+viewerID.String()+`","reason":"boredom"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects malformed viewer id", func() {
		rec := s.do(http.MethodPost, "/performers/me/blocked-users", `{"viewer_id":"nope","reason":"spam"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("conflict surfaces as 409", func() {
		s.service.EXPECT().BlockUser(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "viewer already blocked"))
		rec := s.do(http.MethodPost, "/performers/me/blocked-users",
			`{"viewer_id":"`+viewerID.String()+`","reason":"spam"}`)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("limit surfaces as 412", func() {
		s.service.EXPECT().BlockUser(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodePolicyViolation, "blocked user limit reached"))
		rec := s.do(http.MethodPost, "/performers/me/blocked-users",
			`{"viewer_id":"`+viewerID.String()+`","reason":"spam"}`)
		s.Equal(http.StatusPreconditionFailed, rec.Code)
	})
}

func (s *HandlerSuite) TestUnblockUser() {
	viewerID := id.ViewerID(uuid.New())

	s.Run("returns 204", func() {
		s.service.EXPECT().UnblockUser(gomock.Any(), s.performerID, viewerID).Return(nil)
		rec := s.do(http.MethodDelete, "/performers/me/blocked-users/"+viewerID.String(), "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("not found surfaces as 404", func() {
		s.service.EXPECT().UnblockUser(gomock.Any(), s.performerID, viewerID).
			Return(dErrors.New(dErrors.CodeNotFound, "viewer is not blocked"))
		rec := s.do(http.MethodDelete, "/performers/me/blocked-users/"+viewerID.String(), "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("invalid id", func() {
		rec := s.do(http.MethodDelete, "/performers/me/blocked-users/not-a-uuid", "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestListBlockedUsers_EmptyIsArray() {
	s.service.EXPECT().ListBlockedUsers(gomock.Any(), s.performerID).Return(nil, nil)

	rec := s.do(http.MethodGet, "/performers/me/blocked-users", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"blocked_users":[]}`, rec.Body.String())
}

func (s *HandlerSuite) TestAddLocationRule() {
	s.Run("maps request to command", func() {
		ruleID := id.NewRuleID()
		s.service.EXPECT().AddLocationRule(gomock.Any(), &service.AddLocationRuleCommand{
			PerformerID:      s.performerID,
			Type:             "country",
			Value:            "US",
			IsAllowed:        false,
			SubscriptionType: "",
		}).Return(&accessmodels.LocationRule{
			ID:               ruleID,
			PerformerID:      s.performerID,
			Type:             accessmodels.LocationCountry,
			Value:            "US",
			SubscriptionType: accessmodels.SubscriptionFree,
		}, nil)

		rec := s.do(http.MethodPost, "/performers/me/location-rules",
			`{"type":"Country","value":" US ","is_allowed":false}`)
		s.Equal(http.StatusCreated, rec.Code)
		var resp LocationRuleResponse
		s.decode(rec, &resp)
		s.Equal(ruleID.String(), resp.ID)
		s.Equal("free", resp.SubscriptionType)
		s.False(resp.IsAllowed)
	})

	s.Run("is_allowed is required", func() {
		rec := s.do(http.MethodPost, "/performers/me/location-rules", `{"type":"country","value":"US"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("blank value rejected", func() {
		rec := s.do(http.MethodPost, "/performers/me/location-rules", `{"type":"city","value":"   ","is_allowed":true}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown type rejected", func() {
		rec := s.do(http.MethodPost, "/performers/me/location-rules", `{"type":"planet","value":"mars","is_allowed":true}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestRemoveLocationRule() {
	ruleID := id.NewRuleID()
	s.service.EXPECT().RemoveLocationRule(gomock.Any(), s.performerID, ruleID).Return(nil)

	rec := s.do(http.MethodDelete, "/performers/me/location-rules/"+ruleID.String(), "")
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerSuite) TestTeaserPolicy() {
	s.Run("get", func() {
		s.service.EXPECT().TeaserPolicy(gomock.Any(), s.performerID).Return(models.DefaultTeaserPolicy(), nil)
		rec := s.do(http.MethodGet, "/performers/me/teaser-policy", "")
		s.Equal(http.StatusOK, rec.Code)
		var resp TeaserPolicyResponse
		s.decode(rec, &resp)
		s.False(resp.Enabled)
		s.Equal(60, resp.DurationSeconds)
		s.Nil(resp.UpdatedAt)
	})

	s.Run("put", func() {
		s.service.EXPECT().SetTeaserPolicy(gomock.Any(), &service.SetTeaserPolicyCommand{
			PerformerID:     s.performerID,
			Enabled:         true,
			DurationSeconds: 30,
			ExpiryMessage:   "Subscribe to keep watching",
		}).Return(&accessmodels.TeaserPolicy{
			Enabled:         true,
			DurationSeconds: 30,
			ExpiryMessage:   "Subscribe to keep watching",
			UpdatedAt:       time.Now(),
		}, nil)
		rec := s.do(http.MethodPut, "/performers/me/teaser-policy",
			`{"enabled":true,"duration_seconds":30,"expiry_message":"Subscribe to keep watching"}`)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("duration above an hour rejected", func() {
		rec := s.do(http.MethodPut, "/performers/me/teaser-policy", `{"enabled":true,"duration_seconds":3601}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestSettings() {
	s.Run("put", func() {
		s.service.EXPECT().SetDefaultSubscription(gomock.Any(), s.performerID, accessmodels.SubscriptionMonthly).
			Return(&models.AccessSettings{PerformerID: s.performerID, DefaultSubscriptionType: accessmodels.SubscriptionMonthly}, nil)
		rec := s.do(http.MethodPut, "/performers/me/settings", `{"default_subscription_type":"monthly"}`)
		s.Equal(http.StatusOK, rec.Code)
		var resp SettingsResponse
		s.decode(rec, &resp)
		s.Equal("monthly", resp.DefaultSubscriptionType)
	})

	s.Run("invalid subscription rejected", func() {
		rec := s.do(http.MethodPut, "/performers/me/settings", `{"default_subscription_type":"lifetime"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestActivity() {
	s.Run("hides viewer keys", func() {
		s.activity.EXPECT().ListByPerformer(gomock.Any(), s.performerID.String(), 10).Return([]audit.Event{{
			Timestamp:   time.Now(),
			Action:      string(audit.EventAccessEvaluated),
			ViewerKey:   "anon:abc",
			PerformerID: s.performerID.String(),
			Decision:    "denied",
			Reason:      "location_blocked",
			DecidedBy:   "location",
		}}, nil)
		rec := s.do(http.MethodGet, "/performers/me/activity?limit=10", "")
		s.Equal(http.StatusOK, rec.Code)
		s.NotContains(rec.Body.String(), "anon:abc")
		var resp ActivityResponse
		s.decode(rec, &resp)
		s.Require().Len(resp.Events, 1)
		s.Equal("location_blocked", resp.Events[0].Reason)
	})

	s.Run("default limit", func() {
		s.activity.EXPECT().ListByPerformer(gomock.Any(), s.performerID.String(), defaultActivityLimit).Return(nil, nil)
		rec := s.do(http.MethodGet, "/performers/me/activity", "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"events":[]}`, rec.Body.String())
	})

	s.Run("limit out of range", func() {
		rec := s.do(http.MethodGet, "/performers/me/activity?limit=1000", "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("store failure hides detail", func() {
		s.activity.EXPECT().ListByPerformer(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
		rec := s.do(http.MethodGet, "/performers/me/activity", "")
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), "connection reset")
	})
}

func (s *HandlerSuite) TestRequiresAuthenticatedPerformer() {
	req := httptest.NewRequest(http.MethodGet, "/performers/me/blocked-users", nil)
	req.Header.Set("X-Test-Anonymous", "1")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

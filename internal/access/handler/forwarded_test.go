package handler

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"eyecandy/internal/access/models"
	"eyecandy/internal/access/service"
	servicemocks "eyecandy/internal/access/service/mocks"
	"eyecandy/internal/access/store"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/middleware/metadata"
)

func TestForwardedClientIPDrivesLocationGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	location := servicemocks.NewMockLocationPort(ctrl)
	rules := servicemocks.NewMockRulesPort(ctrl)
	entitlements := servicemocks.NewMockEntitlementPort(ctrl)
	performerID := id.PerformerID(uuid.New())

	// Only the proxy-appended address may reach geolocation.
	location.EXPECT().DetectLocation(gomock.Any(), "203.0.113.9").
		Return(&models.GeoLocation{Country: "FR"}, nil)
	rules.EXPECT().GetPerformerAccessRules(gomock.Any(), performerID).
		Return(&models.RuleSet{
			LocationRules: []models.LocationRule{
				{Type: models.LocationCountry, Value: "FR", IsAllowed: false},
			},
			DefaultSubscriptionType: models.SubscriptionFree,
		}, nil)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(location, rules, entitlements, store.NewMemory(time.Hour),
		service.WithLogger(logger),
		service.WithExpiryWatch(nil),
	)
	t.Cleanup(svc.Close)

	trusted, err := metadata.ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Use(metadata.NewMiddleware(metadata.Config{TrustedProxies: trusted}).Handler)
	New(svc, logger).Register(r)

	req := httptest.NewRequest(http.MethodPost, "/profiles/"+performerID.String()+"/access", nil)
	req.RemoteAddr = "10.0.0.5:443"
	req.Header.Set("X-Forwarded-For", "8.8.8.8, 203.0.113.9")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AccessDecisionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Allowed)
	assert.Equal(t, string(models.ReasonLocationBlocked), resp.Reason)
}

package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"eyecandy/internal/audit"
	entitlementmetrics "eyecandy/internal/entitlement/metrics"
	"eyecandy/internal/entitlement/models"
	"eyecandy/internal/entitlement/service/mocks"
	"eyecandy/internal/entitlement/store"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	store       *mocks.MockStore
	auditor     *mocks.MockAuditPublisher
	metrics     *entitlementmetrics.Metrics
	service     *Service
	viewerID    id.ViewerID
	performerID id.PerformerID
	now         time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.auditor = mocks.NewMockAuditPublisher(s.ctrl)
	s.metrics = entitlementmetrics.New(prometheus.NewRegistry())
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.viewerID = id.ViewerID(uuid.New())
	s.performerID = id.PerformerID(uuid.New())
	s.service = New(s.store,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.auditor),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestHasActive() {
	ctx := context.Background()

	s.Run("active entitlement", func() {
		s.store.EXPECT().FindActive(ctx, s.viewerID, s.performerID, s.now).Return(&models.Entitlement{}, nil)
		ok, err := s.service.HasActive(ctx, s.viewerID, s.performerID)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("none found is not an error", func() {
		s.store.EXPECT().FindActive(ctx, s.viewerID, s.performerID, s.now).Return(nil, sentinel.ErrNotFound)
		ok, err := s.service.HasActive(ctx, s.viewerID, s.performerID)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("store failure propagates as internal", func() {
		s.store.EXPECT().FindActive(ctx, s.viewerID, s.performerID, s.now).Return(nil, errors.New("db down"))
		_, err := s.service.HasActive(ctx, s.viewerID, s.performerID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("nil viewer never queries", func() {
		ok, err := s.service.HasActive(ctx, id.ViewerID{}, s.performerID)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Equal(1.0, promtest.ToFloat64(s.metrics.Checks.WithLabelValues("active")))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.Checks.WithLabelValues("error")))
}

func (s *ServiceSuite) TestGrant() {
	ctx := context.Background()

	s.Run("defaults expiry by kind and audits", func() {
		s.store.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *models.Entitlement) error {
			s.Equal(s.now.Add(models.PerVisitValidity), *e.ExpiresAt)
			s.Equal(s.now, e.GrantedAt)
			return nil
		})
		s.auditor.EXPECT().Emit(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ev audit.Event) error {
			s.Equal(string(audit.EventEntitlementGranted), ev.Action)
			s.Equal("viewer:"+s.viewerID.String(), ev.ViewerKey)
			s.Equal(s.performerID.String(), ev.PerformerID)
			return nil
		})

		e, err := s.service.Grant(ctx, &GrantCommand{ViewerID: s.viewerID, PerformerID: s.performerID, Kind: models.KindPerVisit})
		s.Require().NoError(err)
		s.False(e.ID.IsNil())
	})

	s.Run("explicit expiry kept", func() {
		expires := s.now.Add(time.Hour)
		s.store.EXPECT().Save(ctx, gomock.Any()).Return(nil)
		s.auditor.EXPECT().Emit(ctx, gomock.Any()).Return(errors.New("broker down"))

		e, err := s.service.Grant(ctx, &GrantCommand{ViewerID: s.viewerID, PerformerID: s.performerID, Kind: models.KindMonthly, ExpiresAt: &expires})
		s.Require().NoError(err, "audit failures never fail the grant")
		s.Equal(expires, *e.ExpiresAt)
	})

	s.Run("past expiry rejected", func() {
		past := s.now.Add(-time.Second)
		_, err := s.service.Grant(ctx, &GrantCommand{ViewerID: s.viewerID, PerformerID: s.performerID, Kind: models.KindMonthly, ExpiresAt: &past})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("teaser is not a purchasable kind", func() {
		_, err := s.service.Grant(ctx, &GrantCommand{ViewerID: s.viewerID, PerformerID: s.performerID, Kind: "teaser"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestRevoke() {
	ctx := context.Background()

	s.Run("revokes and audits", func() {
		s.store.EXPECT().RevokeActive(ctx, s.viewerID, s.performerID, s.now).Return(1, nil)
		s.auditor.EXPECT().Emit(ctx, gomock.Any()).Return(nil)
		s.NoError(s.service.Revoke(ctx, s.viewerID, s.performerID))
	})

	s.Run("nothing to revoke", func() {
		s.store.EXPECT().RevokeActive(ctx, s.viewerID, s.performerID, s.now).Return(0, nil)
		err := s.service.Revoke(ctx, s.viewerID, s.performerID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestServiceWithInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	svc := New(store.NewInMemoryStore(), WithClock(func() time.Time { return clock }))
	viewerID, performerID := id.ViewerID(uuid.New()), id.PerformerID(uuid.New())

	_, err := svc.Grant(ctx, &GrantCommand{ViewerID: viewerID, PerformerID: performerID, Kind: models.KindPerVisit})
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if ok, _ := svc.HasActive(ctx, viewerID, performerID); !ok {
		t.Fatal("expected active entitlement after grant")
	}

	clock = now.Add(models.PerVisitValidity)
	if ok, _ := svc.HasActive(ctx, viewerID, performerID); ok {
		t.Fatal("per-visit entitlement should lapse after its validity")
	}
}

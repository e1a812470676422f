//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"eyecandy/internal/entitlement/models"
	"eyecandy/internal/entitlement/store"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
	"eyecandy/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres    *containers.PostgresContainer
	store       *store.PostgresStore
	viewerID    id.ViewerID
	performerID id.PerformerID
	now         time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateModuleTables(context.Background()))
	s.viewerID = id.ViewerID(uuid.New())
	s.performerID = id.PerformerID(uuid.New())
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) grant(kind models.Kind, validity time.Duration) *models.Entitlement {
	e := &models.Entitlement{
		ID:          id.NewEntitlementID(),
		ViewerID:    s.viewerID,
		PerformerID: s.performerID,
		Kind:        kind,
		GrantedAt:   s.now.Add(-time.Minute),
	}
	if validity > 0 {
		expires := s.now.Add(validity)
		e.ExpiresAt = &expires
	}
	return e
}

func (s *PostgresStoreSuite) TestSaveAndFindActive() {
	ctx := context.Background()
	short := s.grant(models.KindPerVisit, time.Hour)
	long := s.grant(models.KindMonthly, 0)
	s.Require().NoError(s.store.Save(ctx, short))
	s.Require().NoError(s.store.Save(ctx, long))
	s.ErrorIs(s.store.Save(ctx, short), sentinel.ErrConflict)

	found, err := s.store.FindActive(ctx, s.viewerID, s.performerID, s.now)
	s.Require().NoError(err)
	s.Equal(long.ID, found.ID, "open-ended entitlement outlasts a dated one")
	s.Nil(found.ExpiresAt)
	s.Equal(models.KindMonthly, found.Kind)
}

func (s *PostgresStoreSuite) TestExpiredIsInactive() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, s.grant(models.KindPerVisit, time.Hour)))

	_, err := s.store.FindActive(ctx, s.viewerID, s.performerID, s.now.Add(2*time.Hour))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRevokeActive() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, s.grant(models.KindMonthly, 0)))

	n, err := s.store.RevokeActive(ctx, s.viewerID, s.performerID, s.now)
	s.Require().NoError(err)
	s.Equal(1, n)

	_, err = s.store.FindActive(ctx, s.viewerID, s.performerID, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

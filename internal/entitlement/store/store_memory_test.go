package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"eyecandy/internal/entitlement/models"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store       *InMemoryStore
	viewerID    id.ViewerID
	performerID id.PerformerID
	now         time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.viewerID = id.ViewerID(uuid.New())
	s.performerID = id.PerformerID(uuid.New())
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) grant(kind models.Kind, validity time.Duration) *models.Entitlement {
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

func (s *InMemoryStoreSuite) TestFindActive() {
	ctx := context.Background()

	_, err := s.store.FindActive(ctx, s.viewerID, s.performerID, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)

	short := s.grant(models.KindPerVisit, time.Hour)
	long := s.grant(models.KindMonthly, 48*time.Hour)
	s.Require().NoError(s.store.Save(ctx, short))
	s.Require().NoError(s.store.Save(ctx, long))
	s.ErrorIs(s.store.Save(ctx, short), sentinel.ErrConflict)

	found, err := s.store.FindActive(ctx, s.viewerID, s.performerID, s.now)
	s.Require().NoError(err)
	s.Equal(long.ID, found.ID, "longest lasting entitlement wins")

	_, err = s.store.FindActive(ctx, s.viewerID, s.performerID, s.now.Add(72*time.Hour))
	s.ErrorIs(err, sentinel.ErrNotFound, "expired entitlements are inactive")

	_, err = s.store.FindActive(ctx, s.viewerID, id.PerformerID(uuid.New()), s.now)
	s.ErrorIs(err, sentinel.ErrNotFound, "entitlements are per performer")
}

func (s *InMemoryStoreSuite) TestRevokeActive() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, s.grant(models.KindMonthly, 0)))
	s.Require().NoError(s.store.Save(ctx, s.grant(models.KindPerVisit, time.Hour)))

	n, err := s.store.RevokeActive(ctx, s.viewerID, s.performerID, s.now)
	s.Require().NoError(err)
	s.Equal(2, n)

	_, err = s.store.FindActive(ctx, s.viewerID, s.performerID, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)

	n, err = s.store.RevokeActive(ctx, s.viewerID, s.performerID, s.now)
	s.Require().NoError(err)
	s.Zero(n)
}

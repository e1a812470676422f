//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"eyecandy/internal/access/models"
	"eyecandy/internal/access/store"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
	"eyecandy/pkg/testutil"
	"eyecandy/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = store.NewRedis(s.redis.Client, time.Hour)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func record(viewerKey string, performerID id.PerformerID) *models.TeaserRecord {
	return &models.TeaserRecord{
		ID:            id.NewTeaserSessionID(),
		ViewerKey:     viewerKey,
		PerformerID:   performerID,
		StartedAt:     time.Now().UTC().Truncate(time.Millisecond),
		Duration:      30 * time.Second,
		ExpiryMessage: "Preview ended",
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	performerID := id.PerformerID(uuid.New())
	rec := record("anon:abc", performerID)
	s.Require().NoError(s.store.Save(ctx, rec))

	found, err := s.store.FindActive(ctx, "anon:abc", performerID)
	s.Require().NoError(err)
	s.Equal(rec.ID, found.ID)
	s.True(rec.StartedAt.Equal(found.StartedAt))
	s.Equal(rec.Duration, found.Duration)
	s.Equal(models.SettleNone, found.Settled)
}

func (s *RedisStoreSuite) TestSecondSaveConflicts() {
	ctx := context.Background()
	performerID := id.PerformerID(uuid.New())
	s.Require().NoError(s.store.Save(ctx, record("anon:abc", performerID)))

	loser := record("anon:abc", performerID)
	s.ErrorIs(s.store.Save(ctx, loser), sentinel.ErrConflict)

	_, err := s.store.FindByID(ctx, loser.ID)
	s.ErrorIs(err, sentinel.ErrNotFound, "losing document is removed")
}

func (s *RedisStoreSuite) TestConcurrentMarkExpired() {
	ctx := context.Background()
	rec := record("viewer:1", id.PerformerID(uuid.New()))
	s.Require().NoError(s.store.Save(ctx, rec))

	result := testutil.RunConcurrent(10, func(int) error {
		ok, err := s.store.MarkExpired(ctx, rec.ID)
		if err != nil {
			return err
		}
		if !ok {
			return sentinel.ErrConflict
		}
		return nil
	})
	s.Equal(int32(1), result.Successes)
	s.Equal(int32(9), result.Conflicts)

	found, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(models.SettleExpired, found.Settled)
}

func (s *RedisStoreSuite) TestSettleUnknownSession() {
	_, err := s.store.Cancel(context.Background(), id.NewTeaserSessionID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

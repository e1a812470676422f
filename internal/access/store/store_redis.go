package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"eyecandy/internal/access/models"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
)

const (
	teaserKeyPrefix        = "teaser:"
	teaserActiveKeyPrefix  = "teaser_active:"
	teaserSettledKeyPrefix = "teaser_settled:"
)

// teaserJSON is the stored document. Times are Unix nanoseconds.
type teaserJSON struct {
	ID            string `json:"id"`
	ViewerKey     string `json:"viewer_key"`
	PerformerID   string `json:"performer_id"`
	StartedAt     int64  `json:"started_at"`
	DurationMS    int64  `json:"duration_ms"`
	ExpiryMessage string `json:"expiry_message"`
}

func teaserToJSON(rec *models.TeaserRecord) *teaserJSON {
	return &teaserJSON{
		ID:            rec.ID.String(),
		ViewerKey:     rec.ViewerKey,
		PerformerID:   rec.PerformerID.String(),
		StartedAt:     rec.StartedAt.UnixNano(),
		DurationMS:    rec.Duration.Milliseconds(),
		ExpiryMessage: rec.ExpiryMessage,
	}
}

func teaserFromJSON(j *teaserJSON) (*models.TeaserRecord, error) {
	sessionID, err := uuid.Parse(j.ID)
	if err != nil {
		return nil, fmt.Errorf("parse teaser session id: %w", err)
	}
	performerID, err := uuid.Parse(j.PerformerID)
	if err != nil {
		return nil, fmt.Errorf("parse performer id: %w", err)
	}
	return &models.TeaserRecord{
		ID:            id.TeaserSessionID(sessionID),
		ViewerKey:     j.ViewerKey,
		PerformerID:   id.PerformerID(performerID),
		StartedAt:     time.Unix(0, j.StartedAt).UTC(),
		Duration:      time.Duration(j.DurationMS) * time.Millisecond,
		ExpiryMessage: j.ExpiryMessage,
	}, nil
}

// RedisStore persists teaser records in Redis so every instance sees the
// same session. Keys live for the teaser duration plus the retention window.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedis constructs a Redis-backed teaser store.
func NewRedis(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: retention}
}

func (s *RedisStore) teaserKey(sessionID id.TeaserSessionID) string {
	return teaserKeyPrefix + sessionID.String()
}

func (s *RedisStore) activeKey(viewerKey string, performerID id.PerformerID) string {
	return teaserActiveKeyPrefix + activeKey(viewerKey, performerID)
}

func (s *RedisStore) settledKey(sessionID id.TeaserSessionID) string {
	return teaserSettledKeyPrefix + sessionID.String()
}

// Save writes the document and then claims the viewer's active slot with
// SETNX. Losing the claim removes the document and returns ErrConflict.
func (s *RedisStore) Save(ctx context.Context, rec *models.TeaserRecord) error {
	if rec == nil {
		return fmt.Errorf("teaser record is required")
	}
	data, err := json.Marshal(teaserToJSON(rec))
	if err != nil {
		return fmt.Errorf("marshal teaser record: %w", err)
	}

	ttl := rec.Duration + s.retention
	key := s.teaserKey(rec.ID)
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("save teaser record: %w", err)
	}

	claimed, err := s.client.SetNX(ctx, s.activeKey(rec.ViewerKey, rec.PerformerID), rec.ID.String(), ttl).Result()
	if err != nil {
		_ = s.client.Del(ctx, key).Err()
		return fmt.Errorf("claim active teaser: %w", err)
	}
	if !claimed {
		_ = s.client.Del(ctx, key).Err()
		return sentinel.ErrConflict
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, sessionID id.TeaserSessionID) (*models.TeaserRecord, error) {
	pipe := s.client.Pipeline()
	docCmd := pipe.Get(ctx, s.teaserKey(sessionID))
	settledCmd := pipe.Get(ctx, s.settledKey(sessionID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("find teaser record: %w", err)
	}

	data, err := docCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find teaser record: %w", err)
	}
	var j teaserJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("unmarshal teaser record: %w", err)
	}
	rec, err := teaserFromJSON(&j)
	if err != nil {
		return nil, err
	}

	if state, err := settledCmd.Result(); err == nil {
		rec.Settled = models.SettleState(state)
	}
	return rec, nil
}

func (s *RedisStore) FindActive(ctx context.Context, viewerKey string, performerID id.PerformerID) (*models.TeaserRecord, error) {
	raw, err := s.client.Get(ctx, s.activeKey(viewerKey, performerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find active teaser: %w", err)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse active teaser id: %w", err)
	}
	return s.FindByID(ctx, id.TeaserSessionID(parsed))
}

func (s *RedisStore) MarkExpired(ctx context.Context, sessionID id.TeaserSessionID) (bool, error) {
	return s.settle(ctx, sessionID, models.SettleExpired)
}

func (s *RedisStore) Cancel(ctx context.Context, sessionID id.TeaserSessionID) (bool, error) {
	return s.settle(ctx, sessionID, models.SettleCancelled)
}

// settle records the terminal state with SETNX so exactly one caller across
// all instances observes the transition.
func (s *RedisStore) settle(ctx context.Context, sessionID id.TeaserSessionID, state models.SettleState) (bool, error) {
	ttl, err := s.client.PTTL(ctx, s.teaserKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("settle teaser: %w", err)
	}
	// go-redis reports a missing key as -2.
	if ttl == -2 {
		return false, sentinel.ErrNotFound
	}
	if ttl <= 0 {
		ttl = s.retention
	}

	ok, err := s.client.SetNX(ctx, s.settledKey(sessionID), string(state), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("settle teaser: %w", err)
	}
	return ok, nil
}

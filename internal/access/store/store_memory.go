// Package store persists server-side teaser session records.
package store

import (
	"context"
	"sync"
	"time"

	"eyecandy/internal/access/models"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
)

// Error Contract:
// - FindByID, FindActive, MarkExpired and Cancel return sentinel.ErrNotFound
//   for unknown or purged sessions
// - Save returns sentinel.ErrConflict when the viewer already has a session
//   for the performer
// - MarkExpired and Cancel return false when the session was already settled

// InMemoryStore keeps teaser records in process memory. Records are purged
// once they have been expired for longer than the retention window.
type InMemoryStore struct {
	mu        sync.RWMutex
	byID      map[id.TeaserSessionID]*models.TeaserRecord
	active    map[string]id.TeaserSessionID
	retention time.Duration
	now       func() time.Time
}

// MemoryOption configures the in-memory store.
type MemoryOption func(*InMemoryStore)

// WithClock overrides the clock used for retention checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemoryStore) {
		s.now = now
	}
}

// NewMemory constructs an empty in-memory teaser store.
func NewMemory(retention time.Duration, opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		byID:      make(map[id.TeaserSessionID]*models.TeaserRecord),
		active:    make(map[string]id.TeaserSessionID),
		retention: retention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func activeKey(viewerKey string, performerID id.PerformerID) string {
	return viewerKey + ":" + performerID.String()
}

// purged reports whether the record has outlived its retention window.
func (s *InMemoryStore) purged(rec *models.TeaserRecord) bool {
	return !s.now().Before(rec.ExpiresAt().Add(s.retention))
}

func (s *InMemoryStore) Save(_ context.Context, rec *models.TeaserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := activeKey(rec.ViewerKey, rec.PerformerID)
	if existingID, ok := s.active[key]; ok {
		if existing, found := s.byID[existingID]; found && !s.purged(existing) {
			return sentinel.ErrConflict
		}
		delete(s.byID, existingID)
	}

	copyRecord := *rec
	s.byID[rec.ID] = &copyRecord
	s.active[key] = rec.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, sessionID id.TeaserSessionID) (*models.TeaserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[sessionID]
	if !ok || s.purged(rec) {
		return nil, sentinel.ErrNotFound
	}
	copyRecord := *rec
	return &copyRecord, nil
}

func (s *InMemoryStore) FindActive(ctx context.Context, viewerKey string, performerID id.PerformerID) (*models.TeaserRecord, error) {
	s.mu.RLock()
	sessionID, ok := s.active[activeKey(viewerKey, performerID)]
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByID(ctx, sessionID)
}

func (s *InMemoryStore) MarkExpired(_ context.Context, sessionID id.TeaserSessionID) (bool, error) {
	return s.settle(sessionID, models.SettleExpired)
}

func (s *InMemoryStore) Cancel(_ context.Context, sessionID id.TeaserSessionID) (bool, error) {
	return s.settle(sessionID, models.SettleCancelled)
}

func (s *InMemoryStore) settle(sessionID id.TeaserSessionID, state models.SettleState) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[sessionID]
	if !ok || s.purged(rec) {
		return false, sentinel.ErrNotFound
	}
	if rec.Settled != models.SettleNone {
		return false, nil
	}
	rec.Settled = state
	return true, nil
}

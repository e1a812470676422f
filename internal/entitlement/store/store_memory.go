package store

import (
	"context"
	"sync"
	"time"

	"eyecandy/internal/entitlement/models"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
)

type pairKey struct {
	viewer    id.ViewerID
	performer id.PerformerID
}

// InMemoryStore keeps entitlements per (viewer, performer) pair.
type InMemoryStore struct {
	mu           sync.RWMutex
	entitlements map[pairKey][]models.Entitlement
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entitlements: make(map[pairKey][]models.Entitlement)}
}

func (s *InMemoryStore) Save(_ context.Context, e *models.Entitlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{viewer: e.ViewerID, performer: e.PerformerID}
	for _, existing := range s.entitlements[key] {
		if existing.ID == e.ID {
			return sentinel.ErrConflict
		}
	}
	s.entitlements[key] = append(s.entitlements[key], *e)
	return nil
}

// FindActive returns the active entitlement that lasts longest.
func (s *InMemoryStore) FindActive(_ context.Context, viewerID id.ViewerID, performerID id.PerformerID, now time.Time) (*models.Entitlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *models.Entitlement
	for _, e := range s.entitlements[pairKey{viewer: viewerID, performer: performerID}] {
		if !e.IsActive(now) {
			continue
		}
		if best == nil || outlasts(&e, best) {
			found := e
			best = &found
		}
	}
	if best == nil {
		return nil, sentinel.ErrNotFound
	}
	return best, nil
}

// RevokeActive marks every active entitlement for the pair revoked and
// returns how many were affected.
func (s *InMemoryStore) RevokeActive(_ context.Context, viewerID id.ViewerID, performerID id.PerformerID, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{viewer: viewerID, performer: performerID}
	revoked := 0
	for i := range s.entitlements[key] {
		e := &s.entitlements[key][i]
		if e.IsActive(now) {
			at := now
			e.RevokedAt = &at
			revoked++
		}
	}
	return revoked, nil
}

// outlasts reports whether a expires after b. Open-ended entitlements outlast
// everything.
func outlasts(a, b *models.Entitlement) bool {
	if a.ExpiresAt == nil {
		return b.ExpiresAt != nil
	}
	if b.ExpiresAt == nil {
		return false
	}
	return a.ExpiresAt.After(*b.ExpiresAt)
}

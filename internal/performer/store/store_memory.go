// Package store persists performer access configuration.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	accessmodels "eyecandy/internal/access/models"
	"eyecandy/internal/performer/models"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
)

type performerState struct {
	blocked  map[id.ViewerID]accessmodels.BlockedUserEntry
	rules    []accessmodels.LocationRule // authored order
	policy   *accessmodels.TeaserPolicy
	settings *models.AccessSettings
}

// InMemoryStore keeps performer configuration in process memory. It
// implements the block, rule and policy stores.
type InMemoryStore struct {
	mu         sync.RWMutex
	performers map[id.PerformerID]*performerState
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{performers: make(map[id.PerformerID]*performerState)}
}

// state must be called with mu held for writing.
func (s *InMemoryStore) state(performerID id.PerformerID) *performerState {
	st, ok := s.performers[performerID]
	if !ok {
		st = &performerState{blocked: make(map[id.ViewerID]accessmodels.BlockedUserEntry)}
		s.performers[performerID] = st
	}
	return st
}

func (s *InMemoryStore) AddBlockedUser(_ context.Context, entry *accessmodels.BlockedUserEntry, limit int) error {
	if entry == nil {
		return fmt.Errorf("block entry is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(entry.PerformerID)
	if _, exists := st.blocked[entry.BlockedUserID]; exists {
		return fmt.Errorf("viewer already blocked: %w", sentinel.ErrConflict)
	}
	if limit > 0 && len(st.blocked) >= limit {
		return fmt.Errorf("blocked users: %w", sentinel.ErrLimitReached)
	}
	st.blocked[entry.BlockedUserID] = *entry
	return nil
}

func (s *InMemoryStore) RemoveBlockedUser(_ context.Context, performerID id.PerformerID, viewerID id.ViewerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.performers[performerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if _, exists := st.blocked[viewerID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(st.blocked, viewerID)
	return nil
}

// ListBlockedUsers returns entries newest first.
func (s *InMemoryStore) ListBlockedUsers(_ context.Context, performerID id.PerformerID) ([]accessmodels.BlockedUserEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.performers[performerID]
	if !ok {
		return []accessmodels.BlockedUserEntry{}, nil
	}
	out := make([]accessmodels.BlockedUserEntry, 0, len(st.blocked))
	for _, entry := range st.blocked {
		out = append(out, entry)
	}
	slices.SortFunc(out, func(a, b accessmodels.BlockedUserEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) BlockedViewerIDs(_ context.Context, performerID id.PerformerID) (map[id.ViewerID]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.ViewerID]struct{})
	if st, ok := s.performers[performerID]; ok {
		for viewerID := range st.blocked {
			out[viewerID] = struct{}{}
		}
	}
	return out, nil
}

func (s *InMemoryStore) AddLocationRule(_ context.Context, rule *accessmodels.LocationRule, limit int) error {
	if rule == nil {
		return fmt.Errorf("location rule is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(rule.PerformerID)
	for _, existing := range st.rules {
		if existing.IsAllowed == rule.IsAllowed && existing.SameMatcher(*rule) {
			return fmt.Errorf("duplicate location rule: %w", sentinel.ErrConflict)
		}
	}
	if limit > 0 && len(st.rules) >= limit {
		return fmt.Errorf("location rules: %w", sentinel.ErrLimitReached)
	}
	st.rules = append(st.rules, *rule)
	return nil
}

func (s *InMemoryStore) RemoveLocationRule(_ context.Context, performerID id.PerformerID, ruleID id.RuleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.performers[performerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	idx := slices.IndexFunc(st.rules, func(r accessmodels.LocationRule) bool { return r.ID == ruleID })
	if idx < 0 {
		return sentinel.ErrNotFound
	}
	st.rules = slices.Delete(st.rules, idx, idx+1)
	return nil
}

// ListLocationRules returns rules in authored order.
func (s *InMemoryStore) ListLocationRules(_ context.Context, performerID id.PerformerID) ([]accessmodels.LocationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.performers[performerID]
	if !ok {
		return []accessmodels.LocationRule{}, nil
	}
	return slices.Clone(st.rules), nil
}

func (s *InMemoryStore) FindTeaserPolicy(_ context.Context, performerID id.PerformerID) (*accessmodels.TeaserPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.performers[performerID]
	if !ok || st.policy == nil {
		return nil, sentinel.ErrNotFound
	}
	policy := *st.policy
	return &policy, nil
}

func (s *InMemoryStore) SaveTeaserPolicy(_ context.Context, performerID id.PerformerID, policy *accessmodels.TeaserPolicy) error {
	if policy == nil {
		return fmt.Errorf("teaser policy is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *policy
	s.state(performerID).policy = &stored
	return nil
}

func (s *InMemoryStore) FindSettings(_ context.Context, performerID id.PerformerID) (*models.AccessSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.performers[performerID]
	if !ok || st.settings == nil {
		return nil, sentinel.ErrNotFound
	}
	settings := *st.settings
	return &settings, nil
}

func (s *InMemoryStore) SaveSettings(_ context.Context, settings *models.AccessSettings) error {
	if settings == nil {
		return fmt.Errorf("settings are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *settings
	s.state(settings.PerformerID).settings = &stored
	return nil
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlement_IsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(time.Hour)
	revoked := now.Add(-time.Minute)

	tests := []struct {
		name string
		e    *Entitlement
		want bool
	}{
		{"nil", nil, false},
		{"open ended", &Entitlement{GrantedAt: now.Add(-time.Hour)}, true},
		{"before expiry", &Entitlement{GrantedAt: now.Add(-time.Hour), ExpiresAt: &expires}, true},
		{"at expiry", &Entitlement{GrantedAt: now.Add(-2 * time.Hour), ExpiresAt: &now}, false},
		{"revoked", &Entitlement{GrantedAt: now.Add(-time.Hour), RevokedAt: &revoked}, false},
		{"granted in the future", &Entitlement{GrantedAt: now.Add(time.Minute)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.IsActive(now))
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("per_visit")
	require.NoError(t, err)
	assert.Equal(t, KindPerVisit, k)
	assert.Equal(t, PerVisitValidity, k.DefaultValidity())
	assert.Equal(t, MonthlyValidity, KindMonthly.DefaultValidity())

	_, err = ParseKind("teaser")
	assert.Error(t, err)
}

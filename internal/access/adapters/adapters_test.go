package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eyecandy/internal/access/models"
	entitlementmodels "eyecandy/internal/entitlement/models"
	entitlementservice "eyecandy/internal/entitlement/service"
	entitlementstore "eyecandy/internal/entitlement/store"
	"eyecandy/internal/geolocation"
	performerservice "eyecandy/internal/performer/service"
	performerstore "eyecandy/internal/performer/store"
	"eyecandy/internal/platform/config"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
)

func TestRulesAdapter(t *testing.T) {
	ctx := context.Background()
	store := performerstore.NewInMemoryStore()
	performers := performerservice.New(store, store, store)
	port := NewRulesAdapter(performers)

	performerID := id.PerformerID(uuid.New())
	viewerID := id.ViewerID(uuid.New())

	rules, err := port.GetPerformerAccessRules(ctx, performerID)
	require.NoError(t, err)
	assert.False(t, rules.IsBlocked(viewerID))
	assert.Equal(t, models.SubscriptionFree, rules.DefaultSubscription())

	_, err = performers.BlockUser(ctx, &performerservice.BlockUserCommand{
		PerformerID: performerID,
		ViewerID:    viewerID,
		Reason:      models.BlockSpam,
	})
	require.NoError(t, err)

	rules, err = port.GetPerformerAccessRules(ctx, performerID)
	require.NoError(t, err)
	assert.True(t, rules.IsBlocked(viewerID))
}

func TestEntitlementAdapter(t *testing.T) {
	ctx := context.Background()
	entitlements := entitlementservice.New(entitlementstore.NewInMemoryStore())
	port := NewEntitlementAdapter(entitlements)

	performerID := id.PerformerID(uuid.New())
	viewerID := id.ViewerID(uuid.New())

	ok, err := port.HasActiveEntitlement(ctx, viewerID, performerID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = entitlements.Grant(ctx, &entitlementservice.GrantCommand{
		ViewerID:    viewerID,
		PerformerID: performerID,
		Kind:        entitlementmodels.KindMonthly,
	})
	require.NoError(t, err)

	ok, err = port.HasActiveEntitlement(ctx, viewerID, performerID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocationAdapter_PrivateAddressIsUnresolvable(t *testing.T) {
	client := geolocation.New(config.GeolocationConfig{
		BaseURL:          "http://127.0.0.1:1",
		FailureThreshold: 5,
	})
	port := NewLocationAdapter(client)

	loc, err := port.DetectLocation(context.Background(), "10.0.0.8")
	require.Error(t, err)
	assert.Nil(t, loc)
	assert.True(t, errors.Is(err, sentinel.ErrUnresolvable))
}

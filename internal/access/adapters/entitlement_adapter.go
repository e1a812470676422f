package adapters

import (
	"context"

	"eyecandy/internal/access/ports"
	entitlementservice "eyecandy/internal/entitlement/service"
	id "eyecandy/pkg/domain"
)

// EntitlementAdapter implements ports.EntitlementPort with the entitlement
// service.
type EntitlementAdapter struct {
	entitlements *entitlementservice.Service
}

func NewEntitlementAdapter(entitlements *entitlementservice.Service) ports.EntitlementPort {
	return &EntitlementAdapter{entitlements: entitlements}
}

func (a *EntitlementAdapter) HasActiveEntitlement(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID) (bool, error) {
	return a.entitlements.HasActive(ctx, viewerID, performerID)
}

// Package ports defines the collaborators the access service consumes.
// Adapters in internal/access/adapters bind them to in-process services.
package ports

import (
	"context"

	"eyecandy/internal/access/models"
	id "eyecandy/pkg/domain"
)

// LocationPort resolves a client IP to a location. Implementations return
// sentinel.ErrUnresolvable when the address cannot be located (private or
// loopback ranges) and other errors when the provider failed.
type LocationPort interface {
	DetectLocation(ctx context.Context, clientIP string) (*models.GeoLocation, error)
}

// RulesPort loads a performer's access configuration. A performer that never
// authored rules has an empty rule set, not an error.
type RulesPort interface {
	GetPerformerAccessRules(ctx context.Context, performerID id.PerformerID) (*models.RuleSet, error)
}

// EntitlementPort reports whether a viewer has paid for access to a performer.
type EntitlementPort interface {
	HasActiveEntitlement(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID) (bool, error)
}

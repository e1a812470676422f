package adapters

import (
	"context"

	"eyecandy/internal/access/models"
	"eyecandy/internal/access/ports"
	performerservice "eyecandy/internal/performer/service"
	id "eyecandy/pkg/domain"
)

// RulesAdapter implements ports.RulesPort by calling the performer service
// directly. A remote adapter can replace it without touching the access
// service.
type RulesAdapter struct {
	performers *performerservice.Service
}

func NewRulesAdapter(performers *performerservice.Service) ports.RulesPort {
	return &RulesAdapter{performers: performers}
}

func (a *RulesAdapter) GetPerformerAccessRules(ctx context.Context, performerID id.PerformerID) (*models.RuleSet, error) {
	return a.performers.AccessRules(ctx, performerID)
}

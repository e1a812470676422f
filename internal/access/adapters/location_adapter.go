package adapters

import (
	"context"

	"eyecandy/internal/access/models"
	"eyecandy/internal/access/ports"
	"eyecandy/internal/geolocation"
)

// LocationAdapter implements ports.LocationPort with the in-process
// geolocation client.
type LocationAdapter struct {
	client *geolocation.Client
}

func NewLocationAdapter(client *geolocation.Client) ports.LocationPort {
	return &LocationAdapter{client: client}
}

func (a *LocationAdapter) DetectLocation(ctx context.Context, clientIP string) (*models.GeoLocation, error) {
	return a.client.Locate(ctx, clientIP)
}

package repositories

import (
	"context"

	"listing-pricer/internal/models"
)

// GeocodeCache remembers geocoding results per provider and query.
// Get returns nil, nil on a miss.
type GeocodeCache interface {
	Get(ctx context.Context, provider, query string) (*models.GeoCoordinate, error)
	Set(ctx context.Context, provider, query string, coord models.GeoCoordinate) error
}

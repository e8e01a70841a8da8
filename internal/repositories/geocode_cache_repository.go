package repositories

import (
	"context"
	"errors"
	"time"

	"listing-pricer/internal/models"
	"listing-pricer/pkg/cache"
)

type geocodeCache struct {
	store cache.CacheOperations
	ttl   time.Duration
}

// NewGeocodeCache stores successful geocoding results in store for ttl.
func NewGeocodeCache(store cache.CacheOperations, ttl time.Duration) GeocodeCache {
	return &geocodeCache{store: store, ttl: ttl}
}

func (c *geocodeCache) Get(ctx context.Context, provider, query string) (*models.GeoCoordinate, error) {
	var coord models.GeoCoordinate
	err := c.store.Get(ctx, cache.GeocodeKey(provider, query), &coord)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coord, nil
}

func (c *geocodeCache) Set(ctx context.Context, provider, query string, coord models.GeoCoordinate) error {
	return c.store.Set(ctx, cache.GeocodeKey(provider, query), coord, c.ttl)
}

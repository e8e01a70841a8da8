package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"listing-pricer/internal/models"
	"listing-pricer/pkg/cache"
)

type memoryStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.ttls[key] = expiration
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string, dest interface{}) error {
	b, ok := m.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func TestGeocodeCache(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	c := NewGeocodeCache(store, time.Hour)

	got, err := c.Get(ctx, "nominatim", "Fleminggatan 7, Stockholm, Sweden")
	if err != nil || got != nil {
		t.Fatalf("Get on empty cache = %v, %v", got, err)
	}

	if err := c.Set(ctx, "nominatim", "Fleminggatan 7, Stockholm, Sweden", models.GeoCoordinate{Lat: 59.33, Lon: 18.06}); err != nil {
		t.Fatal(err)
	}
	got, err = c.Get(ctx, "nominatim", "fleminggatan 7,  stockholm, sweden")
	if err != nil || got == nil || got.Lat != 59.33 || got.Lon != 18.06 {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if store.ttls[cache.GeocodeKey("nominatim", "Fleminggatan 7, Stockholm, Sweden")] != time.Hour {
		t.Error("TTL not applied")
	}
}

type failingStore struct{ *memoryStore }

func (failingStore) Get(context.Context, string, interface{}) error {
	return cache.NewCacheError("get", errors.New("down"), true)
}

func TestGeocodeCachePropagatesErrors(t *testing.T) {
	c := NewGeocodeCache(failingStore{newMemoryStore()}, time.Hour)
	if _, err := c.Get(context.Background(), "nominatim", "x"); err == nil {
		t.Fatal("expected an error")
	}
}

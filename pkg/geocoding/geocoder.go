// Package geocoding turns free-form addresses into WGS84 coordinates.
package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"listing-pricer/pkg/config"
)

// ErrNoResults is returned when the provider answered but matched nothing.
var ErrNoResults = errors.New("geocoding returned no results")

// Result is the first match for a query.
type Result struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name,omitempty"`
}

// Geocoder resolves a query to its best match.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
	Provider() string
}

// New builds the geocoder selected by the geocoder section of cfg.
func New(cfg *config.Config) (Geocoder, error) {
	timeout := cfg.GeocodeTimeout()
	switch strings.ToLower(cfg.Geocoder.Provider) {
	case "", "nominatim":
		return NewNominatimClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, timeout, cfg.Geocoder.RatePerSecond), nil
	case "google":
		if cfg.Geocoder.APIKey == "" {
			return nil, fmt.Errorf("google geocoder requires an API key")
		}
		return NewGoogleClient(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey, timeout), nil
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.Geocoder.Provider)
	}
}

func clientTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return time.Duration(config.DefaultGeocodeTimeout) * time.Second
	}
	return timeout
}

package services

import (
	"context"
	"strings"
	"time"

	"listing-pricer/internal/models"
	"listing-pricer/internal/repositories"
	"listing-pricer/internal/validators"
	"listing-pricer/pkg/geocoding"
	"listing-pricer/pkg/logger"
	"listing-pricer/pkg/metrics"
)

// AddressResolver geocodes listing addresses within a fixed region.
type AddressResolver struct {
	geocoder  geocoding.Geocoder
	cache     repositories.GeocodeCache
	validator validators.ListingValidator
	suffix    string
	timeout   time.Duration
}

// NewAddressResolver appends suffix to every address before geocoding. cache may be nil.
func NewAddressResolver(geocoder geocoding.Geocoder, cache repositories.GeocodeCache, suffix string, timeout time.Duration) *AddressResolver {
	return &AddressResolver{
		geocoder:  geocoder,
		cache:     cache,
		validator: validators.NewListingValidator(),
		suffix:    suffix,
		timeout:   timeout,
	}
}

// Resolve returns the coordinate of address, or nil when it cannot be geocoded
// within the timeout. Failures are logged and counted, never returned.
func (r *AddressResolver) Resolve(ctx context.Context, address string) *models.GeoCoordinate {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}
	query := address + r.suffix
	provider := r.geocoder.Provider()

	if r.cache != nil {
		coord, err := r.cache.Get(ctx, provider, query)
		if err != nil {
			logger.GlobalLogger.Warnf("geocode cache lookup failed for %q: %v", query, err)
		} else if coord != nil {
			metrics.GeocodeRequestsTotal.WithLabelValues(provider, "cache_hit").Inc()
			return coord
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := r.geocoder.Geocode(ctx, query)
	metrics.GeocodeDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := "error"
		if ctx.Err() == context.DeadlineExceeded {
			outcome = "timeout"
		}
		metrics.GeocodeRequestsTotal.WithLabelValues(provider, outcome).Inc()
		logger.GlobalLogger.Warnf("geocoding %q via %s failed: %v", query, provider, err)
		return nil
	}
	if err := r.validator.ValidateCoordinate(result.Lat, result.Lon); err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues(provider, "invalid").Inc()
		logger.GlobalLogger.Warnf("geocoding %q via %s: %v", query, provider, err)
		return nil
	}
	metrics.GeocodeRequestsTotal.WithLabelValues(provider, "success").Inc()

	coord := &models.GeoCoordinate{Lat: result.Lat, Lon: result.Lon}
	if r.cache != nil {
		// the request context may be nearly spent; the write gets its own budget
		cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.cache.Set(cacheCtx, provider, query, *coord); err != nil {
			logger.GlobalLogger.Warnf("geocode cache write failed for %q: %v", query, err)
		}
	}
	return coord
}

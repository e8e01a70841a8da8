package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_cache_hits_total",
			Help: "Total number of Redis cache hits",
		},
	)
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_cache_misses_total",
			Help: "Total number of Redis cache misses",
		},
	)
	RedisOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Duration of Redis operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	RedisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of failed Redis operations",
		},
		[]string{"operation"},
	)
	GeocodeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Geocoding lookups by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	GeocodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geocode_duration_seconds",
			Help:    "Duration of geocoding calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	NeighbourhoodLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neighbourhood_lookups_total",
			Help: "Point-in-polygon neighbourhood lookups by outcome",
		},
		[]string{"outcome"},
	)
	MalformedGeometriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "neighbourhood_malformed_geometries_total",
			Help: "Neighbourhood features skipped because their geometry could not be used",
		},
	)
	UnknownCategoryTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feature_unknown_category_total",
			Help: "Categorical values with no matching schema column",
		},
		[]string{"field"},
	)
	ModelPredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_predictions_total",
			Help: "Price model calls by outcome",
		},
		[]string{"outcome"},
	)
	ModelPredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_prediction_duration_seconds",
			Help:    "Duration of price model calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			CacheHitsTotal,
			CacheMissesTotal,
			RedisOperationDuration,
			RedisErrorsTotal,
			GeocodeRequestsTotal,
			GeocodeDuration,
			NeighbourhoodLookupsTotal,
			MalformedGeometriesTotal,
			UnknownCategoryTotal,
			ModelPredictionsTotal,
			ModelPredictionDuration,
		)
	})
}

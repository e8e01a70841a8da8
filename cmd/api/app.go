package main

import (
	"fmt"
	"net/http"
	"time"

	"listing-pricer/internal/geo"
	"listing-pricer/internal/handlers"
	"listing-pricer/internal/middleware"
	"listing-pricer/internal/models"
	"listing-pricer/internal/repositories"
	"listing-pricer/internal/services"
	"listing-pricer/internal/validators"
	"listing-pricer/pkg/cache"
	"listing-pricer/pkg/config"
	"listing-pricer/pkg/geocoding"
	"listing-pricer/pkg/logger"
	"listing-pricer/pkg/metrics"
	"listing-pricer/pkg/pricemodel"

	"github.com/gin-gonic/gin"
)

// App represents the application structure
type App struct {
	Config               *config.Config
	Router               *gin.Engine
	Schema               *models.FeatureSchema
	Neighbourhoods       *geo.NeighbourhoodResolver
	Cache                *cache.RedisCache
	ListingHandler       *handlers.ListingHandler
	NeighbourhoodHandler *handlers.NeighbourhoodHandler
	SchemaHandler        *handlers.SchemaHandler
	RateLimiter          *middleware.RateLimiter
	Server               *http.Server

	stop chan struct{}
}

// NewApp loads the assets and wires every dependency.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, stop: make(chan struct{})}

	// Initialize infrastructure
	app.initializeMetrics()
	if err := app.initializeAssets(); err != nil {
		return nil, err
	}
	app.initializeCache()
	app.initializeRateLimiter()

	// Initialize business logic
	if err := app.initializeDependencies(); err != nil {
		return nil, err
	}

	// Initialize web layer
	app.initializeRouter()

	return app, nil
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// load the feature schema and neighbourhood boundaries once
func (a *App) initializeAssets() error {
	schema, err := models.LoadSchema(a.Config.Assets.SchemaPath)
	if err != nil {
		return fmt.Errorf("failed to load feature schema: %w", err)
	}
	a.Schema = schema
	logger.GlobalLogger.Printf("Loaded feature schema %q with %d columns", schema.Version(), schema.Len())

	resolver, err := geo.LoadNeighbourhoodResolver(a.Config.Assets.NeighbourhoodsPath)
	if err != nil {
		// without boundaries every lookup is simply "not found"
		logger.GlobalLogger.Errorf("Failed to load neighbourhoods, continuing without them: %v", err)
		resolver = geo.NewNeighbourhoodResolver(nil)
	}
	if a.Config.Assets.NeighbourhoodsPath == "" {
		logger.GlobalLogger.Warnf("No neighbourhood dataset configured; neighbourhood features will stay 0")
	}
	a.Neighbourhoods = resolver
	return nil
}

// initialize the Redis cache when enabled; the service runs without it
func (a *App) initializeCache() {
	if !a.Config.Redis.Enabled {
		logger.GlobalLogger.Println("Redis disabled; geocoding results will not be cached")
		return
	}
	rc, err := cache.InitRedis(a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis, continuing without cache: %v", err)
		return
	}
	a.Cache = rc
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewPerMinuteRateLimiter(a.Config.RateLimit.RequestsPerMinute, a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup(time.Hour, a.stop)
}

// initialize all dependencies
func (a *App) initializeDependencies() error {
	// repositories
	var geocodeCache repositories.GeocodeCache
	if a.Cache != nil {
		geocodeCache = repositories.NewGeocodeCache(a.Cache, a.Config.GeocodeTTL())
	}

	// external collaborators
	geocoder, err := geocoding.New(a.Config)
	if err != nil {
		return fmt.Errorf("failed to create geocoder: %w", err)
	}
	var model services.PriceModel
	if a.Config.Model.URL != "" {
		model = pricemodel.NewHTTPClient(a.Config.Model.URL, a.Config.ModelTimeout())
	} else {
		logger.GlobalLogger.Warnf("model.url not set; /api/listings/predict will fail")
	}

	// validators
	listingValidator := validators.NewListingValidator()

	// services
	addressResolver := services.NewAddressResolver(geocoder, geocodeCache, a.Config.Geocoder.QuerySuffix, a.Config.GeocodeTimeout())
	builder := services.NewFeatureBuilder(a.Schema, addressResolver, a.Neighbourhoods)
	predictionService := services.NewPredictionService(builder, model)

	// handlers
	a.ListingHandler = handlers.NewListingHandler(predictionService)
	a.NeighbourhoodHandler = handlers.NewNeighbourhoodHandler(a.Neighbourhoods, listingValidator)
	a.SchemaHandler = handlers.NewSchemaHandler(a.Schema)
	return nil
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	close(a.stop)
	a.Cache.Close()
}

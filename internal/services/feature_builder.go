package services

import (
	"context"
	"fmt"
	"math"

	apperrors "listing-pricer/internal/errors"
	"listing-pricer/internal/models"
	"listing-pricer/internal/transformers"
	"listing-pricer/internal/validators"
	"listing-pricer/pkg/logger"
	"listing-pricer/pkg/metrics"
)

// Columns the builder fills from the listing itself.
const (
	ColumnLatitude     = "latitude"
	ColumnLongitude    = "longitude"
	ColumnNumAmenities = "num_amenities"
	ColumnAccommodates = "accommodates"
	ColumnBedrooms     = "bedrooms"
	ColumnBeds         = "beds"
	ColumnBathrooms    = "bathrooms"
)

// baselineDefaults stands in for attributes a new listing cannot supply yet.
// Only columns present in the schema are written.
var baselineDefaults = map[string]float64{
	"minimum_nights":                              2,
	"maximum_nights":                              365,
	"availability_30":                             10,
	"availability_60":                             25,
	"availability_90":                             40,
	"availability_365":                            150,
	"has_availability":                            1,
	"instant_bookable":                            0,
	"number_of_reviews":                           0,
	"number_of_reviews_ltm":                       0,
	"number_of_reviews_l30d":                      0,
	"reviews_per_month":                           0,
	"review_scores_rating":                        0,
	"review_scores_accuracy":                      0,
	"review_scores_cleanliness":                   0,
	"review_scores_checkin":                       0,
	"review_scores_communication":                 0,
	"review_scores_location":                      0,
	"review_scores_value":                         0,
	"host_days_active":                            365,
	"host_response_rate":                          1,
	"host_acceptance_rate":                        1,
	"host_is_superhost":                           0,
	"host_has_profile_pic":                        1,
	"host_identity_verified":                      1,
	"host_listings_count":                         1,
	"host_total_listings_count":                   1,
	"calculated_host_listings_count":              1,
	"calculated_host_listings_count_entire_homes": 1,
}

var categoryPrefixes = []string{
	transformers.PrefixPropertyType,
	transformers.PrefixRoomType,
	transformers.PrefixNeighbourhood,
}

// Geolocator finds the coordinate of an address, or nil.
type Geolocator interface {
	Resolve(ctx context.Context, address string) *models.GeoCoordinate
}

// NeighbourhoodLocator finds the neighbourhood containing a coordinate.
type NeighbourhoodLocator interface {
	Resolve(coord models.GeoCoordinate) (string, bool)
}

// BuildResult is a feature vector plus what was learned about the location
// while building it.
type BuildResult struct {
	Vector        models.FeatureVector
	Neighbourhood string
	Found         bool
	Coordinate    *models.GeoCoordinate
}

// FeatureBuilder turns a listing into a schema-ordered feature vector.
// It holds no per-request state and may be shared between goroutines.
type FeatureBuilder struct {
	schema         *models.FeatureSchema
	geolocator     Geolocator
	neighbourhoods NeighbourhoodLocator
	categories     transformers.CategoryMapper
	amenities      transformers.AmenityMatcher
	validator      validators.ListingValidator
}

func NewFeatureBuilder(schema *models.FeatureSchema, geolocator Geolocator, neighbourhoods NeighbourhoodLocator) *FeatureBuilder {
	return &FeatureBuilder{
		schema:         schema,
		geolocator:     geolocator,
		neighbourhoods: neighbourhoods,
		categories:     transformers.NewCategoryMapper(schema),
		amenities:      transformers.NewAmenityMatcher(AmenityColumns(schema)),
		validator:      validators.NewListingValidator(),
	}
}

// Schema returns the schema vectors are built against.
func (b *FeatureBuilder) Schema() *models.FeatureSchema {
	return b.schema
}

// AmenityColumns lists the schema columns that amenity names may set: every
// column that is neither filled by the builder nor part of a one-hot family.
func AmenityColumns(schema *models.FeatureSchema) []string {
	var out []string
	for _, c := range schema.Columns() {
		if isReservedColumn(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func isReservedColumn(column string) bool {
	switch column {
	case ColumnLatitude, ColumnLongitude, ColumnNumAmenities,
		ColumnAccommodates, ColumnBedrooms, ColumnBeds, ColumnBathrooms:
		return true
	}
	if _, ok := baselineDefaults[column]; ok {
		return true
	}
	for _, prefix := range categoryPrefixes {
		if models.HasPrefix(column, prefix) {
			return true
		}
	}
	return false
}

// Build geocodes the listing and assembles its feature vector. It fails with
// ErrGeocodeFailure when the address cannot be located; every other gap
// degrades to zeros and is logged.
func (b *FeatureBuilder) Build(ctx context.Context, input models.ListingInput) (BuildResult, error) {
	if err := b.validator.ValidateListing(&input); err != nil {
		return BuildResult{}, err
	}

	values := make(map[string]float64, b.schema.Len())
	for _, c := range b.schema.Columns() {
		values[c] = 0
	}

	coord := b.geolocator.Resolve(ctx, input.Address)
	if coord == nil {
		return BuildResult{}, fmt.Errorf("%w: %q", apperrors.ErrGeocodeFailure, input.Address)
	}

	neighbourhood, found := b.neighbourhoods.Resolve(*coord)
	if !found {
		logger.GlobalLogger.Warnf("no neighbourhood for %q at (%f, %f); neighbourhood features left at 0", input.Address, coord.Lat, coord.Lon)
	}

	for column, v := range baselineDefaults {
		b.set(values, column, v)
	}

	rooms := float64(input.Rooms)
	b.set(values, ColumnAccommodates, rooms)
	b.set(values, ColumnBedrooms, rooms)
	b.set(values, ColumnBeds, math.Round(1.5*rooms))
	b.set(values, ColumnBathrooms, math.Ceil(rooms/2))
	b.set(values, ColumnLatitude, coord.Lat)
	b.set(values, ColumnLongitude, coord.Lon)

	// every non-blank token counts, repeats included
	supplied := 0
	for _, amenity := range input.Amenities {
		if transformers.Normalize(amenity) == "" {
			continue
		}
		supplied++
		if column, ok := b.amenities.Match(amenity); ok {
			values[column] = 1
		} else {
			logger.GlobalLogger.Debugf("amenity %q has no schema column", amenity)
		}
	}
	b.set(values, ColumnNumAmenities, float64(supplied))

	b.setCategory(values, input.PropertyType, transformers.PrefixPropertyType)
	b.setCategory(values, input.RoomType, transformers.PrefixRoomType)
	if found {
		b.setCategory(values, neighbourhood, transformers.PrefixNeighbourhood)
	}

	return BuildResult{
		Vector:        models.NewFeatureVector(b.schema, values),
		Neighbourhood: neighbourhood,
		Found:         found,
		Coordinate:    coord,
	}, nil
}

func (b *FeatureBuilder) set(values map[string]float64, column string, v float64) {
	if b.schema.Has(column) {
		values[column] = v
	}
}

func (b *FeatureBuilder) setCategory(values map[string]float64, label, prefix string) {
	if label == "" {
		return
	}
	column, ok := b.categories.Map(label, prefix)
	if !ok {
		metrics.UnknownCategoryTotal.WithLabelValues(prefix).Inc()
		logger.GlobalLogger.Warnf("%s %q matches no schema column; prediction accuracy may degrade", prefix, label)
		return
	}
	values[column] = 1
}

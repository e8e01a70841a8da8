package validators

import (
	"listing-pricer/internal/models"
)

type ListingValidator interface {
	ValidateListing(input *models.ListingInput) error
	ValidateCoordinate(lat, lon float64) error
}

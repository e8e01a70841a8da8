package validators

import (
	"fmt"
	"math"
	"strings"

	apperrors "listing-pricer/internal/errors"
	"listing-pricer/internal/models"
)

const (
	MinRooms          = 1
	MaxRooms          = 15
	MaxAddressLength  = 200
	MaxAmenities      = 100
	MaxAmenityLength  = 100
	MaxCategoryLength = 100
)

type listingValidator struct{}

func NewListingValidator() ListingValidator {
	return &listingValidator{}
}

func (v *listingValidator) ValidateListing(input *models.ListingInput) error {
	if input == nil {
		return fmt.Errorf("%w: listing is required", apperrors.ErrInvalidListing)
	}
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return fmt.Errorf("%w: address is required", apperrors.ErrInvalidListing)
	}
	if len(address) > MaxAddressLength {
		return fmt.Errorf("%w: address longer than %d characters", apperrors.ErrInvalidListing, MaxAddressLength)
	}
	if input.Rooms < MinRooms || input.Rooms > MaxRooms {
		return fmt.Errorf("%w: rooms must be between %d and %d, got %d", apperrors.ErrInvalidListing, MinRooms, MaxRooms, input.Rooms)
	}
	if len(input.Amenities) > MaxAmenities {
		return fmt.Errorf("%w: at most %d amenities are accepted", apperrors.ErrInvalidListing, MaxAmenities)
	}
	for _, a := range input.Amenities {
		if len(a) > MaxAmenityLength {
			return fmt.Errorf("%w: amenity %.20q... is too long", apperrors.ErrInvalidListing, a)
		}
	}
	if len(input.PropertyType) > MaxCategoryLength || len(input.RoomType) > MaxCategoryLength {
		return fmt.Errorf("%w: property or room type is too long", apperrors.ErrInvalidListing)
	}
	return nil
}

func (v *listingValidator) ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: (%v, %v) is outside WGS84 bounds", apperrors.ErrInvalidCoordinate, lat, lon)
	}
	return nil
}

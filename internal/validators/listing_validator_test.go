package validators

import (
	"errors"
	"strings"
	"testing"

	apperrors "listing-pricer/internal/errors"
	"listing-pricer/internal/models"
)

func TestValidateListing(t *testing.T) {
	valid := func() *models.ListingInput {
		return &models.ListingInput{Address: "Fleminggatan 7", Rooms: 2, Amenities: []string{"wifi"}}
	}
	tests := []struct {
		name    string
		mutate  func(in *models.ListingInput)
		wantErr bool
	}{
		{name: "valid", mutate: func(*models.ListingInput) {}},
		{name: "blank address", mutate: func(in *models.ListingInput) { in.Address = "   " }, wantErr: true},
		{name: "long address", mutate: func(in *models.ListingInput) { in.Address = strings.Repeat("a", 201) }, wantErr: true},
		{name: "zero rooms", mutate: func(in *models.ListingInput) { in.Rooms = 0 }, wantErr: true},
		{name: "too many rooms", mutate: func(in *models.ListingInput) { in.Rooms = 16 }, wantErr: true},
		{name: "max rooms", mutate: func(in *models.ListingInput) { in.Rooms = 15 }},
		{name: "long amenity", mutate: func(in *models.ListingInput) { in.Amenities = []string{strings.Repeat("x", 101)} }, wantErr: true},
		{name: "no amenities", mutate: func(in *models.ListingInput) { in.Amenities = nil }},
	}
	v := NewListingValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(in)
			err := v.ValidateListing(in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateListing() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperrors.ErrInvalidListing) {
				t.Errorf("err should wrap ErrInvalidListing: %v", err)
			}
		})
	}
	if err := v.ValidateListing(nil); err == nil {
		t.Error("nil listing should fail")
	}
}

func TestValidateCoordinate(t *testing.T) {
	v := NewListingValidator()
	if err := v.ValidateCoordinate(59.33, 18.06); err != nil {
		t.Errorf("valid coordinate rejected: %v", err)
	}
	for _, c := range [][2]float64{{91, 0}, {0, -181}, {-90.5, 10}} {
		if err := v.ValidateCoordinate(c[0], c[1]); !errors.Is(err, apperrors.ErrInvalidCoordinate) {
			t.Errorf("ValidateCoordinate(%v) = %v", c, err)
		}
	}
}

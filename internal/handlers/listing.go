package handlers

import (
	"fmt"
	"net/http"

	apperrors "listing-pricer/internal/errors"
	"listing-pricer/internal/models"
	"listing-pricer/internal/services"
	"listing-pricer/internal/transformers"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	predictionService *services.PredictionService
}

func NewListingHandler(predictionService *services.PredictionService) *ListingHandler {
	return &ListingHandler{predictionService: predictionService}
}

// BuildFeatures godoc
// @Summary Build the model feature vector for a listing
// @Description Geocodes the address, resolves its neighbourhood and returns the schema-ordered features
// @Tags Listings
// @Accept json
// @Produce json
// @Param listing body models.ListingRequest true "Listing"
// @Security BearerAuth
// @Success 200 {object} models.FeaturesResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /listings/features [post]
func (h *ListingHandler) BuildFeatures(c *gin.Context) {
	input, ok := bindListing(c)
	if !ok {
		return
	}
	res, err := h.predictionService.BuildFeatures(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.FeaturesResponse{
		Features:      res.Vector,
		Neighbourhood: res.Neighbourhood,
		Found:         res.Found,
		Coordinate:    res.Coordinate,
	})
}

// Predict godoc
// @Summary Estimate the nightly price of a listing
// @Description Builds the listing features and scores them with the price model
// @Tags Listings
// @Accept json
// @Produce json
// @Param listing body models.ListingRequest true "Listing"
// @Security BearerAuth
// @Success 200 {object} models.PredictionResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /listings/predict [post]
func (h *ListingHandler) Predict(c *gin.Context) {
	input, ok := bindListing(c)
	if !ok {
		return
	}
	res, err := h.predictionService.Predict(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.PredictionResponse{
		Price:         res.Price,
		RawPrice:      res.RawPrice,
		Neighbourhood: res.Neighbourhood,
		Found:         res.Found,
		Coordinate:    res.Coordinate,
	})
}

func bindListing(c *gin.Context) (models.ListingInput, bool) {
	var req models.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", apperrors.ErrInvalidListing, err))
		return models.ListingInput{}, false
	}
	amenities := append([]string(nil), req.Amenities...)
	amenities = append(amenities, transformers.SplitAmenities(req.AmenitiesText)...)
	return models.ListingInput{
		Address:      req.Address,
		Rooms:        req.Rooms,
		Amenities:    amenities,
		PropertyType: req.PropertyType,
		RoomType:     req.RoomType,
	}, true
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	apperrors "listing-pricer/internal/errors"
	"listing-pricer/internal/geo"
	"listing-pricer/internal/models"
	"listing-pricer/internal/validators"

	"github.com/gin-gonic/gin"
)

type NeighbourhoodHandler struct {
	resolver  *geo.NeighbourhoodResolver
	validator validators.ListingValidator
}

func NewNeighbourhoodHandler(resolver *geo.NeighbourhoodResolver, validator validators.ListingValidator) *NeighbourhoodHandler {
	return &NeighbourhoodHandler{resolver: resolver, validator: validator}
}

// Lookup godoc
// @Summary Find the neighbourhood containing a coordinate
// @Tags Neighbourhoods
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Security BearerAuth
// @Success 200 {object} models.NeighbourhoodLookupResponse
// @Failure 400 {object} map[string]string
// @Router /neighbourhoods/lookup [get]
func (h *NeighbourhoodHandler) Lookup(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		_ = c.Error(fmt.Errorf("%w: lat and lon query parameters must be numbers", apperrors.ErrInvalidCoordinate))
		return
	}
	if err := h.validator.ValidateCoordinate(lat, lon); err != nil {
		_ = c.Error(err)
		return
	}
	name, found := h.resolver.Resolve(models.GeoCoordinate{Lat: lat, Lon: lon})
	c.JSON(http.StatusOK, models.NeighbourhoodLookupResponse{Neighbourhood: name, Found: found})
}

// List godoc
// @Summary List the neighbourhoods the service can resolve
// @Tags Neighbourhoods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.NeighbourhoodListResponse
// @Router /neighbourhoods [get]
func (h *NeighbourhoodHandler) List(c *gin.Context) {
	names := h.resolver.Names()
	c.JSON(http.StatusOK, models.NeighbourhoodListResponse{Data: names, Total: len(names)})
}

package models

// ListingInput is the raw listing a caller describes.
type ListingInput struct {
	Address      string   `json:"address"`
	Rooms        int      `json:"rooms"`
	Amenities    []string `json:"amenities"`
	PropertyType string   `json:"property_type"`
	RoomType     string   `json:"room_type"`
}

// GeoCoordinate is a WGS84 point in degrees.
type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ListingRequest is the HTTP body for the listing endpoints. Amenities may be
// given as a list, as comma separated text, or both.
type ListingRequest struct {
	Address       string   `json:"address"`
	Rooms         int      `json:"rooms"`
	Amenities     []string `json:"amenities"`
	AmenitiesText string   `json:"amenities_text"`
	PropertyType  string   `json:"property_type"`
	RoomType      string   `json:"room_type"`
}

type FeaturesResponse struct {
	Features      FeatureVector  `json:"features"`
	Neighbourhood string         `json:"neighbourhood,omitempty"`
	Found         bool           `json:"neighbourhood_found"`
	Coordinate    *GeoCoordinate `json:"coordinate"`
}

type PredictionResponse struct {
	Price         float64        `json:"price"`
	RawPrice      float64        `json:"raw_price"`
	Neighbourhood string         `json:"neighbourhood,omitempty"`
	Found         bool           `json:"neighbourhood_found"`
	Coordinate    *GeoCoordinate `json:"coordinate"`
}

type NeighbourhoodLookupResponse struct {
	Neighbourhood string `json:"neighbourhood,omitempty"`
	Found         bool   `json:"found"`
}

type NeighbourhoodListResponse struct {
	Data  []string `json:"data"`
	Total int      `json:"total"`
}

type SchemaResponse struct {
	Version string   `json:"version,omitempty"`
	Columns []string `json:"columns"`
	Total   int      `json:"total"`
}

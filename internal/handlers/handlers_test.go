package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"listing-pricer/internal/geo"
	"listing-pricer/internal/middleware"
	"listing-pricer/internal/models"
	"listing-pricer/internal/services"
	"listing-pricer/internal/validators"
	"listing-pricer/pkg/geocoding"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGeocoder struct{}

func (stubGeocoder) Provider() string { return "stub" }

func (stubGeocoder) Geocode(_ context.Context, query string) (*geocoding.Result, error) {
	if strings.HasPrefix(query, "Fleminggatan") {
		return &geocoding.Result{Lat: 59.33, Lon: 18.06}, nil
	}
	return nil, geocoding.ErrNoResults
}

type stubModel struct{ price float64 }

func (m stubModel) Predict(context.Context, []string, []float64) (float64, error) {
	return m.price, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	schema, err := models.LoadSchema("testdata/feature_schema.json")
	if err != nil {
		t.Fatal(err)
	}
	resolver, err := geo.LoadNeighbourhoodResolver("testdata/neighbourhoods.geojson")
	if err != nil {
		t.Fatal(err)
	}
	address := services.NewAddressResolver(stubGeocoder{}, nil, ", Stockholm, Sweden", time.Second)
	builder := services.NewFeatureBuilder(schema, address, resolver)
	prediction := services.NewPredictionService(builder, stubModel{price: 842})

	listing := NewListingHandler(prediction)
	neighbourhoods := NewNeighbourhoodHandler(resolver, validators.NewListingValidator())
	schemas := NewSchemaHandler(schema)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	api := r.Group("/api")
	api.POST("/listings/features", listing.BuildFeatures)
	api.POST("/listings/predict", listing.Predict)
	api.GET("/neighbourhoods", neighbourhoods.List)
	api.GET("/neighbourhoods/lookup", neighbourhoods.Lookup)
	api.GET("/schema", schemas.GetSchema)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildFeaturesEndpoint(t *testing.T) {
	r := newTestRouter(t)
	body := `{"address":"Fleminggatan 7","rooms":2,"amenities":["wifi"],"amenities_text":"pool, sauna","property_type":"Entire condo","room_type":"Entire home/apt"}`
	w := do(r, http.MethodPost, "/api/listings/features", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Features      map[string]float64    `json:"features"`
		Neighbourhood string                `json:"neighbourhood"`
		Found         bool                  `json:"neighbourhood_found"`
		Coordinate    *models.GeoCoordinate `json:"coordinate"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Neighbourhood != "Kungsholmens" || !resp.Found || resp.Coordinate == nil {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Features["wifi"] != 1 || resp.Features["pool"] != 1 || resp.Features["num_amenities"] != 3 {
		t.Errorf("features = %v", resp.Features)
	}
	if !strings.HasPrefix(w.Body.String(), `{"features":{"latitude":59.33,"longitude":18.06,`) {
		t.Errorf("features not in schema order: %s", w.Body.String())
	}
}

func TestPredictEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/listings/predict", `{"address":"Fleminggatan 7","rooms":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp models.PredictionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Price != 840 || resp.RawPrice != 842 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListingEndpointErrors(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		name string
		body string
		want int
		code string
	}{
		{name: "malformed json", body: `{"address":`, want: http.StatusBadRequest, code: "INVALID_PARAMETERS"},
		{name: "zero rooms", body: `{"address":"Fleminggatan 7","rooms":0}`, want: http.StatusBadRequest, code: "INVALID_PARAMETERS"},
		{name: "unknown address", body: `{"address":"Atlantis 1","rooms":2}`, want: http.StatusUnprocessableEntity, code: "GEOCODE_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/listings/predict", tt.body)
			if w.Code != tt.want || !strings.Contains(w.Body.String(), tt.code) {
				t.Errorf("status = %d body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestNeighbourhoodEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/neighbourhoods/lookup?lat=59.33&lon=18.06", "")
	var lookup models.NeighbourhoodLookupResponse
	if err := json.Unmarshal(w.Body.Bytes(), &lookup); err != nil || !lookup.Found || lookup.Neighbourhood != "Kungsholmens" {
		t.Errorf("lookup = %+v (%v) body %s", lookup, err, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/neighbourhoods/lookup?lat=10&lon=10", "")
	if err := json.Unmarshal(w.Body.Bytes(), &lookup); err != nil || lookup.Found {
		t.Errorf("lookup outside = %+v", lookup)
	}

	if w := do(r, http.MethodGet, "/api/neighbourhoods/lookup?lat=abc&lon=18", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad lat status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/neighbourhoods/lookup?lat=95&lon=18", ""); w.Code != http.StatusBadRequest {
		t.Errorf("out of range status = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/neighbourhoods", "")
	var list models.NeighbourhoodListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || list.Total != 3 {
		t.Errorf("list = %+v", list)
	}
}

func TestSchemaEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/schema", "")
	var resp models.SchemaResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Version != "test" || resp.Total != len(resp.Columns) || resp.Columns[0] != "latitude" {
		t.Errorf("resp = %+v", resp)
	}
}

// Package geo resolves coordinates to neighbourhoods using GeoJSON boundaries.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// NameProperty is the feature property holding the neighbourhood name.
const NameProperty = "neighbourhood"

var (
	ErrMissingName         = errors.New("feature has no neighbourhood name")
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	ErrInvalidCoordinates  = errors.New("invalid geometry coordinates")
	ErrMalformedFeature    = errors.New("malformed feature")
)

// Point is a position in GeoJSON axis order: X is longitude, Y is latitude.
type Point struct {
	X, Y float64
}

// Ring is a linear ring. The closing vertex may or may not repeat the first.
type Ring []Point

// Polygon is an outer ring followed by zero or more holes.
type Polygon struct {
	Outer Ring
	Holes []Ring
	bbox  bbox
}

type bbox struct {
	minX, minY, maxX, maxY float64
}

func (b bbox) contains(p Point) bool {
	return p.X >= b.minX && p.X <= b.maxX && p.Y >= b.minY && p.Y <= b.maxY
}

// Feature is one decoded neighbourhood. A feature whose geometry could not be
// used keeps its decode error in Err and has no polygons.
type Feature struct {
	Index    int
	Name     string
	Polygons []Polygon
	Err      error
}

type featureCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

type rawFeature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// LoadFeatures reads a GeoJSON FeatureCollection from path.
func LoadFeatures(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading neighbourhoods: %w", err)
	}
	return ParseFeatures(data)
}

// ParseFeatures decodes the collection envelope eagerly and each feature on
// its own, so one bad feature does not fail the whole dataset.
func ParseFeatures(data []byte) ([]Feature, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decoding feature collection: %w", err)
	}
	if fc.Type != "" && fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected a FeatureCollection, got %q", fc.Type)
	}

	features := make([]Feature, 0, len(fc.Features))
	for i, raw := range fc.Features {
		f := Feature{Index: i}
		var rf rawFeature
		if err := json.Unmarshal(raw, &rf); err != nil {
			f.Err = fmt.Errorf("%w: %v", ErrMalformedFeature, err)
			features = append(features, f)
			continue
		}
		name, _ := rf.Properties[NameProperty].(string)
		f.Name = name
		switch {
		case name == "":
			f.Err = ErrMissingName
		case len(rf.Geometry) == 0 || string(rf.Geometry) == "null":
			// no geometry: never matches, not an error
		default:
			f.Polygons, f.Err = decodeGeometry(rf.Geometry)
		}
		features = append(features, f)
	}
	return features, nil
}

func decodeGeometry(raw json.RawMessage) ([]Polygon, error) {
	var g rawGeometry
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	switch g.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
		}
		p, err := buildPolygon(coords)
		if err != nil {
			return nil, err
		}
		return []Polygon{p}, nil
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
		}
		polygons := make([]Polygon, 0, len(coords))
		for _, pc := range coords {
			p, err := buildPolygon(pc)
			if err != nil {
				return nil, err
			}
			polygons = append(polygons, p)
		}
		if len(polygons) == 0 {
			return nil, fmt.Errorf("%w: empty MultiPolygon", ErrInvalidCoordinates)
		}
		return polygons, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGeometry, g.Type)
	}
}

func buildPolygon(rings [][][]float64) (Polygon, error) {
	if len(rings) == 0 {
		return Polygon{}, fmt.Errorf("%w: polygon has no rings", ErrInvalidCoordinates)
	}
	outer, err := buildRing(rings[0])
	if err != nil {
		return Polygon{}, err
	}
	p := Polygon{Outer: outer, bbox: ringBBox(outer)}
	for _, rc := range rings[1:] {
		hole, err := buildRing(rc)
		if err != nil {
			return Polygon{}, err
		}
		p.Holes = append(p.Holes, hole)
	}
	return p, nil
}

func buildRing(positions [][]float64) (Ring, error) {
	if len(positions) < 3 {
		return nil, fmt.Errorf("%w: ring has %d positions", ErrInvalidCoordinates, len(positions))
	}
	ring := make(Ring, len(positions))
	for i, pos := range positions {
		if len(pos) < 2 {
			return nil, fmt.Errorf("%w: position %d has %d values", ErrInvalidCoordinates, i, len(pos))
		}
		ring[i] = Point{X: pos[0], Y: pos[1]}
	}
	return ring, nil
}

func ringBBox(r Ring) bbox {
	b := bbox{minX: r[0].X, maxX: r[0].X, minY: r[0].Y, maxY: r[0].Y}
	for _, p := range r[1:] {
		b.minX = min(b.minX, p.X)
		b.maxX = max(b.maxX, p.X)
		b.minY = min(b.minY, p.Y)
		b.maxY = max(b.maxY, p.Y)
	}
	return b
}

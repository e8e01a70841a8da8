package geo

import (
	"errors"

	"listing-pricer/internal/models"
	"listing-pricer/pkg/logger"
	"listing-pricer/pkg/metrics"
)

// NeighbourhoodResolver finds the neighbourhood containing a coordinate.
// It is read-only after construction and safe for concurrent use.
type NeighbourhoodResolver struct {
	features []Feature
	names    []string
}

// NewNeighbourhoodResolver keeps features in dataset order; that order decides
// ties on shared borders.
func NewNeighbourhoodResolver(features []Feature) *NeighbourhoodResolver {
	r := &NeighbourhoodResolver{features: features}
	seen := make(map[string]bool)
	for _, f := range features {
		if f.Err != nil {
			if !errors.Is(f.Err, ErrMissingName) {
				metrics.MalformedGeometriesTotal.Inc()
			}
			logger.GlobalLogger.Warnf("neighbourhood feature %d (%q) will be skipped: %v", f.Index, f.Name, f.Err)
			continue
		}
		if len(f.Polygons) == 0 || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		r.names = append(r.names, f.Name)
	}
	return r
}

// LoadNeighbourhoodResolver reads a GeoJSON dataset. An empty path yields a
// resolver that never finds anything.
func LoadNeighbourhoodResolver(path string) (*NeighbourhoodResolver, error) {
	if path == "" {
		return NewNeighbourhoodResolver(nil), nil
	}
	features, err := LoadFeatures(path)
	if err != nil {
		return nil, err
	}
	r := NewNeighbourhoodResolver(features)
	logger.GlobalLogger.Printf("loaded %d neighbourhood features (%d resolvable names) from %s", len(features), len(r.names), path)
	return r, nil
}

// Resolve returns the name of the first feature, in dataset order, whose
// geometry contains coord.
func (r *NeighbourhoodResolver) Resolve(coord models.GeoCoordinate) (string, bool) {
	p := Point{X: coord.Lon, Y: coord.Lat}
	for _, f := range r.features {
		if f.Err != nil {
			continue
		}
		for _, poly := range f.Polygons {
			if poly.Contains(p) {
				metrics.NeighbourhoodLookupsTotal.WithLabelValues("found").Inc()
				return f.Name, true
			}
		}
	}
	metrics.NeighbourhoodLookupsTotal.WithLabelValues("not_found").Inc()
	logger.GlobalLogger.Debugf("no neighbourhood contains (%f, %f)", coord.Lat, coord.Lon)
	return "", false
}

// Names returns the resolvable neighbourhood names in dataset order.
func (r *NeighbourhoodResolver) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len is the number of features in the dataset, usable or not.
func (r *NeighbourhoodResolver) Len() int { return len(r.features) }

package transformers

import (
	"strings"
)

// amenityAliases maps a normalized caller spelling to the column names it may
// appear under, most specific first.
var amenityAliases = map[string][]string{
	"wi_fi":             {"wifi"},
	"wireless_internet": {"wifi"},
	"internet":          {"wifi"},
	"swimming_pool":     {"pool"},
	"shared_pool":       {"pool"},
	"private_pool":      {"pool"},
	"ac":                {"air_conditioning"},
	"aircon":            {"air_conditioning"},
	"air_conditioner":   {"air_conditioning"},
	"television":        {"tv"},
	"hdtv":              {"tv"},
	"washing_machine":   {"washer"},
	"laundry":           {"washer"},
	"tumble_dryer":      {"dryer"},
	"dish_washer":       {"dishwasher"},
	"parking":           {"free_parking_on_premises", "free_street_parking", "paid_parking_on_premises"},
	"free_parking":      {"free_parking_on_premises", "free_street_parking"},
	"lift":              {"elevator"},
	"balcony":           {"patio_or_balcony", "balcony"},
	"patio":             {"patio_or_balcony"},
	"gym":               {"gym", "exercise_equipment"},
	"bbq":               {"bbq_grill"},
	"grill":             {"bbq_grill"},
	"pets":              {"pets_allowed"},
	"pet_friendly":      {"pets_allowed"},
	"heater":            {"heating"},
	"workspace":         {"dedicated_workspace", "laptop_friendly_workspace"},
	"coffee":            {"coffee_maker"},
	"crib":              {"crib", "pack_n_play_travel_crib"},
	"kitchenette":       {"kitchen"},
}

type amenityMatcher struct {
	columns map[string]struct{}
}

// NewAmenityMatcher builds a matcher over the given amenity columns.
func NewAmenityMatcher(amenityColumns []string) AmenityMatcher {
	m := &amenityMatcher{columns: make(map[string]struct{}, len(amenityColumns))}
	for _, c := range amenityColumns {
		m.columns[c] = struct{}{}
	}
	return m
}

func (m *amenityMatcher) Match(amenity string) (string, bool) {
	token := Normalize(amenity)
	if token == "" {
		return "", false
	}
	if _, ok := m.columns[token]; ok {
		return token, true
	}
	for _, candidate := range amenityAliases[token] {
		if _, ok := m.columns[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// SplitAmenities splits comma or newline separated amenity text into trimmed,
// non-empty entries.
func SplitAmenities(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

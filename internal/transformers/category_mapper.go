package transformers

import (
	"listing-pricer/internal/models"
)

// One-hot column families.
const (
	PrefixPropertyType  = "property_type"
	PrefixRoomType      = "room_type"
	PrefixNeighbourhood = "neighbourhood_cleansed"
)

// categoryAliases maps prefix, then normalized label, to candidate columns tried
// in order before the plain prefix_label form.
var categoryAliases = map[string]map[string][]string{
	PrefixPropertyType: {
		"entire_condo":        {"property_type_entire_condo", "property_type_entire_condominium_condo"},
		"condo":               {"property_type_entire_condo", "property_type_entire_condominium_condo"},
		"condominium":         {"property_type_entire_condominium_condo", "property_type_entire_condo"},
		"apartment":           {"property_type_entire_rental_unit", "property_type_apartment"},
		"entire_apartment":    {"property_type_entire_rental_unit", "property_type_apartment"},
		"flat":                {"property_type_entire_rental_unit"},
		"house":               {"property_type_entire_home", "property_type_house"},
		"entire_house":        {"property_type_entire_home", "property_type_house"},
		"townhouse":           {"property_type_entire_townhouse"},
		"loft":                {"property_type_entire_loft"},
		"private_room":        {"property_type_private_room_in_rental_unit"},
		"room_in_apartment":   {"property_type_private_room_in_rental_unit"},
		"entire_serviced_apt": {"property_type_entire_serviced_apartment"},
	},
	PrefixRoomType: {
		"entire_homeapt": {"room_type_entire_home_apt", "room_type_entire_homeapt"},
		"entire_home":    {"room_type_entire_home_apt", "room_type_entire_homeapt"},
		"entire_apt":     {"room_type_entire_home_apt", "room_type_entire_homeapt"},
		"private":        {"room_type_private_room"},
		"shared":         {"room_type_shared_room"},
		"hotel":          {"room_type_hotel_room"},
	},
}

type categoryMapper struct {
	schema *models.FeatureSchema
}

func NewCategoryMapper(schema *models.FeatureSchema) CategoryMapper {
	return &categoryMapper{schema: schema}
}

// Map returns the schema column for label within the prefix family.
func (m *categoryMapper) Map(label, prefix string) (string, bool) {
	token := Normalize(label)
	if token == "" {
		return "", false
	}
	for _, candidate := range categoryAliases[prefix][token] {
		if m.schema.Has(candidate) {
			return candidate, true
		}
	}
	if column := prefix + "_" + token; m.schema.Has(column) {
		return column, true
	}
	return "", false
}

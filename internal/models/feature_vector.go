package models

import (
	"bytes"
	"encoding/json"
)

// FeatureVector holds one value per schema column in schema order.
// The zero value is an empty vector.
type FeatureVector struct {
	schema *FeatureSchema
	values []float64
}

// NewFeatureVector projects values onto the schema's column order. Columns
// missing from values are 0 and keys outside the schema are dropped.
func NewFeatureVector(schema *FeatureSchema, values map[string]float64) FeatureVector {
	out := make([]float64, schema.Len())
	for i, c := range schema.columns {
		out[i] = values[c]
	}
	return FeatureVector{schema: schema, values: out}
}

func (v FeatureVector) Len() int { return len(v.values) }

// Columns returns the column names in order.
func (v FeatureVector) Columns() []string {
	if v.schema == nil {
		return nil
	}
	return v.schema.Columns()
}

// Values returns a copy of the values in column order.
func (v FeatureVector) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out
}

// Get returns the value of column and whether the column exists.
func (v FeatureVector) Get(column string) (float64, bool) {
	if v.schema == nil {
		return 0, false
	}
	i := v.schema.Index(column)
	if i < 0 {
		return 0, false
	}
	return v.values[i], true
}

// MarshalJSON encodes the vector as an object whose keys keep schema order.
func (v FeatureVector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if v.schema != nil {
		for i, c := range v.schema.columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(c)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(v.values[i])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

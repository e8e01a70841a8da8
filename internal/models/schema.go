package models

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FeatureSchema is the ordered set of columns the price model was trained on.
// It is immutable after construction and safe for concurrent reads.
type FeatureSchema struct {
	version string
	columns []string
	index   map[string]int
}

type schemaDocument struct {
	Version string   `json:"version"`
	Columns []string `json:"columns"`
}

// NewFeatureSchema validates columns and builds a schema from them.
func NewFeatureSchema(version string, columns []string) (*FeatureSchema, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("feature schema has no columns")
	}
	s := &FeatureSchema{
		version: version,
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("feature schema column %d is empty", i)
		}
		if prev, dup := s.index[c]; dup {
			return nil, fmt.Errorf("feature schema column %q repeated at positions %d and %d", c, prev, i)
		}
		s.columns[i] = c
		s.index[c] = i
	}
	return s, nil
}

// ParseSchema accepts either a bare JSON array of column names or an object
// with "version" and "columns".
func ParseSchema(data []byte) (*FeatureSchema, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var cols []string
		if err := json.Unmarshal(data, &cols); err != nil {
			return nil, fmt.Errorf("decoding schema columns: %w", err)
		}
		return NewFeatureSchema("", cols)
	}
	var doc schemaDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding schema document: %w", err)
	}
	return NewFeatureSchema(doc.Version, doc.Columns)
}

// LoadSchema reads a schema asset from disk.
func LoadSchema(path string) (*FeatureSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature schema: %w", err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *FeatureSchema) Version() string { return s.version }

func (s *FeatureSchema) Len() int { return len(s.columns) }

func (s *FeatureSchema) Has(column string) bool {
	_, ok := s.index[column]
	return ok
}

// Index returns the position of column, or -1.
func (s *FeatureSchema) Index(column string) int {
	if i, ok := s.index[column]; ok {
		return i
	}
	return -1
}

// Columns returns a copy of the column names in schema order.
func (s *FeatureSchema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// HasPrefix reports whether column belongs to the one-hot family named by prefix.
func HasPrefix(column, prefix string) bool {
	return strings.HasPrefix(column, prefix+"_")
}

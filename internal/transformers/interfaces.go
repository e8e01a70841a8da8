package transformers

// TokenNormalizer folds free text into a schema column token.
type TokenNormalizer interface {
	Normalize(input string) string
}

// CategoryMapper maps a categorical label onto a one-hot column of the schema.
type CategoryMapper interface {
	Map(label, prefix string) (column string, found bool)
}

// AmenityMatcher maps a caller amenity onto an amenity column of the schema.
type AmenityMatcher interface {
	Match(amenity string) (column string, found bool)
}

package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

const geocodeKeyPrefix = "geocode:v1:"

// NormalizeQuery folds case and whitespace so equivalent address queries share a key.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// GeocodeKey is the cache key for a geocoding result of query.
func GeocodeKey(provider, query string) string {
	sum := sha1.Sum([]byte(NormalizeQuery(query)))
	return geocodeKeyPrefix + provider + ":" + hex.EncodeToString(sum[:])
}

package transformers

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type tokenNormalizer struct{}

func NewTokenNormalizer() TokenNormalizer {
	return tokenNormalizer{}
}

func (tokenNormalizer) Normalize(input string) string {
	return Normalize(input)
}

// Normalize folds input to the [a-z0-9_] alphabet used by schema columns:
// compatibility forms are folded, letters lowercased, whitespace and hyphens
// become underscores, anything else is dropped, and underscore runs collapse.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(input string) string {
	folded := strings.ToLower(norm.NFKC.String(input))

	var b strings.Builder
	b.Grow(len(folded))
	lastUnderscore := true // suppresses leading underscores
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == '_' || r == '-' || unicode.IsSpace(r):
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}

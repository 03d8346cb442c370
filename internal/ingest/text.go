package ingest

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var nonASCII = runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })

// ToASCII drops every non-ASCII rune (and any invalid byte) from s. Nothing
// is substituted in their place.
func ToASCII(s string) string {
	out, _, err := transform.String(runes.Remove(nonASCII), s)
	if err != nil {
		return asciiFallback(s)
	}
	return out
}

func asciiFallback(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] <= unicode.MaxASCII {
			b = append(b, s[i])
		}
	}
	return string(b)
}

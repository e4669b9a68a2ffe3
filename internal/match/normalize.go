// Package match implements entity resolution for the venue/event catalog:
// string normalization, similarity and distance primitives, the prioritized
// venue and event matchers, and the batch duplicate scanner.
//
// Matchers read the catalog through the small interfaces declared here;
// catalog.Store satisfies them. All matching is read-only.
package match

import (
	"strings"
	"unicode"
)

// venueSuffixes are venue-type words stripped from the end of a name during
// normalization, so "Showbox Theater" and "The Showbox" resolve to the same
// normalized form.
var venueSuffixes = map[string]bool{
	"theater":      true,
	"theatre":      true,
	"arena":        true,
	"stadium":      true,
	"hall":         true,
	"lounge":       true,
	"club":         true,
	"bar":          true,
	"venue":        true,
	"ballroom":     true,
	"amphitheater": true,
	"amphitheatre": true,
	"pavilion":     true,
	"auditorium":   true,
	"center":       true,
	"centre":       true,
	"tavern":       true,
	"pub":          true,
}

var leadingArticles = map[string]bool{
	"the": true,
	"a":   true,
	"an":  true,
}

// NormalizeVenueName lowercases, strips punctuation, removes leading
// articles and trailing venue-type suffix words, and collapses whitespace.
// Idempotent: normalizing an already-normalized name returns it unchanged.
// The last remaining word is never stripped, so "The Arena" normalizes to
// "arena" rather than the empty string.
func NormalizeVenueName(name string) string {
	words := tokenize(name)
	for len(words) > 1 && leadingArticles[words[0]] {
		words = words[1:]
	}
	for len(words) > 1 && venueSuffixes[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// NormalizeEventTitle lowercases, strips punctuation, removes leading
// articles, and collapses whitespace. Idempotent.
func NormalizeEventTitle(title string) string {
	words := tokenize(title)
	for len(words) > 1 && leadingArticles[words[0]] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// tokenize lowercases s, replaces punctuation with spaces, and splits on
// whitespace. Fields also collapses runs of whitespace.
func tokenize(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Fields(cleaned)
}

package search

import (
	"strings"
	"unicode"
)

// Common words ignored during matching.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "be": {}, "is": {}, "are": {},
	"was": {}, "to": {}, "of": {}, "and": {}, "in": {}, "that": {},
	"have": {}, "it": {}, "for": {}, "not": {}, "on": {}, "with": {},
	"as": {}, "you": {}, "do": {}, "at": {}, "this": {}, "but": {},
	"by": {}, "from": {},
}

// tokenizeAndFilter lowercases text, splits it into words, and drops stop
// words. '+' and '#' count as word characters so names like "C++" and "C#"
// survive tokenization intact.
func tokenizeAndFilter(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	filtered := words[:0]
	for _, word := range words {
		if _, skip := stopWords[word]; !skip {
			filtered = append(filtered, word)
		}
	}
	return filtered
}

// containsAllQueryWords reports whether every query word appears in the
// document. A query with no words left after filtering matches nothing.
func containsAllQueryWords(document, query string) bool {
	queryWords := tokenizeAndFilter(query)
	if len(queryWords) == 0 {
		return false
	}

	docWords := make(map[string]struct{})
	for _, word := range tokenizeAndFilter(document) {
		docWords[word] = struct{}{}
	}

	for _, word := range queryWords {
		if _, ok := docWords[word]; !ok {
			return false
		}
	}
	return true
}

package search

import (
	"strings"
	"unicode"
)

// stopWords is the closed set of high-frequency English words the
// keyword branch never matches on. Matching on these would flood the
// lexical filter with documents that share nothing meaningful with
// the query.
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {},
	"an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "been": {}, "but": {}, "by": {},
	"can": {}, "come": {}, "could": {}, "did": {}, "do": {},
	"does": {}, "for": {}, "from": {}, "get": {}, "give": {},
	"go": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"his": {}, "how": {}, "i": {}, "if": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "its": {}, "just": {}, "like": {},
	"make": {}, "me": {}, "more": {}, "most": {}, "my": {},
	"no": {}, "not": {}, "now": {}, "of": {}, "on": {}, "one": {},
	"only": {}, "or": {}, "other": {}, "our": {}, "out": {},
	"over": {}, "say": {}, "she": {}, "should": {}, "so": {},
	"some": {}, "take": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "to": {}, "up": {}, "us": {}, "use": {},
	"was": {}, "we": {}, "well": {}, "were": {}, "what": {},
	"when": {}, "which": {}, "who": {}, "will": {}, "with": {},
	"would": {}, "you": {}, "your": {},
}

// ExtractKeywords reduces a natural-language query to its significant
// search tokens: lowercased words of more than two characters that are
// not stop words, deduplicated, in first-occurrence order. An empty
// result is a normal outcome (for example a query made entirely of
// stop words) and means the keyword branch has nothing to match on.
func ExtractKeywords(text string) []string {
	words := splitWords(text)
	seen := make(map[string]struct{}, len(words))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
	}
	return tokens
}

// splitWords lowercases text and splits it into maximal runs of
// letters and digits. This is the single word-boundary definition
// shared by keyword extraction, occurrence counting, and word counts,
// so "match the whole word" means the same thing everywhere.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Package tokenize splits a normalized phrase into tokens and decides which
// of those tokens are indexable or searchable, mirroring the original
// implementation's Filter/StringParser split between splitting and keeping.
package tokenize

import "strings"

// separators is the fixed set of runes a phrase is split on.
const separators = " .,;:|+-*/_=!@#$%`~^&(){}[]?'<>\""

// Split divides phrase into an ordered sequence of non-empty tokens on the
// fixed separator set.
func Split(phrase string) []string {
	return strings.FieldsFunc(phrase, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
}

// blacklist holds airport/city words across many languages that never carry
// search signal on their own. Built in the teacher's large-map-literal style
// (see pkg/macros in the teacher repo).
var blacklist = map[string]struct{}{
	"airport":        {},
	"aeroport":       {},
	"aéroport":       {},
	"flughafen":      {},
	"aeropuerto":     {},
	"международный":  {},
	"international":  {},
	"internacional":  {},
	"internationale": {},
	"intl":           {},
	"city":           {},
	"ville":          {},
	"stadt":          {},
	"ciudad":         {},
	"citta":          {},
	"città":          {},
	"cidade":         {},
	"aeropuerta":     {},
	"luchthaven":     {},
	"lotnisko":       {},
	"flygplats":      {},
	"lufthavn":       {},
	"port":           {},
	"station":        {},
	"gare":           {},
	"bahnhof":        {},
	"estacion":       {},
	"estación":       {},
}

// Filter decides, for a single token considered as part of phrase, whether
// it should be kept for indexing/searching. Rules are applied in order;
// the first match decides.
type Filter struct {
	// MinWordLength is the minimum token length to keep; tokens shorter
	// than this are dropped unless rule 1 applies. Default 3.
	MinWordLength int
}

// NewFilter builds a Filter with the given minimum word length. A
// non-positive length falls back to the spec default of 3.
func NewFilter(minWordLength int) *Filter {
	if minWordLength <= 0 {
		minWordLength = 3
	}
	return &Filter{MinWordLength: minWordLength}
}

// Keep reports whether token should be retained, given the full phrase it
// was drawn from.
func (f *Filter) Keep(token, phrase string) bool {
	if token == phrase {
		return true
	}
	if len([]rune(token)) < f.MinWordLength {
		return false
	}
	if _, blacklisted := blacklist[strings.ToLower(token)]; blacklisted {
		return false
	}
	return true
}

// Trim iteratively strips outer tokens that fail the filter from both ends
// of phrase's token sequence, until both ends are valid or the phrase is
// exhausted. Interior tokens are never dropped. Returns the trimmed phrase
// rejoined with single spaces.
func (f *Filter) Trim(phrase string) string {
	tokens := Split(phrase)
	start, end := 0, len(tokens)
	for start < end && !f.Keep(tokens[start], phrase) {
		start++
	}
	for end > start && !f.Keep(tokens[end-1], phrase) {
		end--
	}
	return strings.Join(tokens[start:end], " ")
}

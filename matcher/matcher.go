// Package matcher implements the iterative-shortening full-text match
// described in spec.md §4.7, backed by porindex's bleve-backed search and
// spelling dictionary.
package matcher

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/tokenize"
)

// Searcher is the narrow contract matcher needs from the index: a scored
// search plus the spelling dictionary's term list. porindex.Index satisfies
// this; matcher depends on the interface rather than the concrete type so
// tests can fake it.
type Searcher interface {
	SearchScored(phrase string) ([]porindex.ScoredDoc, error)
	SpellingTerms() ([]string, error)
}

// MatchResult is the outcome of a single sub-phrase match: the best
// document, its score, the effective and allowable edit distances, and the
// extra/alternate document sets spec.md §4.7 step 6 requires.
type MatchResult struct {
	OriginalPhrase        string
	CorrectedPhrase       string
	Best                  porindex.ScoredDoc
	BestScore             float64
	EditDistance          int
	AllowableEditDistance int
	Extra                 []porindex.ScoredDoc
	Alternate             []porindex.ScoredDoc
	// RemovedTokens accumulates tokens stripped during iterative shortening,
	// in removal order.
	RemovedTokens []string
}

// Matcher runs the probabilistic match plus iterative shortening.
type Matcher struct {
	index Searcher
}

// New builds a Matcher bound to index.
func New(index Searcher) *Matcher {
	return &Matcher{index: index}
}

// AllowableEditDistance implements spec.md §4.7 step 4's table: for
// nb_letters l, l<4→0, l<7→1, l<10→2, l<15→3, l<20→4, else ⌊l/5⌋.
func AllowableEditDistance(l int) int {
	switch {
	case l < 4:
		return 0
	case l < 7:
		return 1
	case l < 10:
		return 2
	case l < 15:
		return 3
	case l < 20:
		return 4
	default:
		return l / 5
	}
}

// correct finds the nearest in-dictionary term to phrase by Levenshtein
// distance, standing in for Xapian's FLAG_SPELLING_CORRECTION. Returns
// phrase unchanged if it is already in the dictionary or the dictionary is
// empty.
func correct(phrase string, dictionary []string) (corrected string, distance int) {
	best := phrase
	bestDist := -1
	for _, term := range dictionary {
		if term == phrase {
			return phrase, 0
		}
		d := levenshtein.ComputeDistance(phrase, term)
		if bestDist == -1 || d < bestDist {
			best, bestDist = term, d
		}
	}
	if bestDist == -1 {
		return phrase, 0
	}
	return best, bestDist
}

// Match runs the public contract of spec.md §4.7: match(phrase, index) →
// MatchingDocuments, including the iterative-shortening state machine of
// S0..S1 when the phrase yields zero matches.
func (m *Matcher) Match(phrase string) (*MatchResult, error) {
	dictionary, err := m.index.SpellingTerms()
	if err != nil {
		return nil, err
	}

	query := phrase
	var removed []string

	for {
		docs, err := m.index.SearchScored(query)
		if err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			if result, ok := m.accept(phrase, query, docs, dictionary, removed); ok {
				return result, nil
			}
		}

		tokens := tokenize.Split(query)
		if len(tokens) == 0 {
			return m.reject(phrase, removed), nil
		}
		removed = append(removed, tokens[len(tokens)-1])
		query = strings.Join(tokens[:len(tokens)-1], " ")
		if query == "" {
			return m.reject(phrase, removed), nil
		}
	}
}

// accept evaluates a non-empty search result against spec.md §4.7 step 4's
// allowable-edit-distance gate. It reports ok=false when the corrected
// query's edit distance exceeds the table for this sub-phrase's length, in
// which case the caller must treat this exactly like a zero-match outcome
// and continue the iterative-shortening/rightmost-token-pop retry.
func (m *Matcher) accept(originalPhrase, matchedQuery string, docs []porindex.ScoredDoc, dictionary []string, removed []string) (result *MatchResult, ok bool) {
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Score > docs[j].Score })

	best := docs[0]
	corrected, editDistance := matchedQuery, 0
	if !(best.Score == 100.0) {
		corrected, editDistance = correct(matchedQuery, dictionary)
	}

	allowable := AllowableEditDistance(len([]rune(matchedQuery)))
	if editDistance > allowable {
		return nil, false
	}

	var extra, alternate []porindex.ScoredDoc
	for _, d := range docs[1:] {
		if d.Score == best.Score {
			extra = append(extra, d)
		} else {
			alternate = append(alternate, d)
		}
	}

	return &MatchResult{
		OriginalPhrase:        originalPhrase,
		CorrectedPhrase:       corrected,
		Best:                  best,
		BestScore:             best.Score,
		EditDistance:          editDistance,
		AllowableEditDistance: allowable,
		Extra:                 extra,
		Alternate:             alternate,
		RemovedTokens:         removed,
	}, true
}

func (m *Matcher) reject(originalPhrase string, removed []string) *MatchResult {
	return &MatchResult{
		OriginalPhrase: originalPhrase,
		RemovedTokens:  removed,
	}
}

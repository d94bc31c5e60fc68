package porindex

import (
	"math/rand"
	"os"

	"github.com/blevesearch/bleve/v2"

	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porerr"
)

// Index wraps a bleve.Index with the narrow read contract the matcher,
// slicer, and request interpreter need: term set lookups, probabilistic
// queries, and payload retrieval. Safe for concurrent readers, per spec.md
// §5's shared read-only handle model.
type Index struct {
	bi              bleve.Index
	matchExistsFloor float64
}

// Option configures an Index at Open time.
type Option func(*Index)

// WithMatchExistsFloor overrides the default §4.5 co-match floor (see
// config.MatcherConfig.CoMatchFloor and DESIGN.md's Open Question
// resolution).
func WithMatchExistsFloor(floor float64) Option {
	return func(idx *Index) { idx.matchExistsFloor = floor }
}

// Open opens the index at path for reading. Returns porerr.ErrNoSuchIndex
// if path does not exist.
func Open(path string, opts ...Option) (*Index, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, porerr.ErrNoSuchIndex
	}
	bi, err := bleve.Open(path)
	if err != nil {
		return nil, porerr.Wrap(porerr.KindBackendInit, "open index", err)
	}
	idx := &Index{bi: bi, matchExistsFloor: defaultMatchExistsFloor}
	for _, opt := range opts {
		opt(idx)
	}
	return idx, nil
}

// Close releases the underlying index handle.
func (idx *Index) Close() error {
	return idx.bi.Close()
}

// Size returns the document count, satisfying spec.md §6.3's
// size(index) → unsigned.
func (idx *Index) Size() (uint64, error) {
	count, err := idx.bi.DocCount()
	if err != nil {
		return 0, porerr.Wrap(porerr.KindBackendState, "doc count", err)
	}
	return count, nil
}

// candidateCap is the matching-set cap spec.md §4.7 step 3 mandates.
const candidateCap = 30

// ScoredDoc is one matching document with its Xapian-style percentage score
// in [0,100], ready for the matcher's iterative-shortening logic.
type ScoredDoc struct {
	ID     string
	Score  float64
	Record por.Record
}

// SearchScored runs a boolean/phrase/disjunction query over the terms field
// and returns up to candidateCap hits ordered by descending score,
// emulating Xapian's BOOLEAN|PHRASE|LOVEHATE flags (see DESIGN.md).
func (idx *Index) SearchScored(phrase string) ([]ScoredDoc, error) {
	boolQ := bleve.NewMatchQuery(phrase)
	boolQ.SetField(fieldTerms)

	phraseQ := bleve.NewMatchPhraseQuery(phrase)
	phraseQ.SetField(fieldTerms)
	phraseQ.SetBoost(2.0)

	disjunction := bleve.NewDisjunctionQuery(boolQ, phraseQ)

	req := bleve.NewSearchRequestOptions(disjunction, candidateCap, 0, false)
	req.Fields = []string{fieldPayload}

	result, err := idx.bi.Search(req)
	if err != nil {
		return nil, porerr.Wrap(porerr.KindBackendState, "search", err)
	}

	var hits []ScoredDoc
	maxScore := 0.0
	for _, h := range result.Hits {
		if h.Score > maxScore {
			maxScore = h.Score
		}
	}
	for _, h := range result.Hits {
		payload, _ := h.Fields[fieldPayload].(string)
		rec, err := DecodePayload(payload)
		if err != nil {
			return nil, porerr.Wrap(porerr.KindBackendState, "decode payload for hit "+h.ID, err)
		}
		pct := 100.0
		if maxScore > 0 {
			pct = 100.0 * h.Score / maxScore
		}
		hits = append(hits, ScoredDoc{ID: h.ID, Score: pct, Record: rec})
	}
	return hits, nil
}

// defaultMatchExistsFloor is the default minimum best-match percentage
// above which MatchExists reports a match; see config.MatcherConfig.
// CoMatchFloor for the tunable and DESIGN.md for why 35% was chosen.
const defaultMatchExistsFloor = 35.0

// MatchExists reports whether phrase yields any match whose best score
// exceeds the index's co-match floor, the cheap variant slicer.MatchChecker
// needs.
func (idx *Index) MatchExists(phrase string) (bool, error) {
	hits, err := idx.SearchScored(phrase)
	if err != nil {
		return false, err
	}
	if len(hits) == 0 {
		return false, nil
	}
	return hits[0].Score >= idx.matchExistsFloor, nil
}

// CodeExists reports whether phrase matches a document's exact IATA/ICAO
// code, the RequestInterpreter fast-path check of spec.md §4.10 step 4.
func (idx *Index) CodeExists(code string) (por.Record, bool, error) {
	q := bleve.NewMatchQuery(code)
	q.SetField(fieldCode)
	req := bleve.NewSearchRequestOptions(q, 1, 0, false)
	req.Fields = []string{fieldPayload}

	result, err := idx.bi.Search(req)
	if err != nil {
		return por.Record{}, false, porerr.Wrap(porerr.KindBackendState, "code lookup", err)
	}
	if len(result.Hits) == 0 {
		return por.Record{}, false, nil
	}
	payload, _ := result.Hits[0].Fields[fieldPayload].(string)
	rec, err := DecodePayload(payload)
	if err != nil {
		return por.Record{}, false, porerr.Wrap(porerr.KindBackendState, "decode payload for code lookup", err)
	}
	return rec, true, nil
}

// Sample returns a uniform-random selection of up to n documents, used for
// smoke tests per spec.md §6.4's sample(n) operation.
func (idx *Index) Sample(n int) ([]por.Record, error) {
	total, err := idx.Size()
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	matchAll := bleve.NewMatchAllQuery()
	req := bleve.NewSearchRequestOptions(matchAll, int(total), 0, false)
	req.Fields = []string{fieldPayload}
	result, err := idx.bi.Search(req)
	if err != nil {
		return nil, porerr.Wrap(porerr.KindBackendState, "sample scan", err)
	}

	perm := rand.Perm(len(result.Hits))
	if n > len(perm) {
		n = len(perm)
	}

	out := make([]por.Record, 0, n)
	for i := 0; i < n; i++ {
		payload, _ := result.Hits[perm[i]].Fields[fieldPayload].(string)
		rec, err := DecodePayload(payload)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// SpellingTerms returns every distinct term in the spelling dictionary,
// used by the matcher's correction pass to find the nearest in-dictionary
// term by edit distance.
func (idx *Index) SpellingTerms() ([]string, error) {
	dict, err := idx.bi.FieldDict(fieldSpelling)
	if err != nil {
		return nil, porerr.Wrap(porerr.KindBackendState, "open spelling field dict", err)
	}
	defer dict.Close()

	var terms []string
	for {
		entry, err := dict.Next()
		if err != nil {
			return nil, porerr.Wrap(porerr.KindBackendState, "walk spelling field dict", err)
		}
		if entry == nil {
			break
		}
		terms = append(terms, entry.Term)
	}
	return terms, nil
}

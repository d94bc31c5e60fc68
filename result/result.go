// Package result implements Result, ResultHolder, and ResultCombination,
// grounded on opentrep/bom/ResultHolder.cpp and ResultCombination.cpp. It
// follows the arena-plus-index ownership pattern spec.md §9 calls for:
// every Result is owned by a single arena slice; ResultHolder and
// ResultCombination hold indices into that arena rather than pointers,
// avoiding the original's cyclic back-pointers.
package result

import (
	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/score"
)

// Result holds the outcome of a §4.7 match for one sub-phrase: its match
// result plus the full per-document ScoreBoard map, keyed by document id,
// and a cached best-document summary.
type Result struct {
	SubPhrase       string
	CorrectedPhrase string
	Boards          map[string]*score.Board
	Docs            map[string]porindex.ScoredDoc

	// EditDistance and AllowableEditDistance are copied from the §4.7
	// match outcome for the accepted (possibly shortened) query, so the
	// request interpreter can attach them to the emitted Location without
	// re-deriving them.
	EditDistance          int
	AllowableEditDistance int

	BestDocID      string
	CombinedWeight float64
}

// NewResult builds an empty Result for subPhrase.
func NewResult(subPhrase string) *Result {
	return &Result{
		SubPhrase: subPhrase,
		Boards:    make(map[string]*score.Board),
		Docs:      make(map[string]porindex.ScoredDoc),
	}
}

// Put records doc's ScoreBoard, keyed by its document id.
func (r *Result) Put(doc porindex.ScoredDoc, board *score.Board) {
	r.Docs[doc.ID] = doc
	r.Boards[doc.ID] = board
}

// RecomputeBest finds the document with the greatest combined weight and
// caches it on BestDocID/CombinedWeight.
func (r *Result) RecomputeBest() {
	r.BestDocID = ""
	r.CombinedWeight = 0
	for id, board := range r.Boards {
		w := board.CombinedWeight()
		if r.BestDocID == "" || w > r.CombinedWeight {
			r.BestDocID, r.CombinedWeight = id, w
		}
	}
}

// Arena owns every Result produced while evaluating one slice's partitions,
// so ResultHolder and ResultCombination can refer to results by index
// rather than by pointer.
type Arena struct {
	results []*Result
}

// Add appends r to the arena and returns its index.
func (a *Arena) Add(r *Result) int {
	a.results = append(a.results, r)
	return len(a.results) - 1
}

// Get returns the Result at index i.
func (a *Arena) Get(i int) *Result {
	return a.results[i]
}

// Holder is one partition's set of sub-phrase Results, referenced by arena
// index. It implements the five calculate_* steps of spec.md §4.8 over its
// held Results, then computes the partition's aggregated weight.
type Holder struct {
	arena           *Arena
	resultIndices   []int
	enumerationRank int
}

// NewHolder builds a Holder over arena for the given result indices, at the
// given position in partition enumeration order (used for tie-breaking).
func NewHolder(arena *Arena, resultIndices []int, enumerationRank int) *Holder {
	return &Holder{arena: arena, resultIndices: resultIndices, enumerationRank: enumerationRank}
}

// Results returns the Holder's underlying Results, in sub-phrase order.
func (h *Holder) Results() []*Result {
	out := make([]*Result, len(h.resultIndices))
	for i, idx := range h.resultIndices {
		out[i] = h.arena.Get(idx)
	}
	return out
}

// CalculateEnvelopeWeights applies the ENV_ID score rule to every document
// of every held Result.
func (h *Holder) CalculateEnvelopeWeights(envelopeOf func(docID string) uint32) {
	for _, r := range h.Results() {
		for id, board := range r.Boards {
			board.SetEnvID(envelopeOf(id))
		}
	}
}

// CalculateCodeMatches applies the CODE_FULL_MATCH score rule to every
// document of every held Result.
func (h *Holder) CalculateCodeMatches(codesOf func(docID string) (iata, icao string)) {
	for _, r := range h.Results() {
		for id, board := range r.Boards {
			iata, icao := codesOf(id)
			board.SetCodeFullMatch(r.SubPhrase, iata, icao)
		}
	}
}

// CalculatePageRanks applies the PAGE_RANK score rule to every document of
// every held Result.
func (h *Holder) CalculatePageRanks(pageRankOf func(docID string) float64) {
	for _, r := range h.Results() {
		for id, board := range r.Boards {
			board.SetPageRank(pageRankOf(id))
		}
	}
}

// CalculateHeuristicWeights applies an implementation-defined heuristic
// signal to every document of every held Result.
func (h *Holder) CalculateHeuristicWeights(heuristicOf func(docID, subPhrase string) float64) {
	for _, r := range h.Results() {
		for id, board := range r.Boards {
			board.SetHeuristic(heuristicOf(id, r.SubPhrase))
		}
	}
}

// CalculateCombinedWeights recomputes each held Result's best document and
// combined weight, then returns the partition's aggregated weight: the
// product over sub-phrases of each sub-phrase's best combined weight.
func (h *Holder) CalculateCombinedWeights() float64 {
	var best []float64
	for _, r := range h.Results() {
		r.RecomputeBest()
		best = append(best, r.CombinedWeight)
	}
	return score.AggregateSubPhraseWeights(best)
}

// Candidate returns this Holder's aggregated weight as a score.Candidate
// for partition selection.
func (h *Holder) Candidate(weight float64) score.Candidate {
	return score.Candidate{
		Weight:          weight,
		SubPhraseCount:  len(h.resultIndices),
		EnumerationRank: h.enumerationRank,
	}
}

// Combination is one slice's set of partition Holders; it runs the five
// calculators on each, then selects the winning partition per spec.md
// §4.8's tie-break rule.
type Combination struct {
	Holders []*Holder
}

// SelectBest runs every Holder's calculators (via the supplied lookup
// functions) and returns the winning Holder, its weight, and whether a
// winner exists. If no partition has a positive weight, ok is false and the
// slice yields no matches.
func (c *Combination) SelectBest(
	envelopeOf func(string) uint32,
	codesOf func(string) (string, string),
	pageRankOf func(string) float64,
	heuristicOf func(string, string) float64,
) (winner *Holder, weight float64, ok bool) {
	candidates := make([]score.Candidate, len(c.Holders))
	for i, h := range c.Holders {
		h.CalculateEnvelopeWeights(envelopeOf)
		h.CalculateCodeMatches(codesOf)
		h.CalculatePageRanks(pageRankOf)
		h.CalculateHeuristicWeights(heuristicOf)
		w := h.CalculateCombinedWeights()
		candidates[i] = h.Candidate(w)
	}

	best, idx, found := score.SelectBestPartition(candidates)
	if !found {
		return nil, 0, false
	}
	return c.Holders[idx], best.Weight, true
}

// CorrectedSubPhrases returns the winning Holder's corrected sub-phrases,
// in sub-phrase order.
func (h *Holder) CorrectedSubPhrases() []string {
	out := make([]string, 0, len(h.resultIndices))
	for _, r := range h.Results() {
		out = append(out, r.CorrectedPhrase)
	}
	return out
}

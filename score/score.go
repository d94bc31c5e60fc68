// Package score implements the per-document ScoreBoard and its combination
// rule, grounded on opentrep/bom/ScoreBoard.cpp's calculateCombinedWeight.
package score

import "strings"

// Type identifies one of the individual signals a ScoreBoard carries.
type Type int

const (
	CodeFullMatch Type = iota
	EnvID
	XapianPct
	PageRank
	Heuristic
)

// Implementation constants from the original's ScoreType, preserved as the
// distilled spec requires: the huge CODE_FULL_MATCH constant compensates the
// tiny default PageRank so exact code matches dominate ranking.
const (
	KFullCodeMatchPct    = 110_000.0
	KModifiedMatchingPct = 99.999
	KEnvelopePct         = 0.10
	KNeutralHeuristicPct = 100.0
	KDefaultPageRankPct  = 0.10
)

// Board holds up to five individual signals plus their combination, for one
// (slice, partition, sub-phrase, document) quadruple.
type Board struct {
	scores map[Type]float64
}

// NewBoard builds an empty Board.
func NewBoard() *Board {
	return &Board{scores: make(map[Type]float64, 5)}
}

// Set records score as the value of signal t, overwriting any prior value.
func (b *Board) Set(t Type, value float64) {
	b.scores[t] = value
}

// Get returns the stored value of t and whether it has been set.
func (b *Board) Get(t Type) (float64, bool) {
	v, ok := b.scores[t]
	return v, ok
}

// SetCodeFullMatch applies the CODE_FULL_MATCH override rule: when subPhrase
// equals an IATA/ICAO code (ignoring case, since sub-phrases are normalized
// to lowercase while catalog codes are uppercase), store
// K_FULL_CODE_MATCH_PCT; otherwise K_MODIFIED_MATCHING_PCT.
func (b *Board) SetCodeFullMatch(subPhrase string, iataCode, icaoCode string) {
	if subPhrase != "" && (strings.EqualFold(subPhrase, iataCode) || strings.EqualFold(subPhrase, icaoCode)) {
		b.Set(CodeFullMatch, KFullCodeMatchPct)
		return
	}
	b.Set(CodeFullMatch, KModifiedMatchingPct)
}

// SetEnvID applies the ENV_ID override rule: a currently-valid record
// (envelope id zero) scores 100.0; a historical one scores K_ENVELOPE_PCT.
func (b *Board) SetEnvID(envelopeID uint32) {
	if envelopeID == 0 {
		b.Set(EnvID, 100.0)
		return
	}
	b.Set(EnvID, KEnvelopePct)
}

// SetXapianPct stores the raw match percentage returned by the matcher, in
// [0,100].
func (b *Board) SetXapianPct(pct float64) {
	b.Set(XapianPct, pct)
}

// SetPageRank stores the record's PageRank percentage, defaulting to
// K_DEFAULT_PAGE_RANK_PCT when the record carries none.
func (b *Board) SetPageRank(pageRank float64) {
	if pageRank <= 0 {
		b.Set(PageRank, KDefaultPageRankPct)
		return
	}
	b.Set(PageRank, pageRank)
}

// SetHeuristic stores an implementation-defined local-rule signal. Callers
// that have no heuristic to apply should store KNeutralHeuristicPct so the
// combination rule treats it as a no-op.
func (b *Board) SetHeuristic(pct float64) {
	b.Set(Heuristic, pct)
}

// CombinedWeight computes 100 × Π_i (score_i / 100) over every signal
// currently present on the board. This preserves [0,100] bounds for scores
// individually in range, and makes any zero-valued signal veto the whole;
// the CODE_FULL_MATCH override intentionally exceeds 100 so that an exact
// code match can outweigh a low PageRank (see por-search's RequestInterpreter
// output clamp, which bounds the final externally visible percentage).
func (b *Board) CombinedWeight() float64 {
	combined := 100.0
	for _, v := range b.scores {
		combined *= v / 100.0
	}
	return combined
}

// AggregateSubPhraseWeights implements the per-slice aggregation rule: the
// product over a partition's sub-phrases of each sub-phrase's best combined
// weight, normalized the same way as CombinedWeight. An empty list gives 0%.
func AggregateSubPhraseWeights(bestWeights []float64) float64 {
	if len(bestWeights) == 0 {
		return 0
	}
	combined := 100.0
	for _, w := range bestWeights {
		combined *= w / 100.0
	}
	return combined
}

// Candidate is one partition's aggregated weight, together with its
// sub-phrase count and enumeration index, as required by the tie-break rule
// below.
type Candidate struct {
	Weight          float64
	SubPhraseCount  int
	EnumerationRank int
}

// SelectBestPartition implements the per-slice partition selection rule:
// among all candidates, pick the greatest aggregated weight; ties are
// broken by preferring fewer sub-phrases (coarser segmentation), then the
// earliest enumeration order. If no candidate has a positive weight, ok is
// false and the slice yields no matches.
//
// The original implementation breaks ties with a bare greater-than
// comparison (first-seen wins); this explicit rule is a deliberate
// tightening, not an ambiguity in the original's favor.
func SelectBestPartition(candidates []Candidate) (best Candidate, index int, ok bool) {
	index = -1
	for i, c := range candidates {
		if c.Weight <= 0 {
			continue
		}
		if index == -1 || better(c, best) {
			best, index = c, i
		}
	}
	return best, index, index != -1
}

func better(c, best Candidate) bool {
	if c.Weight != best.Weight {
		return c.Weight > best.Weight
	}
	if c.SubPhraseCount != best.SubPhraseCount {
		return c.SubPhraseCount < best.SubPhraseCount
	}
	return c.EnumerationRank < best.EnumerationRank
}

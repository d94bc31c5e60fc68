package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/score"
)

func TestResultRecomputeBest(t *testing.T) {
	r := NewResult("nce")
	docA := porindex.ScoredDoc{ID: "A"}
	docB := porindex.ScoredDoc{ID: "B"}

	boardA := score.NewBoard()
	boardA.Set(score.XapianPct, 80)
	boardB := score.NewBoard()
	boardB.Set(score.XapianPct, 95)

	r.Put(docA, boardA)
	r.Put(docB, boardB)
	r.RecomputeBest()

	assert.Equal(t, "B", r.BestDocID)
	assert.InDelta(t, 95.0, r.CombinedWeight, 0.0001)
}

func TestHolderCalculateCombinedWeights(t *testing.T) {
	arena := &Arena{}
	r1 := NewResult("san")
	r1.Put(porindex.ScoredDoc{ID: "SFO"}, score.NewBoard())
	idx1 := arena.Add(r1)

	r2 := NewResult("francisco")
	r2.Put(porindex.ScoredDoc{ID: "SFO"}, score.NewBoard())
	idx2 := arena.Add(r2)

	h := NewHolder(arena, []int{idx1, idx2}, 0)
	envelopeOf := func(string) uint32 { return 0 }
	codesOf := func(string) (string, string) { return "SFO", "KSFO" }
	pageRankOf := func(string) float64 { return 0 }
	heuristicOf := func(string, string) float64 { return 100.0 }

	h.CalculateEnvelopeWeights(envelopeOf)
	h.CalculateCodeMatches(codesOf)
	h.CalculatePageRanks(pageRankOf)
	h.CalculateHeuristicWeights(heuristicOf)
	weight := h.CalculateCombinedWeights()

	assert.Greater(t, weight, 0.0)
}

func TestCombinationSelectBestPrefersHigherWeight(t *testing.T) {
	arena := &Arena{}

	weak := NewResult("san francisco")
	weak.Put(porindex.ScoredDoc{ID: "X"}, score.NewBoard())
	weakIdx := arena.Add(weak)

	strong := NewResult("SFO")
	strong.Put(porindex.ScoredDoc{ID: "SFO"}, score.NewBoard())
	strongIdx := arena.Add(strong)

	weakHolder := NewHolder(arena, []int{weakIdx}, 0)
	strongHolder := NewHolder(arena, []int{strongIdx}, 1)

	comb := &Combination{Holders: []*Holder{weakHolder, strongHolder}}

	envelopeOf := func(string) uint32 { return 0 }
	codesOf := func(id string) (string, string) {
		if id == "SFO" {
			return "SFO", "KSFO"
		}
		return "ZZZ", "ZZZZ"
	}
	pageRankOf := func(string) float64 { return 0 }
	heuristicOf := func(string, string) float64 { return 100.0 }

	winner, weight, ok := comb.SelectBest(envelopeOf, codesOf, pageRankOf, heuristicOf)
	require.True(t, ok)
	assert.Same(t, strongHolder, winner)
	assert.Greater(t, weight, 0.0)
}

func TestCombinationSelectBestNoPositiveWeight(t *testing.T) {
	comb := &Combination{}
	_, _, ok := comb.SelectBest(
		func(string) uint32 { return 0 },
		func(string) (string, string) { return "", "" },
		func(string) float64 { return 0 },
		func(string, string) float64 { return 100 },
	)
	assert.False(t, ok)
}

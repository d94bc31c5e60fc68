package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeFullMatchOverride(t *testing.T) {
	b := NewBoard()
	b.SetCodeFullMatch("nce", "nce", "lfmn")
	v, ok := b.Get(CodeFullMatch)
	assert.True(t, ok)
	assert.Equal(t, KFullCodeMatchPct, v)

	b2 := NewBoard()
	b2.SetCodeFullMatch("nice", "nce", "lfmn")
	v2, _ := b2.Get(CodeFullMatch)
	assert.Equal(t, KModifiedMatchingPct, v2)
}

func TestEnvIDOverride(t *testing.T) {
	b := NewBoard()
	b.SetEnvID(0)
	v, _ := b.Get(EnvID)
	assert.Equal(t, 100.0, v)

	b2 := NewBoard()
	b2.SetEnvID(42)
	v2, _ := b2.Get(EnvID)
	assert.Equal(t, KEnvelopePct, v2)
}

func TestPageRankDefault(t *testing.T) {
	b := NewBoard()
	b.SetPageRank(0)
	v, _ := b.Get(PageRank)
	assert.Equal(t, KDefaultPageRankPct, v)
}

func TestCombinedWeightProductRule(t *testing.T) {
	b := NewBoard()
	b.Set(XapianPct, 100.0)
	b.Set(PageRank, 50.0)
	assert.InDelta(t, 50.0, b.CombinedWeight(), 0.0001)
}

func TestCombinedWeightZeroVetoes(t *testing.T) {
	b := NewBoard()
	b.Set(XapianPct, 0.0)
	b.Set(PageRank, 100.0)
	assert.Equal(t, 0.0, b.CombinedWeight())
}

func TestAggregateSubPhraseWeightsEmpty(t *testing.T) {
	assert.Equal(t, 0.0, AggregateSubPhraseWeights(nil))
}

func TestAggregateSubPhraseWeights(t *testing.T) {
	got := AggregateSubPhraseWeights([]float64{100.0, 50.0})
	assert.InDelta(t, 50.0, got, 0.0001)
}

func TestSelectBestPartitionPrefersWeight(t *testing.T) {
	candidates := []Candidate{
		{Weight: 40, SubPhraseCount: 1, EnumerationRank: 0},
		{Weight: 90, SubPhraseCount: 2, EnumerationRank: 1},
	}
	best, idx, ok := SelectBestPartition(candidates)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 90.0, best.Weight)
}

func TestSelectBestPartitionTieBreaksOnFewerSubPhrases(t *testing.T) {
	candidates := []Candidate{
		{Weight: 90, SubPhraseCount: 2, EnumerationRank: 0},
		{Weight: 90, SubPhraseCount: 1, EnumerationRank: 1},
	}
	best, idx, ok := SelectBestPartition(candidates)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, best.SubPhraseCount)
}

func TestSelectBestPartitionTieBreaksOnEnumerationOrder(t *testing.T) {
	candidates := []Candidate{
		{Weight: 90, SubPhraseCount: 1, EnumerationRank: 1},
		{Weight: 90, SubPhraseCount: 1, EnumerationRank: 0},
	}
	best, idx, ok := SelectBestPartition(candidates)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0, best.EnumerationRank)
}

func TestSelectBestPartitionNoPositiveWeight(t *testing.T) {
	candidates := []Candidate{{Weight: 0}, {Weight: -1}}
	_, _, ok := SelectBestPartition(candidates)
	assert.False(t, ok)
}

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porindex"
)

type fakeSearcher struct {
	byPhrase   map[string][]porindex.ScoredDoc
	dictionary []string
}

func (f *fakeSearcher) SearchScored(phrase string) ([]porindex.ScoredDoc, error) {
	return f.byPhrase[phrase], nil
}

func (f *fakeSearcher) SpellingTerms() ([]string, error) {
	return f.dictionary, nil
}

func TestAllowableEditDistanceTable(t *testing.T) {
	cases := map[int]int{3: 0, 6: 1, 9: 2, 14: 3, 19: 4, 25: 5}
	for l, want := range cases {
		assert.Equal(t, want, AllowableEditDistance(l), "length %d", l)
	}
}

func TestMatchImmediateAccept(t *testing.T) {
	rec := por.Record{Key: por.Key{IATACode: "NCE"}}
	s := &fakeSearcher{byPhrase: map[string][]porindex.ScoredDoc{
		"nce": {{ID: "NCE-LFMN-0", Score: 100.0, Record: rec}},
	}}
	m := New(s)

	result, err := m.Match("nce")
	require.NoError(t, err)
	assert.Equal(t, "NCE-LFMN-0", result.Best.ID)
	assert.Equal(t, 100.0, result.BestScore)
	assert.Empty(t, result.RemovedTokens)
}

func TestMatchIterativeShortening(t *testing.T) {
	rec := por.Record{Key: por.Key{IATACode: "SFO"}}
	s := &fakeSearcher{byPhrase: map[string][]porindex.ScoredDoc{
		"san francisco": {{ID: "SFO-KSFO-0", Score: 90.0, Record: rec}},
	}}
	m := New(s)

	result, err := m.Match("san francisco airport")
	require.NoError(t, err)
	assert.Equal(t, []string{"airport"}, result.RemovedTokens)
	assert.Equal(t, "SFO-KSFO-0", result.Best.ID)
}

func TestMatchRejectsWhenQueryExhausted(t *testing.T) {
	s := &fakeSearcher{byPhrase: map[string][]porindex.ScoredDoc{}}
	m := New(s)

	result, err := m.Match("nowhere")
	require.NoError(t, err)
	assert.Equal(t, por.Record{}, result.Best.Record)
	assert.Equal(t, []string{"nowhere"}, result.RemovedTokens)
}

func TestMatchRejectsWhenEditDistanceExceedsAllowable(t *testing.T) {
	// "xx" has length 2, so AllowableEditDistance(2) == 0. The only
	// dictionary entry is 2 edits away, so the non-exact hit below must be
	// rejected rather than accepted, falling through to the shortening
	// loop, which then exhausts the query and rejects.
	s := &fakeSearcher{
		byPhrase: map[string][]porindex.ScoredDoc{
			"xx": {{ID: "FAR", Score: 50.0}},
		},
		dictionary: []string{"ab"},
	}
	m := New(s)

	result, err := m.Match("xx")
	require.NoError(t, err)
	assert.Equal(t, por.Record{}, result.Best.Record)
	assert.Equal(t, []string{"xx"}, result.RemovedTokens)
}

func TestMatchExtraAndAlternateSplit(t *testing.T) {
	s := &fakeSearcher{byPhrase: map[string][]porindex.ScoredDoc{
		"nce": {
			{ID: "A", Score: 100.0},
			{ID: "B", Score: 100.0},
			{ID: "C", Score: 80.0},
		},
	}}
	m := New(s)

	result, err := m.Match("nce")
	require.NoError(t, err)
	require.Len(t, result.Extra, 1)
	assert.Equal(t, "B", result.Extra[0].ID)
	require.Len(t, result.Alternate, 1)
	assert.Equal(t, "C", result.Alternate[0].ID)
}

func TestCorrectAppliesLevenshteinDistance(t *testing.T) {
	corrected, dist := correct("nce", []string{"nice", "nancy"})
	assert.Equal(t, "nice", corrected)
	assert.Equal(t, 1, dist)
}

func TestCorrectExactDictionaryHit(t *testing.T) {
	corrected, dist := correct("nce", []string{"nce"})
	assert.Equal(t, "nce", corrected)
	assert.Equal(t, 0, dist)
}

package interpreter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porerr"
	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/tokenize"
	"github.com/gilby125/por-search/transliterate"
)

type fakeIndex struct {
	codes   map[string]por.Record
	scored  map[string][]porindex.ScoredDoc
	spelling []string
}

func (f *fakeIndex) SearchScored(phrase string) ([]porindex.ScoredDoc, error) {
	return f.scored[phrase], nil
}

func (f *fakeIndex) SpellingTerms() ([]string, error) {
	return f.spelling, nil
}

func (f *fakeIndex) MatchExists(phrase string) (bool, error) {
	return len(f.scored[phrase]) > 0, nil
}

func (f *fakeIndex) CodeExists(code string) (por.Record, bool, error) {
	rec, ok := f.codes["nce"]
	_ = code
	return rec, ok && code == "nce", nil
}

type fakeEnricher struct{}

func (fakeEnricher) CityDetails(ctx context.Context, key por.Key) ([]por.CityDetail, error) {
	return nil, nil
}

func newTestInterpreter(t *testing.T, idx *fakeIndex) *Interpreter {
	t.Helper()
	tr, err := transliterate.New()
	require.NoError(t, err)
	filter := tokenize.NewFilter(3)
	return New(idx, fakeEnricher{}, tr, filter)
}

func TestInterpretEmptyQuery(t *testing.T) {
	idx := &fakeIndex{}
	i := newTestInterpreter(t, idx)
	_, _, err := i.Interpret(context.Background(), "")
	assert.ErrorIs(t, err, porerr.ErrEmpty)
}

func TestInterpretFastPathCode(t *testing.T) {
	rec := por.Record{Key: por.Key{IATACode: "NCE", ICAOCode: "LFMN"}, Name: "Nice"}
	idx := &fakeIndex{codes: map[string]por.Record{"nce": rec}}
	i := newTestInterpreter(t, idx)

	locs, unmatched, err := i.Interpret(context.Background(), "nce")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "NCE", locs[0].Key.IATACode)
	assert.Equal(t, 100.0, locs[0].MatchingPercentage)
	assert.Empty(t, unmatched)
}

func TestInterpretSlicedMatch(t *testing.T) {
	rec := por.Record{Key: por.Key{IATACode: "SFO", ICAOCode: "KSFO"}, Name: "San Francisco"}
	idx := &fakeIndex{
		scored: map[string][]porindex.ScoredDoc{
			"san francisco": {{ID: "SFO-KSFO-0", Score: 100.0, Record: rec}},
		},
	}
	i := newTestInterpreter(t, idx)

	locs, _, err := i.Interpret(context.Background(), "san francisco")
	require.NoError(t, err)
	require.NotEmpty(t, locs)
	assert.Equal(t, "SFO", locs[0].Key.IATACode)
}

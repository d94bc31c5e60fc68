package slicer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChecker treats exactly the phrases listed as keys of cohesive as
// matching, and everything else as not matching.
type fakeChecker struct {
	cohesive map[string]bool
}

func (f *fakeChecker) MatchExists(phrase string) (bool, error) {
	return f.cohesive[phrase], nil
}

func TestSliceSingleToken(t *testing.T) {
	s := New(&fakeChecker{})
	got, err := s.Slice("sfo")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"sfo"}, got[0].Tokens)
}

func TestSliceMultiplePOR(t *testing.T) {
	cohesive := map[string]bool{
		"san francisco": true,
		"rio de":        true,
		"de janeiro":    true,
	}
	s := New(&fakeChecker{cohesive: cohesive})
	got, err := s.Slice("san francisco nce rio de janeiro")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"san", "francisco"}, got[0].Tokens)
	assert.Equal(t, []string{"nce"}, got[1].Tokens)
	assert.Equal(t, []string{"rio", "de", "janeiro"}, got[2].Tokens)
}

func TestSliceCoversWithoutOverlap(t *testing.T) {
	cohesive := map[string]bool{}
	s := New(&fakeChecker{cohesive: cohesive})
	query := "a b c d"
	got, err := s.Slice(query)
	require.NoError(t, err)

	var rebuilt []string
	for _, sl := range got {
		assert.NotEmpty(t, sl.Tokens)
		rebuilt = append(rebuilt, sl.Tokens...)
	}
	assert.Equal(t, strings.Fields(query), rebuilt)
}

func TestSliceEmpty(t *testing.T) {
	s := New(&fakeChecker{})
	got, err := s.Slice("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

package wordcombo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gilby125/por-search/tokenize"
)

func TestBuildSimplePhrase(t *testing.T) {
	f := tokenize.NewFilter(3)
	got := Build("san francisco", f)
	assert.Contains(t, got, "san")
	assert.Contains(t, got, "francisco")
	assert.Contains(t, got, "san francisco")
}

func TestBuildNoDuplicates(t *testing.T) {
	f := tokenize.NewFilter(3)
	got := Build("new york new york", f)
	seen := make(map[string]int)
	for _, p := range got {
		seen[p]++
	}
	for phrase, count := range seen {
		assert.Equal(t, 1, count, "phrase %q appeared more than once", phrase)
	}
}

func TestBuildHoleRemoved(t *testing.T) {
	f := tokenize.NewFilter(3)
	got := Build("san francisco international airport", f)
	assert.Contains(t, got, "san airport")
}

func TestBuildSingleToken(t *testing.T) {
	f := tokenize.NewFilter(3)
	got := Build("sfo", f)
	assert.Equal(t, []string{"sfo"}, got)
}

func TestBuildEmpty(t *testing.T) {
	f := tokenize.NewFilter(3)
	assert.Nil(t, Build("", f))
}

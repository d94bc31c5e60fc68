package por

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePageRankDefault(t *testing.T) {
	r := &Record{}
	assert.Equal(t, 0.10, r.EffectivePageRank())
}

func TestEffectivePageRankPreservesNonZero(t *testing.T) {
	r := &Record{PageRank: 42.0}
	assert.Equal(t, 42.0, r.EffectivePageRank())
}

func TestIsValid(t *testing.T) {
	assert.True(t, (&Record{}).IsValid())
	assert.False(t, (&Record{EnvelopeID: 7}).IsValid())
}

func TestNameMatrixLanguagesSorted(t *testing.T) {
	m := NameMatrix{}
	m.Add("zh", "上海")
	m.Add("en", "Shanghai")
	m.Add("fr", "Changhai")
	assert.Equal(t, []string{"en", "fr", "zh"}, m.Languages())
}

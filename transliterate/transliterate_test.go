package transliterate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase ascii passthrough", "nice", "nice"},
		{"accented name", "Nice-Côte d'Azur", "nice cote d azur"},
		{"punctuation stripped", "St. Petersburg!", "st petersburg"},
		{"hyphen folds to space", "Rio-de-Janeiro", "rio de janeiro"},
		{"cyrillic transliterates to latin", "Москва", "moskva"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Normalize(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	inputs := []string{
		"San Francisco International Airport",
		"Москва",
		"Saint-Exupéry",
		"",
		"123",
	}
	for _, in := range inputs {
		once := tr.Normalize(in)
		twice := tr.Normalize(once)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", in)
	}
}

func TestRemovePunctuation(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)
	assert.Equal(t, "hello world", tr.RemovePunctuation("hello, world!"))
}

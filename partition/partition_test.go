package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumerateSingleToken(t *testing.T) {
	got := Enumerate([]string{"sfo"})
	assert.Equal(t, []Partition{{"sfo"}}, got)
}

func TestEnumerateTwoTokens(t *testing.T) {
	got := Enumerate([]string{"san", "francisco"})
	want := []Partition{
		{"san", "francisco"},
		{"san francisco"},
	}
	assert.Equal(t, want, got)
}

func TestEnumerateThreeTokensEndsWithTrivial(t *testing.T) {
	got := Enumerate([]string{"san", "francisco", "airport"})
	assert.Equal(t, Partition{"san francisco airport"}, got[len(got)-1])
	assert.Equal(t, Partition{"san", "francisco", "airport"}, got[0])
}

func TestEnumerateCount(t *testing.T) {
	// O(2^(n-1)) partitions for n tokens.
	got := Enumerate([]string{"a", "b", "c", "d"})
	assert.Len(t, got, 8)
}

func TestEnumerateEmpty(t *testing.T) {
	assert.Nil(t, Enumerate(nil))
}

package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	got := Split("san francisco-international_airport")
	assert.Equal(t, []string{"san", "francisco", "international", "airport"}, got)
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split("   "))
}

func TestFilterKeep(t *testing.T) {
	f := NewFilter(3)

	tests := []struct {
		name   string
		token  string
		phrase string
		want   bool
	}{
		{"short phrase-equal token kept", "sfo", "sfo", true},
		{"below min length dropped", "sf", "sf francisco", false},
		{"blacklisted word dropped", "airport", "san francisco airport", false},
		{"blacklisted word kept if whole phrase", "airport", "airport", true},
		{"ordinary word kept", "francisco", "san francisco airport", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Keep(tt.token, tt.phrase))
		})
	}
}

func TestFilterDefaultMinLength(t *testing.T) {
	f := NewFilter(0)
	assert.Equal(t, 3, f.MinWordLength)
}

func TestTrim(t *testing.T) {
	f := NewFilter(3)
	got := f.Trim("a san francisco airport")
	assert.Equal(t, "san francisco", got)
}

func TestTrimKeepsInteriorBlacklistedTokens(t *testing.T) {
	f := NewFilter(3)
	got := f.Trim("san airport francisco")
	assert.Equal(t, "san airport francisco", got)
}

func TestTrimWholePhraseShortCircuit(t *testing.T) {
	f := NewFilter(3)
	got := f.Trim("sfo")
	assert.Equal(t, "sfo", got)
}

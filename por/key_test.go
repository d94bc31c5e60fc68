package por

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	k := Key{IATACode: "NCE", ICAOCode: "LFMN", GeonamesID: 6299418}
	assert.Equal(t, "NCE-LFMN-6299418", k.String())
}

func TestKeyIsZero(t *testing.T) {
	assert.True(t, Key{}.IsZero())
	assert.False(t, Key{IATACode: "NCE"}.IsZero())
}

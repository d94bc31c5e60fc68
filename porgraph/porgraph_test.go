package porgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "LAX", toString("LAX"))
	assert.Equal(t, "", toString(nil))
	assert.Equal(t, "", toString(42))
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(5631219), toInt64(int64(5631219)))
	assert.Equal(t, int64(0), toInt64(nil))
	assert.Equal(t, int64(0), toInt64("not a number"))
}

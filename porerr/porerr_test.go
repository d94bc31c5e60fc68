package porerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesIs(t *testing.T) {
	err := Wrap(KindBackendState, "open index", ErrNoSuchIndex)
	assert.True(t, errors.Is(err, ErrNoSuchIndex))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(KindTransient, "op", nil))
}

func TestErrorMessageIncludesOp(t *testing.T) {
	err := Wrap(KindParse, "read row 4", errors.New("bad column count"))
	assert.Contains(t, err.Error(), "read row 4")
	assert.Contains(t, err.Error(), "bad column count")
}

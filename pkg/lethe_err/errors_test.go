// pkg/lethe_err/errors_test.go

package lethe_err

import (
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedUserError(t *testing.T) {
	base := cerr.New("destruction declined by user")
	wrapped := NewExpectedError(base)

	require.Error(t, wrapped)
	assert.True(t, IsExpectedUserError(wrapped))
	assert.Equal(t, base.Error(), wrapped.Error())
	assert.ErrorIs(t, wrapped, base, "the cause must stay reachable through Unwrap")
}

func TestExpectedUserErrorSurvivesWrapping(t *testing.T) {
	inner := NewExpectedError(cerr.New("declined"))
	outer := cerr.Wrap(inner, "command failed")
	assert.True(t, IsExpectedUserError(outer))
}

func TestNewExpectedErrorNil(t *testing.T) {
	assert.NoError(t, NewExpectedError(nil))
	assert.False(t, IsExpectedUserError(nil))
}

func TestOrdinaryErrorIsNotExpected(t *testing.T) {
	assert.False(t, IsExpectedUserError(cerr.New("disk on fire")))
}

package dkgerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvariantViolationIsFatal(t *testing.T) {
	err := InvariantViolation("view", "node left unmapped after eliminate phase")
	assert.True(t, IsFatal(err))
	assert.Equal(t, SeverityCritical, err.Severity)
}

func TestInputFormatErrorWrapsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := InputFormatError("netlist", "top.json", cause)
	assert.False(t, IsFatal(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "top.json")
}

func TestIsFatalNonErrorNeverFatal(t *testing.T) {
	assert.False(t, IsFatal(errors.New("plain")))
	assert.False(t, IsFatal(nil))
}

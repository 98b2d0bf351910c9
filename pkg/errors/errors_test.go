package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(Validation("bad input")))
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("User")))
	assert.Equal(t, CodeConflict, CodeOf(Conflict("duplicate", nil)))
	assert.Equal(t, CodeUnauthorized, CodeOf(Unauthorized("no")))
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("plain")))
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("Payment"))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.True(t, IsNotFound(err))
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Appointment not found", MessageOf(NotFound("Appointment")))
}

func TestInternalCarriesCauseMessage(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "connection refused", MessageOf(err))
	assert.ErrorIs(t, err, cause)
}

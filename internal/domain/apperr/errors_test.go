package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	err := Invalid("name", "required")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation: name: required", err.Error())

	multi := InvalidFields([]FieldError{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}})
	assert.Equal(t, "validation: 2 errors (a, b)", multi.Error())
}

func TestCollaborator_WrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := Collaborator("horses.create", cause)

	assert.ErrorIs(t, err, ErrCollaborator)
	assert.ErrorIs(t, err, cause)

	var ce *CollaboratorError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "horses.create", ce.Op)
}

func TestCollaborator_KeepsDomainErrors(t *testing.T) {
	nf := NotFound("horse", "h-1")
	assert.Same(t, nf, Collaborator("horses.get", nf))
	assert.Nil(t, Collaborator("noop", nil))
	assert.ErrorIs(t, nf, ErrNotFound)
}

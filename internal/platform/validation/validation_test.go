package validation

import (
	"errors"
	"testing"

	"equine-clinic/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"omitempty,email"`
	Stock float64 `json:"stock" validate:"gte=0"`
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := Struct(sample{Email: "nope", Stock: -1})
	require.ErrorIs(t, err, apperr.ErrValidation)

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))

	got := map[string]string{}
	for _, fe := range ve.Errors {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, "required", got["name"])
	assert.Equal(t, "must be a valid email", got["email"])
	assert.Equal(t, "must be >= 0", got["stock"])

	assert.NoError(t, Struct(sample{Name: "ok"}))
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone("phone", ""))
	assert.NoError(t, Phone("phone", "0412 041 1715"))
	assert.NoError(t, Phone("phone", "+1 650 253 0000"))
	assert.ErrorIs(t, Phone("phone", "12"), apperr.ErrValidation)
}

func TestJoin(t *testing.T) {
	err := Join(nil, apperr.Invalid("a", "x"), apperr.Invalid("b", "y"))
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 2)
	assert.NoError(t, Join(nil, nil))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("email", "", "omitempty,email"))
	err := Var("email", "no-es-email", "omitempty,email")
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Errors[0].Field)
	assert.Equal(t, "must be a valid email", ve.Errors[0].Message)
}

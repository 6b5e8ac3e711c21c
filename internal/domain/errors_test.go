package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := Invalid("quantity", "quantity debe ser mayor que cero")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "quantity: quantity debe ser mayor que cero", err.Error())

	var ve *ValidationError
	assert.True(t, errors.As(fmt.Errorf("envuelto: %w", err), &ve))
	assert.Equal(t, "quantity", ve.Field)
}

func TestDuplicate(t *testing.T) {
	err := Duplicate("name", "ya existe")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestNotFoundYForbidden(t *testing.T) {
	nf := NotFound("medicamento", "abc")
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Equal(t, `medicamento "abc" no encontrado`, nf.Error())

	fb := Forbidden("delete_user")
	assert.ErrorIs(t, fb, ErrForbidden)
	assert.NotErrorIs(t, fb, ErrUnauthenticated)
}

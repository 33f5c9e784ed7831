package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_New(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "thing not found")

	err := reg.New(code).WithDetail("id", "42")

	assert.Equal(t, Code("TEST.NOT_FOUND"), err.Code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "42", err.Details["id"])
	assert.Equal(t, "[TEST.NOT_FOUND] thing not found", err.Error())
}

func TestRegistry_UnregisteredCode(t *testing.T) {
	reg := NewRegistry("TEST")
	err := reg.New(Code("TEST.MISSING"))

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestIsCode_ThroughWrapping(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BROKEN", TypeInternal, http.StatusInternalServerError, "broken")

	wrapped := fmt.Errorf("outer: %w", reg.NewWithCause(code, errors.New("inner")))

	assert.True(t, IsCode(wrapped, code))
	assert.False(t, IsCode(errors.New("plain"), code))
}

func TestWrap(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		err := Wrap(errors.New("boom"), "failed to save", TypeInternal)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
		assert.Equal(t, "failed to save", err.Message)
	})

	t.Run("registered error is kept", func(t *testing.T) {
		reg := NewRegistry("TEST")
		code := reg.Register("GONE", TypeNotFound, http.StatusNotFound, "gone")
		original := reg.New(code)

		err := Wrap(original, "failed to load", TypeInternal)
		assert.Same(t, original, err)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "x", TypeInternal))
	})
}

func TestToHTTPResponse(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BAD", TypeValidation, http.StatusBadRequest, "bad input")

	resp := reg.New(code).WithDetails(map[string]any{"field": "email"}).ToHTTPResponse()

	assert.Equal(t, Code("TEST.BAD"), resp["code"])
	assert.Equal(t, map[string]any{"field": "email"}, resp["details"])
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/lambdakit/validate"
)

func TestGetErrorStatusCode(t *testing.T) {
	_, validationErr := validate.Required(nil, []string{"id"})

	tests := []struct {
		err      error
		expected int
	}{
		{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("%w: eof", ErrMalformedBody), http.StatusBadRequest},
		{fmt.Errorf("%w: limit is 8 bytes", ErrBodyTooLarge), http.StatusRequestEntityTooLarge},
		{validationErr, http.StatusBadRequest},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, getErrorStatusCode(tt.err))
		})
	}
}

func TestFormatError_Validation(t *testing.T) {
	_, err := validate.Required(map[string]any{}, []string{"a", "b"})

	env := FormatError(err, map[string]string{"X-Request-ID": "abc"})
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
	assert.Equal(t, "abc", env.Headers["X-Request-ID"])

	var body ErrorBody
	require.NoError(t, json.Unmarshal([]byte(env.Body), &body))

	assert.Equal(t, "missing_fields", body.Error.Code)
	assert.Equal(t, []string{"a", "b"}, body.Error.Fields)
	assert.Empty(t, body.Error.Violations)
}

func TestFormatError_Internal(t *testing.T) {
	env := FormatError(errors.New("database password leaked"), nil)
	assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
	assert.NotContains(t, env.Body, "password")
}

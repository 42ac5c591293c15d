package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/lambdakit/response"
)

type order struct {
	ID    int      `json:"id"`
	Items []string `json:"items"`
}

func TestFormat_StringBody(t *testing.T) {
	for _, code := range []int{200, 201, 404, 500, 0, -1, 999} {
		env, err := response.Format(code, "plain text", nil)
		require.NoError(t, err)

		assert.Equal(t, code, env.StatusCode)
		assert.Equal(t, "plain text", env.Body)
		assert.Equal(t, "application/json", env.Headers["Content-Type"])
		assert.Equal(t, "*", env.Headers["Access-Control-Allow-Origin"])
	}
}

func TestFormat_StringBodyIsNotReencoded(t *testing.T) {
	env, err := response.Format(200, `{"already":"json"}`, nil)
	require.NoError(t, err)

	assert.Equal(t, `{"already":"json"}`, env.Body)
}

func TestFormat_StructuredBody(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		expected string
	}{
		{"map", map[string]any{"id": 42}, `{"id":42}`},
		{"struct", order{ID: 7, Items: []string{"bread"}}, `{"id":7,"items":["bread"]}`},
		{"slice", []int{1, 2, 3}, `[1,2,3]`},
		{"number", 3.5, `3.5`},
		{"bool", true, `true`},
		{"nil", nil, `null`},
		{"raw", json.RawMessage(`{"a":1}`), `{"a":1}`},
		{"html", map[string]string{"q": "a<b"}, `{"q":"a<b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := response.Format(200, tt.body, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, env.Body)
		})
	}
}

func TestFormat_HeaderOverrides(t *testing.T) {
	env, err := response.Format(200, "ok", map[string]string{
		"Content-Type": "text/plain",
		"X-Request-ID": "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Content-Type":                "text/plain",
		"Access-Control-Allow-Origin": "*",
		"X-Request-ID":                "abc",
	}, env.Headers)
}

func TestFormat_EmptyHeadersKeepDefaults(t *testing.T) {
	env, err := response.Format(204, "", map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, response.DefaultHeaders(), env.Headers)
}

func TestFormat_DoesNotMutateInputs(t *testing.T) {
	headers := map[string]string{"X-Custom": "1"}

	env, err := response.Format(200, "ok", headers)
	require.NoError(t, err)

	env.Headers["X-Custom"] = "2"

	assert.Equal(t, map[string]string{"X-Custom": "1"}, headers)
	assert.Equal(t, "application/json", response.DefaultHeaders()["Content-Type"])
}

func TestFormat_Idempotent(t *testing.T) {
	body := map[string]any{"id": 42}
	headers := map[string]string{"X-Custom": "1"}

	first, err := response.Format(201, body, headers)
	require.NoError(t, err)

	second, err := response.Format(201, body, headers)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFormat_EncodingError(t *testing.T) {
	env, err := response.Format(200, map[string]any{"ch": make(chan int)}, nil)
	require.Error(t, err)

	assert.Equal(t, response.Envelope{}, env)
	assert.True(t, errors.Is(err, response.ErrEncoding))

	var encErr *response.EncodingError
	assert.True(t, errors.As(err, &encErr))
}

func TestMustFormat_Panics(t *testing.T) {
	assert.Panics(t, func() {
		response.MustFormat(200, make(chan int), nil)
	})
}

func TestEnvelope_JSONShape(t *testing.T) {
	env := response.MustFormat(200, "ok", nil)

	b, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.Equal(t, float64(200), decoded["statusCode"])
	assert.Equal(t, "ok", decoded["body"])
	assert.Contains(t, decoded, "headers")
}

func TestEnvelope_GatewayResponses(t *testing.T) {
	env := response.MustFormat(http.StatusCreated, map[string]int{"id": 1}, map[string]string{"X-Id": "1"})

	v1 := env.APIGatewayProxyResponse()
	assert.Equal(t, http.StatusCreated, v1.StatusCode)
	assert.Equal(t, `{"id":1}`, v1.Body)
	assert.Equal(t, env.Headers, v1.Headers)
	assert.False(t, v1.IsBase64Encoded)

	v2 := env.APIGatewayV2HTTPResponse()
	assert.Equal(t, http.StatusCreated, v2.StatusCode)
	assert.Equal(t, env.Body, v2.Body)
	assert.Equal(t, env.Headers, v2.Headers)

	alb := env.ALBTargetGroupResponse()
	assert.Equal(t, http.StatusCreated, alb.StatusCode)
	assert.Equal(t, "201 Created", alb.StatusDescription)
	assert.Equal(t, env.Headers, alb.Headers)

	// converted headers are independent of the envelope
	v1.Headers["X-Id"] = "2"
	assert.Equal(t, "1", env.Headers["X-Id"])
}

func TestEnvelope_ALBUnknownStatus(t *testing.T) {
	env := response.MustFormat(599, "", nil)

	assert.Equal(t, "599", env.ALBTargetGroupResponse().StatusDescription)
}

func TestEnvelope_Write(t *testing.T) {
	env := response.MustFormat(http.StatusAccepted, map[string]bool{"ok": true}, map[string]string{"X-Request-ID": "abc"})

	w := httptest.NewRecorder()
	require.NoError(t, env.Write(w))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "abc", res.Header.Get("X-Request-ID"))
	assert.Equal(t, `{"ok":true}`, w.Body.String())
}

// Package response builds the response envelope handed back to an API
// gateway or load balancer by a serverless request handler.
package response

import (
	"github.com/lambda-feedback/lambdakit/internal/jsonenc"
)

const (
	HeaderContentType = "Content-Type"
	HeaderAllowOrigin = "Access-Control-Allow-Origin"
)

// ErrEncoding is matched by every EncodingError.
var ErrEncoding = jsonenc.ErrEncoding

// EncodingError is returned when a body cannot be serialized to JSON.
type EncodingError = jsonenc.Error

// Envelope is the response shape expected by the gateway.
type Envelope struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// DefaultHeaders returns a fresh copy of the headers every envelope
// starts with.
func DefaultHeaders() map[string]string {
	return map[string]string{
		HeaderContentType: "application/json",
		HeaderAllowOrigin: "*",
	}
}

// Format creates an envelope for the given status code and body. A
// string body is used as is, any other value is encoded as JSON. The
// given headers are merged over the defaults, replacing entries with
// the same key.
func Format(statusCode int, body any, headers map[string]string) (Envelope, error) {
	encoded, err := encodeBody(body)
	if err != nil {
		return Envelope{}, err
	}

	merged := DefaultHeaders()
	for k, v := range headers {
		merged[k] = v
	}

	return Envelope{
		StatusCode: statusCode,
		Headers:    merged,
		Body:       encoded,
	}, nil
}

// MustFormat is like Format but panics if the body cannot be encoded.
func MustFormat(statusCode int, body any, headers map[string]string) Envelope {
	env, err := Format(statusCode, body, headers)
	if err != nil {
		panic(err)
	}

	return env
}

func encodeBody(body any) (string, error) {
	if s, ok := body.(string); ok {
		return s, nil
	}

	b, err := jsonenc.Marshal(body)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

package handler

import (
	"errors"
	"net/http"

	"github.com/lambda-feedback/lambdakit/response"
	"github.com/lambda-feedback/lambdakit/validate"
)

var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrMalformedBody    = errors.New("request body must be a JSON object")
	ErrBodyTooLarge     = errors.New("request body too large")
)

var wellKnownErrors = map[error]int{
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrUnauthorized:        http.StatusUnauthorized,
	ErrMalformedBody:       http.StatusBadRequest,
	ErrBodyTooLarge:        http.StatusRequestEntityTooLarge,
	validate.ErrValidation: http.StatusBadRequest,
}

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message    string   `json:"message"`
	Code       string   `json:"code,omitempty"`
	Fields     []string `json:"fields,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// getErrorStatusCode returns the status code for the given error.
func getErrorStatusCode(err error) int {
	for wellKnown, status := range wellKnownErrors {
		if errors.Is(err, wellKnown) {
			return status
		}
	}

	return http.StatusInternalServerError
}

// FormatError creates the response envelope for err.
func FormatError(err error, headers map[string]string) response.Envelope {
	statusCode := getErrorStatusCode(err)

	detail := ErrorDetail{
		Message: err.Error(),
	}

	var validationErr *validate.ValidationError
	if errors.As(err, &validationErr) {
		detail.Code = string(validationErr.Code)
		detail.Fields = validationErr.Fields
		detail.Violations = validationErr.Violations
	}

	// internal errors are not exposed to the caller
	if statusCode == http.StatusInternalServerError {
		detail.Message = http.StatusText(http.StatusInternalServerError)
	}

	env, encErr := response.Format(statusCode, ErrorBody{Error: detail}, headers)
	if encErr != nil {
		return response.Envelope{
			StatusCode: http.StatusInternalServerError,
			Headers:    response.DefaultHeaders(),
		}
	}

	return env
}

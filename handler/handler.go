package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/lambdakit/config"
	"github.com/lambda-feedback/lambdakit/eventlog"
	"github.com/lambda-feedback/lambdakit/internal/jsonenc"
	"github.com/lambda-feedback/lambdakit/response"
	"github.com/lambda-feedback/lambdakit/validate"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderAPIKey    = "api-key"

	// PathValueEvent names the path segment holding the event type.
	PathValueEvent = "event"

	// DefaultMaxBodyBytes limits request bodies when no limit is configured.
	DefaultMaxBodyBytes int64 = 1 << 20
)

type IntakeHandlerParams struct {
	fx.In

	Config config.Config
	Events eventlog.Emitter
	Log    *zap.Logger
}

// Accepted is the body of a successful intake response.
type Accepted struct {
	EventType string `json:"event_type"`
	RequestID string `json:"request_id"`
}

// IntakeHandler accepts JSON events, validates them, records them
// through the event log and acknowledges them with an envelope.
type IntakeHandler struct {
	config config.Config
	schema *validate.Schema
	events eventlog.Emitter
	log    *zap.Logger
}

func NewIntakeHandler(params IntakeHandlerParams) (*IntakeHandler, error) {
	var schema *validate.Schema
	if path := params.Config.Intake.Schema; path != "" {
		var err error
		if schema, err = validate.LoadSchema(path); err != nil {
			return nil, err
		}
	}

	return &IntakeHandler{
		config: params.Config,
		schema: schema,
		events: params.Events,
		log:    params.Log,
	}, nil
}

func (h *IntakeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("request_id", requestID),
	)

	headers := h.responseHeaders(requestID)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes())

	env, err := h.handle(r, requestID, headers)
	if err != nil {
		if getErrorStatusCode(err) == http.StatusInternalServerError {
			log.Error("failed to handle request", zap.Error(err))
			captureException(r, err)
		} else {
			log.Debug("rejected request", zap.Error(err))
		}
		env = FormatError(err, headers)
	}

	if err := env.Write(w); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}
}

func (h *IntakeHandler) handle(r *http.Request, requestID string, headers map[string]string) (response.Envelope, error) {
	if r.Method != http.MethodPost {
		return response.Envelope{}, ErrMethodNotAllowed
	}

	// Check for authorization
	if h.config.Auth.Key != "" && r.Header.Get(HeaderAPIKey) != h.config.Auth.Key {
		return response.Envelope{}, ErrUnauthorized
	}

	data, err := readBody(r)
	if err != nil {
		return response.Envelope{}, err
	}

	if _, err := validate.Required(data, h.config.Intake.RequiredFields); err != nil {
		return response.Envelope{}, err
	}

	if h.schema != nil {
		if err := h.schema.Validate(data); err != nil {
			return response.Envelope{}, err
		}
	}

	eventType := r.PathValue(PathValueEvent)
	if eventType == "" {
		eventType = h.config.Intake.EventType
	}

	if err := h.events.Log(eventType, data); err != nil {
		return response.Envelope{}, err
	}

	return response.Format(http.StatusAccepted, Accepted{
		EventType: eventType,
		RequestID: requestID,
	}, headers)
}

func (h *IntakeHandler) responseHeaders(requestID string) map[string]string {
	headers := make(map[string]string, len(h.config.Intake.Headers)+1)
	for k, v := range h.config.Intake.Headers {
		headers[k] = v
	}
	headers[HeaderRequestID] = requestID

	return headers
}

func (h *IntakeHandler) maxBodyBytes() int64 {
	if h.config.Intake.MaxBodyBytes > 0 {
		return h.config.Intake.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

func readBody(r *http.Request) (map[string]any, error) {
	var data map[string]any
	if err := jsonenc.Decode(r.Body, &data); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBytesErr.Limit)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	return data, nil
}

func captureException(r *http.Request, err error) {
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
		return
	}

	sentry.CaptureException(err)
}

// HealthHandler reports that the function is able to serve requests.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	env := response.MustFormat(http.StatusOK, map[string]string{"status": "ok"}, nil)
	_ = env.Write(w)
}

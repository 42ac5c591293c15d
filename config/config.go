package config

import "github.com/lambda-feedback/lambdakit/util/conf"

// EnvPrefix prefixes env vars read directly into the config.
const EnvPrefix = "LAMBDAKIT_"

const (
	LogFormatProduction  = "production"
	LogFormatDevelopment = "development"

	DefaultEventType = "request_received"
)

// DefaultConfig holds the defaults for Config, keyed by config path.
var DefaultConfig = conf.DefaultConfig{
	"log_level":         "info",
	"log_format":        LogFormatProduction,
	"intake.event_type": DefaultEventType,
}

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format" validate:"omitempty,oneof=production development"`

	// Auth configures request authorization
	Auth AuthConfig `conf:"auth"`

	// Intake configures the reference request handler
	Intake IntakeConfig `conf:"intake"`
}

type AuthConfig struct {
	// Key is the api key expected in the api-key header. Requests
	// are not checked if it is empty.
	Key string `conf:"key"`
}

type IntakeConfig struct {
	// RequiredFields lists the keys every request body must contain
	RequiredFields []string `conf:"required_fields"`

	// Schema is the path to a JSON schema request bodies must match
	Schema string `conf:"schema"`

	// EventType is logged for requests that do not name an event
	EventType string `conf:"event_type"`

	// Headers are added to every response
	Headers map[string]string `conf:"headers"`

	// MaxBodyBytes limits the size of request bodies. Zero selects
	// the handler's default.
	MaxBodyBytes int64 `conf:"max_body_bytes" validate:"gte=0"`
}

// Package eventlog emits structured event records, one JSON object per
// line, for consumption by a log collection pipeline.
//
// A record has the shape
//
//	{"timestamp":"2024-05-01T12:00:00.000000Z","event_type":"order_created","data":{"id":42}}
//
// and is written as soon as Log is called.
package eventlog

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lambda-feedback/lambdakit/internal/jsonenc"
)

const (
	// TimestampLayout is the ISO-8601 layout used for the timestamp key.
	TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

	KeyTimestamp = "timestamp"
	KeyEventType = "event_type"
	KeyData      = "data"
)

// ErrEncoding is matched by every EncodingError.
var ErrEncoding = jsonenc.ErrEncoding

// EncodingError is returned when the event data cannot be serialized.
type EncodingError = jsonenc.Error

// Emitter is implemented by anything that can record an event.
type Emitter interface {
	Log(eventType string, data any) error
}

// Logger writes event records to an output stream.
type Logger struct {
	log *zap.Logger
}

var _ Emitter = (*Logger)(nil)

// Option configures a Logger.
type Option func(*options)

type options struct {
	clock zapcore.Clock
}

// WithClock sets the clock used to stamp records.
func WithClock(clock zapcore.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New creates a logger writing to w. Writes are serialized, so a single
// logger may be shared between goroutines.
func New(w io.Writer, opts ...Option) *Logger {
	o := options{clock: zapcore.DefaultClock}
	for _, opt := range opts {
		opt(&o)
	}

	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        KeyTimestamp,
		MessageKey:     KeyEventType,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout(TimestampLayout),
		EncodeDuration: zapcore.StringDurationEncoder,
	})

	core := zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.DebugLevel,
	)

	return &Logger{
		log: zap.New(core, zap.WithClock(o.clock)),
	}
}

// stdout is resolved on every write, so it can be swapped in tests.
var stdout io.Writer = os.Stdout

type stdoutWriter struct{}

func (stdoutWriter) Write(p []byte) (int, error) {
	return stdout.Write(p)
}

func (stdoutWriter) Sync() error {
	if s, ok := stdout.(zapcore.WriteSyncer); ok {
		return s.Sync()
	}
	return nil
}

// NewStdout creates a logger writing to the process's standard output.
func NewStdout() *Logger {
	return New(stdoutWriter{})
}

// Log writes a single record for the event. The data is encoded before
// anything is written, so an encoding failure leaves the output
// untouched.
func (l *Logger) Log(eventType string, data any) error {
	encoded, err := jsonenc.Marshal(data)
	if err != nil {
		return err
	}

	l.log.Info(eventType, zap.Reflect(KeyData, jsonenc.Raw(encoded)))

	return nil
}

// Sync flushes any buffered output.
func (l *Logger) Sync() error {
	return l.log.Sync()
}

var std = NewStdout()

// Log writes a record for the event to standard output.
func Log(eventType string, data any) error {
	return std.Log(eventType, data)
}

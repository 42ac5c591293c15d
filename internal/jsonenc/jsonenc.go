// Package jsonenc holds the JSON encoding shared by the response and
// eventlog packages.
package jsonenc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEncoding is matched by every *Error.
var ErrEncoding = errors.New("encoding failed")

// Error is returned when a value cannot be serialized to JSON.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to encode value: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrEncoding
}

// Marshal encodes v as compact JSON without escaping HTML characters.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, &Error{Err: err}
	}

	// Encode terminates every value with a newline
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// Unmarshal decodes a single JSON document into v. Numbers decoded into
// interface values are kept as json.Number so integers survive a round
// trip unchanged.
func Unmarshal(data []byte, v any) error {
	return Decode(bytes.NewReader(data), v)
}

// Decode reads a single JSON document from r into v, like Unmarshal.
// Anything but whitespace after the document is an error.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}

	return nil
}

var errTrailingData = errors.New("invalid character after top-level value")

// Raw is an already encoded JSON value. It is emitted verbatim by
// encoders that honour json.Marshaler.
type Raw []byte

func (r Raw) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders([]string{"X-Request-ID=abc", "Cache-Control=no-store", "X-Empty="})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"X-Request-ID":  "abc",
		"Cache-Control": "no-store",
		"X-Empty":       "",
	}, headers)
}

func TestParseHeaders_Empty(t *testing.T) {
	headers, err := parseHeaders(nil)
	require.NoError(t, err)
	assert.Nil(t, headers)
}

func TestParseHeaders_Invalid(t *testing.T) {
	for _, pair := range []string{"novalue", "=value"} {
		t.Run(pair, func(t *testing.T) {
			_, err := parseHeaders([]string{pair})
			assert.Error(t, err)
		})
	}
}

func TestDecodeValue(t *testing.T) {
	value, err := decodeValue(`{"id": 42}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": json.Number("42")}, value)

	value, err = decodeValue("  ")
	require.NoError(t, err)
	assert.Nil(t, value)

	_, err = decodeValue(`{"id":`)
	assert.Error(t, err)

	value, err = decodeValue(`9007199254740993`)
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), value)
}

func TestReadObject(t *testing.T) {
	data, err := readObject("-", strings.NewReader(`{"a": 1}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": json.Number("1")}, data)

	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"b": true}`), 0o600))

	data, err = readObject(path, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b": true}, data)

	_, err = readObject("", strings.NewReader(`[1]`))
	assert.Error(t, err)
}

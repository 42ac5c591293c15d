package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lambda-feedback/lambdakit/internal/jsonenc"
)

// parseHeaders parses "Name=value" pairs.
func parseHeaders(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected Name=value", pair)
		}
		headers[name] = value
	}

	return headers, nil
}

// decodeValue decodes a JSON document, keeping numbers exact. An empty
// document decodes to nil.
func decodeValue(document string) (any, error) {
	if strings.TrimSpace(document) == "" {
		return nil, nil
	}

	var value any
	if err := jsonenc.Unmarshal([]byte(document), &value); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	return value, nil
}

// readObject reads a JSON object from path, or from stdin if path is
// empty or "-".
func readObject(path string, stdin io.Reader) (map[string]any, error) {
	var (
		document []byte
		err      error
	)

	if path == "" || path == "-" {
		document, err = io.ReadAll(stdin)
	} else {
		document, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := jsonenc.Unmarshal(document, &data); err != nil {
		return nil, errors.Join(errors.New("input must be a JSON object"), err)
	}

	return data, nil
}

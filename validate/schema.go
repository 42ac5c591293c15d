package validate

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// Schema validates payloads against a JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

// CompileSchema compiles a JSON schema document.
func CompileSchema(document []byte) (*Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &Schema{schema: schema}, nil
}

// LoadSchema reads and compiles the JSON schema at path.
func LoadSchema(path string) (*Schema, error) {
	document, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return CompileSchema(document)
}

// Validate checks data against the schema. A mismatch is reported as a
// *ValidationError with CodeSchemaViolation.
func (s *Schema) Validate(data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}

	res, err := s.schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return err
	}

	if res.Valid() {
		return nil
	}

	violations := make([]string, 0, len(res.Errors()))
	for _, resultErr := range res.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", resultErr.Field(), resultErr.Description()))
	}

	return &ValidationError{
		Code:       CodeSchemaViolation,
		Violations: violations,
	}
}

package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const evaluationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["OverallATSScore", "JDMatch", "MissingKeywords", "SkillGaps", "ProfileSummary"],
  "properties": {
    "OverallATSScore": {"type": ["string", "number"]},
    "JDMatch": {"type": ["string", "number"]},
    "MissingKeywords": {"type": "array", "items": {"type": "string"}},
    "SkillGaps": {"type": "array", "items": {"type": "string"}},
    "ProfileSummary": {"type": "string"}
  }
}`

// SchemaError lists the fields of a reply that do not match the evaluation schema.
type SchemaError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "reply does not match the evaluation schema: " + strings.Join(parts, "; ")
}

type SchemaValidator interface {
	Validate(fields map[string]json.RawMessage) error
}

type schemaValidator struct {
	schema *gojsonschema.Schema
}

func NewSchemaValidator() (SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(evaluationSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation schema: %w", err)
	}
	return &schemaValidator{schema: schema}, nil
}

// Validate checks normalized reply fields. It returns a *SchemaError when
// the reply is well-formed JSON but not the requested shape.
func (v *schemaValidator) Validate(fields map[string]json.RawMessage) error {
	document, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode reply fields: %w", err)
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate reply: %w", err)
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}

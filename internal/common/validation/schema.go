package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ChatRequestSchema accepts any JSON object whose optional "message" is a string.
const ChatRequestSchema = `{
	"type": "object",
	"properties": {
		"message": {"type": "string"}
	}
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator checks JSON documents against a compiled schema. Safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles schemaJSON.
func NewValidator(schemaJSON string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// MustChatRequestValidator compiles ChatRequestSchema and panics on failure.
func MustChatRequestValidator() *Validator {
	v, err := NewValidator(ChatRequestSchema)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks raw JSON. Unparseable input is reported as a single
// INVALID_JSON error rather than a Go error.
func (v *Validator) Validate(raw []byte) *ValidationResult {
	if !json.Valid(raw) {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: "body is not valid JSON",
				Code:    "INVALID_JSON",
			}},
		}
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "SCHEMA_ERROR",
			}},
		}
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out
}

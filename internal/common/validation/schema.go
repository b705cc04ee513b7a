package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"monitor-preprocessor/pkg/schema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OutputSchema builds the JSON schema for the flat output mapping:
// exactly one string-valued property per positional key, no extras.
func OutputSchema() map[string]interface{} {
	properties := make(map[string]interface{}, schema.FieldCount())
	required := make([]string, 0, schema.FieldCount())

	for _, f := range schema.Fields() {
		key := schema.KeyFor(f.Position)
		properties[key] = map[string]interface{}{
			"type":        "string",
			"description": f.Name,
		}
		required = append(required, key)
	}

	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// ValidateOutput checks a flat mapping against the positional-key
// contract. The error return covers validator failures only, not
// contract violations.
func ValidateOutput(output map[string]string) (*ValidationResult, error) {
	doc := make(map[string]interface{}, len(output))
	for k, v := range output {
		doc[k] = v
	}

	schemaLoader := gojsonschema.NewGoLoader(OutputSchema())
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}

	return out, nil
}

// internal/preprocessor/extract.go
package preprocessor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"monitor-preprocessor/internal/record"
)

// extractPayload returns the underlying payload value from a container
// that may wrap it under a "data" field, or may be the raw value
// itself. Byte payloads decode as UTF-8 text; undecodable bytes degrade
// to an escaped rendering instead of failing.
func extractPayload(container interface{}) interface{} {
	if container == nil {
		return nil
	}

	val := record.Lookup(container, "data")
	if val == nil {
		val = container
	}

	if b, ok := val.([]byte); ok {
		if utf8.Valid(b) {
			return string(b)
		}
		return strconv.Quote(string(b))
	}
	return val
}

// splitFields splits comma-separated payload text, trimming surrounding
// whitespace and dropping empty pieces.
func splitFields(text string) []string {
	parts := strings.Split(text, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

// decodeResponse turns the extracted response payload into a structured
// document: text decodes as JSON, mappings and sequences pass through
// as-is, anything else is stringified and decoded. A nil result means
// "no structured result", never an error.
func decodeResponse(raw interface{}) interface{} {
	if raw == nil {
		return nil
	}

	if text, ok := raw.(string); ok {
		return decodeJSON(text)
	}
	if record.IsMapping(raw) {
		return raw
	}
	if _, ok := record.Elements(raw); ok {
		return raw
	}
	return decodeJSON(fmt.Sprintf("%v", raw))
}

func decodeJSON(text string) interface{} {
	var doc interface{}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil
	}
	return doc
}

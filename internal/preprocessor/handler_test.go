// internal/preprocessor/handler_test.go
package preprocessor

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monitor-preprocessor/internal/common/logger"
	"monitor-preprocessor/internal/record"
	"monitor-preprocessor/pkg/schema"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{}
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), logger.NewTestLogger(t))
}

// captureRecord builds the canonical input shape: a capture sub-object
// holding the two endpoint payloads.
func captureRecord(input, output interface{}) record.Record {
	return record.Resolve(map[string]interface{}{
		"captureData": map[string]interface{}{
			"endpointInput":  input,
			"endpointOutput": output,
		},
	})
}

// dataWrapper wraps a raw payload the way capture containers do.
func dataWrapper(v interface{}) map[string]interface{} {
	return map[string]interface{}{"data": v}
}

func key(position int) string {
	return schema.KeyFor(position)
}

const (
	validRequest  = "1200, 3, 2.5, Downtown, 1998, Good"
	validResponse = `{"predictions":[{"score": 452000.5}]}`
)

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_FullRecord(t *testing.T) {
	h := createTestHandler(t)

	out := h.Execute(captureRecord(validRequest, validResponse))

	require.Len(t, out, 7)
	assert.Equal(t, "452000.5", out[key(0)]) // price
	assert.Equal(t, "1200", out[key(1)])     // sqft
	assert.Equal(t, "3", out[key(2)])        // bedrooms
	assert.Equal(t, "2.5", out[key(3)])      // bathrooms
	assert.Equal(t, "Downtown", out[key(4)]) // location
	assert.Equal(t, "1998", out[key(5)])     // year_built
	assert.Equal(t, "Good", out[key(6)])     // condition
}

func TestHandler_Execute_KeyFormat(t *testing.T) {
	h := createTestHandler(t)

	out := h.Execute(captureRecord(validRequest, validResponse))

	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	require.Len(t, keys, 7)
	for i, k := range keys {
		assert.Len(t, k, schema.KeyWidth)
		assert.Equal(t, schema.KeyFor(i), k)
	}
}

func TestHandler_Execute_EmptyRecord(t *testing.T) {
	h := createTestHandler(t)

	out := h.Execute(record.Resolve(map[string]interface{}{}))

	require.Len(t, out, 7)
	assert.Equal(t, "0", out[key(0)])
	assert.Equal(t, "0", out[key(1)])
	assert.Equal(t, "0", out[key(2)])
	assert.Equal(t, "0", out[key(3)])
	assert.Equal(t, "", out[key(4)])
	assert.Equal(t, "0", out[key(5)])
	assert.Equal(t, "", out[key(6)])
}

func TestHandler_Execute_Idempotent(t *testing.T) {
	h := createTestHandler(t)
	rec := captureRecord(validRequest, validResponse)

	first := h.Execute(rec)
	second := h.Execute(rec)

	assert.Equal(t, first, second)
}

// ==========================
// Request Payload Tests
// ==========================

func TestHandler_Execute_RequestPayloads(t *testing.T) {
	tests := []struct {
		name           string
		input          interface{}
		validateOutput func(t *testing.T, out map[string]string)
	}{
		{
			name:  "plain csv text",
			input: validRequest,
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "1200", out[key(1)])
				assert.Equal(t, "Good", out[key(6)])
			},
		},
		{
			name:  "wrapped under data field",
			input: dataWrapper(validRequest),
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "1200", out[key(1)])
				assert.Equal(t, "Downtown", out[key(4)])
			},
		},
		{
			name:  "byte payload",
			input: dataWrapper([]byte(validRequest)),
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "1200", out[key(1)])
				assert.Equal(t, "1998", out[key(5)])
			},
		},
		{
			name:  "only five fields leaves defaults",
			input: "1200, 3, 2.5, Downtown, 1998",
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "0", out[key(1)])
				assert.Equal(t, "0", out[key(2)])
				assert.Equal(t, "", out[key(4)])
			},
		},
		{
			name:  "non-numeric sqft discards whole batch",
			input: "abc, 3, 2.5, Downtown, 1998, Good",
			validateOutput: func(t *testing.T, out map[string]string) {
				// all-or-nothing: no field of the batch survives
				assert.Equal(t, "0", out[key(1)])
				assert.Equal(t, "0", out[key(2)])
				assert.Equal(t, "0", out[key(3)])
				assert.Equal(t, "", out[key(4)])
				assert.Equal(t, "0", out[key(5)])
				assert.Equal(t, "", out[key(6)])
			},
		},
		{
			name:  "fractional bedrooms discards whole batch",
			input: "1200, 2.5, 2.5, Downtown, 1998, Good",
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "0", out[key(1)])
				assert.Equal(t, "", out[key(4)])
			},
		},
		{
			name:  "extra fields beyond six are ignored",
			input: "1200, 3, 2.5, Downtown, 1998, Good, Extra",
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "1200", out[key(1)])
				assert.Equal(t, "Good", out[key(6)])
			},
		},
		{
			name:  "empty pieces are dropped before counting",
			input: ",,1200, 3, 2.5, Downtown, 1998, Good,,",
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "1200", out[key(1)])
				assert.Equal(t, "Good", out[key(6)])
			},
		},
		{
			name:  "structured payload skips csv parse",
			input: map[string]interface{}{"sqft": 1200},
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "0", out[key(1)])
			},
		},
		{
			name:  "undecodable bytes degrade without failing",
			input: dataWrapper([]byte{0xff, 0xfe, 0x01}),
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "0", out[key(1)])
				assert.Equal(t, "", out[key(4)])
			},
		},
		{
			name:  "missing request payload",
			input: nil,
			validateOutput: func(t *testing.T, out map[string]string) {
				assert.Equal(t, "0", out[key(1)])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)
			out := h.Execute(captureRecord(tt.input, nil))
			require.Len(t, out, 7)
			tt.validateOutput(t, out)
		})
	}
}

// ==========================
// Response Payload Tests
// ==========================

func TestHandler_Execute_ResponsePayloads(t *testing.T) {
	tests := []struct {
		name          string
		output        interface{}
		expectedPrice string
	}{
		{
			name:          "json text with score",
			output:        validResponse,
			expectedPrice: "452000.5",
		},
		{
			name:          "json bytes with score",
			output:        dataWrapper([]byte(validResponse)),
			expectedPrice: "452000.5",
		},
		{
			name: "already structured document",
			output: map[string]interface{}{
				"predictions": []interface{}{
					map[string]interface{}{"score": 275000.0},
				},
			},
			expectedPrice: "275000",
		},
		{
			name:          "string score converts",
			output:        `{"predictions":[{"score": "99.5"}]}`,
			expectedPrice: "99.5",
		},
		{
			name:          "invalid json leaves price at default",
			output:        "not json",
			expectedPrice: "0",
		},
		{
			name:          "top-level array leaves price at default",
			output:        `[{"score": 1.0}]`,
			expectedPrice: "0",
		},
		{
			name:          "empty predictions list",
			output:        `{"predictions":[]}`,
			expectedPrice: "0",
		},
		{
			name:          "missing predictions field",
			output:        `{"other": true}`,
			expectedPrice: "0",
		},
		{
			name:          "missing score field",
			output:        `{"predictions":[{"label": "house"}]}`,
			expectedPrice: "0",
		},
		{
			name:          "non-numeric score leaves price at default",
			output:        `{"predictions":[{"score": "abc"}]}`,
			expectedPrice: "0",
		},
		{
			name:          "missing response payload",
			output:        nil,
			expectedPrice: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)
			out := h.Execute(captureRecord(nil, tt.output))
			require.Len(t, out, 7)
			assert.Equal(t, tt.expectedPrice, out[key(0)])
		})
	}
}

// ==========================
// Capture Shape Tests
// ==========================

func TestHandler_Execute_CaptureVariants(t *testing.T) {
	type structCapture struct {
		EndpointInput  interface{}
		EndpointOutput interface{}
	}
	type structRecord struct {
		CaptureData structCapture
	}

	tests := []struct {
		name string
		rec  interface{}
	}{
		{
			name: "lowercase capturedata",
			rec: map[string]interface{}{
				"capturedata": map[string]interface{}{
					"endpointInput":  validRequest,
					"endpointOutput": validResponse,
				},
			},
		},
		{
			name: "snake case endpoint fields",
			rec: map[string]interface{}{
				"captureData": map[string]interface{}{
					"endpoint_input":  validRequest,
					"endpoint_output": validResponse,
				},
			},
		},
		{
			name: "no capture wrapper falls back to the record",
			rec: map[string]interface{}{
				"endpointInput":  validRequest,
				"endpointOutput": validResponse,
			},
		},
		{
			name: "attribute-bearing struct record",
			rec: &structRecord{
				CaptureData: structCapture{
					EndpointInput:  validRequest,
					EndpointOutput: validResponse,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)
			out := h.Execute(record.Resolve(tt.rec))
			require.Len(t, out, 7)
			assert.Equal(t, "452000.5", out[key(0)])
			assert.Equal(t, "1200", out[key(1)])
			assert.Equal(t, "Good", out[key(6)])
		})
	}
}

func TestHandler_Execute_WithOutputValidation(t *testing.T) {
	h := NewHandler(&Config{ValidateOutput: true}, logger.NewTestLogger(t))

	out := h.Execute(captureRecord(validRequest, validResponse))

	require.Len(t, out, 7)
	assert.Equal(t, "452000.5", out[key(0)])
}

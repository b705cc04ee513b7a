// Package errors provides standardized diagnostic errors for the
// capture-record preprocessor. These values never escape the
// transformation; they are carried into logs and metric labels only.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodePayloadDecodeFailed     ErrorCode = "PAYLOAD_DECODE_FAILED"
	ErrCodeCSVConversionFailed     ErrorCode = "CSV_FIELD_CONVERSION_FAILED"
	ErrCodeResponseParseFailed     ErrorCode = "RESPONSE_PARSE_FAILED"
	ErrCodeScoreConversionFailed   ErrorCode = "SCORE_CONVERSION_FAILED"
	ErrCodeTypeCastFailed          ErrorCode = "TYPE_CAST_FAILED"
	ErrCodeOutputContractViolation ErrorCode = "OUTPUT_CONTRACT_VIOLATION"
)

// Stage identifies the pipeline stage a failure was contained in.
type Stage string

const (
	StageInput     Stage = "request_parse"
	StageOutput    Stage = "response_parse"
	StageCast      Stage = "final_cast"
	StageSerialize Stage = "serialize"
)

// StandardError represents a contained preprocessing failure.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Stage     Stage     `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewPayloadDecodeError records a payload that could not be unwrapped or
// decoded as text.
func NewPayloadDecodeError(stage Stage, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadDecodeFailed,
		Message:   "Payload extraction failed",
		Details:   err.Error(),
		Stage:     stage,
		Timestamp: time.Now().UTC(),
	}
}

// NewCSVConversionError records a request field that could not be coerced
// to its schema type. One of these discards the whole request-derived
// update.
func NewCSVConversionError(field string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCSVConversionFailed,
		Message:   "CSV field conversion error",
		Details:   fmt.Sprintf("field: %s, error: %s", field, err.Error()),
		Stage:     StageInput,
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseParseError records a response payload that could not be
// read as a structured document.
func NewResponseParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseParseFailed,
		Message:   "Response payload parse error",
		Details:   err.Error(),
		Stage:     StageOutput,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoreConversionError records a prediction score that was present
// but not numeric.
func NewScoreConversionError(value interface{}, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoreConversionFailed,
		Message:   "Prediction score conversion error",
		Details:   fmt.Sprintf("score: %v, error: %s", value, err.Error()),
		Stage:     StageOutput,
		Timestamp: time.Now().UTC(),
	}
}

// NewTypeCastError records a failure of the final defensive re-cast.
func NewTypeCastError(field string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTypeCastFailed,
		Message:   "Type casting error",
		Details:   fmt.Sprintf("field: %s, error: %s", field, err.Error()),
		Stage:     StageCast,
		Timestamp: time.Now().UTC(),
	}
}

// NewOutputContractError records a flat mapping that violates the
// positional-key contract.
func NewOutputContractError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOutputContractViolation,
		Message:   "Flat output violates monitoring contract",
		Details:   details,
		Stage:     StageSerialize,
		Timestamp: time.Now().UTC(),
	}
}

// GetErrorCategory returns a coarse category for an error code, used as
// a metric label.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CSV"):
		return "REQUEST"
	case strings.Contains(codeStr, "RESPONSE") || strings.Contains(codeStr, "SCORE"):
		return "RESPONSE"
	case strings.Contains(codeStr, "CONTRACT"):
		return "CONTRACT"
	default:
		return "OTHER"
	}
}

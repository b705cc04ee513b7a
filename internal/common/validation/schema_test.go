package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monitor-preprocessor/pkg/schema"
)

func validOutput() map[string]string {
	out := make(map[string]string, schema.FieldCount())
	for _, f := range schema.Fields() {
		out[schema.KeyFor(f.Position)] = "0"
	}
	return out
}

func TestValidateOutput_Valid(t *testing.T) {
	result, err := ValidateOutput(validOutput())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateOutput_MissingKey(t *testing.T) {
	out := validOutput()
	delete(out, schema.KeyFor(3))

	result, err := ValidateOutput(out)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateOutput_ExtraKey(t *testing.T) {
	out := validOutput()
	out["00000000000000000007"] = "extra"

	result, err := ValidateOutput(out)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHandle(t *testing.T) {
	rec := map[string]interface{}{
		"captureData": map[string]interface{}{
			"endpointInput":  "1200, 3, 2.5, Downtown, 1998, Good",
			"endpointOutput": `{"predictions":[{"score": 452000.5}]}`,
		},
	}

	out := Handle(rec, zaptest.NewLogger(t))

	require.Len(t, out, 7)
	assert.Equal(t, "452000.5", out["00000000000000000000"])
	assert.Equal(t, "Downtown", out["00000000000000000004"])
}

func TestHandle_NeverFails(t *testing.T) {
	out := Handle(nil, zaptest.NewLogger(t))
	require.Len(t, out, 7)
	assert.Equal(t, "0", out["00000000000000000000"])
}

func TestNew_UsesConfigDefaults(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	out := p.Handle(map[string]interface{}{})
	require.Len(t, out, 7)
}

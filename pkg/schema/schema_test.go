package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "00000000000000000000", KeyFor(0))
	assert.Equal(t, "00000000000000000006", KeyFor(6))
	assert.Len(t, KeyFor(3), KeyWidth)
}

func TestFields_Order(t *testing.T) {
	names := make([]string, 0, FieldCount())
	for i, f := range Fields() {
		assert.Equal(t, i, f.Position)
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"price", "sqft", "bedrooms", "bathrooms",
		"location", "year_built", "condition",
	}, names)
}

func TestFields_CopyIsSafe(t *testing.T) {
	Fields()[0].Name = "mutated"
	assert.Equal(t, "price", Fields()[0].Name)
}

// internal/preprocessor/models.go
package preprocessor

import (
	"strconv"

	"github.com/spf13/cast"

	"monitor-preprocessor/pkg/schema"
)

// FlatRecord is the fixed seven-field normalized representation of one
// inference event. The zero value carries the schema defaults.
type FlatRecord struct {
	Price     float64 `json:"price"`
	Sqft      float64 `json:"sqft"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms float64 `json:"bathrooms"`
	Location  string  `json:"location"`
	YearBuilt int     `json:"year_built"`
	Condition string  `json:"condition"`
}

// requestFields holds a fully converted request-payload update. It is
// committed into the FlatRecord as a single assignment only after every
// conversion succeeded; a partially converted batch is discarded whole.
type requestFields struct {
	Sqft      float64
	Bedrooms  int
	Bathrooms float64
	Location  string
	YearBuilt int
	Condition string
}

func (r *FlatRecord) applyRequest(rf requestFields) {
	r.Sqft = rf.Sqft
	r.Bedrooms = rf.Bedrooms
	r.Bathrooms = rf.Bathrooms
	r.Location = rf.Location
	r.YearBuilt = rf.YearBuilt
	r.Condition = rf.Condition
}

// valueOf returns the serialized text of one schema field.
func (r FlatRecord) valueOf(name string) string {
	switch name {
	case "price":
		return cast.ToString(r.Price)
	case "sqft":
		return cast.ToString(r.Sqft)
	case "bedrooms":
		return strconv.Itoa(r.Bedrooms)
	case "bathrooms":
		return cast.ToString(r.Bathrooms)
	case "location":
		return r.Location
	case "year_built":
		return strconv.Itoa(r.YearBuilt)
	case "condition":
		return r.Condition
	default:
		return ""
	}
}

// Serialize produces the flat output mapping: one entry per schema
// field, keyed by the zero-padded positional index in schema order.
func (r FlatRecord) Serialize() map[string]string {
	out := make(map[string]string, schema.FieldCount())
	for _, f := range schema.Fields() {
		out[schema.KeyFor(f.Position)] = r.valueOf(f.Name)
	}
	return out
}

// pkg/schema/schema.go
package schema

import "fmt"

// Kind is the semantic type of a monitored field.
type Kind string

const (
	KindFloat Kind = "float"
	KindInt   Kind = "integer"
	KindText  Kind = "text"
)

// Field describes one entry of the flat monitoring record.
type Field struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Position int    `json:"position"`
}

// KeyWidth is the fixed width of the positional keys in the flat output.
// Downstream feature statistics index records by these keys; do not change.
const KeyWidth = 20

// fields is the wire contract with the monitoring consumer: both the set
// of fields and their order are load-bearing.
var fields = []Field{
	{Name: "price", Kind: KindFloat, Position: 0},
	{Name: "sqft", Kind: KindFloat, Position: 1},
	{Name: "bedrooms", Kind: KindInt, Position: 2},
	{Name: "bathrooms", Kind: KindFloat, Position: 3},
	{Name: "location", Kind: KindText, Position: 4},
	{Name: "year_built", Kind: KindInt, Position: 5},
	{Name: "condition", Kind: KindText, Position: 6},
}

// Fields returns the ordered field table.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldCount returns the number of fields in the flat record.
func FieldCount() int {
	return len(fields)
}

// KeyFor returns the zero-padded positional key for a field position,
// e.g. KeyFor(0) == "00000000000000000000".
func KeyFor(position int) string {
	return fmt.Sprintf("%0*d", KeyWidth, position)
}

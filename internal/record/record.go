// internal/record/record.go
package record

import (
	"reflect"
	"strconv"
	"strings"
)

// Record is a read-only view over one of the container shapes the
// monitoring host may deliver: a keyed mapping, an attribute-bearing
// object, or an indexable sequence. The host owns the underlying value;
// a Record never mutates it.
type Record interface {
	// Get returns the named value and whether it was present. Absence is
	// never an error; malformed containers read as empty.
	Get(name string) (interface{}, bool)
}

// Resolve adapts an arbitrary host value to a Record, picking the
// implementation that matches its shape. Unsupported shapes resolve to
// an empty record so every lookup on them reports absence.
func Resolve(v interface{}) Record {
	if v == nil {
		return emptyRecord{}
	}
	if r, ok := v.(Record); ok {
		return r
	}
	if m, ok := v.(map[string]interface{}); ok {
		return mapRecord(m)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return emptyRecord{}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		return reflectMapRecord{v: rv}
	case reflect.Struct:
		return structRecord{v: rv}
	case reflect.Slice, reflect.Array:
		return sliceRecord{v: rv}
	default:
		return emptyRecord{}
	}
}

// Lookup returns the named value from any container shape, or nil when
// the container does not hold it. This is the triple-fallback read:
// keyed access, then attribute access, then indexed access.
func Lookup(container interface{}, name string) interface{} {
	if container == nil {
		return nil
	}
	v, _ := Resolve(container).Get(name)
	return v
}

// IsMapping reports whether v is a keyed mapping of any key/value types.
func IsMapping(v interface{}) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(map[string]interface{}); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Map
}

// Elements returns the elements of a sequence value. Byte slices do not
// count; they are payload text, not sequences of items.
func Elements(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if items, ok := v.([]interface{}); ok {
		return items, true
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

type emptyRecord struct{}

func (emptyRecord) Get(string) (interface{}, bool) { return nil, false }

// mapRecord is the fast path for the shape JSON decoding produces.
type mapRecord map[string]interface{}

func (m mapRecord) Get(name string) (interface{}, bool) {
	v, ok := m[name]
	return v, ok
}

// reflectMapRecord handles other string-keyed (or interface-keyed) maps.
type reflectMapRecord struct {
	v reflect.Value
}

func (r reflectMapRecord) Get(name string) (val interface{}, ok bool) {
	defer func() {
		if recover() != nil {
			val, ok = nil, false
		}
	}()

	keyType := r.v.Type().Key()
	key := reflect.ValueOf(name)
	switch keyType.Kind() {
	case reflect.String:
		if key.Type() != keyType {
			key = key.Convert(keyType)
		}
	case reflect.Interface:
		// string key assignable as-is
	default:
		return nil, false
	}

	mv := r.v.MapIndex(key)
	if !mv.IsValid() {
		return nil, false
	}
	return mv.Interface(), true
}

// structRecord reads exported fields, matching the name exactly first
// and case-insensitively second, so "captureData" finds CaptureData.
type structRecord struct {
	v reflect.Value
}

func (s structRecord) Get(name string) (val interface{}, ok bool) {
	defer func() {
		if recover() != nil {
			val, ok = nil, false
		}
	}()

	fv := s.v.FieldByName(name)
	if !fv.IsValid() {
		fv = s.v.FieldByNameFunc(func(field string) bool {
			return strings.EqualFold(field, name)
		})
	}
	if !fv.IsValid() || !fv.CanInterface() {
		return nil, false
	}
	return fv.Interface(), true
}

// sliceRecord supports indexed access as the last lookup resort: the
// name must parse as an in-range element index.
type sliceRecord struct {
	v reflect.Value
}

func (s sliceRecord) Get(name string) (interface{}, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(name))
	if err != nil || idx < 0 || idx >= s.v.Len() {
		return nil, false
	}
	return s.v.Index(idx).Interface(), true
}

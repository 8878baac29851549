// Package dynamic is the reference Ops backend: a tree of Go-native
// values (map[string]any, []any, and scalars) that doubles as the JSON
// backend, since encoding/json marshals and unmarshals exactly this
// shape without a conversion pass.
//
// Grounded on original_source/src/builtins/json.rs's JsonOps, adapted to
// a native Go shape instead of a dedicated JSON AST type (see
// DESIGN.md).
package dynamic

import (
	"fmt"

	"github.com/arkenfold/datafix"
)

// Ops implements datafix.Ops[any] over plain Go values: float64 for every
// numeric scalar on decode from JSON, map[string]any for objects, []any
// for lists, and an empty map[string]any for unit, matching "empty object"
// on the wire.
type Ops struct{}

var _ datafix.Ops[any] = Ops{}

func (Ops) CreateDouble(v float64) any  { return v }
func (Ops) CreateFloat(v float32) any   { return float64(v) }
func (Ops) CreateLong(v int64) any      { return float64(v) }
func (Ops) CreateInt(v int32) any       { return float64(v) }
func (Ops) CreateShort(v int16) any     { return float64(v) }
func (Ops) CreateByte(v int8) any       { return float64(v) }
func (Ops) CreateString(v string) any   { return v }
func (Ops) CreateBoolean(v bool) any    { return v }
func (Ops) CreateUnit() any             { return map[string]any{} }

func (Ops) CreateList(values []any) any {
	out := make([]any, len(values))
	copy(out, values)
	return out
}

func (Ops) CreateMap(entries []datafix.MapEntry[any]) any {
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out
}

func unexpected(expected string) datafix.DataError {
	return &datafix.UnexpectedTypeError{Expected: expected}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (Ops) GetDouble(value any) (float64, datafix.DataError) {
	f, ok := asFloat(value)
	if !ok {
		return 0, unexpected("double")
	}
	return f, nil
}

func (Ops) GetFloat(value any) (float32, datafix.DataError) {
	f, ok := asFloat(value)
	if !ok {
		return 0, unexpected("float")
	}
	return float32(f), nil
}

// truncToInt applies round-towards-zero truncation before narrowing, per
// spec.md §6.1's stated integer-read semantics.
func truncToInt(f float64) int64 {
	if f < 0 {
		return -int64(-f)
	}
	return int64(f)
}

func (Ops) GetLong(value any) (int64, datafix.DataError) {
	f, ok := asFloat(value)
	if !ok {
		return 0, unexpected("long")
	}
	return truncToInt(f), nil
}

func (Ops) GetInt(value any) (int32, datafix.DataError) {
	f, ok := asFloat(value)
	if !ok {
		return 0, unexpected("int")
	}
	return int32(truncToInt(f)), nil
}

func (Ops) GetShort(value any) (int16, datafix.DataError) {
	f, ok := asFloat(value)
	if !ok {
		return 0, unexpected("short")
	}
	return int16(truncToInt(f)), nil
}

func (Ops) GetByte(value any) (int8, datafix.DataError) {
	f, ok := asFloat(value)
	if !ok {
		return 0, unexpected("byte")
	}
	return int8(truncToInt(f)), nil
}

func (Ops) GetString(value any) (string, datafix.DataError) {
	s, ok := value.(string)
	if !ok {
		return "", unexpected("string")
	}
	return s, nil
}

func (Ops) GetBoolean(value any) (bool, datafix.DataError) {
	b, ok := value.(bool)
	if !ok {
		return false, unexpected("boolean")
	}
	return b, nil
}

func (Ops) GetUnit(value any) datafix.DataError {
	m, ok := value.(map[string]any)
	if !ok {
		return unexpected("unit")
	}
	if len(m) != 0 {
		return unexpected("unit")
	}
	return nil
}

func (Ops) GetList(value any) ([]any, datafix.DataError) {
	l, ok := value.([]any)
	if !ok {
		return nil, unexpected("list")
	}
	return l, nil
}

func (Ops) GetMap(value any) ([]datafix.MapEntry[any], datafix.DataError) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, unexpected("map")
	}
	out := make([]datafix.MapEntry[any], 0, len(m))
	for k, v := range m {
		out = append(out, datafix.MapEntry[any]{Key: k, Value: v})
	}
	return out, nil
}

type listView struct{ list *[]any }

func (v *listView) Append(value any) { *v.list = append(*v.list, value) }

func (v *listView) Get(index int) (any, datafix.DataError) {
	if index < 0 || index >= len(*v.list) {
		return nil, &datafix.IndexOutOfBoundsError{Index: index, Length: len(*v.list)}
	}
	return (*v.list)[index], nil
}

func (v *listView) Len() int { return len(*v.list) }

func (v *listView) Each(fn func(index int, value any)) {
	for i, elem := range *v.list {
		fn(i, elem)
	}
}

func (v *listView) Materialize() any { return *v.list }

func (Ops) GetListMut(value any) (datafix.ListView[any], datafix.DataError) {
	l, ok := value.([]any)
	if !ok {
		return nil, unexpected("list")
	}
	return &listView{list: &l}, nil
}

type mapView struct{ m map[string]any }

func (v *mapView) Get(name string) (any, datafix.DataError) {
	val, ok := v.m[name]
	if !ok {
		return nil, &datafix.KeyNotFoundError{Key: name}
	}
	return val, nil
}

func (v *mapView) Set(name string, value any) { v.m[name] = value }

func (v *mapView) Remove(name string) (any, datafix.DataError) {
	val, ok := v.m[name]
	if !ok {
		return nil, &datafix.KeyNotFoundError{Key: name}
	}
	delete(v.m, name)
	return val, nil
}

func (v *mapView) Keys() []string {
	out := make([]string, 0, len(v.m))
	for k := range v.m {
		out = append(out, k)
	}
	return out
}

// Materialize is a no-op on this backend: map[string]any is itself a
// reference type, so Set/Remove already mutated the map the caller's V
// refers to.
func (v *mapView) Materialize() any { return v.m }

func (Ops) GetMapMut(value any) (datafix.MapView[any], datafix.DataError) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, unexpected("map")
	}
	return &mapView{m: m}, nil
}

type ownedMapView struct{ m map[string]any }

func (v *ownedMapView) Take(name string) (any, datafix.DataError) {
	val, ok := v.m[name]
	if !ok {
		return nil, &datafix.KeyNotFoundError{Key: name}
	}
	delete(v.m, name)
	return val, nil
}

func (v *ownedMapView) Entries() []datafix.MapEntry[any] {
	out := make([]datafix.MapEntry[any], 0, len(v.m))
	for k, val := range v.m {
		out = append(out, datafix.MapEntry[any]{Key: k, Value: val})
	}
	return out
}

func (Ops) TakeMap(value any) (datafix.OwnedMapView[any], datafix.DataError) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, unexpected("map")
	}
	copied := make(map[string]any, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return &ownedMapView{m: copied}, nil
}

func (o Ops) CreateMapSpecial(entries []datafix.OptionalEntry[any]) (any, datafix.DataError) {
	return datafix.CreateMapSpecialDefault[any](o, entries)
}

// String renders a value using Go's default formatting, for diagnostics
// that don't want to round-trip through encoding/json.
func String(value any) string { return fmt.Sprintf("%v", value) }

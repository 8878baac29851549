// Package types implements the tagged type-descriptor model used by
// rewrite rules and by codecs that can self-describe: primitives,
// Object{field -> Type}, and Array(Type), with structural equality.
//
// Grounded on original_source/src/fixers/types.rs's Type/TypeMap/
// TypeArray.
package types

import "sort"

// Kind tags which variant a Type holds.
type Kind int

const (
	Byte Kind = iota
	Short
	Int
	Long
	Float
	Double
	String
	Boolean
	Unit
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case Short:
		return "Short"
	case Int:
		return "Int"
	case Long:
		return "Long"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	case Unit:
		return "Unit"
	case Array:
		return "Array"
	case Object:
		return "Object"
	default:
		return "Unknown"
	}
}

// Type is a tagged description of a schema shape. Array and Object carry
// further structure; every other Kind is a bare scalar tag.
type Type struct {
	kind    Kind
	element *Type          // Array only
	fields  map[string]Type // Object only
}

func scalar(k Kind) Type { return Type{kind: k} }

func NewByte() Type    { return scalar(Byte) }
func NewShort() Type   { return scalar(Short) }
func NewInt() Type     { return scalar(Int) }
func NewLong() Type    { return scalar(Long) }
func NewFloat() Type   { return scalar(Float) }
func NewDouble() Type  { return scalar(Double) }
func NewString() Type  { return scalar(String) }
func NewBoolean() Type { return scalar(Boolean) }
func NewUnit() Type    { return scalar(Unit) }

// NewArray builds an Array(element) type.
func NewArray(element Type) Type {
	e := element
	return Type{kind: Array, element: &e}
}

// NewObject builds an Object type from an initial field set. Pass nil (or
// no fields) to start empty and build it up with InsertField.
func NewObject(fields map[string]Type) Type {
	m := make(map[string]Type, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return Type{kind: Object, fields: m}
}

func (t Type) Kind() Kind { return t.kind }

// Element returns the element type of an Array and whether t is in fact
// an Array.
func (t Type) Element() (Type, bool) {
	if t.kind != Array || t.element == nil {
		return Type{}, false
	}
	return *t.element, true
}

// Fields returns a copy of an Object's field map and whether t is in fact
// an Object.
func (t Type) Fields() (map[string]Type, bool) {
	if t.kind != Object {
		return nil, false
	}
	out := make(map[string]Type, len(t.fields))
	for k, v := range t.fields {
		out[k] = v
	}
	return out, true
}

// Field looks up a single field of an Object type.
func (t Type) Field(name string) (Type, bool) {
	if t.kind != Object {
		return Type{}, false
	}
	f, ok := t.fields[name]
	return f, ok
}

// InsertField returns a new Object type with name -> field inserted or
// overwritten; t must already be an Object (non-Objects are returned
// unchanged, matching the pass-through discipline rewrite rules use).
func (t Type) InsertField(name string, field Type) Type {
	if t.kind != Object {
		return t
	}
	out := NewObject(t.fields)
	out.fields[name] = field
	return out
}

// RemoveField returns a new Object type with name deleted; missing names
// and non-Object types pass through unchanged.
func (t Type) RemoveField(name string) Type {
	if t.kind != Object {
		return t
	}
	out := NewObject(t.fields)
	delete(out.fields, name)
	return out
}

// Equal is structural equality, walking Array elements and Object field
// maps recursively (Go maps are not comparable with ==).
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case Array:
		te, tok := t.Element()
		oe, ook := other.Element()
		if tok != ook {
			return false
		}
		return te.Equal(oe)
	case Object:
		if len(t.fields) != len(other.fields) {
			return false
		}
		names := make([]string, 0, len(t.fields))
		for k := range t.fields {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			ov, ok := other.fields[k]
			if !ok || !t.fields[k].Equal(ov) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

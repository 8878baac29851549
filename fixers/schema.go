package fixers

import "github.com/arkenfold/datafix/types"

// Schema is an append-only versioned table mapping names to types, with
// an optional parent link forming a version chain. Grounded on
// original_source/src/fixers/schema.rs.
type Schema struct {
	version int
	types   map[string]types.Type
	parent  *Schema
}

// NewRootSchema starts a version chain at version 0 with no parent.
func NewRootSchema() *Schema {
	return &Schema{version: 0, types: map[string]types.Type{}}
}

// InsertType registers name -> ty in this schema, overwriting any prior
// registration at this version.
func (s *Schema) InsertType(name string, ty types.Type) {
	s.types[name] = ty
}

// Version returns this schema's version number.
func (s *Schema) Version() int { return s.version }

// FindType walks the parent chain back-to-front (most-derived schema
// first) and returns the first registration of name it finds.
func (s *Schema) FindType(name string) (types.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if ty, ok := cur.types[name]; ok {
			return ty, true
		}
	}
	return types.Type{}, false
}

// ApplyFixer derives a new schema, one version ahead of s, whose types
// are s's own registered types each passed through rule's FixType. The
// new schema's parent is s, so FindType on the child still reaches types
// only the parent ever registered.
func ApplyFixer[V any](s *Schema, rule Rule[V]) *Schema {
	next := &Schema{version: s.version + 1, types: map[string]types.Type{}, parent: s}
	for name, ty := range s.types {
		next.types[name] = rule.FixType(ty)
	}
	return next
}

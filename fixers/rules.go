// Package fixers implements the rewrite-rule algebra used by the
// data-fixer subsystem: ordered rules that transform both data values
// and type descriptions in lockstep, for reading old persisted data with
// new code.
//
// Grounded on original_source/src/fixers/mod.rs, rules.rs, and
// builtins.rs.
package fixers

import (
	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/types"
)

// Rule is a data+type rewrite pair. Both directions are total: they pass
// values through unchanged when they do not apply (spec.md §4.5).
type Rule[V any] interface {
	FixData(ops datafix.Ops[V], tree V) V
	FixType(ty types.Type) types.Type
}

type ruleFuncs[V any] struct {
	fixData func(datafix.Ops[V], V) V
	fixType func(types.Type) types.Type
}

func (r *ruleFuncs[V]) FixData(ops datafix.Ops[V], tree V) V { return r.fixData(ops, tree) }
func (r *ruleFuncs[V]) FixType(ty types.Type) types.Type     { return r.fixType(ty) }

func fromFuncs[V any](fixData func(datafix.Ops[V], V) V, fixType func(types.Type) types.Type) Rule[V] {
	return &ruleFuncs[V]{fixData: fixData, fixType: fixType}
}

// AndThen composes two rules left-to-right: apply r1, then r2, on both
// the data and type channels in that order (spec.md §9 resolves the
// ordering Open Question explicitly this way).
func AndThen[V any](r1, r2 Rule[V]) Rule[V] {
	return fromFuncs(
		func(ops datafix.Ops[V], tree V) V {
			return r2.FixData(ops, r1.FixData(ops, tree))
		},
		func(ty types.Type) types.Type {
			return r2.FixType(r1.FixType(ty))
		},
	)
}

// AddField inserts or overwrites name in a map/Object target. valueFn and
// typeFn compute the field's value and type from nothing but the
// ambient ops (they need no input to decide what to add, matching
// spec.md's add_field(name, value_fn, type_fn) signature). Non-maps and
// non-Objects pass through unchanged.
func AddField[V any](name string, valueFn func(ops datafix.Ops[V]) V, typeFn func() types.Type) Rule[V] {
	return fromFuncs(
		func(ops datafix.Ops[V], tree V) V {
			view, err := ops.GetMapMut(tree)
			if err != nil {
				return tree
			}
			view.Set(name, valueFn(ops))
			return view.Materialize()
		},
		func(ty types.Type) types.Type {
			if ty.Kind() != types.Object {
				return ty
			}
			return ty.InsertField(name, typeFn())
		},
	)
}

// RemoveField deletes name from a map/Object target. Pass through on
// wrong shape; a missing key is not an error.
func RemoveField[V any](name string) Rule[V] {
	return fromFuncs(
		func(ops datafix.Ops[V], tree V) V {
			view, err := ops.GetMapMut(tree)
			if err != nil {
				return tree
			}
			_, _ = view.Remove(name)
			return view.Materialize()
		},
		func(ty types.Type) types.Type {
			if ty.Kind() != types.Object {
				return ty
			}
			return ty.RemoveField(name)
		},
	)
}

// ApplyToField rewrites the sub-tree/sub-type named name by inner,
// leaving the rest of the target unchanged; pass through when the target
// lacks that field.
func ApplyToField[V any](name string, inner Rule[V]) Rule[V] {
	return fromFuncs(
		func(ops datafix.Ops[V], tree V) V {
			view, err := ops.GetMapMut(tree)
			if err != nil {
				return tree
			}
			sub, err := view.Get(name)
			if err != nil {
				return tree
			}
			view.Set(name, inner.FixData(ops, sub))
			return view.Materialize()
		},
		func(ty types.Type) types.Type {
			if ty.Kind() != types.Object {
				return ty
			}
			sub, ok := ty.Field(name)
			if !ok {
				return ty
			}
			return ty.InsertField(name, inner.FixType(sub))
		},
	)
}

// RenameField removes oldName and re-inserts the same value/type under
// newName, carrying the value across instead of requiring the caller to
// hand-wire a value_fn that reads back what remove_field just deleted.
// Supplemented from original_source/src/fixers/builtins.rs's
// FieldRenameFixer, a feature spec.md's primitive set can only simulate
// clumsily (SPEC_FULL.md §4.5). Missing oldName and non-object targets
// pass through unchanged, like the other primitive rules.
func RenameField[V any](oldName, newName string) Rule[V] {
	return fromFuncs(
		func(ops datafix.Ops[V], tree V) V {
			view, err := ops.GetMapMut(tree)
			if err != nil {
				return tree
			}
			value, err := view.Remove(oldName)
			if err != nil {
				return tree
			}
			view.Set(newName, value)
			return view.Materialize()
		},
		func(ty types.Type) types.Type {
			if ty.Kind() != types.Object {
				return ty
			}
			field, ok := ty.Field(oldName)
			if !ok {
				return ty
			}
			return ty.InsertField(newName, field).RemoveField(oldName)
		},
	)
}

package fixers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/fixers"
	"github.com/arkenfold/datafix/ops/dynamic"
	"github.com/arkenfold/datafix/ops/tagstream"
	"github.com/arkenfold/datafix/types"
)

// TestAddFieldRule is spec.md's S5 scenario.
func TestAddFieldRule(t *testing.T) {
	ops := dynamic.Ops{}
	rule := fixers.AddField[any]("y",
		func(ops datafix.Ops[any]) any { return ops.CreateInt(20) },
		func() types.Type { return types.NewInt() },
	)

	tree := map[string]any{"x": float64(10)}
	fixed := rule.FixData(ops, tree)
	assert.Equal(t, map[string]any{"x": float64(10), "y": float64(20)}, fixed)

	ty := types.NewObject(map[string]types.Type{"x": types.NewInt()})
	fixedTy := rule.FixType(ty)
	expected := types.NewObject(map[string]types.Type{"x": types.NewInt(), "y": types.NewInt()})
	assert.True(t, fixedTy.Equal(expected))
}

// TestApplyToFieldRule is spec.md's S6 scenario.
func TestApplyToFieldRule(t *testing.T) {
	ops := dynamic.Ops{}
	inner := fixers.AddField[any]("b",
		func(ops datafix.Ops[any]) any { return ops.CreateInt(20) },
		func() types.Type { return types.NewInt() },
	)
	rule := fixers.ApplyToField[any]("i", inner)

	tree := map[string]any{"i": map[string]any{"a": float64(10)}}
	fixed := rule.FixData(ops, tree)
	assert.Equal(t, map[string]any{"i": map[string]any{"a": float64(10), "b": float64(20)}}, fixed)
}

// TestAddFieldRuleOverTagStream exercises AddField against the one
// backend where a mutation-based rule can't mutate the borrowed tree in
// place: []byte has to be re-encoded, so this fails if the rule ever goes
// back to returning its `tree` parameter unchanged.
func TestAddFieldRuleOverTagStream(t *testing.T) {
	ops := tagstream.Ops{}
	rule := fixers.AddField[[]byte]("y",
		func(ops datafix.Ops[[]byte]) []byte { return ops.CreateInt(20) },
		func() types.Type { return types.NewInt() },
	)

	tree := ops.CreateMap([]datafix.MapEntry[[]byte]{{Key: "x", Value: ops.CreateInt(10)}})
	fixed := rule.FixData(ops, tree)

	entries, err := ops.GetMap(fixed)
	require.NoError(t, err)
	got := map[string]int32{}
	for _, e := range entries {
		v, verr := ops.GetInt(e.Value)
		require.NoError(t, verr)
		got[e.Key] = v
	}
	assert.Equal(t, map[string]int32{"x": 10, "y": 20}, got)
}

func TestRemoveFieldRuleOverTagStream(t *testing.T) {
	ops := tagstream.Ops{}
	rule := fixers.RemoveField[[]byte]("y")

	tree := ops.CreateMap([]datafix.MapEntry[[]byte]{
		{Key: "x", Value: ops.CreateInt(10)},
		{Key: "y", Value: ops.CreateInt(20)},
	})
	fixed := rule.FixData(ops, tree)

	entries, err := ops.GetMap(fixed)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x", entries[0].Key)
}

func TestRemoveFieldPassesThroughOnMissingKey(t *testing.T) {
	ops := dynamic.Ops{}
	rule := fixers.RemoveField[any]("absent")
	tree := map[string]any{"x": float64(1)}
	assert.Equal(t, tree, rule.FixData(ops, tree))
}

func TestRenameFieldCarriesValueAcross(t *testing.T) {
	ops := dynamic.Ops{}
	rule := fixers.RenameField[any]("old_id", "id")

	tree := map[string]any{"old_id": float64(1)}
	fixed := rule.FixData(ops, tree)
	assert.Equal(t, map[string]any{"id": float64(1)}, fixed)

	ty := types.NewObject(map[string]types.Type{"old_id": types.NewInt()})
	fixedTy := rule.FixType(ty)
	_, hasOld := fixedTy.Field("old_id")
	assert.False(t, hasOld)
	idField, hasNew := fixedTy.Field("id")
	require.True(t, hasNew)
	assert.True(t, idField.Equal(types.NewInt()))
}

// TestAndThenAssociativity is spec.md's invariant 8.
func TestAndThenAssociativity(t *testing.T) {
	ops := dynamic.Ops{}
	r1 := fixers.AddField[any]("a", func(ops datafix.Ops[any]) any { return ops.CreateInt(1) }, func() types.Type { return types.NewInt() })
	r2 := fixers.AddField[any]("b", func(ops datafix.Ops[any]) any { return ops.CreateInt(2) }, func() types.Type { return types.NewInt() })
	r3 := fixers.AddField[any]("c", func(ops datafix.Ops[any]) any { return ops.CreateInt(3) }, func() types.Type { return types.NewInt() })

	left := fixers.AndThen[any](fixers.AndThen[any](r1, r2), r3)
	right := fixers.AndThen[any](r1, fixers.AndThen[any](r2, r3))

	tree := map[string]any{}
	assert.Equal(t, left.FixData(ops, tree), right.FixData(ops, tree))
}

func TestSchemaFindTypeWalksParentChain(t *testing.T) {
	root := fixers.NewRootSchema()
	root.InsertType("Config", types.NewObject(map[string]types.Type{"old_id": types.NewInt()}))

	rename := fixers.RenameField[any]("old_id", "id")
	next := fixers.ApplyFixer[any](root, rename)

	ty, ok := next.FindType("Config")
	require.True(t, ok)
	_, hasOld := ty.Field("old_id")
	assert.False(t, hasOld)
	_, hasNew := ty.Field("id")
	assert.True(t, hasNew)

	rootTy, ok := root.FindType("Config")
	require.True(t, ok)
	_, hasOldStill := rootTy.Field("old_id")
	assert.True(t, hasOldStill, "ApplyFixer must not mutate the parent schema")
}

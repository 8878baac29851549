package dynamic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/ops/dynamic"
)

func TestUnitRoundTrip(t *testing.T) {
	ops := dynamic.Ops{}
	unit := ops.CreateUnit()
	assert.Equal(t, map[string]any{}, unit)
	assert.NoError(t, ops.GetUnit(unit))
	assert.Error(t, ops.GetUnit(map[string]any{"x": 1}))
}

func TestIntegerTruncationRoundsTowardsZero(t *testing.T) {
	ops := dynamic.Ops{}
	v, err := ops.GetInt(3.9)
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)

	v, err = ops.GetInt(-3.9)
	require.NoError(t, err)
	assert.Equal(t, int32(-3), v)
}

func TestUnexpectedTypeError(t *testing.T) {
	ops := dynamic.Ops{}
	_, err := ops.GetString(42.0)
	require.Error(t, err)
	var typeErr *datafix.UnexpectedTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestCreateMapSpecialDropsAbsentEntries(t *testing.T) {
	ops := dynamic.Ops{}
	tree, err := ops.CreateMapSpecial([]datafix.OptionalEntry[any]{
		{Present: true, Key: "a", Value: ops.CreateInt(1)},
		{Present: false},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, tree)
}

func TestCreateMapSpecialFailsOnFirstError(t *testing.T) {
	ops := dynamic.Ops{}
	_, err := ops.CreateMapSpecial([]datafix.OptionalEntry[any]{
		{Err: datafix.Custom("boom")},
		{Present: true, Key: "a", Value: ops.CreateInt(1)},
	})
	assert.Error(t, err)
}

func TestGetListMutAppendIsVisibleAfterMaterialize(t *testing.T) {
	ops := dynamic.Ops{}
	tree := ops.CreateList([]any{ops.CreateInt(1)})

	view, err := ops.GetListMut(tree)
	require.NoError(t, err)
	view.Append(ops.CreateInt(2))

	updated := view.Materialize()
	elems, err := ops.GetList(updated)
	require.NoError(t, err)
	require.Len(t, elems, 2)

	v, err := ops.GetInt(elems[1])
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestGetMapMutSetIsVisibleWithoutMaterialize(t *testing.T) {
	ops := dynamic.Ops{}
	tree := ops.CreateMap([]datafix.MapEntry[any]{{Key: "a", Value: ops.CreateInt(1)}})

	view, err := ops.GetMapMut(tree)
	require.NoError(t, err)
	view.Set("b", ops.CreateInt(2))

	entries, err := ops.GetMap(tree)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestTakeMapThenEntriesReflectsRemaining(t *testing.T) {
	ops := dynamic.Ops{}
	tree := map[string]any{"a": float64(1), "b": float64(2)}
	owned, err := ops.TakeMap(tree)
	require.NoError(t, err)

	v, err := owned.Take("a")
	require.NoError(t, err)
	assert.Equal(t, float64(1), v)

	remaining := owned.Entries()
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].Key)
}

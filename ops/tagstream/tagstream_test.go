package tagstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/ops/tagstream"
)

func TestScalarRoundTrips(t *testing.T) {
	ops := tagstream.Ops{}

	d := ops.CreateDouble(3.5)
	v, err := ops.GetDouble(d)
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	str := ops.CreateString("hello world")
	s, err := ops.GetString(str)
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)

	b := ops.CreateBoolean(true)
	bv, err := ops.GetBoolean(b)
	require.NoError(t, err)
	assert.True(t, bv)
}

func TestListAndMapRoundTrip(t *testing.T) {
	ops := tagstream.Ops{}
	list := ops.CreateList([][]byte{ops.CreateInt(1), ops.CreateInt(2), ops.CreateInt(3)})
	elems, err := ops.GetList(list)
	require.NoError(t, err)
	require.Len(t, elems, 3)
	v, err := ops.GetInt(elems[1])
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	m := ops.CreateMap([]datafix.MapEntry[[]byte]{
		{Key: "a", Value: ops.CreateInt(10)},
		{Key: "b", Value: ops.CreateString("x")},
	})
	entries, err := ops.GetMap(m)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecordRoundTripOverTagStream(t *testing.T) {
	ops := tagstream.Ops{}
	type pair struct{ A, B int32 }
	codec := datafix.NewRecordBuilder[[]byte, pair]().
		Field(datafix.Required[[]byte, int32, pair]("a", func(p pair) int32 { return p.A }, datafix.Int[[]byte]())).
		Field(datafix.Required[[]byte, int32, pair]("b", func(p pair) int32 { return p.B }, datafix.Int[[]byte]())).
		Build(func(a, b int32) pair { return pair{A: a, B: b} })

	tree, err := datafix.EncodeStart[[]byte](codec, ops, pair{A: 7, B: 9})
	require.NoError(t, err)

	back, err := datafix.DecodeStart[[]byte](codec, ops, tree)
	require.NoError(t, err)
	assert.Equal(t, pair{A: 7, B: 9}, back)
}

func TestGetWrongTagFails(t *testing.T) {
	ops := tagstream.Ops{}
	_, err := ops.GetString(ops.CreateInt(1))
	assert.Error(t, err)
}

// TestGetListMutAppendRequiresMaterialize documents the one backend where
// Append cannot mutate the original []byte in place: reading through the
// stale value the caller passed to GetListMut must not see the appended
// element, only Materialize does.
func TestGetListMutAppendRequiresMaterialize(t *testing.T) {
	ops := tagstream.Ops{}
	original := ops.CreateList([][]byte{ops.CreateInt(1)})

	view, err := ops.GetListMut(original)
	require.NoError(t, err)
	view.Append(ops.CreateInt(2))

	staleElems, err := ops.GetList(original)
	require.NoError(t, err)
	assert.Len(t, staleElems, 1)

	updated := view.Materialize()
	elems, err := ops.GetList(updated)
	require.NoError(t, err)
	require.Len(t, elems, 2)
	v, err := ops.GetInt(elems[1])
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

// TestGetMapMutSetRequiresMaterialize is the map-shaped counterpart:
// Set/Remove only take effect in the view's Materialize() result.
func TestGetMapMutSetRequiresMaterialize(t *testing.T) {
	ops := tagstream.Ops{}
	original := ops.CreateMap([]datafix.MapEntry[[]byte]{{Key: "a", Value: ops.CreateInt(1)}})

	view, err := ops.GetMapMut(original)
	require.NoError(t, err)
	view.Set("b", ops.CreateInt(2))

	staleEntries, err := ops.GetMap(original)
	require.NoError(t, err)
	assert.Len(t, staleEntries, 1)

	updated := view.Materialize()
	entries, err := ops.GetMap(updated)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

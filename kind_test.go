package datafix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/ops/dynamic"
)

func TestKindOfDistinguishesMapListAndUnit(t *testing.T) {
	ops := dynamic.Ops{}

	assert.Equal(t, datafix.UnitKind, datafix.KindOf[any](ops, ops.CreateUnit()))
	assert.Equal(t, datafix.MapKind, datafix.KindOf[any](ops, ops.CreateMap([]datafix.MapEntry[any]{{Key: "a", Value: ops.CreateInt(1)}})))
	assert.Equal(t, datafix.ListKind, datafix.KindOf[any](ops, ops.CreateList([]any{ops.CreateInt(1)})))
	assert.Equal(t, datafix.StringKind, datafix.KindOf[any](ops, ops.CreateString("x")))
	assert.Equal(t, datafix.BooleanKind, datafix.KindOf[any](ops, ops.CreateBoolean(true)))
}

func TestKindHasMatchesUnions(t *testing.T) {
	assert.True(t, datafix.IntKind.Has(datafix.NumberKind))
	assert.True(t, datafix.StringKind.Has(datafix.ScalarKind))
	assert.False(t, datafix.MapKind.Has(datafix.ScalarKind))
}

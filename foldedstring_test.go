package datafix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/ops/dynamic"
)

func TestFoldedStringAcceptsAnyCasing(t *testing.T) {
	ops := dynamic.Ops{}
	codec := datafix.FoldedString[any]()

	v, err := datafix.DecodeStart[any](codec, ops, "HELLO")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = datafix.DecodeStart[any](codec, ops, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

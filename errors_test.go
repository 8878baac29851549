package datafix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/ops/dynamic"
)

func TestDecodeStartWrapsCodecErrorWithPath(t *testing.T) {
	ops := dynamic.Ops{}
	_, err := datafix.DecodeStart[any](datafix.Int[any](), ops, "not an int")
	require.Error(t, err)

	var codecErr *datafix.CodecError
	require.True(t, errors.As(err, &codecErr))
	assert.Equal(t, "$", codecErr.Context.Path())

	var typeErr *datafix.UnexpectedTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestCodecErrorPrettyIncludesPathAndMessage(t *testing.T) {
	ops := dynamic.Ops{}
	_, err := datafix.DecodeStart[any](datafix.Int[any](), ops, "nope")
	var codecErr *datafix.CodecError
	require.True(t, errors.As(err, &codecErr))

	pretty := codecErr.Pretty("nope")
	assert.Contains(t, pretty, "$")
	assert.Contains(t, pretty, "unexpected type")
}

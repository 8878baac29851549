package datafix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/examples"
	"github.com/arkenfold/datafix/ops/dynamic"
)

// TestRecursiveLinkedListRoundTrip is spec.md's S4 scenario.
func TestRecursiveLinkedListRoundTrip(t *testing.T) {
	ops := dynamic.Ops{}
	codec := examples.LinkedListCodec[any]()
	list := (&examples.LinkedListNode{Value: 1}).With(2).With(3)

	tree, err := datafix.EncodeStart[any](codec, ops, list)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"value": float64(1),
		"next": map[string]any{
			"value": float64(2),
			"next": map[string]any{
				"value": float64(3),
			},
		},
	}, tree)

	back, err := datafix.DecodeStart[any](codec, ops, tree)
	require.NoError(t, err)
	assert.Equal(t, list, back)
}

func TestRecursivePlaceholderUsedBeforeInstallIsFatal(t *testing.T) {
	placeholder := datafix.NewDynamicCodec[any, int32]()
	ops := dynamic.Ops{}
	assert.Panics(t, func() {
		_, _ = datafix.EncodeStart[any](placeholder, ops, int32(1))
	})
}

func TestRecursiveDecodeTypeMismatchReportsContext(t *testing.T) {
	ops := dynamic.Ops{}
	codec := examples.LinkedListCodec[any]()

	tree := map[string]any{
		"value": float64(1),
		"next": map[string]any{
			"value": float64(2),
			"next": map[string]any{
				"value": "not a number",
			},
		},
	}
	_, err := datafix.DecodeStart[any](codec, ops, tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$.next.next.value")
}

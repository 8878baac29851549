package numeric_test

import (
	"testing"

	"github.com/cockroachdb/apd/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/internal/numeric"
	"github.com/arkenfold/datafix/ops/dynamic"
)

func TestBigDecimalRoundTrip(t *testing.T) {
	ops := dynamic.Ops{}
	codec := numeric.BigDecimal[any]()

	var d apd.Decimal
	_, _, err := d.SetString("123456789012345678901234567890.123456789")
	require.NoError(t, err)

	tree, err := datafix.EncodeStart[any](codec, ops, d)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890.123456789", tree)

	back, err := datafix.DecodeStart[any](codec, ops, tree)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Cmp(&back))
}

func TestBigDecimalRejectsInvalidText(t *testing.T) {
	ops := dynamic.Ops{}
	codec := numeric.BigDecimal[any]()
	_, err := datafix.DecodeStart[any](codec, ops, "not a decimal")
	assert.Error(t, err)
}

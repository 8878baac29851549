package yamlops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/ops/yamlops"
)

type point struct {
	X int32
	Y int32
}

func pointCodec() datafix.Codec[*yaml.Node, point] {
	return datafix.NewRecordBuilder[*yaml.Node, point]().
		Field(datafix.Required[*yaml.Node, int32, point]("x", func(p point) int32 { return p.X }, datafix.Int[*yaml.Node]())).
		Field(datafix.Required[*yaml.Node, int32, point]("y", func(p point) int32 { return p.Y }, datafix.Int[*yaml.Node]())).
		Build(func(x, y int32) point { return point{X: x, Y: y} })
}

func TestRecordRoundTripOverYAMLNodes(t *testing.T) {
	ops := yamlops.Ops{}
	codec := pointCodec()

	tree, err := datafix.EncodeStart[*yaml.Node](codec, ops, point{X: 1, Y: 2})
	require.NoError(t, err)

	out, err := yaml.Marshal(tree)
	require.NoError(t, err)
	assert.Contains(t, string(out), "x: 1")
	assert.Contains(t, string(out), "y: 2")

	back, err := datafix.DecodeStart[*yaml.Node](codec, ops, tree)
	require.NoError(t, err)
	assert.Equal(t, point{X: 1, Y: 2}, back)
}

func TestScalarRoundTripFromYAMLText(t *testing.T) {
	ops := yamlops.Ops{}
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("hello"), &node))
	// yaml.Unmarshal into a Node produces a DocumentNode wrapping the
	// scalar; unwrap to the content we actually decode.
	scalar := node.Content[0]

	s, err := ops.GetString(scalar)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

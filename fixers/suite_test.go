package fixers_test

import (
	"testing"

	gc "gopkg.in/check.v1"

	"github.com/arkenfold/datafix"
	"github.com/arkenfold/datafix/fixers"
	"github.com/arkenfold/datafix/ops/dynamic"
	"github.com/arkenfold/datafix/types"
)

func Test(t *testing.T) { gc.TestingT(t) }

type RuleSuite struct{}

var _ = gc.Suite(&RuleSuite{})

func (s *RuleSuite) TestRuleDuality(c *gc.C) {
	ops := dynamic.Ops{}
	rule := fixers.AddField[any]("flag",
		func(ops datafix.Ops[any]) any { return ops.CreateBoolean(true) },
		func() types.Type { return types.NewBoolean() },
	)

	data := map[string]any{"x": float64(1)}
	ty := types.NewObject(map[string]types.Type{"x": types.NewInt()})

	fixedData := rule.FixData(ops, data)
	fixedType := rule.FixType(ty)

	fixedMap, ok := fixedData.(map[string]any)
	c.Assert(ok, gc.Equals, true)
	_, hasFlag := fixedMap["flag"]
	c.Assert(hasFlag, gc.Equals, true)

	_, hasFlagType := fixedType.Field("flag")
	c.Assert(hasFlagType, gc.Equals, true)
}

func (s *RuleSuite) TestRemoveFieldIsNotErrorOnMissingKey(c *gc.C) {
	ops := dynamic.Ops{}
	rule := fixers.RemoveField[any]("nope")
	data := map[string]any{"x": float64(1)}
	c.Assert(rule.FixData(ops, data), gc.DeepEquals, data)
}

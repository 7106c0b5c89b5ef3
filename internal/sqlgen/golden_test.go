package sqlgen

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/openobserve/alertquery/internal/tree"
)

// Golden fixtures pin the exact compiled text so formatting drift
// (spacing, parens, quoting) shows up as a diff instead of passing
// silently through semantic assertions.
func TestCompile_Golden(t *testing.T) {
	region := tree.NewCondition("region", tree.OpEq, tree.String("eu"))
	region.IgnoreCase = true

	root := tree.NewGroup(tree.LogicalAnd,
		tree.NewCondition("status", tree.OpContains, tree.String("error")),
		tree.NewGroup(tree.LogicalOr,
			tree.NewCondition("code", tree.OpGte, tree.Int(500)),
			region,
		),
		tree.NewCondition("msg", tree.OpNeq, tree.String("it's ok")),
	)
	agg := &Aggregation{
		Enabled:  true,
		Function: "count",
		GroupBy:  []string{"host", "service"},
		Having:   Having{Column: "count", Operator: tree.OpGte, Value: tree.Int(10)},
	}

	out, err := Compile(root, agg, "_timestamp")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "compile_nested_aggregation", []byte(out.Where+"\n"+out.GroupByHaving+"\n"))
}

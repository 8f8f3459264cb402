package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octaviordz/grizzly/aggregates"
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
)

func eventsScan() *Scan {
	return NewScan("events", gschema.New(
		[]string{"gid", "a", "n", "m"},
		[]gschema.ColType{gschema.NUMERIC, gschema.TEXT, gschema.TEXT, gschema.NUMERIC},
	))
}

func TestScanSchema(t *testing.T) {
	s := eventsScan()
	assert.Equal(t, []string{"gid", "a", "n", "m"}, s.Schema().Names())
	assert.Empty(t, s.Children())
}

func TestProjectionPreservesOrderAndInfersType(t *testing.T) {
	s := eventsScan()
	p, err := NewProjection(s, []ProjItem{
		{Alias: "gid", Expr: expr.Col("gid", s)},
		{Alias: "a", Expr: expr.Col("a", s)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"gid", "a"}, p.Schema().Names())
	typ, _ := p.Schema().Lookup("gid")
	assert.Equal(t, gschema.NUMERIC, typ)
}

func TestProjectionIsPassthrough(t *testing.T) {
	s := eventsScan()
	p, err := NewProjection(s, []ProjItem{
		{Alias: "gid", Expr: expr.Col("gid", s)},
		{Alias: "a", Expr: expr.Col("a", s)},
		{Alias: "n", Expr: expr.Col("n", s)},
		{Alias: "m", Expr: expr.Col("m", s)},
	})
	require.NoError(t, err)
	assert.True(t, p.IsPassthrough())

	renamed, err := NewProjection(s, []ProjItem{{Alias: "renamed", Expr: expr.Col("gid", s)}})
	require.NoError(t, err)
	assert.False(t, renamed.IsPassthrough())
}

func TestArithInferenceRequiresNumericOperands(t *testing.T) {
	s := eventsScan()
	good := expr.NewArith(expr.Col("gid", s), expr.Add, expr.Int(1))
	_, err := NewProjection(s, []ProjItem{{Alias: "computed", Expr: good}})
	assert.NoError(t, err)

	bad := expr.NewArith(expr.Col("a", s), expr.Add, expr.Int(1))
	_, err = NewProjection(s, []ProjItem{{Alias: "computed", Expr: bad}})
	assert.Error(t, err, "arithmetic over a TEXT column must be a SchemaError")
	assert.IsType(t, &gschema.SchemaError{}, err)
}

func TestFilterDerivesWhereOrHaving(t *testing.T) {
	s := eventsScan()
	pred, err := expr.NewCompare(expr.Col("gid", s), expr.GT, expr.Int(1))
	require.NoError(t, err)

	whereFilter, err := NewFilter(s, pred)
	require.NoError(t, err)
	assert.Equal(t, WHERE, whereFilter.Kind)

	agg, err := NewAggregation(s, []AggItem{{Kind: aggregates.COUNT, ColName: "gid", Alias: "cnt"}})
	require.NoError(t, err)
	havingFilter, err := NewFilter(agg, pred)
	require.NoError(t, err)
	assert.Equal(t, HAVING, havingFilter.Kind)
}

func TestFilterOnHavingMergesWithAnd(t *testing.T) {
	s := eventsScan()
	agg, err := NewAggregation(s, []AggItem{{Kind: aggregates.COUNT, ColName: "gid", Alias: "cnt"}})
	require.NoError(t, err)
	p1, err := expr.NewCompare(expr.Col("gid", s), expr.GT, expr.Int(1))
	require.NoError(t, err)
	p2, err := expr.NewCompare(expr.Col("gid", s), expr.LT, expr.Int(10))
	require.NoError(t, err)

	f1, err := NewFilter(agg, p1)
	require.NoError(t, err)
	f2, err := NewFilter(f1, p2)
	require.NoError(t, err)

	assert.Equal(t, HAVING, f2.Kind)
	assert.Same(t, agg, f2.Child.(*Aggregation))
	merged, ok := f2.Pred.(expr.Logical)
	require.True(t, ok)
	assert.Equal(t, expr.AND, merged.Op)
}

func TestAggregationRejectsSumOverText(t *testing.T) {
	s := eventsScan()
	_, err := NewAggregation(s, []AggItem{{Kind: aggregates.SUM, ColName: "a"}})
	assert.Error(t, err)
	assert.IsType(t, &gschema.SchemaError{}, err)
}

func TestAggregationAbsorbsGroupBy(t *testing.T) {
	s := eventsScan()
	gb, err := NewGroupBy(s, []string{"gid"})
	require.NoError(t, err)
	agg, err := NewAggregation(gb, []AggItem{{Kind: aggregates.COUNT, ColName: "a", Alias: "cnt"}})
	require.NoError(t, err)

	assert.Same(t, s, agg.Child)
	assert.Equal(t, []string{"gid"}, agg.GroupKeys)
	assert.Equal(t, []string{"gid", "cnt"}, agg.Schema().Names())
}

func TestJoinSchemaConcatenatesLeftAndRight(t *testing.T) {
	left := eventsScan()
	right := NewScan("actors", gschema.New([]string{"name"}, []gschema.ColType{gschema.TEXT}))
	j := NewJoin(left, right, nil, NaturalJoin)
	assert.Equal(t, []string{"gid", "a", "n", "m", "name"}, j.Schema().Names())
}

func TestSortRejectsUnknownKey(t *testing.T) {
	s := eventsScan()
	_, err := NewSort(s, []string{"nope"}, []bool{true})
	assert.Error(t, err)
}

func TestDescribeSchemaIsMinMaxMeanCount(t *testing.T) {
	s := eventsScan()
	d := NewDescribe(s)
	assert.Equal(t, []string{"min", "max", "mean", "count"}, d.Schema().Names())
}

func TestParseExternalColumns(t *testing.T) {
	cols, err := ParseExternalColumns([]string{"a:int, b:str", "c:float"})
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, ExternalColumn{Name: "a", Type: gschema.NUMERIC}, cols[0])
	assert.Equal(t, ExternalColumn{Name: "b", Type: gschema.TEXT}, cols[1])
	assert.Equal(t, ExternalColumn{Name: "c", Type: gschema.NUMERIC}, cols[2])

	_, err = ParseExternalColumns([]string{"bad"})
	assert.Error(t, err)
}

func TestNodeIDsAreMonotonicAndDistinct(t *testing.T) {
	a := eventsScan()
	b := eventsScan()
	assert.NotEqual(t, a.NodeID(), b.NodeID())
}

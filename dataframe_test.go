package grizzly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octaviordz/grizzly/aggregates"
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
	"github.com/octaviordz/grizzly/plan"
)

// eqCompare builds `df.col = n` against df's current schema.
func eqCompare(t *testing.T, df *DataFrame, col string, n int64) (expr.Compare, error) {
	t.Helper()
	return df.Col(col).Eq(expr.Int(n))
}

// litExpr builds `df.col + n`, a computed arithmetic column legal inside a
// Projection (unlike a boolean Compare, which InferType rejects).
func litExpr(t *testing.T, df *DataFrame, col string, n int64) (expr.Expression, error) {
	t.Helper()
	return expr.NewArith(df.Col(col), expr.Add, expr.Int(n)), nil
}

func eventsFrame() *DataFrame {
	return ReadTable("events",
		[]string{"gid", "a", "n", "m"},
		[]gschema.ColType{gschema.NUMERIC, gschema.TEXT, gschema.TEXT, gschema.NUMERIC},
	)
}

func TestReadTableAndSelect(t *testing.T) {
	df := eventsFrame()
	assert.Equal(t, []string{"gid", "a", "n", "m"}, df.Schema().Names())

	narrowed, err := df.Select("gid", "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"gid", "m"}, narrowed.Schema().Names())
	// Select must not mutate the original dataframe's plan.
	assert.Equal(t, []string{"gid", "a", "n", "m"}, df.Schema().Names())
}

func TestFilterOverAggregationBecomesHaving(t *testing.T) {
	df := eventsFrame()
	grouped, err := df.GroupBy("n")
	require.NoError(t, err)
	counted, err := grouped.Agg(aggregates.COUNT, "gid", "cnt")
	require.NoError(t, err)

	pred, err := eqCompare(t, counted, "cnt", 2)
	require.NoError(t, err)
	filtered, err := counted.Filter(pred)
	require.NoError(t, err)

	f, ok := filtered.Root().(*plan.Filter)
	require.True(t, ok)
	assert.Equal(t, plan.HAVING, f.Kind)
}

func TestAssignAppendsToExistingProjection(t *testing.T) {
	df := eventsFrame()
	selected, err := df.Select("gid", "m")
	require.NoError(t, err)

	lit, err := litExpr(t, selected, "gid", 1)
	require.NoError(t, err)
	assigned, err := selected.Assign("flag", lit)
	require.NoError(t, err)

	p, ok := assigned.Root().(*plan.Projection)
	require.True(t, ok)
	// same child as the original Select projection, not a second wrapping layer
	assert.Same(t, selected.Root().(*plan.Projection).Child, p.Child)
	assert.Equal(t, []string{"gid", "m", "flag"}, p.Schema().Names())
}

func TestWithIndexDoesNotMutateOriginal(t *testing.T) {
	df := eventsFrame()
	indexed := df.WithIndex("gid")
	assert.Empty(t, df.indexCol)
	assert.Equal(t, "gid", indexed.indexCol)
	assert.Same(t, df.Root(), indexed.Root())
}

func TestJoinColsBuildsInnerJoinByDefault(t *testing.T) {
	left := eventsFrame()
	right := ReadTable("actors", []string{"gid", "name"}, []gschema.ColType{gschema.NUMERIC, gschema.TEXT})

	joined, err := left.JoinCols(right, "gid", "gid", "")
	require.NoError(t, err)
	j, ok := joined.Root().(*plan.Join)
	require.True(t, ok)
	assert.Equal(t, plan.InnerJoin, j.Kind)
	assert.Equal(t, []string{"gid", "a", "n", "m", "gid", "name"}, j.Schema().Names())
}

func TestMapDataFrameBuildsNaturalJoin(t *testing.T) {
	left := eventsFrame()
	right := ReadTable("actors", []string{"name"}, []gschema.ColType{gschema.TEXT})
	joined, err := left.MapDataFrame(right)
	require.NoError(t, err)
	j, ok := joined.Root().(*plan.Join)
	require.True(t, ok)
	assert.Equal(t, plan.NaturalJoin, j.Kind)
	assert.Nil(t, j.Cond)
}

func TestGroupByThenAggProducesAggregationNode(t *testing.T) {
	df := eventsFrame()
	grouped, err := df.GroupBy("n")
	require.NoError(t, err)
	agg, err := grouped.Sum("m", "total")
	require.NoError(t, err)

	a, ok := agg.Root().(*plan.Aggregation)
	require.True(t, ok)
	assert.Equal(t, []string{"n"}, a.GroupKeys)
	assert.Equal(t, []string{"n", "total"}, a.Schema().Names())
}

func TestSortValuesExpandsSingleAscendingFlag(t *testing.T) {
	df := eventsFrame()
	sorted, err := df.SortValues([]string{"gid", "m"}, []bool{false})
	require.NoError(t, err)
	s, ok := sorted.Root().(*plan.Sort)
	require.True(t, ok)
	assert.Equal(t, []bool{false, false}, s.Ascending)
}

func TestSortValuesDefaultsAscending(t *testing.T) {
	df := eventsFrame()
	sorted, err := df.SortValues([]string{"gid", "m"}, nil)
	require.NoError(t, err)
	s, ok := sorted.Root().(*plan.Sort)
	require.True(t, ok)
	assert.Equal(t, []bool{true, true}, s.Ascending)
}

func TestSliceComputesLimitOffset(t *testing.T) {
	df := eventsFrame()
	sliced := df.Slice(5, 10)
	l, ok := sliced.Root().(*plan.Limit)
	require.True(t, ok)
	assert.Equal(t, 5, l.N)
	assert.Equal(t, 5, l.Offset)
}

func TestDistinctAndDescribeWrapCurrentRoot(t *testing.T) {
	df := eventsFrame()
	d, ok := df.Distinct().Root().(*plan.Distinct)
	require.True(t, ok)
	assert.Same(t, df.Root(), d.Child)

	desc, ok := df.Describe().Root().(*plan.Describe)
	require.True(t, ok)
	assert.Equal(t, []string{"min", "max", "mean", "count"}, desc.Schema().Names())
}

func TestAggAllSchemaNamesValueColumnAfterAggregate(t *testing.T) {
	df := eventsFrame()
	result, err := df.AggAll(aggregates.MAX)
	require.NoError(t, err)
	assert.Equal(t, []string{"colname", "max"}, result.Schema().Names())
}

func TestAggAllRejectsWhenNoColumnIsLegal(t *testing.T) {
	df := ReadTable("t", []string{"name"}, []gschema.ColType{gschema.TEXT})
	_, err := df.AggAll(aggregates.SUM)
	assert.Error(t, err)
	assert.IsType(t, &gschema.SchemaError{}, err)
}

package grizzly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octaviordz/grizzly/aggregates"
	"github.com/octaviordz/grizzly/gschema"
	"github.com/octaviordz/grizzly/sqlgen"
)

func usersFrame() *DataFrame {
	return ReadTable("users", []string{"gid", "name"}, []gschema.ColType{gschema.NUMERIC, gschema.TEXT})
}

func TestCollectWithAndWithoutHeader(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("from users", nil, [][]any{{int64(1), "a"}, {int64(2), "b"}})

	df := usersFrame()
	rows, err := df.Collect(false)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), "a"}, {int64(2), "b"}}, rows)

	withHeader, err := df.Collect(true)
	require.NoError(t, err)
	require.Len(t, withHeader, 3)
	assert.Equal(t, []any{"gid", "name"}, withHeader[0])
}

func TestLenCountsRows(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("count(*)", nil, [][]any{{int64(2)}})

	df := usersFrame()
	n, err := df.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestShapeReturnsWidthAndRowCount(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("count(*)", nil, [][]any{{int64(5)}})

	df := usersFrame()
	width, rows, err := df.Shape()
	require.NoError(t, err)
	assert.Equal(t, 2, width)
	assert.Equal(t, 5, rows)
}

func TestCountColumnExecutesScalarAggregate(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("count(", nil, [][]any{{int64(7)}})

	df := usersFrame()
	n, err := df.CountColumn("gid")
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
}

func TestIterrowsAssignsOrdinals(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("from users", nil, [][]any{{int64(1), "a"}, {int64(2), "b"}})

	rows, err := usersFrame().Iterrows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, []any{int64(2), "b"}, rows[1].Values)
}

func TestItertuplesStringer(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("from users", nil, [][]any{{int64(1), "a"}})

	tuples, err := usersFrame().Itertuples()
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, "Grizzly(gid=1, name=a)", tuples[0].String())
}

func TestItemsPivotsColumns(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("from users", nil, [][]any{{int64(1), "a"}, {int64(2), "b"}})

	items, err := usersFrame().Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "gid", items[0].Name)
	assert.Equal(t, []any{int64(1), int64(2)}, items[0].Values)
	assert.Equal(t, "name", items[1].Name)
	assert.Equal(t, []any{"a", "b"}, items[1].Values)
}

func TestAtAndLocRequireIndexColumn(t *testing.T) {
	_, done := useFake(sqlgen.SQLite)
	defer done()

	df := usersFrame()
	_, err := df.At(1, "name")
	require.Error(t, err)
	assert.IsType(t, &ValueError{}, err)

	_, err = df.Loc(1)
	require.Error(t, err)
	assert.IsType(t, &ValueError{}, err)
}

func TestAtAndLocWithIndexColumn(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	// At projects the filtered rows down to the requested column, so its
	// query yields a single-column result.
	fake.on("where", nil, [][]any{{"a"}})

	df := usersFrame().WithIndex("gid")
	v, err := df.At(1, "name")
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	// Loc returns the whole filtered row.
	fake.on("where", nil, [][]any{{int64(1), "a"}})
	rows, err := df.Loc(1)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), "a"}}, rows)
}

func TestLocListCompilesToIn(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("where", nil, [][]any{{int64(1), "a"}, {int64(2), "b"}})

	df := usersFrame().WithIndex("gid")
	rows, err := df.Loc([]any{1, 2})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	require.NotEmpty(t, fake.queries)
	assert.Contains(t, fake.queries[0], " in (1, 2)")
}

func TestTailReversesDescendingResult(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	// Tail orders DESC then limits; the fake hands back rows already in the
	// DESC order a real executor would, and Tail must reverse them back.
	fake.on("order by", nil, [][]any{{int64(2), "b"}, {int64(1), "a"}})

	rows, err := usersFrame().WithIndex("gid").Tail(2)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), "a"}, {int64(2), "b"}}, rows)
}

func TestShowDoesNotErrorWithOrWithoutPretty(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("from users", nil, [][]any{{int64(1), "a"}})

	df := usersFrame()
	require.NoError(t, df.Show(0, false, 0))
	require.NoError(t, df.Show(0, true, 0))
	require.NoError(t, df.Show(0, false, 1))
}

func TestContainsNoSchema(t *testing.T) {
	_, done := useFake(sqlgen.SQLite)
	defer done()

	df := ReadTable("t3", nil, nil)
	_, err := df.Contains("x")
	require.Error(t, err)
	assert.IsType(t, &gschema.SchemaError{}, err)
}

func TestContainsArityMismatch(t *testing.T) {
	_, done := useFake(sqlgen.SQLite)
	defer done()

	df := usersFrame()
	_, err := df.Contains(1)
	require.Error(t, err)
	assert.IsType(t, &ValueError{}, err)
}

func TestContainsTypeMismatch(t *testing.T) {
	_, done := useFake(sqlgen.SQLite)
	defer done()

	df := usersFrame()
	_, err := df.Contains(1, 2) // name column is TEXT, not NUMERIC
	require.Error(t, err)
	assert.IsType(t, &TypeError{}, err)
}

func TestContainsExecutesExistsQuery(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("select exists(", nil, [][]any{{true}})

	df := usersFrame()
	ok, err := df.Contains(1, "a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAggScalarReturnsSingleValue(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.on("avg(", nil, [][]any{{3.5}})

	df := usersFrame()
	v, err := df.AggScalar(aggregates.MEAN, "gid")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestReadTableInferredPreservesExecutorColumnOrder(t *testing.T) {
	fake, done := useFake(sqlgen.SQLite)
	defer done()
	fake.withTable("events", []ColumnSpec{
		{Name: "gid", SQLType: "integer"},
		{Name: "name", SQLType: "text"},
		{Name: "score", SQLType: "real"},
	})

	df, err := ReadTableInferred("events")
	require.NoError(t, err)
	assert.Equal(t, []string{"gid", "name", "score"}, df.Schema().Names())
	gidType, ok := df.Schema().Lookup("gid")
	require.True(t, ok)
	assert.Equal(t, gschema.NUMERIC, gidType)
	nameType, _ := df.Schema().Lookup("name")
	assert.Equal(t, gschema.TEXT, nameType)
}

func TestReadTableInferredUnknownTable(t *testing.T) {
	_, done := useFake(sqlgen.SQLite)
	defer done()

	_, err := ReadTableInferred("missing")
	require.Error(t, err)
	assert.IsType(t, &ExecutorError{}, err)
}

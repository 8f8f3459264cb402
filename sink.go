package grizzly

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp/v3"

	"github.com/octaviordz/grizzly/aggregates"
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/plan"
	"github.com/octaviordz/grizzly/util"
)

// Collect materializes every row of df's current plan, executing exactly
// one SQL round-trip. If includeHeader is true, a row of column names is
// prepended ahead of the data rows.
func (df *DataFrame) Collect(includeHeader bool) ([][]any, error) {
	_, rows, err := df.execute()
	if err != nil {
		return nil, err
	}
	if !includeHeader {
		return rows, nil
	}
	header := util.TransformSlice(df.Schema().Names(), func(n string) any { return n })
	return append([][]any{header}, rows...), nil
}

// Len rewrites df's plan as SELECT COUNT(*) FROM (plan) and returns the
// single integer result.
func (df *DataFrame) Len() (int, error) {
	sql, _, err := generateSQL(df.root)
	if err != nil {
		return 0, err
	}
	countSQL := fmt.Sprintf("select count(*) from (%s) grizzly_len", sql)
	ex, _, err := activeExecutor()
	if err != nil {
		return 0, err
	}
	_, rows, err := ex.Execute(countSQL)
	if err != nil {
		return 0, &ExecutorError{Err: err}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// Shape returns (schema width, row count).
func (df *DataFrame) Shape() (int, int, error) {
	n, err := df.Len()
	if err != nil {
		return 0, 0, err
	}
	return df.Schema().Len(), n, nil
}

// CountColumn executes a scalar COUNT over col.
func (df *DataFrame) CountColumn(col string) (int64, error) {
	v, err := df.AggScalar(aggregates.COUNT, col)
	if err != nil {
		return 0, err
	}
	return toInt64(v), nil
}

// CountColumns executes a UNION ALL of one COUNT row per column.
func (df *DataFrame) CountColumns() ([][]any, error) {
	result, err := df.AggAll(aggregates.COUNT)
	if err != nil {
		return nil, err
	}
	return result.Collect(false)
}

// Row is one materialized row paired with its zero-based ordinal, the shape
// Iterrows yields.
type Row struct {
	Index  int
	Values []any
}

// Iterrows executes df and returns each row paired with its ordinal.
func (df *DataFrame) Iterrows() ([]Row, error) {
	rows, err := df.Collect(false)
	if err != nil {
		return nil, err
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{Index: i, Values: r}
	}
	return out, nil
}

// Tuple is one materialized row rendered as a named-field record.
type Tuple struct {
	Columns []string
	Values  []any
}

// String renders t as Grizzly(col1=v1, col2=v2, ...).
func (t Tuple) String() string {
	var b strings.Builder
	b.WriteString("Grizzly(")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", c, t.Values[i])
	}
	b.WriteString(")")
	return b.String()
}

// Itertuples executes df and returns each row as a named Tuple.
func (df *DataFrame) Itertuples() ([]Tuple, error) {
	rows, err := df.Collect(false)
	if err != nil {
		return nil, err
	}
	names := df.Schema().Names()
	out := make([]Tuple, len(rows))
	for i, r := range rows {
		out[i] = Tuple{Columns: names, Values: r}
	}
	return out, nil
}

// ColumnItems pairs a column name with every value df has for it.
type ColumnItems struct {
	Name   string
	Values []any
}

// Items executes df and pivots the result into one ColumnItems per column.
func (df *DataFrame) Items() ([]ColumnItems, error) {
	rows, err := df.Collect(false)
	if err != nil {
		return nil, err
	}
	names := df.Schema().Names()
	out := make([]ColumnItems, len(names))
	for i, n := range names {
		out[i] = ColumnItems{Name: n}
		for _, r := range rows {
			if i < len(r) {
				out[i].Values = append(out[i].Values, r[i])
			}
		}
	}
	return out, nil
}

// At looks up the single value of col at index. df must have an index
// column set via WithIndex.
func (df *DataFrame) At(index any, col string) (any, error) {
	filtered, err := df.whereIndex(index)
	if err != nil {
		return nil, err
	}
	proj, err := filtered.Select(col)
	if err != nil {
		return nil, err
	}
	rows, err := proj.Collect(false)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil
	}
	return rows[0][0], nil
}

// Loc looks up every row whose index column matches index, a scalar or a
// slice of scalars.
func (df *DataFrame) Loc(index any) ([][]any, error) {
	filtered, err := df.whereIndex(index)
	if err != nil {
		return nil, err
	}
	return filtered.Collect(false)
}

// whereIndex builds the index filter At and Loc share: `index_col = v` for
// a scalar, `index_col in (...)` for a list. Fails with ValueError if df
// has no index column configured.
func (df *DataFrame) whereIndex(index any) (*DataFrame, error) {
	if df.indexCol == "" {
		return nil, newValueError("grizzly: no index column set; call WithIndex first")
	}
	schema := df.root.Schema()
	ct, ok := schema.Lookup(df.indexCol)
	if !ok {
		return nil, newValueError("grizzly: index column %q not found in schema", df.indexCol)
	}

	var pred expr.Expression
	if values, isList := index.([]any); isList {
		lits := make([]expr.Literal, len(values))
		for i, v := range values {
			lit, err := literalFor(ct, df.indexCol, v)
			if err != nil {
				return nil, err
			}
			lits[i] = lit
		}
		pred = expr.NewInList(df.Col(df.indexCol), lits)
	} else {
		lit, err := literalFor(ct, df.indexCol, index)
		if err != nil {
			return nil, err
		}
		cmp, err := expr.NewCompare(df.Col(df.indexCol), expr.EQ, lit)
		if err != nil {
			return nil, err
		}
		pred = cmp
	}
	f, err := plan.NewFilter(df.root, pred)
	if err != nil {
		return nil, err
	}
	return &DataFrame{root: f, indexCol: df.indexCol}, nil
}

// Tail executes "ORDER BY <index or first column> DESC LIMIT n" and reverses
// the result back into ascending order.
func (df *DataFrame) Tail(n int) ([][]any, error) {
	key := df.indexCol
	if key == "" {
		names := df.Schema().Names()
		if len(names) == 0 {
			return nil, newValueError("grizzly: tail() requires at least one column")
		}
		key = names[0]
	}
	sorted, err := plan.NewSort(df.root, []string{key}, []bool{false})
	if err != nil {
		return nil, err
	}
	limited := plan.NewLimit(sorted, n, 0)
	rows, err := wrap(limited).Collect(false)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// Show prints df's current result set, at most limit rows. When pretty is
// true, rows are rendered with github.com/k0kubun/pp/v3 and maxColWidth is
// not applied; otherwise maxColWidth truncates any cell's string
// form beyond that length (0 means unlimited). Show is a sink: it executes
// df's current plan.
func (df *DataFrame) Show(limit int, pretty bool, maxColWidth int) error {
	rows, err := df.Collect(true)
	if err != nil {
		return err
	}
	if limit > 0 && len(rows)-1 > limit {
		rows = append(rows[:1:1], rows[1:1+limit]...)
	}
	if pretty {
		pp.Println(rows)
		return nil
	}
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, v := range r {
			s := fmt.Sprint(v)
			if maxColWidth > 0 && len(s) > maxColWidth {
				s = s[:maxColWidth]
			}
			cells[i] = s
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
	return nil
}

func (df *DataFrame) execute() ([]ColumnMeta, [][]any, error) {
	sql, _, err := generateSQL(df.root)
	if err != nil {
		return nil, nil, err
	}
	ex, _, err := activeExecutor()
	if err != nil {
		return nil, nil, err
	}
	cols, rows, err := ex.Execute(sql)
	if err != nil {
		return nil, nil, &ExecutorError{Err: err}
	}
	return cols, rows, nil
}

func toInt(v any) int {
	return int(toInt64(v))
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

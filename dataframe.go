// Package grizzly is the dataframe facade: a fluent builder over package
// plan's logical-plan tree, plus the Executor Boundary sinks that trigger
// one SQL round-trip and interpret the result set. Every facade method that
// doesn't execute returns a new *DataFrame pointing at a new plan node; the
// plan itself is never mutated after construction.
package grizzly

import (
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
	"github.com/octaviordz/grizzly/plan"
)

// DataFrame wraps a plan node. indexCol, if set via WithIndex, names the
// column Loc/At use to build their WHERE clause.
type DataFrame struct {
	root     plan.Node
	indexCol string
}

func wrap(n plan.Node) *DataFrame { return &DataFrame{root: n} }

// Root exposes the underlying plan node, mainly for tests and for sqlgen
// callers that need to lower a dataframe's plan directly.
func (df *DataFrame) Root() plan.Node { return df.root }

// Schema returns the columns the current plan node produces.
func (df *DataFrame) Schema() *gschema.Schema { return df.root.Schema() }

// GenerateQuery lowers the current plan for the registered dialect without
// executing it.
func (df *DataFrame) GenerateQuery() (string, error) {
	sql, _, err := generateSQL(df.root)
	return sql, err
}

// ReadTable builds a Scan over table with an explicit schema.
func ReadTable(table string, names []string, types []gschema.ColType) *DataFrame {
	return wrap(plan.NewScan(table, gschema.New(names, types)))
}

// ReadTableInferred builds a Scan over table, asking the registered
// executor's TableSchema for its columns. The Scan starts schema-unknown
// and is replaced by a populated copy once inference has run.
func ReadTableInferred(table string) (*DataFrame, error) {
	ex, _, err := activeExecutor()
	if err != nil {
		return nil, err
	}
	scan := plan.NewScanUnknownSchema(table)
	cols, err := ex.TableSchema(table)
	if err != nil {
		return nil, &ExecutorError{Err: err}
	}
	names := make([]string, len(cols))
	types := make([]gschema.ColType, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		types[i] = sqlTypeToColType(c.SQLType)
	}
	return wrap(scan.WithSchema(gschema.New(names, types))), nil
}

// ReadExternal builds an ExternalScan over a file-backed source. cols holds
// "name:type" entries (see plan.ParseExternalColumns).
func ReadExternal(path string, cols []string, header bool, delim, format string) (*DataFrame, error) {
	parsed, err := plan.ParseExternalColumns(cols)
	if err != nil {
		return nil, err
	}
	return wrap(plan.NewExternalScan(path, parsed, header, delim, format)), nil
}

// Col builds a ColumnRef expression into the current node, the facade
// equivalent of attribute access (df.x) and df["x"] used as an expression
// operand rather than a projection target.
func (df *DataFrame) Col(name string) expr.ColumnRef {
	return expr.Col(name, plan.ColOrigin(df.root))
}

// Select projects df down to the named columns, in order.
func (df *DataFrame) Select(names ...string) (*DataFrame, error) {
	items := make([]plan.ProjItem, len(names))
	for i, n := range names {
		items[i] = plan.ProjItem{Alias: n, Expr: df.Col(n)}
	}
	p, err := plan.NewProjection(df.root, items)
	if err != nil {
		return nil, err
	}
	return wrap(p), nil
}

// Filter applies pred as a boolean mask. If df's current node is an
// Aggregation, plan.NewFilter automatically marks the result HAVING instead
// of WHERE.
func (df *DataFrame) Filter(pred expr.Expression) (*DataFrame, error) {
	f, err := plan.NewFilter(df.root, pred)
	if err != nil {
		return nil, err
	}
	return wrap(f), nil
}

// Assign adds a computed column under alias, built from e. If df's current
// node is already a Projection, the new item is appended to its existing
// item list (a new Projection, same child) rather than wrapping a second
// Projection around it.
func (df *DataFrame) Assign(alias string, e expr.Expression) (*DataFrame, error) {
	if p, ok := df.root.(*plan.Projection); ok {
		items := append(append([]plan.ProjItem{}, p.Items...), plan.ProjItem{Alias: alias, Expr: e})
		np, err := plan.NewProjection(p.Child, items)
		if err != nil {
			return nil, err
		}
		return wrap(np), nil
	}

	names := df.root.Schema().Names()
	items := make([]plan.ProjItem, 0, len(names)+1)
	for _, n := range names {
		items = append(items, plan.ProjItem{Alias: n, Expr: df.Col(n)})
	}
	items = append(items, plan.ProjItem{Alias: alias, Expr: e})
	np, err := plan.NewProjection(df.root, items)
	if err != nil {
		return nil, err
	}
	return wrap(np), nil
}

// WithIndex names the column Loc/At use as the row index.
func (df *DataFrame) WithIndex(col string) *DataFrame {
	return &DataFrame{root: df.root, indexCol: col}
}

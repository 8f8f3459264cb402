package grizzly

import (
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
	"github.com/octaviordz/grizzly/plan"
)

// Contains reports whether df holds a row equal to the given tuple,
// compiling it to `SELECT EXISTS(... WHERE col1=v1 AND col2=v2 ...)`
// against df's current projection, in column order. values must have the
// same arity as df's schema; a single-value call is only legal when df's
// schema has exactly one column.
func (df *DataFrame) Contains(values ...any) (bool, error) {
	schema := df.root.Schema()
	if schema.Len() == 0 {
		return false, gschema.NewSchemaError("containment requires a schema; read the table with an explicit or inferred schema first")
	}
	names := schema.Names()
	if len(values) != len(names) {
		return false, newValueError("containment arity %d does not match projected schema width %d", len(values), len(names))
	}

	var pred expr.Expression
	for i, name := range names {
		ct, _ := schema.Lookup(name)
		lit, err := literalFor(ct, name, values[i])
		if err != nil {
			return false, err
		}
		cmp, err := expr.NewCompare(df.Col(name), expr.EQ, lit)
		if err != nil {
			return false, err
		}
		if pred == nil {
			pred = cmp
			continue
		}
		pred, err = expr.NewLogical(pred, expr.AND, cmp)
		if err != nil {
			return false, err
		}
	}

	f, err := plan.NewFilter(df.root, pred)
	if err != nil {
		return false, err
	}
	sql, _, err := generateSQL(f)
	if err != nil {
		return false, err
	}
	existsSQL := "select exists(" + sql + ")"

	ex, _, err := activeExecutor()
	if err != nil {
		return false, err
	}
	_, rows, err := ex.Execute(existsSQL)
	if err != nil {
		return false, &ExecutorError{Err: err}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return false, nil
	}
	b, ok := rows[0][0].(bool)
	if !ok {
		return false, nil
	}
	return b, nil
}

func literalFor(ct gschema.ColType, colName string, v any) (expr.Literal, error) {
	switch val := v.(type) {
	case int:
		if ct != gschema.NUMERIC {
			return expr.Literal{}, newTypeError("column %q is %s, not NUMERIC", colName, ct)
		}
		return expr.Int(int64(val)), nil
	case int64:
		if ct != gschema.NUMERIC {
			return expr.Literal{}, newTypeError("column %q is %s, not NUMERIC", colName, ct)
		}
		return expr.Int(val), nil
	case float64:
		if ct != gschema.NUMERIC {
			return expr.Literal{}, newTypeError("column %q is %s, not NUMERIC", colName, ct)
		}
		return expr.Float(val), nil
	case string:
		if ct != gschema.TEXT {
			return expr.Literal{}, newTypeError("column %q is %s, not TEXT", colName, ct)
		}
		return expr.String(val), nil
	case bool:
		return expr.Bool(val), nil
	case nil:
		return expr.Null(), nil
	default:
		return expr.Literal{}, newTypeError("containment value of type %T has no matching SQL literal", v)
	}
}

package grizzly

import (
	"github.com/octaviordz/grizzly/aggregates"
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
	"github.com/octaviordz/grizzly/plan"
)

// GroupBy marks the given keys as pending grouping columns; the result only
// becomes a concrete GROUP BY once an aggregate method is called on it.
func (df *DataFrame) GroupBy(keys ...string) (*DataFrame, error) {
	gb, err := plan.NewGroupBy(df.root, keys)
	if err != nil {
		return nil, err
	}
	return wrap(gb), nil
}

// Agg computes one aggregate over col (aliased alias, or Kind's default
// alias if alias is ""). Valid whether or not df's current node is a
// pending GroupBy.
func (df *DataFrame) Agg(kind aggregates.Type, col, alias string) (*DataFrame, error) {
	agg, err := plan.NewAggregation(df.root, []plan.AggItem{{Kind: kind, ColName: col, Alias: alias}})
	if err != nil {
		return nil, err
	}
	return wrap(agg), nil
}

// Count, Min, Max, Sum, Mean are Agg convenience wrappers over a single
// named column.
func (df *DataFrame) Count(col, alias string) (*DataFrame, error) { return df.Agg(aggregates.COUNT, col, alias) }
func (df *DataFrame) Min(col, alias string) (*DataFrame, error)   { return df.Agg(aggregates.MIN, col, alias) }
func (df *DataFrame) Max(col, alias string) (*DataFrame, error)   { return df.Agg(aggregates.MAX, col, alias) }
func (df *DataFrame) Sum(col, alias string) (*DataFrame, error)   { return df.Agg(aggregates.SUM, col, alias) }
func (df *DataFrame) Mean(col, alias string) (*DataFrame, error)  { return df.Agg(aggregates.MEAN, col, alias) }

// AggAll computes kind over every column of df's current schema that kind
// is legal for, producing a two-column (colname, <aggfn>) table: one UNION
// ALL branch per eligible column.
func (df *DataFrame) AggAll(kind aggregates.Type) (*DataFrame, error) {
	schema := df.root.Schema()
	valueCol := kind.DefaultAlias()
	var branches []plan.Node
	for _, col := range schema.Names() {
		ct, _ := schema.Lookup(col)
		if !kind.LegalFor(ct) {
			continue
		}
		agg, err := plan.NewAggregation(df.root, []plan.AggItem{{Kind: kind, ColName: col, Alias: valueCol}})
		if err != nil {
			return nil, err
		}
		proj, err := plan.NewProjection(agg, []plan.ProjItem{
			{Alias: "colname", Expr: expr.String(col)},
			{Alias: valueCol, Expr: expr.Col(valueCol, plan.ColOrigin(agg))},
		})
		if err != nil {
			return nil, err
		}
		branches = append(branches, proj)
	}
	if len(branches) == 0 {
		return nil, gschema.NewSchemaError("no column of the current schema is legal for %s", kind)
	}
	return wrap(plan.NewSetOp(branches, plan.UnionAll)), nil
}

// AggScalar computes kind over col and executes immediately, returning the
// single scalar result.
func (df *DataFrame) AggScalar(kind aggregates.Type, col string) (any, error) {
	result, err := df.Agg(kind, col, "value")
	if err != nil {
		return nil, err
	}
	rows, err := result.Collect(false)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil
	}
	return rows[0][0], nil
}

// Distinct deduplicates df's rows.
func (df *DataFrame) Distinct() *DataFrame { return wrap(plan.NewDistinct(df.root)) }

// Describe summarizes every NUMERIC column of df as one UNION ALL branch of
// (min, max, mean, count).
func (df *DataFrame) Describe() *DataFrame { return wrap(plan.NewDescribe(df.root)) }

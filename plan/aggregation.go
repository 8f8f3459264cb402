package plan

import (
	"github.com/octaviordz/grizzly/aggregates"
	"github.com/octaviordz/grizzly/gschema"
)

// GroupBy marks pending grouping keys; it only becomes a concrete emitted
// operator on its own if nothing is ever aggregated on top of it. Most
// GroupBy nodes are immediately absorbed by an Aggregation.
type GroupBy struct {
	base
	Child  Node
	Keys   []string
	schema *gschema.Schema
}

// NewGroupBy builds a GroupBy over child's keys. Every key must be a column
// of child's schema.
func NewGroupBy(child Node, keys []string) (*GroupBy, error) {
	for _, k := range keys {
		if !child.Schema().Has(k) {
			return nil, gschema.NewSchemaError("groupby key %q not found in schema", k)
		}
	}
	return &GroupBy{base: newBase(), Child: child, Keys: keys, schema: child.Schema().Restrict(keys)}, nil
}

func (g *GroupBy) Children() []Node        { return []Node{g.Child} }
func (g *GroupBy) Schema() *gschema.Schema { return g.schema }

// AggItem is one aggregate computed by an Aggregation node.
type AggItem struct {
	Kind    aggregates.Type
	ColName string // empty when IsStar
	IsStar  bool
	Alias   string // empty means Kind.DefaultAlias() names the result, in the schema and in the emitted AS clause
}

// Aggregation computes one or more aggregates, optionally grouped. When
// built over a *GroupBy, the GroupBy is absorbed: Aggregation's Child
// becomes the GroupBy's own child and GroupKeys is copied from it, so the
// generator emits a single SELECT ... GROUP BY rather than nesting two
// subqueries.
type Aggregation struct {
	base
	Child     Node
	GroupKeys []string
	Aggs      []AggItem
	schema    *gschema.Schema
}

// NewAggregation builds an Aggregation over child. If child is a *GroupBy,
// its keys and underlying child are absorbed; otherwise this is a
// whole-relation aggregation with no GROUP BY.
func NewAggregation(child Node, aggs []AggItem) (*Aggregation, error) {
	underlying := child
	var groupKeys []string
	if gb, ok := child.(*GroupBy); ok {
		underlying = gb.Child
		groupKeys = gb.Keys
	}

	childSchema := underlying.Schema()
	for _, a := range aggs {
		if !a.IsStar {
			ct, ok := childSchema.Lookup(a.ColName)
			if !ok {
				return nil, gschema.NewSchemaError("aggregate column %q not found in schema", a.ColName)
			}
			if !a.Kind.LegalFor(ct) {
				return nil, gschema.NewSchemaError("aggregate %s is not legal over TEXT column %q", a.Kind, a.ColName)
			}
		}
	}

	names := append([]string{}, groupKeys...)
	types := make([]gschema.ColType, 0, len(groupKeys)+len(aggs))
	for _, k := range groupKeys {
		t, _ := childSchema.Lookup(k)
		types = append(types, t)
	}
	for _, a := range aggs {
		alias := a.Alias
		if alias == "" {
			alias = a.Kind.DefaultAlias()
		}
		names = append(names, alias)
		types = append(types, aggResultType(a, childSchema))
	}

	return &Aggregation{
		base:      newBase(),
		Child:     underlying,
		GroupKeys: groupKeys,
		Aggs:      aggs,
		schema:    gschema.New(names, types),
	}, nil
}

func aggResultType(a AggItem, childSchema *gschema.Schema) gschema.ColType {
	switch a.Kind {
	case aggregates.MIN, aggregates.MAX:
		if !a.IsStar {
			if t, ok := childSchema.Lookup(a.ColName); ok {
				return t
			}
		}
		return gschema.NUMERIC
	default:
		return gschema.NUMERIC
	}
}

func (a *Aggregation) Children() []Node        { return []Node{a.Child} }
func (a *Aggregation) Schema() *gschema.Schema { return a.schema }

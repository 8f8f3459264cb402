package plan

import (
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
	"github.com/octaviordz/grizzly/udf"
)

// ProjItem is one output column of a Projection: an output alias paired
// with the expression that computes it. A plain column passthrough
// (projecting an existing column by name) is represented the same way,
// with Expr holding a ColumnRef.
type ProjItem struct {
	Alias string
	Expr  expr.Expression
}

// Projection restricts/extends its child's columns, preserving item order.
type Projection struct {
	base
	Child  Node
	Items  []ProjItem
	schema *gschema.Schema
}

// NewProjection builds a Projection over child with the given items,
// inferring each item's output type from child's schema.
func NewProjection(child Node, items []ProjItem) (*Projection, error) {
	names := make([]string, len(items))
	types := make([]gschema.ColType, len(items))
	for i, it := range items {
		t, err := InferType(it.Expr, child.Schema())
		if err != nil {
			return nil, err
		}
		names[i] = it.Alias
		types[i] = t
	}
	return &Projection{
		base:   newBase(),
		Child:  child,
		Items:  items,
		schema: gschema.New(names, types),
	}, nil
}

func (p *Projection) Children() []Node        { return []Node{p.Child} }
func (p *Projection) Schema() *gschema.Schema { return p.schema }

// IsPassthrough reports whether every item is a bare ColumnRef matching the
// child schema's columns in the same order, the case sqlgen may emit as
// "SELECT *".
func (p *Projection) IsPassthrough() bool {
	childNames := p.Child.Schema().Names()
	if len(childNames) != len(p.Items) {
		return false
	}
	for i, it := range p.Items {
		cr, ok := it.Expr.(expr.ColumnRef)
		if !ok || cr.Ref.Name != childNames[i] || cr.Ref.Name != it.Alias {
			return false
		}
	}
	return true
}

// InferType computes the ColType an expression produces when evaluated
// against child's schema. Used by Projection construction for every item,
// including computed columns (arithmetic, UDF calls).
func InferType(e expr.Expression, child *gschema.Schema) (gschema.ColType, error) {
	switch v := e.(type) {
	case expr.Literal:
		switch v.Kind {
		case expr.LitInt, expr.LitFloat, expr.LitBool:
			return gschema.NUMERIC, nil
		default:
			return gschema.TEXT, nil
		}
	case expr.ColumnRef:
		t, ok := child.Lookup(v.Ref.Name)
		if !ok {
			return 0, gschema.NewSchemaError("column %q not found in schema", v.Ref.Name)
		}
		return t, nil
	case expr.Arith:
		lt, err := InferType(v.LHS, child)
		if err != nil {
			return 0, err
		}
		rt, err := InferType(v.RHS, child)
		if err != nil {
			return 0, err
		}
		if lt != gschema.NUMERIC || rt != gschema.NUMERIC {
			return 0, gschema.NewSchemaError("arithmetic operator %s requires numeric operands", v.Op)
		}
		return gschema.NUMERIC, nil
	case expr.UDFCall:
		def, ok := v.Signature.(*udf.Def)
		if !ok || def == nil {
			return gschema.TEXT, nil
		}
		return hostTypeToColType(def.Sig.ReturnType), nil
	case expr.AggCall:
		return gschema.NUMERIC, nil
	default:
		return 0, gschema.NewSchemaError("expression of type %T cannot appear in a projection", e)
	}
}

func hostTypeToColType(t udf.HostType) gschema.ColType {
	switch t {
	case udf.TInt, udf.TFloat:
		return gschema.NUMERIC
	default:
		return gschema.TEXT
	}
}

package plan

import (
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
)

// FilterKind distinguishes a WHERE-position Filter from a HAVING-position
// one. A Filter is HAVING-position when its immediate child is an
// Aggregation.
type FilterKind int

const (
	WHERE FilterKind = iota
	HAVING
)

// Filter applies a predicate to its child; Kind is derived automatically by
// NewFilter from the shape of child, never chosen by the caller.
type Filter struct {
	base
	Child Node
	Pred  expr.Expression
	Kind  FilterKind
}

// NewFilter builds a Filter over child. If child is an *Aggregation, the
// result is a HAVING filter. If child is itself a HAVING filter, the new
// predicate is merged into it with AND rather than nesting Filters.
func NewFilter(child Node, pred expr.Expression) (*Filter, error) {
	if hf, ok := child.(*Filter); ok && hf.Kind == HAVING {
		merged, err := expr.NewLogical(hf.Pred, expr.AND, pred)
		if err != nil {
			return nil, err
		}
		return &Filter{base: newBase(), Child: hf.Child, Pred: merged, Kind: HAVING}, nil
	}
	kind := WHERE
	if _, ok := child.(*Aggregation); ok {
		kind = HAVING
	}
	return &Filter{base: newBase(), Child: child, Pred: pred, Kind: kind}, nil
}

func (f *Filter) Children() []Node        { return []Node{f.Child} }
func (f *Filter) Schema() *gschema.Schema { return f.Child.Schema() }

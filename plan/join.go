package plan

import (
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
)

// JoinKind enumerates the join strategies Grizzly supports.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	NaturalJoin
)

// Join combines Left and Right under Cond (nil for NaturalJoin, which omits
// an ON clause entirely).
type Join struct {
	base
	Left, Right Node
	Cond        expr.Expression
	Kind        JoinKind
	schema      *gschema.Schema
}

// NewJoin builds a Join. For NaturalJoin, cond must be nil.
func NewJoin(left, right Node, cond expr.Expression, kind JoinKind) *Join {
	leftNames := left.Schema().Names()
	rightNames := right.Schema().Names()
	names := append(append([]string{}, leftNames...), rightNames...)
	types := make([]gschema.ColType, 0, len(names))
	for _, n := range leftNames {
		t, _ := left.Schema().Lookup(n)
		types = append(types, t)
	}
	for _, n := range rightNames {
		t, _ := right.Schema().Lookup(n)
		types = append(types, t)
	}
	return &Join{
		base:   newBase(),
		Left:   left,
		Right:  right,
		Cond:   cond,
		Kind:   kind,
		schema: gschema.New(names, types),
	}
}

func (j *Join) Children() []Node        { return []Node{j.Left, j.Right} }
func (j *Join) Schema() *gschema.Schema { return j.schema }

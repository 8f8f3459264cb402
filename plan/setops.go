package plan

import "github.com/octaviordz/grizzly/gschema"

// Distinct deduplicates its child's rows.
type Distinct struct {
	base
	Child Node
}

func NewDistinct(child Node) *Distinct { return &Distinct{base: newBase(), Child: child} }

func (d *Distinct) Children() []Node        { return []Node{d.Child} }
func (d *Distinct) Schema() *gschema.Schema { return d.Child.Schema() }

// Sort orders its child's rows by Keys. Ascending has one entry per Key.
type Sort struct {
	base
	Child     Node
	Keys      []string
	Ascending []bool
}

// NewSort builds a Sort. ascending must be the same length as keys; callers
// that accept a single scalar "ascending" flag for all keys expand it
// before calling this constructor (see grizzly.DataFrame.SortValues).
func NewSort(child Node, keys []string, ascending []bool) (*Sort, error) {
	for _, k := range keys {
		if !child.Schema().Has(k) {
			return nil, gschema.NewSchemaError("sort key %q not found in schema", k)
		}
	}
	if len(ascending) != len(keys) {
		panic("plan: ascending must have one entry per sort key")
	}
	return &Sort{base: newBase(), Child: child, Keys: keys, Ascending: ascending}, nil
}

func (s *Sort) Children() []Node        { return []Node{s.Child} }
func (s *Sort) Schema() *gschema.Schema { return s.Child.Schema() }

// Limit bounds its child's row count, optionally skipping Offset rows
// first.
type Limit struct {
	base
	Child  Node
	N      int
	Offset int
}

func NewLimit(child Node, n, offset int) *Limit {
	return &Limit{base: newBase(), Child: child, N: n, Offset: offset}
}

func (l *Limit) Children() []Node        { return []Node{l.Child} }
func (l *Limit) Schema() *gschema.Schema { return l.Child.Schema() }

// SetOpKind enumerates set operators. Grizzly only ever builds UNION ALL.
type SetOpKind int

const (
	UnionAll SetOpKind = iota
)

// SetOp combines Children with Op. Its schema is simply the first child's.
type SetOp struct {
	base
	SetChildren []Node
	Op          SetOpKind
}

func NewSetOp(children []Node, op SetOpKind) *SetOp {
	if len(children) == 0 {
		panic("plan: SetOp requires at least one child")
	}
	return &SetOp{base: newBase(), SetChildren: children, Op: op}
}

func (s *SetOp) Children() []Node        { return s.SetChildren }
func (s *SetOp) Schema() *gschema.Schema { return s.SetChildren[0].Schema() }

// Describe summarizes every NUMERIC column of Child as one UNION ALL branch
// per column, each branch producing (min, max, mean, count).
type Describe struct {
	base
	Child  Node
	schema *gschema.Schema
}

func NewDescribe(child Node) *Describe {
	schema := gschema.New(
		[]string{"min", "max", "mean", "count"},
		[]gschema.ColType{gschema.NUMERIC, gschema.NUMERIC, gschema.NUMERIC, gschema.NUMERIC},
	)
	return &Describe{base: newBase(), Child: child, schema: schema}
}

func (d *Describe) Children() []Node        { return []Node{d.Child} }
func (d *Describe) Schema() *gschema.Schema { return d.schema }

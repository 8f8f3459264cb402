// Package plan implements Grizzly's logical plan: the immutable tree of
// relational operators built by the dataframe facade and lowered to SQL by
// package sqlgen.
//
// Every node is constructed once and never mutated afterward; operations
// that "change" a dataframe build a new node pointing at the old one as its
// child. Each node's schema is computed eagerly at construction time so
// that schema errors surface at build time, not at emission time.
package plan

import (
	"sync/atomic"

	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/gschema"
)

var nextID atomic.Int64

func allocID() int {
	return int(nextID.Add(1))
}

// Node is the common interface every plan operator satisfies.
type Node interface {
	// NodeID returns this node's monotonic identity, used both for ColRef
	// origin comparisons and as the expr.Origin implementation.
	NodeID() int
	// Children returns this node's child operators, in the order the
	// generator should visit them (left-to-right for binary operators).
	Children() []Node
	// Schema returns the columns this node produces.
	Schema() *gschema.Schema
}

// base is embedded by every concrete node type to provide NodeID.
type base struct {
	id int
}

func newBase() base { return base{id: allocID()} }

func (b base) NodeID() int { return b.id }

// compile-time assertions that every node kind implements Node and
// expr.Origin (Node.NodeID already satisfies expr.Origin).
var (
	_ Node = (*Scan)(nil)
	_ Node = (*ExternalScan)(nil)
	_ Node = (*Projection)(nil)
	_ Node = (*Filter)(nil)
	_ Node = (*GroupBy)(nil)
	_ Node = (*Aggregation)(nil)
	_ Node = (*Join)(nil)
	_ Node = (*Distinct)(nil)
	_ Node = (*Sort)(nil)
	_ Node = (*Limit)(nil)
	_ Node = (*SetOp)(nil)
	_ Node = (*Describe)(nil)
)

// Scan reads an entire table. If no schema is supplied at construction, it
// is marked unknown until something (typically the executor's TableSchema
// contract) populates it via WithSchema.
type Scan struct {
	base
	Table       string
	schema      *gschema.Schema
	SchemaKnown bool
}

// NewScan builds a Scan over table with an explicit schema.
func NewScan(table string, schema *gschema.Schema) *Scan {
	return &Scan{base: newBase(), Table: table, schema: schema, SchemaKnown: true}
}

// NewScanUnknownSchema builds a Scan with no schema yet; callers use
// WithSchema once inference has run.
func NewScanUnknownSchema(table string) *Scan {
	return &Scan{base: newBase(), Table: table, schema: gschema.Unknown(), SchemaKnown: false}
}

func (s *Scan) Children() []Node        { return nil }
func (s *Scan) Schema() *gschema.Schema { return s.schema }

// WithSchema returns a new Scan identical to s but with an inferred schema
// attached. Scan, like every node, is never mutated in place.
func (s *Scan) WithSchema(schema *gschema.Schema) *Scan {
	return &Scan{base: newBase(), Table: s.Table, schema: schema, SchemaKnown: true}
}

// ExternalScan reads rows from an external file-backed source (e.g. CSV)
// via a dialect-specific external-table mechanism.
type ExternalScan struct {
	base
	Path   string
	Cols   []ExternalColumn
	Header bool
	Delim  string
	Format string
	schema *gschema.Schema
}

// ExternalColumn is one parsed entry of an ExternalScan's column spec list
// (e.g. "a:int", "b: str", "c:float").
type ExternalColumn struct {
	Name string
	Type gschema.ColType
}

// NewExternalScan builds an ExternalScan node from already-parsed columns.
func NewExternalScan(path string, cols []ExternalColumn, header bool, delim, format string) *ExternalScan {
	names := make([]string, len(cols))
	types := make([]gschema.ColType, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		types[i] = c.Type
	}
	return &ExternalScan{
		base:   newBase(),
		Path:   path,
		Cols:   cols,
		Header: header,
		Delim:  delim,
		Format: format,
		schema: gschema.New(names, types),
	}
}

func (e *ExternalScan) Children() []Node        { return nil }
func (e *ExternalScan) Schema() *gschema.Schema { return e.schema }

// ColOrigin adapts a Node to expr.Origin; Node already satisfies the
// interface directly (NodeID() int), so this is just a documented type
// alias use-site helper for callers building ColRefs against a node.
func ColOrigin(n Node) expr.Origin { return n }

// Package gschema holds Grizzly's column-type and schema model: the ordered
// name-to-type mapping that every plan operator produces and propagates.
package gschema

import "fmt"

// ColType is the semantic type of a column. Grizzly only distinguishes
// numeric and textual columns; it never tracks precision, width, or
// nullability at this layer.
type ColType int

const (
	NUMERIC ColType = iota
	TEXT
)

func (t ColType) String() string {
	switch t {
	case NUMERIC:
		return "NUMERIC"
	case TEXT:
		return "TEXT"
	default:
		return fmt.Sprintf("ColType(%d)", int(t))
	}
}

// SchemaError is raised when an operator is asked to reference a column
// outside its schema, or to aggregate a column whose type makes the
// aggregate illegal (SUM/MEAN over TEXT).
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return e.Msg }

// NewSchemaError builds a SchemaError with a formatted message.
func NewSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{Msg: fmt.Sprintf(format, args...)}
}

// entry is one column of a Schema, kept in insertion order.
type entry struct {
	name string
	typ  ColType
}

// Schema is an ordered name->ColType mapping. Construction order is
// preserved for projection/iteration purposes, but Equal compares as an
// unordered set of (name, type) pairs.
type Schema struct {
	entries []entry
	index   map[string]int
}

// New builds a Schema from an ordered list of names and types; names must
// be the same length as types.
func New(names []string, types []ColType) *Schema {
	if len(names) != len(types) {
		panic("gschema: names and types length mismatch")
	}
	s := &Schema{
		entries: make([]entry, 0, len(names)),
		index:   make(map[string]int, len(names)),
	}
	for i, n := range names {
		s.entries = append(s.entries, entry{name: n, typ: types[i]})
		s.index[n] = i
	}
	return s
}

// Empty returns a Schema with no columns.
func Empty() *Schema {
	return &Schema{index: map[string]int{}}
}

// Unknown marks a schema as not yet known (e.g. a Scan with no explicit
// schema and no inference performed yet). It behaves like an empty schema
// until it is populated via WithColumn or replaced outright.
func Unknown() *Schema {
	return Empty()
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Names returns the column names in schema order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.name
	}
	return out
}

// Has reports whether name is a column of this schema.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Lookup returns the ColType of name and whether it was found.
func (s *Schema) Lookup(name string) (ColType, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.entries[i].typ, true
}

// MustLookup is Lookup but panics if the column is missing; callers that
// should instead surface SchemaError must check Has/Lookup themselves.
func (s *Schema) MustLookup(name string) ColType {
	t, ok := s.Lookup(name)
	if !ok {
		panic("gschema: column not found: " + name)
	}
	return t
}

// WithColumn returns a new Schema with name/typ appended, or replacing the
// existing column of that name in place if it already exists.
func (s *Schema) WithColumn(name string, typ ColType) *Schema {
	out := &Schema{
		entries: make([]entry, 0, s.Len()+1),
		index:   make(map[string]int, s.Len()+1),
	}
	replaced := false
	for _, e := range s.entries {
		if e.name == name {
			out.entries = append(out.entries, entry{name: name, typ: typ})
			replaced = true
		} else {
			out.entries = append(out.entries, e)
		}
		out.index[e.name] = len(out.entries) - 1
	}
	if !replaced {
		out.entries = append(out.entries, entry{name: name, typ: typ})
		out.index[name] = len(out.entries) - 1
	}
	return out
}

// Restrict returns a new Schema containing only the named columns, in the
// order given. Unknown names are skipped silently; callers that need a
// hard error for a missing projection target should check Has first.
func (s *Schema) Restrict(names []string) *Schema {
	out := &Schema{
		entries: make([]entry, 0, len(names)),
		index:   make(map[string]int, len(names)),
	}
	for _, n := range names {
		if t, ok := s.Lookup(n); ok {
			out.entries = append(out.entries, entry{name: n, typ: t})
			out.index[n] = len(out.entries) - 1
		}
	}
	return out
}

// NumericColumns returns the names of every NUMERIC column, in schema order.
func (s *Schema) NumericColumns() []string {
	var out []string
	for _, e := range s.entries {
		if e.typ == NUMERIC {
			out = append(out, e.name)
		}
	}
	return out
}

// Equal compares two schemas as unordered sets of (name, type) pairs.
func (s *Schema) Equal(other *Schema) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, e := range s.entries {
		t, ok := other.Lookup(e.name)
		if !ok || t != e.typ {
			return false
		}
	}
	return true
}

// Package sqlgen lowers a plan.Node tree to dialect-specific SQL text. It
// never executes anything; it only produces a string handed off to whatever
// satisfies the grizzly.Executor contract.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/octaviordz/grizzly/gschema"
	"github.com/octaviordz/grizzly/plan"
	"github.com/octaviordz/grizzly/udf"
	"github.com/octaviordz/grizzly/util"
)

// Name identifies a supported SQL dialect.
type Name string

const (
	SQLite     Name = "sqlite"
	PostgreSQL Name = "postgresql"
	MySQL      Name = "mysql"
	MSSQL      Name = "mssql"
	Vector     Name = "vector"
)

// Dialect holds everything the generator needs that varies by target
// database: literal spellings, UDF support, and the DDL template used to
// stand up an external (file-backed) scan as a queryable relation.
type Dialect struct {
	Name Name

	// BoolLiteral renders a boolean literal; some dialects have no native
	// boolean type and fall back to 0/1.
	BoolLiteral func(bool) string

	// UDF describes this dialect's UDF-translation support. A zero value
	// (empty LangTag) means udf.Translate always returns *udf.Unsupported
	// for this dialect.
	UDF udf.DialectSupport

	// ExternalDDL renders the statement(s) that make an external,
	// file-backed source queryable as refName under this dialect, given its
	// typed column list, path, delimiter, header flag and format tag.
	// Returned as a single statement string (possibly containing internal
	// newlines); the generator terminates it with a semicolon before the
	// SELECT that follows. nil means the dialect does not support external
	// scans: Generate returns *ExternalUnsupported for any plan containing
	// an ExternalScan.
	ExternalDDL func(refName string, cols []plan.ExternalColumn, path, delim string, header bool, format string) string
}

// ExternalUnsupported is returned by Generate when a plan contains an
// ExternalScan and the active dialect has no external-table DDL support.
type ExternalUnsupported struct {
	Dialect Name
}

func (e *ExternalUnsupported) Error() string {
	return fmt.Sprintf("sqlgen: dialect %q does not support external tables", e.Dialect)
}

// colDefs renders "name type, name type, ..." with the given type speller.
func colDefs(cols []plan.ExternalColumn, typeName func(gschema.ColType) string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.Name + " " + typeName(c.Type)
	}
	return strings.Join(parts, ", ")
}

func colTypeVector(ct gschema.ColType) string {
	if ct == gschema.NUMERIC {
		return "INTEGER"
	}
	return "VARCHAR(1024)"
}

func hostTypeNamePostgres(t udf.HostType) string {
	switch t {
	case udf.TInt:
		return "integer"
	case udf.TFloat:
		return "double precision"
	case udf.TBool:
		return "boolean"
	default:
		return "text"
	}
}

// dialects is the complete table this package dispatches on, keyed by Name
// rather than a type-switch enum so adding a dialect never touches the
// generator itself. Only postgresql supports UDF translation and only
// vector supports external scans; everything else leaves those fields zero
// and gets the corresponding unsupported error.
var dialects = map[Name]Dialect{
	SQLite: {
		Name:        SQLite,
		BoolLiteral: func(b bool) string { return boolAsInt(b) },
	},
	PostgreSQL: {
		Name:        PostgreSQL,
		BoolLiteral: func(b bool) string { return boolAsWord(b) },
		UDF: udf.DialectSupport{
			TypeName: hostTypeNamePostgres,
			LangTag:  "plpython3u",
		},
	},
	MySQL: {
		Name:        MySQL,
		BoolLiteral: func(b bool) string { return boolAsInt(b) },
	},
	MSSQL: {
		Name:        MSSQL,
		BoolLiteral: func(b bool) string { return boolAsInt(b) },
	},
	Vector: {
		Name:        Vector,
		BoolLiteral: func(b bool) string { return boolAsWord(b) },
		ExternalDDL: func(ref string, cols []plan.ExternalColumn, path, delim string, header bool, format string) string {
			return fmt.Sprintf(
				"drop table if exists %s; create external table %s(%s) using spark with reference=%s, format=%s, options=('delimiter=%s', 'header=%v')",
				ref, ref, colDefs(cols, colTypeVector), sqlQuote(path), sqlQuote(format), delim, header,
			)
		},
	},
}

func boolAsInt(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func boolAsWord(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Lookup returns the named dialect. The zero Name ("") is not registered;
// callers must pick one explicitly.
func Lookup(name Name) (Dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return Dialect{}, fmt.Errorf("sqlgen: unknown dialect %q, supported: %v", name, Names())
	}
	return d, nil
}

// Names lists every registered dialect in a deterministic (sorted) order,
// despite Go's randomized map iteration.
func Names() []Name {
	out := make([]Name, 0, len(dialects))
	for name := range util.CanonicalMapIter(dialects) {
		out = append(out, name)
	}
	return out
}

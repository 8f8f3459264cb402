package grizzly

import (
	"strings"

	"github.com/octaviordz/grizzly/sqlgen"
)

// fakeExecutor is an in-memory Executor test double: it never touches a real
// database. Execute returns canned rows keyed by a substring match against
// the SQL it's handed, letting each test wire up just the responses its
// scenario needs without standing up sqlite.
type fakeExecutor struct {
	responses map[string]fakeResult
	tables    map[string][]ColumnSpec
	closed    bool
	queries   []string
}

type fakeResult struct {
	cols []ColumnMeta
	rows [][]any
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{responses: make(map[string]fakeResult), tables: make(map[string][]ColumnSpec)}
}

// withTable registers the ordered column list TableSchema(name) returns.
func (f *fakeExecutor) withTable(name string, cols []ColumnSpec) {
	f.tables[name] = cols
}

// on registers the result returned whenever a query contains needle.
func (f *fakeExecutor) on(needle string, cols []ColumnMeta, rows [][]any) {
	f.responses[needle] = fakeResult{cols: cols, rows: rows}
}

func (f *fakeExecutor) Execute(sql string) ([]ColumnMeta, [][]any, error) {
	f.queries = append(f.queries, sql)
	for needle, result := range f.responses {
		if strings.Contains(sql, needle) {
			return result.cols, result.rows, nil
		}
	}
	return nil, nil, nil
}

func (f *fakeExecutor) TableSchema(name string) ([]ColumnSpec, error) {
	cols, ok := f.tables[name]
	if !ok {
		return nil, errNotFound(name)
	}
	return cols, nil
}

func (f *fakeExecutor) Close() error {
	f.closed = true
	return nil
}

type notFoundError string

func (e notFoundError) Error() string { return "grizzly: unknown table " + string(e) }

func errNotFound(name string) error { return notFoundError(name) }

// useFake registers a fresh fakeExecutor under dialect and returns it,
// together with a func that closes it and clears the registration (intended
// for defer).
func useFake(dialect sqlgen.Name) (*fakeExecutor, func()) {
	ex := newFakeExecutor()
	Use(ex, dialect)
	return ex, func() { Close() }
}

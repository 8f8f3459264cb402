package relexec

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/octaviordz/grizzly"
)

// SQLiteExecutor is the sqlgen.SQLite reference adapter, backed directly by
// modernc.org/sqlite, a pure-Go driver with no cgo requirement.
type SQLiteExecutor struct {
	db *sql.DB
}

// OpenSQLite opens path (a file path, or ":memory:") as a SQLite database.
func OpenSQLite(path string) (*SQLiteExecutor, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("relexec: open sqlite: %w", err)
	}
	return &SQLiteExecutor{db: db}, nil
}

var _ grizzly.Executor = (*SQLiteExecutor)(nil)

func (e *SQLiteExecutor) Execute(query string) ([]grizzly.ColumnMeta, [][]any, error) {
	rows, err := e.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("relexec: sqlite query: %w", err)
	}
	return scanRows(rows)
}

// TableSchema reports each column's declared SQLite type via pragma
// table_info, which already yields rows in column order.
func (e *SQLiteExecutor) TableSchema(name string) ([]grizzly.ColumnSpec, error) {
	rows, err := e.db.Query(fmt.Sprintf("pragma table_info(%q)", name))
	if err != nil {
		return nil, fmt.Errorf("relexec: sqlite pragma table_info: %w", err)
	}
	defer rows.Close()

	var out []grizzly.ColumnSpec
	for rows.Next() {
		var cid int
		var colName, colType string
		var notNull int
		var dfltValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("relexec: scan pragma row: %w", err)
		}
		out = append(out, grizzly.ColumnSpec{Name: colName, SQLType: colType})
	}
	return out, rows.Err()
}

func (e *SQLiteExecutor) Close() error { return e.db.Close() }

package relexec

import (
	"cmp"
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"

	"github.com/octaviordz/grizzly"
)

// MSSQLExecutor is the sqlgen.MSSQL reference adapter, backed directly by
// github.com/denisenkom/go-mssqldb.
type MSSQLExecutor struct {
	db *sql.DB
}

// OpenMSSQL dials a SQL Server instance from cfg.
func OpenMSSQL(cfg Config) (*MSSQLExecutor, error) {
	dsn := fmt.Sprintf(
		"server=%s;port=%d;user id=%s;password=%s;database=%s",
		cmp.Or(cfg.Host, "localhost"), cmp.Or(cfg.Port, 1433), cfg.User, cfg.Password, cfg.DBName,
	)
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("relexec: open mssql: %w", err)
	}
	return &MSSQLExecutor{db: db}, nil
}

var _ grizzly.Executor = (*MSSQLExecutor)(nil)

func (e *MSSQLExecutor) Execute(query string) ([]grizzly.ColumnMeta, [][]any, error) {
	rows, err := e.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("relexec: mssql query: %w", err)
	}
	return scanRows(rows)
}

// TableSchema queries information_schema.columns for name's columns and
// their native SQL Server type names, in ordinal_position order.
func (e *MSSQLExecutor) TableSchema(name string) ([]grizzly.ColumnSpec, error) {
	rows, err := e.db.Query(
		`select column_name, data_type from information_schema.columns where table_name = @p1 order by ordinal_position`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("relexec: mssql information_schema query: %w", err)
	}
	defer rows.Close()

	var out []grizzly.ColumnSpec
	for rows.Next() {
		var colName, dataType string
		if err := rows.Scan(&colName, &dataType); err != nil {
			return nil, fmt.Errorf("relexec: scan information_schema row: %w", err)
		}
		out = append(out, grizzly.ColumnSpec{Name: colName, SQLType: dataType})
	}
	return out, rows.Err()
}

func (e *MSSQLExecutor) Close() error { return e.db.Close() }

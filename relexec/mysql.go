package relexec

import (
	"cmp"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/octaviordz/grizzly"
)

// MySQLExecutor is the sqlgen.MySQL reference adapter, backed directly by
// github.com/go-sql-driver/mysql.
type MySQLExecutor struct {
	db *sql.DB
}

// OpenMySQL dials a mysql server from cfg.
func OpenMySQL(cfg Config) (*MySQLExecutor, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s",
		cfg.User, cfg.Password, cmp.Or(cfg.Host, "localhost"), cmp.Or(cfg.Port, 3306), cfg.DBName,
	)
	if cfg.Socket != "" {
		dsn = fmt.Sprintf("%s:%s@unix(%s)/%s", cfg.User, cfg.Password, cfg.Socket, cfg.DBName)
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("relexec: open mysql: %w", err)
	}
	return &MySQLExecutor{db: db}, nil
}

var _ grizzly.Executor = (*MySQLExecutor)(nil)

func (e *MySQLExecutor) Execute(query string) ([]grizzly.ColumnMeta, [][]any, error) {
	rows, err := e.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("relexec: mysql query: %w", err)
	}
	return scanRows(rows)
}

// TableSchema queries information_schema.columns for name's columns and
// their native MySQL type names, in ordinal_position order so the resulting
// gschema.Schema matches the table's declared column order.
func (e *MySQLExecutor) TableSchema(name string) ([]grizzly.ColumnSpec, error) {
	rows, err := e.db.Query(
		`select column_name, data_type from information_schema.columns where table_name = ? order by ordinal_position`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("relexec: mysql information_schema query: %w", err)
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

func (e *MySQLExecutor) Close() error { return e.db.Close() }

package relexec

import (
	"cmp"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/octaviordz/grizzly"
)

// PostgresExecutor is the sqlgen.PostgreSQL reference adapter, backed
// directly by github.com/lib/pq.
type PostgresExecutor struct {
	db *sql.DB
}

// OpenPostgres dials a postgres server from cfg.
func OpenPostgres(cfg Config) (*PostgresExecutor, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cmp.Or(cfg.Host, "localhost"), cmp.Or(cfg.Port, 5432), cfg.User, cfg.Password, cfg.DBName, cmp.Or(cfg.SSLMode, "disable"),
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("relexec: open postgres: %w", err)
	}
	return &PostgresExecutor{db: db}, nil
}

var _ grizzly.Executor = (*PostgresExecutor)(nil)

func (e *PostgresExecutor) Execute(query string) ([]grizzly.ColumnMeta, [][]any, error) {
	rows, err := e.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("relexec: postgres query: %w", err)
	}
	return scanRows(rows)
}

// TableSchema queries information_schema.columns for name's columns and
// their native postgres type names, in ordinal_position order.
func (e *PostgresExecutor) TableSchema(name string) ([]grizzly.ColumnSpec, error) {
	rows, err := e.db.Query(
		`select column_name, data_type from information_schema.columns where table_name = $1 order by ordinal_position`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("relexec: postgres information_schema query: %w", err)
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

func (e *PostgresExecutor) Close() error { return e.db.Close() }

// Package relexec is an optional, non-core reference adapter implementing
// package grizzly's Executor contract over real database/sql drivers, one
// type per dialect in sqlgen's table except vector (sqlite, postgresql,
// mysql, mssql), each backed by a single real driver.
// package grizzly never imports relexec; a host program wires one of these
// in explicitly via grizzly.Use.
package relexec

import (
	"database/sql"
	"fmt"

	"github.com/octaviordz/grizzly"
)

// Config gathers the connection parameters relexec's dialect constructors
// accept. Not every field applies to every dialect; unused fields are
// ignored (e.g. Socket only matters for MySQL).
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Socket   string
	SSLMode  string
}

// scanRows drains rows into relexec's [][]any shape, reporting each
// column's name and driver-reported database type name as grizzly.ColumnMeta.
// Every dialect executor shares this: database/sql's *sql.Rows surface is
// identical regardless of which driver produced it.
func scanRows(rows *sql.Rows) ([]grizzly.ColumnMeta, [][]any, error) {
	defer rows.Close()

	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, fmt.Errorf("relexec: column types: %w", err)
	}
	meta := make([]grizzly.ColumnMeta, len(cols))
	for i, c := range cols {
		meta[i] = grizzly.ColumnMeta{Name: c.Name(), SQLType: c.DatabaseTypeName()}
	}

	var out [][]any
	for rows.Next() {
		scanTargets := make([]any, len(cols))
		values := make([]any, len(cols))
		for i := range scanTargets {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, nil, fmt.Errorf("relexec: scan row: %w", err)
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = normalizeValue(v)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("relexec: row iteration: %w", err)
	}
	return meta, out, nil
}

// normalizeValue unwraps the []byte a number of drivers hand back for
// TEXT/NUMERIC columns into a plain string, leaving everything else as the
// driver reported it.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

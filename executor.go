package grizzly

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/octaviordz/grizzly/plan"
	"github.com/octaviordz/grizzly/sqlgen"
	"github.com/octaviordz/grizzly/util"
)

func init() {
	util.InitSlog()
}

// ColumnMeta describes one result column: its name and the dialect-native
// SQL type string the executor reported for it.
type ColumnMeta struct {
	Name    string
	SQLType string
}

// ColumnSpec is one entry of the ordered column list TableSchema returns.
// A Go map has no ordering, so the contract is a slice: callers that build
// gschema.Schema from it preserve exactly the column order the backend
// reported.
type ColumnSpec struct {
	Name    string
	SQLType string
}

// Executor runs a SQL string against a real backend and reports table
// schemas for inference. The core never implements this beyond what
// package relexec offers as a reference adapter.
type Executor interface {
	Execute(sql string) (columns []ColumnMeta, rows [][]any, err error)
	TableSchema(name string) ([]ColumnSpec, error)
	Close() error
}

var (
	registryMu sync.Mutex
	current    Executor
	dialect    sqlgen.Name
	session    string
)

// Use registers ex as the active executor and d as the dialect every
// subsequent Generate call targets. Operations that require execution fail
// with a "no executor registered" error until Use is called. Each registration
// gets a fresh session token so interleaved registrations can be told apart
// in debug logs.
func Use(ex Executor, d sqlgen.Name) {
	registryMu.Lock()
	defer registryMu.Unlock()
	current = ex
	dialect = d
	session = uuid.NewString()
	slog.Debug("grizzly: executor registered", "dialect", d, "session", session)
}

// Close releases the active executor, if any, and clears the registration.
func Close() error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if current == nil {
		return nil
	}
	err := current.Close()
	slog.Debug("grizzly: executor closed", "dialect", dialect, "session", session)
	current = nil
	session = ""
	return err
}

func activeExecutor() (Executor, sqlgen.Name, error) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if current == nil {
		return nil, "", fmt.Errorf("grizzly: no executor registered; call grizzly.Use first")
	}
	return current, dialect, nil
}

// generateSQL lowers root for the currently registered dialect.
func generateSQL(root plan.Node) (string, sqlgen.Name, error) {
	_, d, err := activeExecutor()
	if err != nil {
		return "", "", err
	}
	dia, err := sqlgen.Lookup(d)
	if err != nil {
		return "", "", err
	}
	sql, err := sqlgen.New(dia).Generate(root)
	if err != nil {
		return "", "", err
	}
	return sql, d, nil
}

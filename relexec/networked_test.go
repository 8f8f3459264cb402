package relexec

import "testing"

// TestOpenNetworkedDrivers exercises the postgres/mysql/mssql constructors'
// DSN-building and sql.Open wiring without requiring a live server; any test
// that needs an actual connection is gated behind testing.Short() so
// `go test -short` never requires a running database.
func TestOpenNetworkedDrivers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping networked driver construction in -short mode")
	}

	if _, err := OpenPostgres(Config{Host: "localhost", DBName: "grizzly_test"}); err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	if _, err := OpenMySQL(Config{Host: "localhost", DBName: "grizzly_test"}); err != nil {
		t.Fatalf("OpenMySQL: %v", err)
	}
	if _, err := OpenMSSQL(Config{Host: "localhost", DBName: "grizzly_test"}); err != nil {
		t.Fatalf("OpenMSSQL: %v", err)
	}
}

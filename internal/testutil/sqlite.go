package testutil

import (
	"database/sql"
	"io"
	"log"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/quickbite/ordering/internal/db"
)

// OpenSQLite returns a migrated in-memory database. One connection only:
// each sqlite :memory: connection is its own database.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	logger := log.New(io.Discard, "", 0)
	if err := db.Migrate(conn, "sqlite", logger); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return conn
}

package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/Konsultn-Engineering/pagedb/connector"
	"github.com/Konsultn-Engineering/pagedb/database"
)

// RequireIntegration skips t unless DATABASE_URL is set and -short is off, and
// returns the URL.
func RequireIntegration(t testing.TB) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	return url
}

// NewTestConn opens a pgx session against DATABASE_URL and closes it on cleanup.
func NewTestConn(t testing.TB) database.Conn {
	t.Helper()
	return NewTestConnFor(t, connector.DriverPgx)
}

// NewTestConnFor opens a session through the named driver, pgx or pq.
func NewTestConnFor(t testing.TB, driver string) database.Conn {
	t.Helper()
	url := RequireIntegration(t)
	ctx := context.Background()

	var conn database.Conn
	var err error
	switch driver {
	case connector.DriverPgx:
		conn, err = database.ConnectPgx(ctx, url)
	case connector.DriverPq:
		conn, err = database.ConnectSQL(ctx, url)
	default:
		t.Fatalf("unknown driver %q", driver)
	}
	if err != nil {
		t.Fatalf("connect %s: %v", driver, err)
	}
	t.Cleanup(func() {
		_ = conn.Close(context.Background())
	})
	return conn
}

// Exec runs setup SQL in its own committed transaction.
func Exec(t testing.TB, conn database.Conn, sql string, args ...any) {
	t.Helper()
	ctx := context.Background()

	tx, err := conn.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		_ = tx.Rollback(ctx)
		t.Fatalf("exec %q: %v", sql, err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

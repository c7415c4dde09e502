package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/farmvet/herdsafe/internal/repository/postgres"
)

// NewTestDB creates an in-memory SQLite database with the full schema
// applied through the embedded migrations
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// modernc sqlite allows one writer; keep the pool at a single conn so
	// :memory: is shared across queries
	db.SetMaxOpenConns(1)

	if err := postgres.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

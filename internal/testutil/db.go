// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/quillpost/quillpost-go/internal/repository"
)

// NewDB creates a migrated SQLite database in a temporary directory and
// closes it when the test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := "sqlite:///" + filepath.Join(t.TempDir(), "blog.db")
	if err := repository.Migrate(url); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := repository.NewDB(url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

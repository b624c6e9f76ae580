// Package testutil provides shared test helpers: an isolated in-memory
// database and a fluent builder for auction property fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new migrated in-memory database that is closed
// when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.SeedResults(testutil.SampleResults()...)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedResults stores props as the latest search results.
func (db *TestDB) SeedResults(props ...*model.Property) {
	db.t.Helper()
	if err := db.Storage.ReplaceResults(context.Background(), props); err != nil {
		db.t.Fatalf("failed to seed results: %v", err)
	}
}

// SeedSaved stores props as the user's saved properties.
func (db *TestDB) SeedSaved(userID string, props ...*model.Property) {
	db.t.Helper()
	for _, p := range props {
		if err := db.Storage.SaveProperty(context.Background(), userID, p); err != nil {
			db.t.Fatalf("failed to seed saved property %q: %v", p.ID, err)
		}
	}
}

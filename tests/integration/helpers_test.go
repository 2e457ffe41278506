// Package integration exercises the full stack: SQLite backend, store graph,
// and the resolution and coverage engine on top of it.
package integration

import (
	"testing"

	"github.com/mesh-intelligence/traceline/internal/sqlite"
	"github.com/mesh-intelligence/traceline/pkg/types"
)

// setupBackend creates a backend attached to an isolated temp directory.
// Each test gets its own database for isolation.
func setupBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}

// seededBackend attaches a backend and loads the demo dataset.
func seededBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := setupBackend(t)
	seeded, err := b.Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !seeded {
		t.Fatal("Seed wrote nothing")
	}
	return b
}

// mustGetTable retrieves a table by name or fails the test.
func mustGetTable(t *testing.T, b *sqlite.Backend, name string) types.Table {
	t.Helper()
	tbl, err := b.GetTable(name)
	if err != nil {
		t.Fatalf("GetTable(%q): %v", name, err)
	}
	return tbl
}

// mustSet writes an entity and returns its id.
func mustSet(t *testing.T, tbl types.Table, data any) string {
	t.Helper()
	id, err := tbl.Set("", data)
	if err != nil {
		t.Fatalf("Set %T: %v", data, err)
	}
	return id
}

// fetchAll calls Fetch with nil filter and returns the results.
func fetchAll(t *testing.T, tbl types.Table) []any {
	t.Helper()
	results, err := tbl.Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	return results
}

// isUUIDv7 checks if a string looks like a UUID v7 (basic format check).
func isUUIDv7(s string) bool {
	if len(s) != 36 {
		return false
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	return s[14] == '7'
}

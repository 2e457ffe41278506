// Shared helpers for traceline CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traceline/internal/sqlite"
	"github.com/mesh-intelligence/traceline/pkg/trace"
	"github.com/mesh-intelligence/traceline/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// attachGraph attaches a backend and wraps it in the engine's graph view.
// The caller must defer backend.Detach().
func attachGraph() (*sqlite.Backend, trace.Graph, error) {
	backend, err := attachBackend()
	if err != nil {
		return nil, nil, err
	}
	return backend, trace.NewStoreGraph(backend), nil
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// fetchAll returns all rows of a table.
func fetchAll(backend *sqlite.Backend, tableName string) ([]any, error) {
	tbl, err := backend.GetTable(tableName)
	if err != nil {
		return nil, err
	}
	return tbl.Fetch(nil)
}

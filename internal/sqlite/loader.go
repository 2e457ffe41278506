// JSONL import into the SQLite tables.
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and column
// lists. The order matters: referencing tables load after the tables they
// point into.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{"scenarios.jsonl", types.ScenariosTable,
		[]string{"scenario_id", "name", "description", "created_at"}},
	{"workshops.jsonl", types.WorkshopsTable,
		[]string{"workshop_id", "scenario_id", "name", "created_at"}},
	{"process_nodes.jsonl", types.ProcessNodesTable,
		[]string{"node_id", "parent_id", "level", "name", "scope_code", "scenario_id", "created_at"}},
	{"process_steps.jsonl", types.ProcessStepsTable,
		[]string{"step_id", "process_node_id", "workshop_id", "name", "created_at"}},
	{"requirements.jsonl", types.RequirementsTable,
		[]string{"requirement_id", "name", "status", "process_node_id", "process_step_id", "scope_item_code", "workshop_id", "created_at", "updated_at"}},
	{"requirement_mappings.jsonl", types.RequirementMappingsTable,
		[]string{"mapping_id", "requirement_id", "process_node_id", "created_at"}},
	{"work_items.jsonl", types.WorkItemsTable,
		[]string{"work_item_id", "name", "category", "requirement_id", "status", "created_at", "updated_at"}},
	{"config_items.jsonl", types.ConfigItemsTable,
		[]string{"config_item_id", "name", "requirement_id", "status", "created_at", "updated_at"}},
	{"test_cases.jsonl", types.TestCasesTable,
		[]string{"test_case_id", "name", "layer", "status", "process_node_id", "work_item_id", "config_item_id", "requirement_id", "created_at", "updated_at"}},
	{"test_runs.jsonl", types.TestRunsTable,
		[]string{"run_id", "test_case_id", "result", "executed_at"}},
	{"scope_items.jsonl", types.ScopeItemsTable,
		[]string{"scope_item_id", "kind", "ref_id", "name", "coverage_status", "created_at", "updated_at"}},
}

// requiredDefaults lists columns that must never be NULL even when the
// JSONL record omits them. Missing optional references collapse to the
// empty string, matching the schema defaults.
var requiredDefaults = map[string]string{
	"status":          "",
	"parent_id":       "",
	"scope_code":      "",
	"scenario_id":     "",
	"process_node_id": "",
	"process_step_id": "",
	"scope_item_code": "",
	"workshop_id":     "",
	"requirement_id":  "",
	"work_item_id":    "",
	"config_item_id":  "",
	"description":     "",
	"coverage_status": "",
	"created_at":      "",
	"updated_at":      "",
}

// ImportJSONL reads each JSONL file from dir and loads its records into the
// corresponding table. Loading is transactional: all files succeed or
// nothing is written. Files that do not exist are skipped; malformed lines
// and records that violate constraints are skipped.
func (b *Backend) ImportJSONL(dir string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	total := 0
	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dir, mapping.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		records, err := readJSONL(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}

		placeholders := make([]string, len(mapping.columns))
		for i := range placeholders {
			placeholders[i] = "?"
		}
		insertSQL := fmt.Sprintf(
			"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
			mapping.table,
			strings.Join(mapping.columns, ", "),
			strings.Join(placeholders, ", "),
		)
		stmt, err := tx.Prepare(insertSQL)
		if err != nil {
			return 0, fmt.Errorf("preparing insert for %s: %w", mapping.table, err)
		}

		for _, rec := range records {
			var obj map[string]any
			if err := json.Unmarshal(rec, &obj); err != nil {
				continue
			}

			args := make([]any, len(mapping.columns))
			for i, col := range mapping.columns {
				val, ok := obj[col]
				if !ok {
					if def, required := requiredDefaults[col]; required {
						args[i] = def
					} else {
						args[i] = nil
					}
					continue
				}
				args[i] = val
			}

			if _, err := stmt.Exec(args...); err != nil {
				continue
			}
			total++
		}
		stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import transaction: %w", err)
	}
	return total, nil
}

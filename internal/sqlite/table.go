package sqlite

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// Compile-time interface check: table must implement Table.
var _ types.Table = (*table)(nil)

// table implements types.Table for a single entity type. Each operation
// dispatches on the table name to the entity-specific hydration and
// persistence functions.
type table struct {
	name    string   // Table name (e.g. "requirements").
	backend *Backend // Parent backend for DB access.
}

// Get retrieves an entity by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}

	switch t.name {
	case types.ScenariosTable:
		return t.getScenario(id)
	case types.WorkshopsTable:
		return t.getWorkshop(id)
	case types.ProcessNodesTable:
		return t.getProcessNode(id)
	case types.ProcessStepsTable:
		return t.getProcessStep(id)
	case types.RequirementsTable:
		return t.getRequirement(id)
	case types.RequirementMappingsTable:
		return t.getMapping(id)
	case types.WorkItemsTable:
		return t.getWorkItem(id)
	case types.ConfigItemsTable:
		return t.getConfigItem(id)
	case types.TestCasesTable:
		return t.getTestCase(id)
	case types.TestRunsTable:
		return t.getTestRun(id)
	case types.ScopeItemsTable:
		return t.getScopeItem(id)
	default:
		return nil, types.ErrTableNotFound
	}
}

// Set creates or updates an entity. If id is empty, generates a UUID v7.
// Returns the entity ID and any error.
func (t *table) Set(id string, data any) (string, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return "", types.ErrStoreDetached
	}

	switch t.name {
	case types.ScenariosTable:
		return t.setScenario(id, data)
	case types.WorkshopsTable:
		return t.setWorkshop(id, data)
	case types.ProcessNodesTable:
		return t.setProcessNode(id, data)
	case types.ProcessStepsTable:
		return t.setProcessStep(id, data)
	case types.RequirementsTable:
		return t.setRequirement(id, data)
	case types.RequirementMappingsTable:
		return t.setMapping(id, data)
	case types.WorkItemsTable:
		return t.setWorkItem(id, data)
	case types.ConfigItemsTable:
		return t.setConfigItem(id, data)
	case types.TestCasesTable:
		return t.setTestCase(id, data)
	case types.TestRunsTable:
		return t.setTestRun(id, data)
	case types.ScopeItemsTable:
		return t.setScopeItem(id, data)
	default:
		return "", types.ErrTableNotFound
	}
}

// Delete removes an entity by ID with cascading deletes where appropriate.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return types.ErrStoreDetached
	}

	switch t.name {
	case types.RequirementsTable:
		return t.deleteRequirement(id)
	case types.TestCasesTable:
		return t.deleteTestCase(id)
	default:
		return t.deletePlain(id)
	}
}

// Fetch returns entities matching the filter. Empty filter matches all.
// Every fetch carries a fixed ORDER BY so results are stable across calls.
func (t *table) Fetch(filter map[string]any) ([]any, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}

	switch t.name {
	case types.ScenariosTable:
		return t.fetchScenarios(filter)
	case types.WorkshopsTable:
		return t.fetchWorkshops(filter)
	case types.ProcessNodesTable:
		return t.fetchProcessNodes(filter)
	case types.ProcessStepsTable:
		return t.fetchProcessSteps(filter)
	case types.RequirementsTable:
		return t.fetchRequirements(filter)
	case types.RequirementMappingsTable:
		return t.fetchMappings(filter)
	case types.WorkItemsTable:
		return t.fetchWorkItems(filter)
	case types.ConfigItemsTable:
		return t.fetchConfigItems(filter)
	case types.TestCasesTable:
		return t.fetchTestCases(filter)
	case types.TestRunsTable:
		return t.fetchTestRuns(filter)
	case types.ScopeItemsTable:
		return t.fetchScopeItems(filter)
	default:
		return nil, types.ErrTableNotFound
	}
}

// idColumns maps table names to their primary key column.
var idColumns = map[string]string{
	types.ScenariosTable:           "scenario_id",
	types.WorkshopsTable:           "workshop_id",
	types.ProcessNodesTable:        "node_id",
	types.ProcessStepsTable:        "step_id",
	types.RequirementsTable:        "requirement_id",
	types.RequirementMappingsTable: "mapping_id",
	types.WorkItemsTable:           "work_item_id",
	types.ConfigItemsTable:         "config_item_id",
	types.TestCasesTable:           "test_case_id",
	types.TestRunsTable:            "run_id",
	types.ScopeItemsTable:          "scope_item_id",
}

// deletePlain removes a row with no cascades.
func (t *table) deletePlain(id string) error {
	col, ok := idColumns[t.name]
	if !ok {
		return types.ErrTableNotFound
	}
	res, err := t.backend.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.name, col), id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete from %s: %w", t.name, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// nowRFC3339 returns the current UTC time in the storage format.
func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseTime parses a stored RFC3339 timestamp, tolerating empty values.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// buildWhere builds a WHERE clause from the filter against the allowed
// filter-key-to-column mapping. Keys are applied in sorted order so the
// generated SQL is stable. Unknown keys and non-scalar values return
// ErrInvalidFilter.
func buildWhere(filter map[string]any, allowed map[string]string) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		col, ok := allowed[k]
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		switch filter[k].(type) {
		case string, int, int64:
		default:
			return "", nil, types.ErrInvalidFilter
		}
		clauses = append(clauses, col+" = ?")
		args = append(args, filter[k])
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

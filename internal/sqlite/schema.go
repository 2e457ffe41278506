// Package sqlite implements the SQLite storage backend for Traceline.
package sqlite

// Schema DDL for all tables. Optional references are stored as empty
// strings rather than NULLs, matching the entity structs.
const (
	createScenarios = `CREATE TABLE IF NOT EXISTS scenarios (
    scenario_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createWorkshops = `CREATE TABLE IF NOT EXISTS workshops (
    workshop_id TEXT PRIMARY KEY,
    scenario_id TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createProcessNodes = `CREATE TABLE IF NOT EXISTS process_nodes (
    node_id TEXT PRIMARY KEY,
    parent_id TEXT NOT NULL DEFAULT '',
    level INTEGER NOT NULL,
    name TEXT NOT NULL,
    scope_code TEXT NOT NULL DEFAULT '',
    scenario_id TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createProcessSteps = `CREATE TABLE IF NOT EXISTS process_steps (
    step_id TEXT PRIMARY KEY,
    process_node_id TEXT NOT NULL,
    workshop_id TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createRequirements = `CREATE TABLE IF NOT EXISTS requirements (
    requirement_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    status TEXT NOT NULL,
    process_node_id TEXT NOT NULL DEFAULT '',
    process_step_id TEXT NOT NULL DEFAULT '',
    scope_item_code TEXT NOT NULL DEFAULT '',
    workshop_id TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createRequirementMappings = `CREATE TABLE IF NOT EXISTS requirement_mappings (
    mapping_id TEXT PRIMARY KEY,
    requirement_id TEXT NOT NULL,
    process_node_id TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createWorkItems = `CREATE TABLE IF NOT EXISTS work_items (
    work_item_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    requirement_id TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createConfigItems = `CREATE TABLE IF NOT EXISTS config_items (
    config_item_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    requirement_id TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createTestCases = `CREATE TABLE IF NOT EXISTS test_cases (
    test_case_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    layer TEXT NOT NULL,
    status TEXT NOT NULL,
    process_node_id TEXT NOT NULL DEFAULT '',
    work_item_id TEXT NOT NULL DEFAULT '',
    config_item_id TEXT NOT NULL DEFAULT '',
    requirement_id TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createTestRuns = `CREATE TABLE IF NOT EXISTS test_runs (
    run_id TEXT PRIMARY KEY,
    test_case_id TEXT NOT NULL,
    result TEXT NOT NULL,
    executed_at TEXT NOT NULL
);`

	createScopeItems = `CREATE TABLE IF NOT EXISTS scope_items (
    scope_item_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    ref_id TEXT NOT NULL,
    name TEXT NOT NULL,
    coverage_status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaStatements lists all DDL statements executed on Attach.
var schemaStatements = []string{
	createScenarios,
	createWorkshops,
	createProcessNodes,
	createProcessSteps,
	createRequirements,
	createRequirementMappings,
	createWorkItems,
	createConfigItems,
	createTestCases,
	createTestRuns,
	createScopeItems,
}

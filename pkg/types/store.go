package types

import "errors"

// Store defines the interface for backend-agnostic entity access.
// Callers attach to a backend, access tables by name, and detach when done.
type Store interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Idempotent on first call;
	// returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrStoreDetached.
	Detach() error

	// SetCoverageStatus writes the cached coverage status on a scope item.
	// This is the single derived-state write the coverage engine performs;
	// the value is recomputable at any time and never authoritative.
	SetCoverageStatus(scopeItemID, status string) error
}

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the table. Result ordering is fixed per
	// table so repeated calls on unchanged data return identical slices.
	Fetch(filter map[string]any) ([]any, error)
}

// Standard table names.
const (
	ScenariosTable           = "scenarios"
	WorkshopsTable           = "workshops"
	ProcessNodesTable        = "process_nodes"
	ProcessStepsTable        = "process_steps"
	RequirementsTable        = "requirements"
	RequirementMappingsTable = "requirement_mappings"
	WorkItemsTable           = "work_items"
	ConfigItemsTable         = "config_items"
	TestCasesTable           = "test_cases"
	TestRunsTable            = "test_runs"
	ScopeItemsTable          = "scope_items"
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)

// Entity validation errors.
var (
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidLevel          = errors.New("invalid hierarchy level")
	ErrInvalidStatus         = errors.New("invalid status value")
	ErrInvalidCategory       = errors.New("invalid work item category")
	ErrInvalidLayer          = errors.New("invalid test layer")
	ErrInvalidResult         = errors.New("invalid run result")
	ErrInvalidKind           = errors.New("invalid scope item kind")
	ErrInvalidCoverageStatus = errors.New("invalid coverage status")
)

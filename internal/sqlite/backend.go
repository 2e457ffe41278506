package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// dbFileName is the SQLite database file created in the data directory.
const dbFileName = "traceline.db"

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface using SQLite. The database file
// is the source of truth; JSONL files are an import/export format only.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]*table
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]*table),
	}
}

// GetTable returns a Table interface for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	t, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return t, nil
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist, opens or creates the database file, and
// applies the schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true

	for _, name := range []string{
		types.ScenariosTable,
		types.WorkshopsTable,
		types.ProcessNodesTable,
		types.ProcessStepsTable,
		types.RequirementsTable,
		types.RequirementMappingsTable,
		types.WorkItemsTable,
		types.ConfigItemsTable,
		types.TestCasesTable,
		types.TestRunsTable,
		types.ScopeItemsTable,
	} {
		b.tables[name] = &table{name: name, backend: b}
	}

	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]*table)

	return nil
}

// SetCoverageStatus writes the cached coverage status on a scope item.
// The write is serialized per entry by the backend lock; concurrent
// recomputations settle last-writer-wins, which is safe because the value
// is always re-derivable.
func (b *Backend) SetCoverageStatus(scopeItemID, status string) error {
	if scopeItemID == "" {
		return types.ErrInvalidID
	}
	if !types.IsValidCoverageStatus(status) {
		return types.ErrInvalidCoverageStatus
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	res, err := b.db.Exec(
		"UPDATE scope_items SET coverage_status = ?, updated_at = ? WHERE scope_item_id = ?",
		status, nowRFC3339(), scopeItemID)
	if err != nil {
		return fmt.Errorf("updating coverage status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking coverage status update: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// newUUID generates a UUID v7 string for entity IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}

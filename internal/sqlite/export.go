// JSONL export of all tables.
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// ExportJSONL writes every table to a JSONL file in dir, one file per table,
// named after the table. Files are written atomically; empty tables produce
// empty files so a later import sees the full set.
func (b *Backend) ExportJSONL(dir string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	total := 0
	for _, mapping := range jsonlTableMapping {
		records, err := b.exportTable(mapping.table, mapping.columns)
		if err != nil {
			return 0, err
		}
		path := filepath.Join(dir, mapping.file)
		if err := writeJSONL(path, records); err != nil {
			return 0, fmt.Errorf("writing %s: %w", mapping.file, err)
		}
		total += len(records)
	}
	return total, nil
}

// exportTable reads all rows of a table into JSON records, ordered by the
// primary key so exports are reproducible.
func (b *Backend) exportTable(tableName string, columns []string) ([]json.RawMessage, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(columns, ", "), tableName, idColumns[tableName])

	rows, err := b.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying %s for export: %w", tableName, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s for export: %w", tableName, err)
		}

		obj := make(map[string]any, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				obj[col] = string(v)
			default:
				obj[col] = v
			}
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s record: %w", tableName, err)
		}
		records = append(records, data)
	}
	return records, rows.Err()
}

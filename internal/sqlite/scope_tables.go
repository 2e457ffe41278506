package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// Scope items

func (t *table) getScopeItem(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT scope_item_id, kind, ref_id, name, coverage_status, created_at, updated_at
FROM scope_items WHERE scope_item_id = ?`, id)
	return scanScopeItem(row.Scan)
}

func scanScopeItem(scan func(...any) error) (any, error) {
	var s types.ScopeItem
	var created, updated string
	err := scan(&s.ScopeItemID, &s.Kind, &s.RefID, &s.Name, &s.CoverageStatus,
		&created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading scope item: %w", err)
	}
	s.CreatedAt = parseTime(created)
	s.UpdatedAt = parseTime(updated)
	return &s, nil
}

func (t *table) setScopeItem(id string, data any) (string, error) {
	s, ok := data.(*types.ScopeItem)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := s.Validate(); err != nil {
		return "", err
	}
	if s.CoverageStatus == "" {
		s.CoverageStatus = types.CoverageNotCovered
	}
	if err := s.SetCoverageStatus(s.CoverageStatus); err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}
	s.ScopeItemID = id
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	_, err := t.backend.db.Exec(`INSERT INTO scope_items
    (scope_item_id, kind, ref_id, name, coverage_status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (scope_item_id) DO UPDATE SET
    kind = excluded.kind,
    ref_id = excluded.ref_id,
    name = excluded.name,
    coverage_status = excluded.coverage_status,
    updated_at = excluded.updated_at`,
		id, s.Kind, s.RefID, s.Name, s.CoverageStatus,
		s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing scope item: %w", err)
	}
	return id, nil
}

func (t *table) fetchScopeItems(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"kind":            "kind",
		"ref_id":          "ref_id",
		"coverage_status": "coverage_status",
		"name":            "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT scope_item_id, kind, ref_id, name, coverage_status, created_at, updated_at
FROM scope_items`+where+" ORDER BY created_at, scope_item_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching scope items: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		s, err := scanScopeItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

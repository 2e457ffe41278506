package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// Requirements

func (t *table) getRequirement(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT requirement_id, name, status, process_node_id, process_step_id,
    scope_item_code, workshop_id, created_at, updated_at
FROM requirements WHERE requirement_id = ?`, id)
	return scanRequirement(row.Scan)
}

func scanRequirement(scan func(...any) error) (any, error) {
	var r types.Requirement
	var created, updated string
	err := scan(&r.RequirementID, &r.Name, &r.Status, &r.ProcessNodeID,
		&r.ProcessStepID, &r.ScopeItemCode, &r.WorkshopID, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading requirement: %w", err)
	}
	r.CreatedAt = parseTime(created)
	r.UpdatedAt = parseTime(updated)
	return &r, nil
}

func (t *table) setRequirement(id string, data any) (string, error) {
	r, ok := data.(*types.Requirement)
	if !ok {
		return "", types.ErrInvalidData
	}
	if r.Name == "" {
		return "", types.ErrInvalidName
	}
	if r.Status == "" {
		r.Status = types.RequirementStateDraft
	}
	if err := r.SetStatus(r.Status); err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}
	r.RequirementID = id
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	_, err := t.backend.db.Exec(`INSERT INTO requirements
    (requirement_id, name, status, process_node_id, process_step_id,
     scope_item_code, workshop_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (requirement_id) DO UPDATE SET
    name = excluded.name,
    status = excluded.status,
    process_node_id = excluded.process_node_id,
    process_step_id = excluded.process_step_id,
    scope_item_code = excluded.scope_item_code,
    workshop_id = excluded.workshop_id,
    updated_at = excluded.updated_at`,
		id, r.Name, r.Status, r.ProcessNodeID, r.ProcessStepID,
		r.ScopeItemCode, r.WorkshopID,
		r.CreatedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing requirement: %w", err)
	}
	return id, nil
}

// deleteRequirement removes a requirement and cascades to its mappings.
// Work items, config items, and test cases keep their dangling reference;
// the resolver treats it as a silent dead end.
func (t *table) deleteRequirement(id string) error {
	if err := t.deletePlain(id); err != nil {
		return err
	}
	_, err := t.backend.db.Exec(
		"DELETE FROM requirement_mappings WHERE requirement_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting requirement mappings: %w", err)
	}
	return nil
}

func (t *table) fetchRequirements(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"status":          "status",
		"process_node_id": "process_node_id",
		"process_step_id": "process_step_id",
		"scope_item_code": "scope_item_code",
		"workshop_id":     "workshop_id",
		"name":            "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT requirement_id, name, status, process_node_id, process_step_id,
    scope_item_code, workshop_id, created_at, updated_at
FROM requirements`+where+" ORDER BY created_at, requirement_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching requirements: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		r, err := scanRequirement(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Requirement mappings

func (t *table) getMapping(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT mapping_id, requirement_id, process_node_id, created_at
FROM requirement_mappings WHERE mapping_id = ?`, id)

	var m types.RequirementMapping
	var created string
	if err := row.Scan(&m.MappingID, &m.RequirementID, &m.ProcessNodeID, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading requirement mapping: %w", err)
	}
	m.CreatedAt = parseTime(created)
	return &m, nil
}

func (t *table) setMapping(id string, data any) (string, error) {
	m, ok := data.(*types.RequirementMapping)
	if !ok {
		return "", types.ErrInvalidData
	}
	if m.RequirementID == "" || m.ProcessNodeID == "" {
		return "", types.ErrInvalidData
	}

	if id == "" {
		id = newUUID()
	}
	m.MappingID = id
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	_, err := t.backend.db.Exec(`INSERT INTO requirement_mappings
    (mapping_id, requirement_id, process_node_id, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (mapping_id) DO UPDATE SET
    requirement_id = excluded.requirement_id,
    process_node_id = excluded.process_node_id`,
		id, m.RequirementID, m.ProcessNodeID, m.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing requirement mapping: %w", err)
	}
	return id, nil
}

func (t *table) fetchMappings(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"requirement_id":  "requirement_id",
		"process_node_id": "process_node_id",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT mapping_id, requirement_id, process_node_id, created_at
FROM requirement_mappings`+where+" ORDER BY created_at, mapping_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching requirement mappings: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var m types.RequirementMapping
		var created string
		if err := rows.Scan(&m.MappingID, &m.RequirementID, &m.ProcessNodeID, &created); err != nil {
			return nil, fmt.Errorf("scanning requirement mapping: %w", err)
		}
		m.CreatedAt = parseTime(created)
		results = append(results, &m)
	}
	return results, rows.Err()
}

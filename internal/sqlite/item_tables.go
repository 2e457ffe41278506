package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// WRICEF work items

func (t *table) getWorkItem(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT work_item_id, name, category, requirement_id, status, created_at, updated_at
FROM work_items WHERE work_item_id = ?`, id)
	return scanWorkItem(row.Scan)
}

func scanWorkItem(scan func(...any) error) (any, error) {
	var w types.WorkItem
	var created, updated string
	err := scan(&w.WorkItemID, &w.Name, &w.Category, &w.RequirementID,
		&w.Status, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading work item: %w", err)
	}
	w.CreatedAt = parseTime(created)
	w.UpdatedAt = parseTime(updated)
	return &w, nil
}

func (t *table) setWorkItem(id string, data any) (string, error) {
	w, ok := data.(*types.WorkItem)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := w.Validate(); err != nil {
		return "", err
	}
	if w.Status == "" {
		w.Status = types.ItemStateOpen
	}
	if err := w.SetStatus(w.Status); err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}
	w.WorkItemID = id
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	_, err := t.backend.db.Exec(`INSERT INTO work_items
    (work_item_id, name, category, requirement_id, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (work_item_id) DO UPDATE SET
    name = excluded.name,
    category = excluded.category,
    requirement_id = excluded.requirement_id,
    status = excluded.status,
    updated_at = excluded.updated_at`,
		id, w.Name, w.Category, w.RequirementID, w.Status,
		w.CreatedAt.Format(time.RFC3339), w.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing work item: %w", err)
	}
	return id, nil
}

func (t *table) fetchWorkItems(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"category":       "category",
		"requirement_id": "requirement_id",
		"status":         "status",
		"name":           "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT work_item_id, name, category, requirement_id, status, created_at, updated_at
FROM work_items`+where+" ORDER BY created_at, work_item_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching work items: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		w, err := scanWorkItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	return results, rows.Err()
}

// Config items

func (t *table) getConfigItem(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT config_item_id, name, requirement_id, status, created_at, updated_at
FROM config_items WHERE config_item_id = ?`, id)
	return scanConfigItem(row.Scan)
}

func scanConfigItem(scan func(...any) error) (any, error) {
	var c types.ConfigItem
	var created, updated string
	err := scan(&c.ConfigItemID, &c.Name, &c.RequirementID, &c.Status, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading config item: %w", err)
	}
	c.CreatedAt = parseTime(created)
	c.UpdatedAt = parseTime(updated)
	return &c, nil
}

func (t *table) setConfigItem(id string, data any) (string, error) {
	c, ok := data.(*types.ConfigItem)
	if !ok {
		return "", types.ErrInvalidData
	}
	if c.Name == "" {
		return "", types.ErrInvalidName
	}
	if c.Status == "" {
		c.Status = types.ItemStateOpen
	}
	if err := c.SetStatus(c.Status); err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}
	c.ConfigItemID = id
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	_, err := t.backend.db.Exec(`INSERT INTO config_items
    (config_item_id, name, requirement_id, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (config_item_id) DO UPDATE SET
    name = excluded.name,
    requirement_id = excluded.requirement_id,
    status = excluded.status,
    updated_at = excluded.updated_at`,
		id, c.Name, c.RequirementID, c.Status,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing config item: %w", err)
	}
	return id, nil
}

func (t *table) fetchConfigItems(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"requirement_id": "requirement_id",
		"status":         "status",
		"name":           "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT config_item_id, name, requirement_id, status, created_at, updated_at
FROM config_items`+where+" ORDER BY created_at, config_item_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching config items: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		c, err := scanConfigItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

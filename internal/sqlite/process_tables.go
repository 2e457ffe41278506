package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// Scenarios

func (t *table) getScenario(id string) (any, error) {
	row := t.backend.db.QueryRow(
		"SELECT scenario_id, name, description, created_at FROM scenarios WHERE scenario_id = ?", id)

	var s types.Scenario
	var created string
	if err := row.Scan(&s.ScenarioID, &s.Name, &s.Description, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s.CreatedAt = parseTime(created)
	return &s, nil
}

func (t *table) setScenario(id string, data any) (string, error) {
	s, ok := data.(*types.Scenario)
	if !ok {
		return "", types.ErrInvalidData
	}
	if s.Name == "" {
		return "", types.ErrInvalidName
	}

	if id == "" {
		id = newUUID()
	}
	s.ScenarioID = id
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := t.backend.db.Exec(`INSERT INTO scenarios (scenario_id, name, description, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (scenario_id) DO UPDATE SET
    name = excluded.name,
    description = excluded.description`,
		id, s.Name, s.Description, s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing scenario: %w", err)
	}
	return id, nil
}

func (t *table) fetchScenarios(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"name": "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		"SELECT scenario_id, name, description, created_at FROM scenarios"+where+
			" ORDER BY created_at, scenario_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching scenarios: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var s types.Scenario
		var created string
		if err := rows.Scan(&s.ScenarioID, &s.Name, &s.Description, &created); err != nil {
			return nil, fmt.Errorf("scanning scenario: %w", err)
		}
		s.CreatedAt = parseTime(created)
		results = append(results, &s)
	}
	return results, rows.Err()
}

// Workshops

func (t *table) getWorkshop(id string) (any, error) {
	row := t.backend.db.QueryRow(
		"SELECT workshop_id, scenario_id, name, created_at FROM workshops WHERE workshop_id = ?", id)

	var w types.Workshop
	var created string
	if err := row.Scan(&w.WorkshopID, &w.ScenarioID, &w.Name, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading workshop: %w", err)
	}
	w.CreatedAt = parseTime(created)
	return &w, nil
}

func (t *table) setWorkshop(id string, data any) (string, error) {
	w, ok := data.(*types.Workshop)
	if !ok {
		return "", types.ErrInvalidData
	}
	if w.Name == "" {
		return "", types.ErrInvalidName
	}
	if w.ScenarioID == "" {
		return "", types.ErrInvalidData
	}

	if id == "" {
		id = newUUID()
	}
	w.WorkshopID = id
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	_, err := t.backend.db.Exec(`INSERT INTO workshops (workshop_id, scenario_id, name, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (workshop_id) DO UPDATE SET
    scenario_id = excluded.scenario_id,
    name = excluded.name`,
		id, w.ScenarioID, w.Name, w.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing workshop: %w", err)
	}
	return id, nil
}

func (t *table) fetchWorkshops(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"scenario_id": "scenario_id",
		"name":        "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		"SELECT workshop_id, scenario_id, name, created_at FROM workshops"+where+
			" ORDER BY created_at, workshop_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching workshops: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var w types.Workshop
		var created string
		if err := rows.Scan(&w.WorkshopID, &w.ScenarioID, &w.Name, &created); err != nil {
			return nil, fmt.Errorf("scanning workshop: %w", err)
		}
		w.CreatedAt = parseTime(created)
		results = append(results, &w)
	}
	return results, rows.Err()
}

// Process nodes

func (t *table) getProcessNode(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT node_id, parent_id, level, name, scope_code, scenario_id, created_at
FROM process_nodes WHERE node_id = ?`, id)
	return scanProcessNode(row.Scan)
}

func scanProcessNode(scan func(...any) error) (any, error) {
	var n types.ProcessNode
	var created string
	if err := scan(&n.NodeID, &n.ParentID, &n.Level, &n.Name, &n.ScopeCode, &n.ScenarioID, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading process node: %w", err)
	}
	n.CreatedAt = parseTime(created)
	return &n, nil
}

func (t *table) setProcessNode(id string, data any) (string, error) {
	n, ok := data.(*types.ProcessNode)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := n.Validate(); err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}
	n.NodeID = id
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := t.backend.db.Exec(`INSERT INTO process_nodes
    (node_id, parent_id, level, name, scope_code, scenario_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (node_id) DO UPDATE SET
    parent_id = excluded.parent_id,
    level = excluded.level,
    name = excluded.name,
    scope_code = excluded.scope_code,
    scenario_id = excluded.scenario_id`,
		id, n.ParentID, n.Level, n.Name, n.ScopeCode, n.ScenarioID,
		n.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing process node: %w", err)
	}
	return id, nil
}

func (t *table) fetchProcessNodes(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"parent_id":   "parent_id",
		"level":       "level",
		"scope_code":  "scope_code",
		"scenario_id": "scenario_id",
		"name":        "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT node_id, parent_id, level, name, scope_code, scenario_id, created_at
FROM process_nodes`+where+" ORDER BY level, created_at, node_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching process nodes: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		n, err := scanProcessNode(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// Process steps

func (t *table) getProcessStep(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT step_id, process_node_id, workshop_id, name, created_at
FROM process_steps WHERE step_id = ?`, id)

	var s types.ProcessStep
	var created string
	if err := row.Scan(&s.StepID, &s.ProcessNodeID, &s.WorkshopID, &s.Name, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading process step: %w", err)
	}
	s.CreatedAt = parseTime(created)
	return &s, nil
}

func (t *table) setProcessStep(id string, data any) (string, error) {
	s, ok := data.(*types.ProcessStep)
	if !ok {
		return "", types.ErrInvalidData
	}
	if s.Name == "" {
		return "", types.ErrInvalidName
	}
	if s.ProcessNodeID == "" || s.WorkshopID == "" {
		return "", types.ErrInvalidData
	}

	if id == "" {
		id = newUUID()
	}
	s.StepID = id
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := t.backend.db.Exec(`INSERT INTO process_steps
    (step_id, process_node_id, workshop_id, name, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (step_id) DO UPDATE SET
    process_node_id = excluded.process_node_id,
    workshop_id = excluded.workshop_id,
    name = excluded.name`,
		id, s.ProcessNodeID, s.WorkshopID, s.Name, s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing process step: %w", err)
	}
	return id, nil
}

func (t *table) fetchProcessSteps(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"process_node_id": "process_node_id",
		"workshop_id":     "workshop_id",
		"name":            "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT step_id, process_node_id, workshop_id, name, created_at
FROM process_steps`+where+" ORDER BY created_at, step_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching process steps: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var s types.ProcessStep
		var created string
		if err := rows.Scan(&s.StepID, &s.ProcessNodeID, &s.WorkshopID, &s.Name, &created); err != nil {
			return nil, fmt.Errorf("scanning process step: %w", err)
		}
		s.CreatedAt = parseTime(created)
		results = append(results, &s)
	}
	return results, rows.Err()
}

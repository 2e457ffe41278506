package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// Test cases

func (t *table) getTestCase(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT test_case_id, name, layer, status, process_node_id, work_item_id,
    config_item_id, requirement_id, created_at, updated_at
FROM test_cases WHERE test_case_id = ?`, id)
	return scanTestCase(row.Scan)
}

func scanTestCase(scan func(...any) error) (any, error) {
	var tc types.TestCase
	var created, updated string
	err := scan(&tc.TestCaseID, &tc.Name, &tc.Layer, &tc.Status,
		&tc.ProcessNodeID, &tc.WorkItemID, &tc.ConfigItemID, &tc.RequirementID,
		&created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading test case: %w", err)
	}
	tc.CreatedAt = parseTime(created)
	tc.UpdatedAt = parseTime(updated)
	return &tc, nil
}

func (t *table) setTestCase(id string, data any) (string, error) {
	tc, ok := data.(*types.TestCase)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := tc.Validate(); err != nil {
		return "", err
	}
	if tc.Status == "" {
		tc.Status = types.TestStateDraft
	}
	if err := tc.SetStatus(tc.Status); err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}
	tc.TestCaseID = id
	now := time.Now().UTC()
	if tc.CreatedAt.IsZero() {
		tc.CreatedAt = now
	}
	tc.UpdatedAt = now

	_, err := t.backend.db.Exec(`INSERT INTO test_cases
    (test_case_id, name, layer, status, process_node_id, work_item_id,
     config_item_id, requirement_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (test_case_id) DO UPDATE SET
    name = excluded.name,
    layer = excluded.layer,
    status = excluded.status,
    process_node_id = excluded.process_node_id,
    work_item_id = excluded.work_item_id,
    config_item_id = excluded.config_item_id,
    requirement_id = excluded.requirement_id,
    updated_at = excluded.updated_at`,
		id, tc.Name, tc.Layer, tc.Status, tc.ProcessNodeID, tc.WorkItemID,
		tc.ConfigItemID, tc.RequirementID,
		tc.CreatedAt.Format(time.RFC3339), tc.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing test case: %w", err)
	}
	return id, nil
}

// deleteTestCase removes a test case and cascades to its runs.
func (t *table) deleteTestCase(id string) error {
	if err := t.deletePlain(id); err != nil {
		return err
	}
	_, err := t.backend.db.Exec("DELETE FROM test_runs WHERE test_case_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting test runs: %w", err)
	}
	return nil
}

func (t *table) fetchTestCases(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"layer":           "layer",
		"status":          "status",
		"process_node_id": "process_node_id",
		"work_item_id":    "work_item_id",
		"config_item_id":  "config_item_id",
		"requirement_id":  "requirement_id",
		"name":            "name",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT test_case_id, name, layer, status, process_node_id, work_item_id,
    config_item_id, requirement_id, created_at, updated_at
FROM test_cases`+where+" ORDER BY created_at, test_case_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching test cases: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		tc, err := scanTestCase(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, tc)
	}
	return results, rows.Err()
}

// Test runs

func (t *table) getTestRun(id string) (any, error) {
	row := t.backend.db.QueryRow(
		`SELECT run_id, test_case_id, result, executed_at FROM test_runs WHERE run_id = ?`, id)

	var r types.TestRun
	var executed string
	if err := row.Scan(&r.RunID, &r.TestCaseID, &r.Result, &executed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading test run: %w", err)
	}
	r.ExecutedAt = parseTime(executed)
	return &r, nil
}

func (t *table) setTestRun(id string, data any) (string, error) {
	r, ok := data.(*types.TestRun)
	if !ok {
		return "", types.ErrInvalidData
	}
	if r.TestCaseID == "" {
		return "", types.ErrInvalidData
	}
	if err := r.SetResult(r.Result); err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}
	r.RunID = id
	if r.ExecutedAt.IsZero() {
		r.ExecutedAt = time.Now().UTC()
	}

	_, err := t.backend.db.Exec(`INSERT INTO test_runs
    (run_id, test_case_id, result, executed_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (run_id) DO UPDATE SET
    test_case_id = excluded.test_case_id,
    result = excluded.result,
    executed_at = excluded.executed_at`,
		id, r.TestCaseID, r.Result, r.ExecutedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("writing test run: %w", err)
	}
	return id, nil
}

func (t *table) fetchTestRuns(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, map[string]string{
		"test_case_id": "test_case_id",
		"result":       "result",
	})
	if err != nil {
		return nil, err
	}

	rows, err := t.backend.db.Query(
		`SELECT run_id, test_case_id, result, executed_at
FROM test_runs`+where+" ORDER BY executed_at, run_id", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching test runs: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var r types.TestRun
		var executed string
		if err := rows.Scan(&r.RunID, &r.TestCaseID, &r.Result, &executed); err != nil {
			return nil, fmt.Errorf("scanning test run: %w", err)
		}
		r.ExecutedAt = parseTime(executed)
		results = append(results, &r)
	}
	return results, rows.Err()
}

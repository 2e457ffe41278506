package trace

import (
	"fmt"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// Graph is the read side of the entity store as the engine sees it:
// point lookups by id, filtered lookups by foreign key, and the single
// cached-status write. Implementations must return types.ErrNotFound for
// missing ids and a stable ordering from every list method, so traversal
// results and provenance strings are reproducible on unchanged data.
type Graph interface {
	ProcessNode(id string) (*types.ProcessNode, error)
	ProcessNodeByScopeCode(code string) (*types.ProcessNode, error)
	ProcessStep(id string) (*types.ProcessStep, error)
	Requirement(id string) (*types.Requirement, error)
	WorkItem(id string) (*types.WorkItem, error)
	ConfigItem(id string) (*types.ConfigItem, error)

	WorkshopsByScenario(scenarioID string) ([]*types.Workshop, error)
	RequirementsByWorkshop(workshopID string) ([]*types.Requirement, error)
	RequirementsByScopeCode(code string) ([]*types.Requirement, error)
	MappingsByNode(nodeID string) ([]*types.RequirementMapping, error)
	WorkItemsByRequirement(requirementID string) ([]*types.WorkItem, error)
	ConfigItemsByRequirement(requirementID string) ([]*types.ConfigItem, error)
	TestCasesByRequirement(requirementID string) ([]*types.TestCase, error)
	TestCasesByWorkItem(workItemID string) ([]*types.TestCase, error)
	TestCasesByConfigItem(configItemID string) ([]*types.TestCase, error)

	SetCoverageStatus(scopeItemID, status string) error
}

// storeGraph adapts a generic types.Store to the Graph interface by
// fetching through the named tables and type-asserting the results.
type storeGraph struct {
	store types.Store
}

// NewStoreGraph returns a Graph backed by the given store. The store must
// be attached before the engine is used.
func NewStoreGraph(store types.Store) Graph {
	return &storeGraph{store: store}
}

// get performs a point lookup on the named table.
func (g *storeGraph) get(table, id string) (any, error) {
	t, err := g.store.GetTable(table)
	if err != nil {
		return nil, err
	}
	return t.Get(id)
}

// fetch performs a filtered lookup on the named table.
func (g *storeGraph) fetch(table string, filter map[string]any) ([]any, error) {
	t, err := g.store.GetTable(table)
	if err != nil {
		return nil, err
	}
	return t.Fetch(filter)
}

func (g *storeGraph) ProcessNode(id string) (*types.ProcessNode, error) {
	v, err := g.get(types.ProcessNodesTable, id)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*types.ProcessNode)
	if !ok {
		return nil, fmt.Errorf("process node %s: %w", id, types.ErrInvalidData)
	}
	return n, nil
}

func (g *storeGraph) ProcessNodeByScopeCode(code string) (*types.ProcessNode, error) {
	rows, err := g.fetch(types.ProcessNodesTable, map[string]any{"scope_code": code})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.ErrNotFound
	}
	n, ok := rows[0].(*types.ProcessNode)
	if !ok {
		return nil, fmt.Errorf("process node for code %s: %w", code, types.ErrInvalidData)
	}
	return n, nil
}

func (g *storeGraph) ProcessStep(id string) (*types.ProcessStep, error) {
	v, err := g.get(types.ProcessStepsTable, id)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*types.ProcessStep)
	if !ok {
		return nil, fmt.Errorf("process step %s: %w", id, types.ErrInvalidData)
	}
	return s, nil
}

func (g *storeGraph) Requirement(id string) (*types.Requirement, error) {
	v, err := g.get(types.RequirementsTable, id)
	if err != nil {
		return nil, err
	}
	r, ok := v.(*types.Requirement)
	if !ok {
		return nil, fmt.Errorf("requirement %s: %w", id, types.ErrInvalidData)
	}
	return r, nil
}

func (g *storeGraph) WorkItem(id string) (*types.WorkItem, error) {
	v, err := g.get(types.WorkItemsTable, id)
	if err != nil {
		return nil, err
	}
	w, ok := v.(*types.WorkItem)
	if !ok {
		return nil, fmt.Errorf("work item %s: %w", id, types.ErrInvalidData)
	}
	return w, nil
}

func (g *storeGraph) ConfigItem(id string) (*types.ConfigItem, error) {
	v, err := g.get(types.ConfigItemsTable, id)
	if err != nil {
		return nil, err
	}
	c, ok := v.(*types.ConfigItem)
	if !ok {
		return nil, fmt.Errorf("config item %s: %w", id, types.ErrInvalidData)
	}
	return c, nil
}

func (g *storeGraph) WorkshopsByScenario(scenarioID string) ([]*types.Workshop, error) {
	rows, err := g.fetch(types.WorkshopsTable, map[string]any{"scenario_id": scenarioID})
	if err != nil {
		return nil, err
	}
	out := make([]*types.Workshop, 0, len(rows))
	for _, v := range rows {
		w, ok := v.(*types.Workshop)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, w)
	}
	return out, nil
}

func (g *storeGraph) RequirementsByWorkshop(workshopID string) ([]*types.Requirement, error) {
	rows, err := g.fetch(types.RequirementsTable, map[string]any{"workshop_id": workshopID})
	if err != nil {
		return nil, err
	}
	return asRequirements(rows)
}

func (g *storeGraph) RequirementsByScopeCode(code string) ([]*types.Requirement, error) {
	rows, err := g.fetch(types.RequirementsTable, map[string]any{"scope_item_code": code})
	if err != nil {
		return nil, err
	}
	return asRequirements(rows)
}

func (g *storeGraph) MappingsByNode(nodeID string) ([]*types.RequirementMapping, error) {
	rows, err := g.fetch(types.RequirementMappingsTable, map[string]any{"process_node_id": nodeID})
	if err != nil {
		return nil, err
	}
	out := make([]*types.RequirementMapping, 0, len(rows))
	for _, v := range rows {
		m, ok := v.(*types.RequirementMapping)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, m)
	}
	return out, nil
}

func (g *storeGraph) WorkItemsByRequirement(requirementID string) ([]*types.WorkItem, error) {
	rows, err := g.fetch(types.WorkItemsTable, map[string]any{"requirement_id": requirementID})
	if err != nil {
		return nil, err
	}
	out := make([]*types.WorkItem, 0, len(rows))
	for _, v := range rows {
		w, ok := v.(*types.WorkItem)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, w)
	}
	return out, nil
}

func (g *storeGraph) ConfigItemsByRequirement(requirementID string) ([]*types.ConfigItem, error) {
	rows, err := g.fetch(types.ConfigItemsTable, map[string]any{"requirement_id": requirementID})
	if err != nil {
		return nil, err
	}
	out := make([]*types.ConfigItem, 0, len(rows))
	for _, v := range rows {
		c, ok := v.(*types.ConfigItem)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, c)
	}
	return out, nil
}

func (g *storeGraph) TestCasesByRequirement(requirementID string) ([]*types.TestCase, error) {
	return g.testCases(map[string]any{"requirement_id": requirementID})
}

func (g *storeGraph) TestCasesByWorkItem(workItemID string) ([]*types.TestCase, error) {
	return g.testCases(map[string]any{"work_item_id": workItemID})
}

func (g *storeGraph) TestCasesByConfigItem(configItemID string) ([]*types.TestCase, error) {
	return g.testCases(map[string]any{"config_item_id": configItemID})
}

func (g *storeGraph) testCases(filter map[string]any) ([]*types.TestCase, error) {
	rows, err := g.fetch(types.TestCasesTable, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*types.TestCase, 0, len(rows))
	for _, v := range rows {
		tc, ok := v.(*types.TestCase)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, tc)
	}
	return out, nil
}

func (g *storeGraph) SetCoverageStatus(scopeItemID, status string) error {
	return g.store.SetCoverageStatus(scopeItemID, status)
}

func asRequirements(rows []any) ([]*types.Requirement, error) {
	out := make([]*types.Requirement, 0, len(rows))
	for _, v := range rows {
		r, ok := v.(*types.Requirement)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, r)
	}
	return out, nil
}

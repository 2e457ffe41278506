package trace

import (
	"sort"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// memGraph is an in-memory Graph fixture. List methods filter in insertion
// order, which keeps traversal results deterministic across calls.
type memGraph struct {
	nodes       map[string]*types.ProcessNode
	steps       map[string]*types.ProcessStep
	reqs        map[string]*types.Requirement
	workItems   map[string]*types.WorkItem
	configItems map[string]*types.ConfigItem

	workshops []*types.Workshop
	mappings  []*types.RequirementMapping
	tests     []*types.TestCase

	statuses map[string]string
}

func newMemGraph() *memGraph {
	return &memGraph{
		nodes:       make(map[string]*types.ProcessNode),
		steps:       make(map[string]*types.ProcessStep),
		reqs:        make(map[string]*types.Requirement),
		workItems:   make(map[string]*types.WorkItem),
		configItems: make(map[string]*types.ConfigItem),
		statuses:    make(map[string]string),
	}
}

func (g *memGraph) addNode(n *types.ProcessNode)         { g.nodes[n.NodeID] = n }
func (g *memGraph) addStep(s *types.ProcessStep)         { g.steps[s.StepID] = s }
func (g *memGraph) addReq(r *types.Requirement)          { g.reqs[r.RequirementID] = r }
func (g *memGraph) addWorkItem(w *types.WorkItem)        { g.workItems[w.WorkItemID] = w }
func (g *memGraph) addConfigItem(c *types.ConfigItem)    { g.configItems[c.ConfigItemID] = c }
func (g *memGraph) addWorkshop(w *types.Workshop)        { g.workshops = append(g.workshops, w) }
func (g *memGraph) addMapping(m *types.RequirementMapping) {
	g.mappings = append(g.mappings, m)
}
func (g *memGraph) addTest(t *types.TestCase) { g.tests = append(g.tests, t) }

func (g *memGraph) ProcessNode(id string) (*types.ProcessNode, error) {
	if n, ok := g.nodes[id]; ok {
		return n, nil
	}
	return nil, types.ErrNotFound
}

func (g *memGraph) ProcessNodeByScopeCode(code string) (*types.ProcessNode, error) {
	for _, n := range g.nodes {
		if n.ScopeCode != "" && n.ScopeCode == code {
			return n, nil
		}
	}
	return nil, types.ErrNotFound
}

func (g *memGraph) ProcessStep(id string) (*types.ProcessStep, error) {
	if s, ok := g.steps[id]; ok {
		return s, nil
	}
	return nil, types.ErrNotFound
}

func (g *memGraph) Requirement(id string) (*types.Requirement, error) {
	if r, ok := g.reqs[id]; ok {
		return r, nil
	}
	return nil, types.ErrNotFound
}

func (g *memGraph) WorkItem(id string) (*types.WorkItem, error) {
	if w, ok := g.workItems[id]; ok {
		return w, nil
	}
	return nil, types.ErrNotFound
}

func (g *memGraph) ConfigItem(id string) (*types.ConfigItem, error) {
	if c, ok := g.configItems[id]; ok {
		return c, nil
	}
	return nil, types.ErrNotFound
}

func (g *memGraph) WorkshopsByScenario(scenarioID string) ([]*types.Workshop, error) {
	var out []*types.Workshop
	for _, w := range g.workshops {
		if w.ScenarioID == scenarioID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (g *memGraph) RequirementsByWorkshop(workshopID string) ([]*types.Requirement, error) {
	return g.filterReqs(func(r *types.Requirement) bool { return r.WorkshopID == workshopID })
}

func (g *memGraph) RequirementsByScopeCode(code string) ([]*types.Requirement, error) {
	return g.filterReqs(func(r *types.Requirement) bool { return r.ScopeItemCode == code })
}

// filterReqs iterates requirements in a stable order despite map storage.
func (g *memGraph) filterReqs(match func(*types.Requirement) bool) ([]*types.Requirement, error) {
	ids := make([]string, 0, len(g.reqs))
	for id := range g.reqs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*types.Requirement
	for _, id := range ids {
		if r := g.reqs[id]; match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (g *memGraph) MappingsByNode(nodeID string) ([]*types.RequirementMapping, error) {
	var out []*types.RequirementMapping
	for _, m := range g.mappings {
		if m.ProcessNodeID == nodeID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (g *memGraph) WorkItemsByRequirement(requirementID string) ([]*types.WorkItem, error) {
	ids := make([]string, 0, len(g.workItems))
	for id := range g.workItems {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*types.WorkItem
	for _, id := range ids {
		if w := g.workItems[id]; w.RequirementID == requirementID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (g *memGraph) ConfigItemsByRequirement(requirementID string) ([]*types.ConfigItem, error) {
	ids := make([]string, 0, len(g.configItems))
	for id := range g.configItems {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*types.ConfigItem
	for _, id := range ids {
		if c := g.configItems[id]; c.RequirementID == requirementID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (g *memGraph) TestCasesByRequirement(requirementID string) ([]*types.TestCase, error) {
	return g.filterTests(func(tc *types.TestCase) bool { return tc.RequirementID == requirementID })
}

func (g *memGraph) TestCasesByWorkItem(workItemID string) ([]*types.TestCase, error) {
	return g.filterTests(func(tc *types.TestCase) bool { return tc.WorkItemID == workItemID })
}

func (g *memGraph) TestCasesByConfigItem(configItemID string) ([]*types.TestCase, error) {
	return g.filterTests(func(tc *types.TestCase) bool { return tc.ConfigItemID == configItemID })
}

func (g *memGraph) filterTests(match func(*types.TestCase) bool) ([]*types.TestCase, error) {
	var out []*types.TestCase
	for _, tc := range g.tests {
		if match(tc) {
			out = append(out, tc)
		}
	}
	return out, nil
}

func (g *memGraph) SetCoverageStatus(scopeItemID, status string) error {
	g.statuses[scopeItemID] = status
	return nil
}


package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

func testIDs(traced []TracedTest) []string {
	ids := make([]string, 0, len(traced))
	for _, tt := range traced {
		ids = append(ids, tt.Test.TestCaseID)
	}
	return ids
}

func TestTraceScopeRequirementKind(t *testing.T) {
	g := newMemGraph()
	// Three work items on one requirement; w1 and w2 share t2, w3 has no
	// tests. One test references the requirement directly.
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "delta"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w1", Name: "a", Category: types.CategoryReport, RequirementID: "r1"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w2", Name: "b", Category: types.CategoryInterface, RequirementID: "r1"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w3", Name: "c", Category: types.CategoryForm, RequirementID: "r1"})
	g.addConfigItem(&types.ConfigItem{ConfigItemID: "c1", Name: "d", RequirementID: "r1"})
	g.addTest(&types.TestCase{TestCaseID: "t1", Name: "direct", Layer: types.LayerSIT, RequirementID: "r1"})
	g.addTest(&types.TestCase{TestCaseID: "t2", Name: "shared", Layer: types.LayerUnit, WorkItemID: "w1"})
	g.addTest(&types.TestCase{TestCaseID: "t2b", Name: "shared again", Layer: types.LayerUnit, WorkItemID: "w2"})
	g.addTest(&types.TestCase{TestCaseID: "t3", Name: "config", Layer: types.LayerString, ConfigItemID: "c1"})

	traced, err := NewTracer(g).TraceScope(&types.ScopeItem{
		ScopeItemID: "s1", Kind: types.KindRequirement, RefID: "r1", Name: "REQ-001",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t1", "t2", "t2b", "t3"}, testIDs(traced))
}

func TestTraceScopeDedupKeepsFirstProvenance(t *testing.T) {
	g := newMemGraph()
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "delta"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w1", Name: "a", Category: types.CategoryReport, RequirementID: "r1"})
	// t1 is reachable both directly and through w1. Direct comes first in
	// traversal order, so its provenance wins and t1 appears once.
	g.addTest(&types.TestCase{TestCaseID: "t1", Name: "both", Layer: types.LayerSIT, RequirementID: "r1", WorkItemID: "w1"})

	traced, err := NewTracer(g).TraceScope(&types.ScopeItem{
		ScopeItemID: "s1", Kind: types.KindRequirement, RefID: "r1", Name: "REQ-001",
	})
	require.NoError(t, err)
	require.Len(t, traced, 1)
	assert.Equal(t, "requirement r1 -> direct", traced[0].Provenance)
}

func TestTraceScopeProcessKind(t *testing.T) {
	g := newMemGraph()
	g.addNode(&types.ProcessNode{NodeID: "n3", ParentID: "n2", Level: 3, Name: "Sell from Stock", ScopeCode: "BD9"})
	// Legacy path: r1 is tied to n3 by an explicit mapping.
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "legacy delta"})
	g.addMapping(&types.RequirementMapping{MappingID: "m1", RequirementID: "r1", ProcessNodeID: "n3"})
	g.addTest(&types.TestCase{TestCaseID: "t1", Name: "legacy", Layer: types.LayerSIT, RequirementID: "r1"})
	// Direct path: r2 carries the scope code.
	g.addReq(&types.Requirement{RequirementID: "r2", Name: "direct delta", ScopeItemCode: "BD9"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w1", Name: "a", Category: types.CategoryReport, RequirementID: "r2"})
	g.addTest(&types.TestCase{TestCaseID: "t2", Name: "direct", Layer: types.LayerUAT, WorkItemID: "w1"})

	tracer := NewTracer(g)

	// Referenced by node id.
	traced, err := tracer.TraceScope(&types.ScopeItem{
		ScopeItemID: "s1", Kind: types.KindProcess, RefID: "n3", Name: "Sell from Stock",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t1", "t2"}, testIDs(traced))

	// Referenced by scope code resolves to the same union.
	traced, err = tracer.TraceScope(&types.ScopeItem{
		ScopeItemID: "s2", Kind: types.KindProcess, RefID: "BD9", Name: "Sell from Stock",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t1", "t2"}, testIDs(traced))
}

func TestTraceScopeScenarioKind(t *testing.T) {
	g := newMemGraph()
	g.addWorkshop(&types.Workshop{WorkshopID: "ws1", ScenarioID: "sc1", Name: "O2C wave 1"})
	g.addWorkshop(&types.Workshop{WorkshopID: "ws2", ScenarioID: "sc1", Name: "O2C wave 2"})
	g.addWorkshop(&types.Workshop{WorkshopID: "ws9", ScenarioID: "other", Name: "P2P"})
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "a", WorkshopID: "ws1"})
	g.addReq(&types.Requirement{RequirementID: "r2", Name: "b", WorkshopID: "ws2"})
	g.addReq(&types.Requirement{RequirementID: "r9", Name: "c", WorkshopID: "ws9"})
	g.addTest(&types.TestCase{TestCaseID: "t1", Name: "a", Layer: types.LayerSIT, RequirementID: "r1"})
	g.addTest(&types.TestCase{TestCaseID: "t2", Name: "b", Layer: types.LayerSIT, RequirementID: "r2"})
	g.addTest(&types.TestCase{TestCaseID: "t9", Name: "c", Layer: types.LayerSIT, RequirementID: "r9"})

	traced, err := NewTracer(g).TraceScope(&types.ScopeItem{
		ScopeItemID: "s1", Kind: types.KindScenario, RefID: "sc1", Name: "Order-to-Cash",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t1", "t2"}, testIDs(traced))
	assert.Equal(t, "scenario sc1 -> workshop ws1 -> requirement r1 -> direct", traced[0].Provenance)
}

func TestTraceScopeEmptyResults(t *testing.T) {
	g := newMemGraph()
	tracer := NewTracer(g)

	tests := []struct {
		name string
		item types.ScopeItem
	}{
		{name: "unknown kind", item: types.ScopeItem{ScopeItemID: "s1", Kind: "epic", RefID: "x"}},
		{name: "missing requirement", item: types.ScopeItem{ScopeItemID: "s2", Kind: types.KindRequirement, RefID: "ghost"}},
		{name: "missing process ref", item: types.ScopeItem{ScopeItemID: "s3", Kind: types.KindProcess, RefID: "ghost"}},
		{name: "missing scenario", item: types.ScopeItem{ScopeItemID: "s4", Kind: types.KindScenario, RefID: "ghost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traced, err := tracer.TraceScope(&tt.item)
			require.NoError(t, err)
			assert.Empty(t, traced)
			assert.NotNil(t, traced)
		})
	}
}

func TestTraceScopeDeterministic(t *testing.T) {
	g := newMemGraph()
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "delta"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w1", Name: "a", Category: types.CategoryReport, RequirementID: "r1"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w2", Name: "b", Category: types.CategoryForm, RequirementID: "r1"})
	g.addTest(&types.TestCase{TestCaseID: "t1", Name: "x", Layer: types.LayerUnit, WorkItemID: "w1"})
	g.addTest(&types.TestCase{TestCaseID: "t2", Name: "y", Layer: types.LayerUnit, WorkItemID: "w2"})

	tracer := NewTracer(g)
	item := &types.ScopeItem{ScopeItemID: "s1", Kind: types.KindRequirement, RefID: "r1", Name: "REQ-001"}

	first, err := tracer.TraceScope(item)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := tracer.TraceScope(item)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

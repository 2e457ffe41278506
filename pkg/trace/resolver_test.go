package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// hierarchyFixture builds a two-branch process tree:
//
//	n1 (L1) -> n2 (L2) -> n3 (L3, BD9) -> n4 (L4)
//	                      m3 (L3, BKJ) -> m4 (L4)
func hierarchyFixture() *memGraph {
	g := newMemGraph()
	g.addNode(&types.ProcessNode{NodeID: "n1", Level: 1, Name: "Order-to-Cash"})
	g.addNode(&types.ProcessNode{NodeID: "n2", ParentID: "n1", Level: 2, Name: "Sales"})
	g.addNode(&types.ProcessNode{NodeID: "n3", ParentID: "n2", Level: 3, Name: "Sell from Stock", ScopeCode: "BD9"})
	g.addNode(&types.ProcessNode{NodeID: "n4", ParentID: "n3", Level: 4, Name: "Standard Order"})
	g.addNode(&types.ProcessNode{NodeID: "m3", ParentID: "n2", Level: 3, Name: "Credit Memo", ScopeCode: "BKJ"})
	g.addNode(&types.ProcessNode{NodeID: "m4", ParentID: "m3", Level: 4, Name: "Credit Memo Request"})
	return g
}

func TestResolveAnchorExplicitNode(t *testing.T) {
	g := hierarchyFixture()
	r := NewResolver(g)

	tests := []struct {
		name   string
		nodeID string
		want   string
	}{
		{name: "canonical node resolves to itself", nodeID: "n3", want: "n3"},
		{name: "level-4 node walks up to parent", nodeID: "n4", want: "n3"},
		{name: "level-2 node exhausts chain upward", nodeID: "n2", want: ""},
		{name: "level-1 root exhausts chain", nodeID: "n1", want: ""},
		{name: "missing node fails the path", nodeID: "ghost", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveAnchor(AnchorInput{ProcessNodeID: tt.nodeID})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAnchorPriorityOrder(t *testing.T) {
	g := hierarchyFixture()
	// Work item chain resolves to m3, explicit node to n3. The explicit
	// node reference must win.
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "credit memo delta", ScopeItemCode: "BKJ"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w1", Name: "memo report", Category: types.CategoryReport, RequirementID: "r1"})
	r := NewResolver(g)

	got, err := r.ResolveAnchor(AnchorInput{ProcessNodeID: "n4", WorkItemID: "w1"})
	require.NoError(t, err)
	assert.Equal(t, "n3", got)

	// Without the explicit node the work item path takes over.
	got, err = r.ResolveAnchor(AnchorInput{WorkItemID: "w1"})
	require.NoError(t, err)
	assert.Equal(t, "m3", got)
}

func TestResolveAnchorWorkItemThroughProcessStep(t *testing.T) {
	g := hierarchyFixture()
	g.addStep(&types.ProcessStep{StepID: "st1", ProcessNodeID: "n4", WorkshopID: "ws1", Name: "create order"})
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "order delta", ProcessStepID: "st1"})
	g.addWorkItem(&types.WorkItem{WorkItemID: "w1", Name: "order exit", Category: types.CategoryEnhancement, RequirementID: "r1"})
	r := NewResolver(g)

	// Work item -> requirement -> process step -> level-4 node -> level-3.
	got, err := r.ResolveAnchor(AnchorInput{WorkItemID: "w1"})
	require.NoError(t, err)
	assert.Equal(t, "n3", got)
}

func TestResolveAnchorConfigItemPath(t *testing.T) {
	g := hierarchyFixture()
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "pricing delta", ProcessNodeID: "m4"})
	g.addConfigItem(&types.ConfigItem{ConfigItemID: "c1", Name: "pricing procedure", RequirementID: "c1-req-missing"})
	g.addConfigItem(&types.ConfigItem{ConfigItemID: "c2", Name: "output determination", RequirementID: "r1"})
	r := NewResolver(g)

	got, err := r.ResolveAnchor(AnchorInput{ConfigItemID: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "m3", got)

	// A config item whose requirement is missing fails the path quietly.
	got, err = r.ResolveAnchor(AnchorInput{ConfigItemID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestResolveAnchorRequirementChainOrder(t *testing.T) {
	g := hierarchyFixture()
	// Scope code points at BD9 (n3); the node reference points into the
	// BKJ branch. The denormalized scope code is tried first.
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "delta", ScopeItemCode: "BD9", ProcessNodeID: "m4"})
	// Dangling scope code falls through to the node reference.
	g.addReq(&types.Requirement{RequirementID: "r2", Name: "delta", ScopeItemCode: "ZZZ", ProcessNodeID: "m4"})
	r := NewResolver(g)

	got, err := r.ResolveAnchor(AnchorInput{RequirementID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "n3", got)

	got, err = r.ResolveAnchor(AnchorInput{RequirementID: "r2"})
	require.NoError(t, err)
	assert.Equal(t, "m3", got)
}

func TestResolveAnchorNoReferences(t *testing.T) {
	r := NewResolver(hierarchyFixture())

	got, err := r.ResolveAnchor(AnchorInput{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestResolveAnchorCycleTerminates(t *testing.T) {
	g := hierarchyFixture()
	// Malformed parent chain: c4 and c5 reference each other.
	g.addNode(&types.ProcessNode{NodeID: "c4", ParentID: "c5", Level: 4, Name: "loop a"})
	g.addNode(&types.ProcessNode{NodeID: "c5", ParentID: "c4", Level: 4, Name: "loop b"})
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "delta", ProcessNodeID: "m4"})
	r := NewResolver(g)

	// The cycle aborts that path without error.
	got, err := r.ResolveAnchor(AnchorInput{ProcessNodeID: "c4"})
	require.NoError(t, err)
	assert.Equal(t, "", got)

	// A cycle on one candidate path does not prevent later paths.
	got, err = r.ResolveAnchor(AnchorInput{ProcessNodeID: "c4", RequirementID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "m3", got)
}

func TestResolveAnchorDeterministic(t *testing.T) {
	g := hierarchyFixture()
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "delta", ScopeItemCode: "BD9"})
	r := NewResolver(g)

	in := AnchorInput{RequirementID: "r1"}
	first, err := r.ResolveAnchor(in)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.ResolveAnchor(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveTestCase(t *testing.T) {
	g := hierarchyFixture()
	g.addReq(&types.Requirement{RequirementID: "r1", Name: "delta", ScopeItemCode: "BKJ"})
	r := NewResolver(g)

	got, err := r.ResolveTestCase(&types.TestCase{
		TestCaseID:    "t1",
		Name:          "credit memo flow",
		Layer:         types.LayerSIT,
		RequirementID: "r1",
	})
	require.NoError(t, err)
	assert.Equal(t, "m3", got)
}

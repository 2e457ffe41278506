package integration

import (
	"testing"

	"github.com/mesh-intelligence/traceline/internal/sqlite"
	"github.com/mesh-intelligence/traceline/pkg/trace"
	"github.com/mesh-intelligence/traceline/pkg/types"
)

// seedEntities digs the well-known demo entities out of a seeded backend.
type seedEntities struct {
	canonical *types.ProcessNode
	workItem  *types.WorkItem
	items     map[string]*types.ScopeItem // keyed by kind
}

func loadSeed(t *testing.T, b *sqlite.Backend) seedEntities {
	t.Helper()

	nodes := mustGetTable(t, b, types.ProcessNodesTable)
	canonical, err := nodes.Fetch(map[string]any{"scope_code": "BD9"})
	if err != nil || len(canonical) != 1 {
		t.Fatalf("BD9 node fetch: %v (%d rows)", err, len(canonical))
	}

	workItems := mustGetTable(t, b, types.WorkItemsTable)
	wis := fetchAll(t, workItems)
	if len(wis) != 1 {
		t.Fatalf("expected 1 seeded work item, got %d", len(wis))
	}

	scopeItems := mustGetTable(t, b, types.ScopeItemsTable)
	items := map[string]*types.ScopeItem{}
	for _, v := range fetchAll(t, scopeItems) {
		item := v.(*types.ScopeItem)
		items[item.Kind] = item
	}

	return seedEntities{
		canonical: canonical[0].(*types.ProcessNode),
		workItem:  wis[0].(*types.WorkItem),
		items:     items,
	}
}

func TestSeededIDsAreUUIDv7(t *testing.T) {
	b := seededBackend(t)
	seed := loadSeed(t, b)

	for name, id := range map[string]string{
		"process node": seed.canonical.NodeID,
		"work item":    seed.workItem.WorkItemID,
		"scope item":   seed.items[types.KindProcess].ScopeItemID,
	} {
		if !isUUIDv7(id) {
			t.Errorf("%s id %q is not a UUID v7", name, id)
		}
	}
}

func TestAnchorResolutionThroughStore(t *testing.T) {
	b := seededBackend(t)
	seed := loadSeed(t, b)
	resolver := trace.NewResolver(trace.NewStoreGraph(b))

	// The seeded work item chains to its requirement, whose scope code walks
	// to the canonical BD9 node.
	anchor, err := resolver.ResolveAnchor(trace.AnchorInput{WorkItemID: seed.workItem.WorkItemID})
	if err != nil {
		t.Fatalf("ResolveAnchor: %v", err)
	}
	if anchor != seed.canonical.NodeID {
		t.Errorf("work item anchor = %q, want %q", anchor, seed.canonical.NodeID)
	}

	// An explicit level-4 node walks up to the same anchor.
	nodes := mustGetTable(t, b, types.ProcessNodesTable)
	variants, err := nodes.Fetch(map[string]any{"level": types.LevelVariant})
	if err != nil || len(variants) != 1 {
		t.Fatalf("level-4 fetch: %v (%d rows)", err, len(variants))
	}
	anchor, err = resolver.ResolveAnchor(trace.AnchorInput{
		ProcessNodeID: variants[0].(*types.ProcessNode).NodeID,
	})
	if err != nil {
		t.Fatalf("ResolveAnchor from node: %v", err)
	}
	if anchor != seed.canonical.NodeID {
		t.Errorf("node anchor = %q, want %q", anchor, seed.canonical.NodeID)
	}

	// A dangling reference is a quiet non-resolution, not an error.
	anchor, err = resolver.ResolveAnchor(trace.AnchorInput{WorkItemID: "no-such-item"})
	if err != nil {
		t.Fatalf("ResolveAnchor with dangling ref: %v", err)
	}
	if anchor != "" {
		t.Errorf("dangling ref resolved to %q", anchor)
	}
}

func TestScopeTracingThroughStore(t *testing.T) {
	b := seededBackend(t)
	seed := loadSeed(t, b)
	tracer := trace.NewTracer(trace.NewStoreGraph(b))

	// The requirement scope item reaches its direct SIT test and the unit
	// test hanging off the work item.
	traced, err := tracer.TraceScope(seed.items[types.KindRequirement])
	if err != nil {
		t.Fatalf("TraceScope requirement: %v", err)
	}
	if len(traced) != 2 {
		t.Fatalf("requirement traced %d tests, want 2", len(traced))
	}

	// The BD9 process item unions the mapped requirement (config item test)
	// with the scope-coded requirement's tests.
	traced, err = tracer.TraceScope(seed.items[types.KindProcess])
	if err != nil {
		t.Fatalf("TraceScope process: %v", err)
	}
	if len(traced) != 3 {
		t.Fatalf("process traced %d tests, want 3", len(traced))
	}
	for _, tt := range traced {
		if tt.Provenance == "" {
			t.Errorf("test %s has empty provenance", tt.Test.TestCaseID)
		}
	}

	// The scenario item reaches the same tests through its workshop.
	traced, err = tracer.TraceScope(seed.items[types.KindScenario])
	if err != nil {
		t.Fatalf("TraceScope scenario: %v", err)
	}
	if len(traced) != 3 {
		t.Fatalf("scenario traced %d tests, want 3", len(traced))
	}
}

func TestCoverageThroughStore(t *testing.T) {
	b := seededBackend(t)
	seed := loadSeed(t, b)
	g := trace.NewStoreGraph(b)
	calc := trace.NewCalculator(g)

	// Pool: every non-draft test case. The seeded UAT test is a draft.
	pool := map[string]bool{}
	for _, v := range fetchAll(t, mustGetTable(t, b, types.TestCasesTable)) {
		tc := v.(*types.TestCase)
		if tc.Status != types.TestStateDraft && tc.Status != types.TestStateObsolete {
			pool[tc.TestCaseID] = true
		}
	}

	runs := map[string][]string{}
	for _, v := range fetchAll(t, mustGetTable(t, b, types.TestRunsTable)) {
		run := v.(*types.TestRun)
		runs[run.TestCaseID] = append(runs[run.TestCaseID], run.Result)
	}

	items := []*types.ScopeItem{
		seed.items[types.KindRequirement],
		seed.items[types.KindProcess],
		seed.items[types.KindScenario],
	}
	summary, err := calc.Compute(items, pool, runs)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// Requirement: 2/2 in pool -> covered. Process and scenario: 2/3 -> partial.
	if summary.Covered != 1 || summary.Partial != 2 || summary.NotCovered != 0 {
		t.Errorf("summary = %d covered, %d partial, %d not covered",
			summary.Covered, summary.Partial, summary.NotCovered)
	}

	reqCov := summary.Items[0]
	if reqCov.CoveragePct != 100.0 || reqCov.Status != types.CoverageCovered {
		t.Errorf("requirement item: %.1f%% %s", reqCov.CoveragePct, reqCov.Status)
	}
	procCov := summary.Items[1]
	if procCov.CoveragePct != 66.7 || procCov.Status != types.CoveragePartial {
		t.Errorf("process item: %.1f%% %s", procCov.CoveragePct, procCov.Status)
	}

	// Statuses are persisted on the stored scope items.
	scopeItems := mustGetTable(t, b, types.ScopeItemsTable)
	for _, item := range items {
		v, err := scopeItems.Get(item.ScopeItemID)
		if err != nil {
			t.Fatalf("Get scope item: %v", err)
		}
		stored := v.(*types.ScopeItem)
		if stored.CoverageStatus != item.CoverageStatus {
			t.Errorf("scope item %s stored status %q, computed %q",
				item.ScopeItemID, stored.CoverageStatus, item.CoverageStatus)
		}
	}
}

func TestJSONLRoundtripPreservesEngineResults(t *testing.T) {
	src := seededBackend(t)
	dir := t.TempDir()
	if _, err := src.ExportJSONL(dir); err != nil {
		t.Fatalf("ExportJSONL: %v", err)
	}

	dst := setupBackend(t)
	if _, err := dst.ImportJSONL(dir); err != nil {
		t.Fatalf("ImportJSONL: %v", err)
	}

	// The imported copy resolves the same anchor as the original.
	srcSeed := loadSeed(t, src)
	dstSeed := loadSeed(t, dst)
	resolver := trace.NewResolver(trace.NewStoreGraph(dst))
	anchor, err := resolver.ResolveAnchor(trace.AnchorInput{WorkItemID: dstSeed.workItem.WorkItemID})
	if err != nil {
		t.Fatalf("ResolveAnchor on imported data: %v", err)
	}
	if anchor != srcSeed.canonical.NodeID {
		t.Errorf("imported anchor = %q, want %q", anchor, srcSeed.canonical.NodeID)
	}
}

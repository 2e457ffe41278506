package sqlite

import (
	"testing"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

func TestSeed(t *testing.T) {
	b := attachedBackend(t)

	seeded, err := b.Seed()
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if !seeded {
		t.Fatal("Seed reported nothing written on empty database")
	}

	// The demo tree has one node per level, with BD9 at the canonical level.
	nodes, _ := b.GetTable(types.ProcessNodesTable)
	canonical, err := nodes.Fetch(map[string]any{"scope_code": "BD9"})
	if err != nil {
		t.Fatalf("Fetch canonical node failed: %v", err)
	}
	if len(canonical) != 1 {
		t.Fatalf("expected 1 BD9 node, got %d", len(canonical))
	}
	if lvl := canonical[0].(*types.ProcessNode).Level; lvl != types.CanonicalLevel {
		t.Errorf("BD9 node at level %d", lvl)
	}

	scopeItems, _ := b.GetTable(types.ScopeItemsTable)
	items, err := scopeItems.Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch scope items failed: %v", err)
	}
	kinds := map[string]bool{}
	for _, it := range items {
		kinds[it.(*types.ScopeItem).Kind] = true
	}
	for _, kind := range []string{types.KindRequirement, types.KindProcess, types.KindScenario} {
		if !kinds[kind] {
			t.Errorf("seed missing scope item of kind %q", kind)
		}
	}

	// Second run is a no-op.
	seeded, err = b.Seed()
	if err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if seeded {
		t.Error("Seed wrote into a non-empty database")
	}
}

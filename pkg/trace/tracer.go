package trace

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// TracedTest is one test case discovered by scope tracing, tagged with a
// human-readable provenance string describing the path that reached it.
// Provenance is informational only and never used in comparisons.
type TracedTest struct {
	Test       *types.TestCase
	Provenance string
}

// Tracer discovers the test cases reachable from a scope item by walking
// the reference graph downward.
type Tracer struct {
	g Graph
}

// NewTracer returns a Tracer reading from the given graph.
func NewTracer(g Graph) *Tracer {
	return &Tracer{g: g}
}

// TraceScope returns the set of test cases reachable from the scope item,
// dispatched on its kind. A test case reachable via more than one sub-path
// appears exactly once, tagged with the first provenance encountered in
// the fixed traversal order. An unknown kind or a reference resolving to
// zero rows yields an empty slice, never an error.
func (t *Tracer) TraceScope(item *types.ScopeItem) ([]TracedTest, error) {
	set := newTraceSet()

	var err error
	switch item.Kind {
	case types.KindRequirement:
		err = t.traceRequirement(set, item.RefID, "requirement "+item.RefID)
	case types.KindProcess:
		err = t.traceProcess(set, item.RefID)
	case types.KindScenario:
		err = t.traceScenario(set, item.RefID)
	}
	if err != nil {
		return nil, err
	}
	return set.out, nil
}

// traceRequirement collects test cases reachable from one requirement:
// directly referencing tests first, then tests reached through the
// requirement's work items, then through its config items.
func (t *Tracer) traceRequirement(set *traceSet, requirementID, prefix string) error {
	direct, err := t.g.TestCasesByRequirement(requirementID)
	if err != nil {
		return err
	}
	for _, tc := range direct {
		set.add(tc, prefix+" -> direct")
	}

	workItems, err := t.g.WorkItemsByRequirement(requirementID)
	if err != nil {
		return err
	}
	for _, w := range workItems {
		tests, err := t.g.TestCasesByWorkItem(w.WorkItemID)
		if err != nil {
			return err
		}
		for _, tc := range tests {
			set.add(tc, fmt.Sprintf("%s -> work item %s", prefix, w.WorkItemID))
		}
	}

	configItems, err := t.g.ConfigItemsByRequirement(requirementID)
	if err != nil {
		return err
	}
	for _, c := range configItems {
		tests, err := t.g.TestCasesByConfigItem(c.ConfigItemID)
		if err != nil {
			return err
		}
		for _, tc := range tests {
			set.add(tc, fmt.Sprintf("%s -> config item %s", prefix, c.ConfigItemID))
		}
	}

	return nil
}

// traceProcess collects test cases for a canonical process node. The
// reference may be a node id or a denormalized scope code. Two independent
// sub-paths are tried and unioned: explicit requirement mappings (older
// imports), then requirements carrying the node's scope code directly.
func (t *Tracer) traceProcess(set *traceSet, ref string) error {
	node, err := t.g.ProcessNode(ref)
	if err != nil {
		if !isMissing(err) {
			return err
		}
		node, err = t.g.ProcessNodeByScopeCode(ref)
		if err != nil {
			if !isMissing(err) {
				return err
			}
			return nil
		}
	}

	label := node.ScopeCode
	if label == "" {
		label = node.NodeID
	}

	mappings, err := t.g.MappingsByNode(node.NodeID)
	if err != nil {
		return err
	}
	for _, m := range mappings {
		prefix := fmt.Sprintf("process %s -> mapping -> requirement %s", label, m.RequirementID)
		if err := t.traceRequirement(set, m.RequirementID, prefix); err != nil {
			return err
		}
	}

	if node.ScopeCode != "" {
		reqs, err := t.g.RequirementsByScopeCode(node.ScopeCode)
		if err != nil {
			return err
		}
		for _, r := range reqs {
			prefix := fmt.Sprintf("process %s -> scope code -> requirement %s", label, r.RequirementID)
			if err := t.traceRequirement(set, r.RequirementID, prefix); err != nil {
				return err
			}
		}
	}

	return nil
}

// traceScenario collects test cases for a whole scenario: every workshop
// it owns, every requirement raised in each workshop, then the requirement
// traversal for each.
func (t *Tracer) traceScenario(set *traceSet, scenarioID string) error {
	workshops, err := t.g.WorkshopsByScenario(scenarioID)
	if err != nil {
		return err
	}
	for _, ws := range workshops {
		reqs, err := t.g.RequirementsByWorkshop(ws.WorkshopID)
		if err != nil {
			return err
		}
		for _, r := range reqs {
			prefix := fmt.Sprintf("scenario %s -> workshop %s -> requirement %s",
				scenarioID, ws.WorkshopID, r.RequirementID)
			if err := t.traceRequirement(set, r.RequirementID, prefix); err != nil {
				return err
			}
		}
	}
	return nil
}

// traceSet accumulates traced tests keyed by test case id. The first
// provenance encountered wins; later duplicates are dropped, not merged.
type traceSet struct {
	seen map[string]bool
	out  []TracedTest
}

func newTraceSet() *traceSet {
	return &traceSet{seen: make(map[string]bool), out: []TracedTest{}}
}

func (s *traceSet) add(tc *types.TestCase, provenance string) {
	if s.seen[tc.TestCaseID] {
		return
	}
	s.seen[tc.TestCaseID] = true
	s.out = append(s.out, TracedTest{Test: tc, Provenance: provenance})
}

// isMissing reports whether err represents a missing or malformed
// reference rather than a store failure.
func isMissing(err error) bool {
	return errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID)
}

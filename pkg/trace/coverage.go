package trace

import (
	"math"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// ScopeCoverage holds the computed metrics for one scope item. All
// percentages are rounded to one decimal place and well-defined for empty
// sets.
type ScopeCoverage struct {
	ScopeItemID string
	Kind        string
	RefID       string
	Name        string

	Traced   int // test cases reachable from the scope item
	InPool   int // traced tests present in the active plan pool
	Executed int // in-pool tests with at least one run
	Passed   int // executed tests with at least one passing run

	CoveragePct  float64
	ExecutionPct float64
	PassRate     float64

	Status string // derived cached status
	Tests  []TracedTest
}

// Summary aggregates coverage across a collection of scope items.
type Summary struct {
	Covered    int
	Partial    int
	NotCovered int
	Items      []ScopeCoverage
}

// Calculator computes coverage metrics for scope items by combining the
// downward tracer with plan pool membership and execution results.
type Calculator struct {
	g      Graph
	tracer *Tracer
}

// NewCalculator returns a Calculator over the given graph.
func NewCalculator(g Graph) *Calculator {
	return &Calculator{g: g, tracer: NewTracer(g)}
}

// Compute produces per-item and aggregate coverage metrics. pool is the
// set of test case ids in the active plan; runs maps test case id to its
// execution results. For each item the derived status is written back
// through the graph as the cached coverage status. The write is idempotent
// and purely derived, so recomputing at any time is safe; two concurrent
// computations racing on the same item settle last-writer-wins without
// information loss.
func (c *Calculator) Compute(items []*types.ScopeItem, pool map[string]bool, runs map[string][]string) (*Summary, error) {
	summary := &Summary{Items: make([]ScopeCoverage, 0, len(items))}

	for _, item := range items {
		cov, err := c.computeItem(item, pool, runs)
		if err != nil {
			return nil, err
		}

		if err := c.g.SetCoverageStatus(item.ScopeItemID, cov.Status); err != nil {
			return nil, err
		}
		item.CoverageStatus = cov.Status

		switch cov.Status {
		case types.CoverageCovered:
			summary.Covered++
		case types.CoveragePartial:
			summary.Partial++
		default:
			summary.NotCovered++
		}
		summary.Items = append(summary.Items, cov)
	}

	return summary, nil
}

func (c *Calculator) computeItem(item *types.ScopeItem, pool map[string]bool, runs map[string][]string) (ScopeCoverage, error) {
	traced, err := c.tracer.TraceScope(item)
	if err != nil {
		return ScopeCoverage{}, err
	}

	cov := ScopeCoverage{
		ScopeItemID: item.ScopeItemID,
		Kind:        item.Kind,
		RefID:       item.RefID,
		Name:        item.Name,
		Traced:      len(traced),
		Tests:       traced,
	}

	for _, tt := range traced {
		id := tt.Test.TestCaseID
		if !pool[id] {
			continue
		}
		cov.InPool++
		results := runs[id]
		if len(results) == 0 {
			continue
		}
		cov.Executed++
		for _, res := range results {
			if res == types.ResultPass {
				cov.Passed++
				break
			}
		}
	}

	// An item with nothing to trace is trivially fully covered: no known
	// scope means no known gap.
	if cov.Traced == 0 {
		cov.CoveragePct = 100
	} else {
		cov.CoveragePct = pct(cov.InPool, cov.Traced)
	}
	cov.ExecutionPct = pct(cov.Executed, cov.InPool)
	cov.PassRate = pct(cov.Passed, cov.Executed)

	switch {
	case cov.CoveragePct >= 100:
		cov.Status = types.CoverageCovered
	case cov.CoveragePct > 0:
		cov.Status = types.CoveragePartial
	default:
		cov.Status = types.CoverageNotCovered
	}

	return cov, nil
}

// pct returns n/d as a percentage rounded to one decimal place, and 0 when
// the denominator is zero.
func pct(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(d)*1000) / 10
}

package trace

import (
	"github.com/mesh-intelligence/traceline/pkg/types"
)

// AnchorInput is the loosely-shaped payload anchor resolution accepts. Any
// subset of the references may be populated; an empty string means the
// reference is absent.
type AnchorInput struct {
	ProcessNodeID string
	WorkItemID    string
	ConfigItemID  string
	RequirementID string
}

// Resolver resolves test-related entities and creation payloads to the
// canonical-level process node they trace to.
type Resolver struct {
	g Graph
}

// NewResolver returns a Resolver reading from the given graph.
func NewResolver(g Graph) *Resolver {
	return &Resolver{g: g}
}

// ResolveAnchor maps the input to a single canonical-level node id, or ""
// if no reference chain reaches the canonical level. Candidate paths are
// tried in fixed priority order: explicit node, work item, config item,
// requirement. A reference that does not exist fails its own path only;
// resolution falls through to the next candidate. Resolution is a pure
// function of the current data graph.
func (r *Resolver) ResolveAnchor(in AnchorInput) (string, error) {
	strategies := []func(AnchorInput) (string, error){
		r.fromNode,
		r.fromWorkItem,
		r.fromConfigItem,
		r.fromRequirement,
	}
	for _, resolve := range strategies {
		anchor, err := resolve(in)
		if err != nil {
			return "", err
		}
		if anchor != "" {
			return anchor, nil
		}
	}
	return "", nil
}

// ResolveTestCase resolves an existing test case through the same priority
// order as a creation payload.
func (r *Resolver) ResolveTestCase(tc *types.TestCase) (string, error) {
	return r.ResolveAnchor(AnchorInput{
		ProcessNodeID: tc.ProcessNodeID,
		WorkItemID:    tc.WorkItemID,
		ConfigItemID:  tc.ConfigItemID,
		RequirementID: tc.RequirementID,
	})
}

// fromNode walks up from an explicit node reference.
func (r *Resolver) fromNode(in AnchorInput) (string, error) {
	if in.ProcessNodeID == "" {
		return "", nil
	}
	return r.walkUp(in.ProcessNodeID)
}

// fromWorkItem follows a work item to its requirement, then resolves the
// requirement chain.
func (r *Resolver) fromWorkItem(in AnchorInput) (string, error) {
	if in.WorkItemID == "" {
		return "", nil
	}
	w, err := r.g.WorkItem(in.WorkItemID)
	if err != nil {
		return "", pathFail(err)
	}
	if w.RequirementID == "" {
		return "", nil
	}
	return r.resolveRequirement(w.RequirementID)
}

// fromConfigItem is symmetric to fromWorkItem.
func (r *Resolver) fromConfigItem(in AnchorInput) (string, error) {
	if in.ConfigItemID == "" {
		return "", nil
	}
	c, err := r.g.ConfigItem(in.ConfigItemID)
	if err != nil {
		return "", pathFail(err)
	}
	if c.RequirementID == "" {
		return "", nil
	}
	return r.resolveRequirement(c.RequirementID)
}

func (r *Resolver) fromRequirement(in AnchorInput) (string, error) {
	if in.RequirementID == "" {
		return "", nil
	}
	return r.resolveRequirement(in.RequirementID)
}

// resolveRequirement tries the requirement's reference chains in order:
// denormalized scope code, direct level-4 node, then process step.
func (r *Resolver) resolveRequirement(requirementID string) (string, error) {
	req, err := r.g.Requirement(requirementID)
	if err != nil {
		return "", pathFail(err)
	}

	if req.ScopeItemCode != "" {
		node, err := r.g.ProcessNodeByScopeCode(req.ScopeItemCode)
		if err != nil {
			if !isMissing(err) {
				return "", err
			}
		} else {
			anchor, err := r.walkUp(node.NodeID)
			if err != nil || anchor != "" {
				return anchor, err
			}
		}
	}

	if req.ProcessNodeID != "" {
		anchor, err := r.walkUp(req.ProcessNodeID)
		if err != nil || anchor != "" {
			return anchor, err
		}
	}

	if req.ProcessStepID != "" {
		step, err := r.g.ProcessStep(req.ProcessStepID)
		if err != nil {
			return "", pathFail(err)
		}
		return r.walkUp(step.ProcessNodeID)
	}

	return "", nil
}

// walkUp follows the parent chain from the given node until a node at the
// canonical level is found or the chain is exhausted. A visited set guards
// against malformed cycles in stored data: on revisit the walk aborts and
// the path fails. Depth is bounded by the hierarchy, so the walk costs one
// lookup per hop.
func (r *Resolver) walkUp(nodeID string) (string, error) {
	visited := make(map[string]bool, types.MaxLevel)
	cur := nodeID
	for cur != "" {
		if visited[cur] {
			return "", nil
		}
		visited[cur] = true

		node, err := r.g.ProcessNode(cur)
		if err != nil {
			return "", pathFail(err)
		}
		if node.IsCanonical() {
			return node.NodeID, nil
		}
		cur = node.ParentID
	}
	return "", nil
}

// pathFail converts a missing reference into a failed path ("" result)
// while letting real store failures propagate.
func pathFail(err error) error {
	if isMissing(err) {
		return nil
	}
	return err
}

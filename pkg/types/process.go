package types

import "time"

// Hierarchy levels. The tree is bounded at four levels: scenario-level
// groupings (1), process groups (2), scope items (3), and process variants
// (4). Level 3 is the canonical anchor level for coverage and layer-policy
// decisions.
const (
	LevelScenario     = 1
	LevelProcessGroup = 2
	LevelScopeItem    = 3
	LevelVariant      = 4

	// CanonicalLevel is the hierarchy depth that acts as the universal
	// anchor for coverage tracing.
	CanonicalLevel = LevelScopeItem

	// MaxLevel bounds every parent-chain walk.
	MaxLevel = LevelVariant
)

// Scenario is a top-level grouping: one end-to-end business process
// (e.g. Order-to-Cash) owning workshops and a process node tree.
type Scenario struct {
	ScenarioID  string    `json:"scenario_id"`           // UUID v7, generated on creation.
	Name        string    `json:"name"`                  // Human-readable name (required, non-empty).
	Description string    `json:"description,omitempty"` // Optional free text.
	CreatedAt   time.Time `json:"created_at"`            // Timestamp of creation.
}

// Workshop is a fit-to-standard session owned by a scenario. Requirements
// are raised against workshops; process steps are walked through in them.
type Workshop struct {
	WorkshopID string    `json:"workshop_id"` // UUID v7, generated on creation.
	ScenarioID string    `json:"scenario_id"` // Owning scenario (required).
	Name       string    `json:"name"`        // Human-readable name (required, non-empty).
	CreatedAt  time.Time `json:"created_at"`  // Timestamp of creation.
}

// ProcessNode is one node of the process hierarchy tree.
// Every node except level-1 roots has a parent whose level is exactly one
// less; the tree is acyclic with depth bounded at MaxLevel.
type ProcessNode struct {
	NodeID     string    `json:"node_id"`               // UUID v7, generated on creation.
	ParentID   string    `json:"parent_id,omitempty"`   // Parent node; empty only at level 1.
	Level      int       `json:"level"`                 // 1..MaxLevel.
	Name       string    `json:"name"`                  // Human-readable name (required, non-empty).
	ScopeCode  string    `json:"scope_code,omitempty"`  // Denormalized scope item code; non-empty only at CanonicalLevel.
	ScenarioID string    `json:"scenario_id,omitempty"` // Owning tree root grouping.
	CreatedAt  time.Time `json:"created_at"`            // Timestamp of creation.
}

// IsCanonical reports whether the node sits at the canonical anchor level.
func (n *ProcessNode) IsCanonical() bool {
	return n.Level == CanonicalLevel
}

// Validate checks structural invariants on the node.
func (n *ProcessNode) Validate() error {
	if n.Name == "" {
		return ErrInvalidName
	}
	if n.Level < LevelScenario || n.Level > MaxLevel {
		return ErrInvalidLevel
	}
	if n.Level == LevelScenario && n.ParentID != "" {
		return ErrInvalidData
	}
	if n.Level > LevelScenario && n.ParentID == "" {
		return ErrInvalidData
	}
	return nil
}

// ProcessStep is a single step of a level-4 process variant, recorded
// against the workshop it was walked through in. Steps reference level-4
// nodes only; the canonical level is reached by walking up.
type ProcessStep struct {
	StepID        string    `json:"step_id"`         // UUID v7, generated on creation.
	ProcessNodeID string    `json:"process_node_id"` // Level-4 node this step belongs to (required).
	WorkshopID    string    `json:"workshop_id"`     // Workshop the step was captured in (required).
	Name          string    `json:"name"`            // Human-readable name (required, non-empty).
	CreatedAt     time.Time `json:"created_at"`      // Timestamp of creation.
}

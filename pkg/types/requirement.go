package types

import "time"

// Requirement states. A requirement progresses through these states during
// its delivery lifecycle.
const (
	RequirementStateDraft      = "draft"
	RequirementStateApproved   = "approved"
	RequirementStateInDelivery = "in_delivery"
	RequirementStateDelivered  = "delivered"
	RequirementStateDropped    = "dropped"
)

// validRequirementStates is the set of recognized requirement state values.
var validRequirementStates = map[string]bool{
	RequirementStateDraft:      true,
	RequirementStateApproved:   true,
	RequirementStateInDelivery: true,
	RequirementStateDelivered:  true,
	RequirementStateDropped:    true,
}

// Requirement is a delta requirement raised during fit-to-standard.
// Any subset of its process references may be populated; none are
// guaranteed. The anchor resolver walks whichever chain is present.
type Requirement struct {
	RequirementID string    `json:"requirement_id"`            // UUID v7, generated on creation.
	Name          string    `json:"name"`                      // Human-readable name (required, non-empty).
	Status        string    `json:"status"`                    // One of the RequirementState constants.
	ProcessNodeID string    `json:"process_node_id,omitempty"` // Optional direct reference to a level-4 node.
	ProcessStepID string    `json:"process_step_id,omitempty"` // Optional reference to a process step.
	ScopeItemCode string    `json:"scope_item_code,omitempty"` // Optional denormalized level-3 scope code.
	WorkshopID    string    `json:"workshop_id,omitempty"`     // Optional owning workshop.
	CreatedAt     time.Time `json:"created_at"`                // Timestamp of creation.
	UpdatedAt     time.Time `json:"updated_at"`                // Timestamp of last modification.
}

// SetStatus sets the requirement status to the given value.
// Returns ErrInvalidStatus if the status is not recognized. Idempotent.
func (r *Requirement) SetStatus(status string) error {
	if !validRequirementStates[status] {
		return ErrInvalidStatus
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

// RequirementMapping is an explicit many-to-many record tying a requirement
// to a canonical-level process node. Older project imports carry these
// instead of the denormalized scope code on the requirement itself.
type RequirementMapping struct {
	MappingID     string    `json:"mapping_id"`      // UUID v7, generated on creation.
	RequirementID string    `json:"requirement_id"`  // Mapped requirement (required).
	ProcessNodeID string    `json:"process_node_id"` // Canonical-level node (required).
	CreatedAt     time.Time `json:"created_at"`      // Timestamp of creation.
}

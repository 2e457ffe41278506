package types

import "time"

// Scope item kinds. Each kind names the traversal strategy used to discover
// the tests that count against the item.
const (
	KindRequirement = "requirement" // ref is a requirement id
	KindProcess     = "process"     // ref is a canonical node id or scope code
	KindScenario    = "scenario"    // ref is a top-level scenario id
)

// validKinds is the set of recognized scope item kinds.
var validKinds = map[string]bool{
	KindRequirement: true,
	KindProcess:     true,
	KindScenario:    true,
}

// IsValidKind reports whether kind is a recognized scope item kind.
func IsValidKind(kind string) bool {
	return validKinds[kind]
}

// Cached coverage statuses, derived by the coverage calculator. The cached
// value is recomputable at any time from current data and never
// authoritative.
const (
	CoverageNotCovered = "not_covered"
	CoveragePartial    = "partial"
	CoverageCovered    = "covered"
)

var validCoverageStatuses = map[string]bool{
	CoverageNotCovered: true,
	CoveragePartial:    true,
	CoverageCovered:    true,
}

// IsValidCoverageStatus reports whether status is a recognized coverage
// status.
func IsValidCoverageStatus(status string) bool {
	return validCoverageStatuses[status]
}

// ScopeItem is one unit of required coverage: a requirement, a canonical
// process node, or a whole scenario that coverage is measured against.
type ScopeItem struct {
	ScopeItemID    string    `json:"scope_item_id"`   // UUID v7, generated on creation.
	Kind           string    `json:"kind"`            // One of the Kind constants.
	RefID          string    `json:"ref_id"`          // Referenced entity id (or scope code for KindProcess).
	Name           string    `json:"name"`            // Human-readable name (required, non-empty).
	CoverageStatus string    `json:"coverage_status"` // Cached status; one of the Coverage constants.
	CreatedAt      time.Time `json:"created_at"`      // Timestamp of creation.
	UpdatedAt      time.Time `json:"updated_at"`      // Timestamp of last modification.
}

// SetCoverageStatus sets the cached coverage status. Returns
// ErrInvalidCoverageStatus if the status is not recognized. Idempotent.
func (s *ScopeItem) SetCoverageStatus(status string) error {
	if !validCoverageStatuses[status] {
		return ErrInvalidCoverageStatus
	}
	s.CoverageStatus = status
	s.UpdatedAt = time.Now()
	return nil
}

// Validate checks the scope item kind, reference, and name.
func (s *ScopeItem) Validate() error {
	if s.Name == "" {
		return ErrInvalidName
	}
	if !validKinds[s.Kind] {
		return ErrInvalidKind
	}
	if s.RefID == "" {
		return ErrInvalidData
	}
	return nil
}

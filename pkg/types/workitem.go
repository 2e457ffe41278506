package types

import "time"

// WRICEF work item categories.
const (
	CategoryWorkflow    = "workflow"
	CategoryReport      = "report"
	CategoryInterface   = "interface"
	CategoryConversion  = "conversion"
	CategoryEnhancement = "enhancement"
	CategoryForm        = "form"
)

// validCategories is the set of recognized work item categories.
var validCategories = map[string]bool{
	CategoryWorkflow:    true,
	CategoryReport:      true,
	CategoryInterface:   true,
	CategoryConversion:  true,
	CategoryEnhancement: true,
	CategoryForm:        true,
}

// Work item and config item states.
const (
	ItemStateOpen       = "open"
	ItemStateInProgress = "in_progress"
	ItemStateCompleted  = "completed"
	ItemStateCancelled  = "cancelled"
)

var validItemStates = map[string]bool{
	ItemStateOpen:       true,
	ItemStateInProgress: true,
	ItemStateCompleted:  true,
	ItemStateCancelled:  true,
}

// WorkItem is a WRICEF development object. It may trace to a requirement;
// a work item without one is local development outside the delta scope.
type WorkItem struct {
	WorkItemID    string    `json:"work_item_id"`             // UUID v7, generated on creation.
	Name          string    `json:"name"`                     // Human-readable name (required, non-empty).
	Category      string    `json:"category"`                 // One of the WRICEF category constants.
	RequirementID string    `json:"requirement_id,omitempty"` // Optional originating requirement.
	Status        string    `json:"status"`                   // One of the ItemState constants.
	CreatedAt     time.Time `json:"created_at"`               // Timestamp of creation.
	UpdatedAt     time.Time `json:"updated_at"`               // Timestamp of last modification.
}

// SetStatus sets the work item status. Returns ErrInvalidStatus if the
// status is not recognized. Idempotent.
func (w *WorkItem) SetStatus(status string) error {
	if !validItemStates[status] {
		return ErrInvalidStatus
	}
	w.Status = status
	w.UpdatedAt = time.Now()
	return nil
}

// Validate checks the work item category and name.
func (w *WorkItem) Validate() error {
	if w.Name == "" {
		return ErrInvalidName
	}
	if !validCategories[w.Category] {
		return ErrInvalidCategory
	}
	return nil
}

// ConfigItem is an IMG configuration object. Like a work item it may trace
// to a requirement.
type ConfigItem struct {
	ConfigItemID  string    `json:"config_item_id"`           // UUID v7, generated on creation.
	Name          string    `json:"name"`                     // Human-readable name (required, non-empty).
	RequirementID string    `json:"requirement_id,omitempty"` // Optional originating requirement.
	Status        string    `json:"status"`                   // One of the ItemState constants.
	CreatedAt     time.Time `json:"created_at"`               // Timestamp of creation.
	UpdatedAt     time.Time `json:"updated_at"`               // Timestamp of last modification.
}

// SetStatus sets the config item status. Returns ErrInvalidStatus if the
// status is not recognized. Idempotent.
func (c *ConfigItem) SetStatus(status string) error {
	if !validItemStates[status] {
		return ErrInvalidStatus
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

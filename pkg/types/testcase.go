package types

import "time"

// Test layers. The layer classifies where in the test pyramid a case sits
// and drives the anchor policy: process-level layers cannot be reported
// without a canonical anchor.
const (
	LayerUnit        = "unit"
	LayerString      = "string"
	LayerSIT         = "sit"
	LayerUAT         = "uat"
	LayerRegression  = "regression"
	LayerSmoke       = "smoke"
	LayerPerformance = "performance"
)

// validLayers is the set of recognized test layers.
var validLayers = map[string]bool{
	LayerUnit:        true,
	LayerString:      true,
	LayerSIT:         true,
	LayerUAT:         true,
	LayerRegression:  true,
	LayerSmoke:       true,
	LayerPerformance: true,
}

// IsValidLayer reports whether layer is a recognized test layer.
func IsValidLayer(layer string) bool {
	return validLayers[layer]
}

// Test case states.
const (
	TestStateDraft       = "draft"
	TestStateReady       = "ready"
	TestStateInExecution = "in_execution"
	TestStateCompleted   = "completed"
	TestStateObsolete    = "obsolete"
)

var validTestStates = map[string]bool{
	TestStateDraft:       true,
	TestStateReady:       true,
	TestStateInExecution: true,
	TestStateCompleted:   true,
	TestStateObsolete:    true,
}

// TestCase is a test artifact. Any subset of its upstream references may be
// populated; the anchor resolver walks whichever chain is present.
type TestCase struct {
	TestCaseID    string    `json:"test_case_id"`              // UUID v7, generated on creation.
	Name          string    `json:"name"`                      // Human-readable name (required, non-empty).
	Layer         string    `json:"layer"`                     // One of the Layer constants.
	Status        string    `json:"status"`                    // One of the TestState constants.
	ProcessNodeID string    `json:"process_node_id,omitempty"` // Optional canonical-level anchor node.
	WorkItemID    string    `json:"work_item_id,omitempty"`    // Optional work item under test.
	ConfigItemID  string    `json:"config_item_id,omitempty"`  // Optional config item under test.
	RequirementID string    `json:"requirement_id,omitempty"`  // Optional requirement under test.
	CreatedAt     time.Time `json:"created_at"`                // Timestamp of creation.
	UpdatedAt     time.Time `json:"updated_at"`                // Timestamp of last modification.
}

// SetStatus sets the test case status. Returns ErrInvalidStatus if the
// status is not recognized. Idempotent.
func (t *TestCase) SetStatus(status string) error {
	if !validTestStates[status] {
		return ErrInvalidStatus
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return nil
}

// Validate checks the test case layer and name.
func (t *TestCase) Validate() error {
	if t.Name == "" {
		return ErrInvalidName
	}
	if !validLayers[t.Layer] {
		return ErrInvalidLayer
	}
	return nil
}

// Test run results.
const (
	ResultPass    = "pass"
	ResultFail    = "fail"
	ResultBlocked = "blocked"
)

var validResults = map[string]bool{
	ResultPass:    true,
	ResultFail:    true,
	ResultBlocked: true,
}

// TestRun is a single execution record for a test case.
type TestRun struct {
	RunID      string    `json:"run_id"`       // UUID v7, generated on creation.
	TestCaseID string    `json:"test_case_id"` // Executed test case (required).
	Result     string    `json:"result"`       // One of the Result constants.
	ExecutedAt time.Time `json:"executed_at"`  // Timestamp of execution.
}

// SetResult sets the run result. Returns ErrInvalidResult if the result is
// not recognized.
func (r *TestRun) SetResult(result string) error {
	if !validResults[result] {
		return ErrInvalidResult
	}
	r.Result = result
	return nil
}

package trace

import (
	"fmt"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// Anchor policies. Each test layer maps to exactly one policy tier.
const (
	PolicyRequired    = "required"
	PolicyRecommended = "recommended"
	PolicyOptional    = "optional"
)

// layerPolicies maps test layers to anchor policies. Process-level layers
// (SIT, UAT, regression) cannot be reported against scope without an
// anchor, so creation fails without one. String and unit tests benefit
// from an anchor but are not blocked. Smoke and performance tests run
// cross-process and need none. Unknown layers fall back to optional.
var layerPolicies = map[string]string{
	types.LayerSIT:         PolicyRequired,
	types.LayerUAT:         PolicyRequired,
	types.LayerRegression:  PolicyRequired,
	types.LayerString:      PolicyRecommended,
	types.LayerUnit:        PolicyRecommended,
	types.LayerSmoke:       PolicyOptional,
	types.LayerPerformance: PolicyOptional,
}

// PolicyFor returns the anchor policy for the given test layer.
func PolicyFor(layer string) string {
	if p, ok := layerPolicies[layer]; ok {
		return p
	}
	return PolicyOptional
}

// PolicyError is the rejection returned when a required anchor is missing.
type PolicyError struct {
	Layer string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf(
		"%s test cases require a process anchor: supply a canonical process node, or a work item, config item, or requirement that chains to one",
		e.Layer)
}

// ValidateAnchor decides whether a test case with the given layer may be
// created with the given resolved anchor ("" means unresolved). It returns
// a *PolicyError when the layer requires an anchor and none was resolved,
// and nil otherwise. The decision is pure: callers resolve the anchor
// first and pass the result in.
func ValidateAnchor(layer, anchor string) error {
	if PolicyFor(layer) == PolicyRequired && anchor == "" {
		return &PolicyError{Layer: layer}
	}
	return nil
}

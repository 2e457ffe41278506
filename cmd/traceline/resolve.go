package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traceline/pkg/trace"
)

var (
	flagNode        string
	flagWorkItem    string
	flagConfigItem  string
	flagRequirement string
	flagLayer       string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve references to their canonical process anchor",
	Long: `Resolve walks the reference chains of the given entities up the process
hierarchy and reports the canonical (level-3) process node they trace to.
Candidates are tried in priority order: --node, --work-item, --config-item,
--requirement. With --layer the anchor is also checked against the layer's
anchor policy.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&flagNode, "node", "", "process node id")
	resolveCmd.Flags().StringVar(&flagWorkItem, "work-item", "", "work item id")
	resolveCmd.Flags().StringVar(&flagConfigItem, "config-item", "", "config item id")
	resolveCmd.Flags().StringVar(&flagRequirement, "requirement", "", "requirement id")
	resolveCmd.Flags().StringVar(&flagLayer, "layer", "", "test layer to check the anchor policy for")
}

// resolveResult is the JSON shape of a resolve invocation.
type resolveResult struct {
	Anchor  string `json:"anchor,omitempty"`
	Layer   string `json:"layer,omitempty"`
	Policy  string `json:"policy,omitempty"`
	Verdict string `json:"verdict,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	in := trace.AnchorInput{
		ProcessNodeID: flagNode,
		WorkItemID:    flagWorkItem,
		ConfigItemID:  flagConfigItem,
		RequirementID: flagRequirement,
	}
	if in == (trace.AnchorInput{}) {
		return errors.New("supply at least one of --node, --work-item, --config-item, --requirement")
	}

	backend, g, err := attachGraph()
	if err != nil {
		return err
	}
	defer backend.Detach()

	anchor, err := trace.NewResolver(g).ResolveAnchor(in)
	if err != nil {
		return fmt.Errorf("resolve anchor: %w", err)
	}

	result := resolveResult{Anchor: anchor}
	if flagLayer != "" {
		result.Layer = flagLayer
		result.Policy = trace.PolicyFor(flagLayer)
		if err := trace.ValidateAnchor(flagLayer, anchor); err != nil {
			var policyErr *trace.PolicyError
			if !errors.As(err, &policyErr) {
				return err
			}
			result.Verdict = policyErr.Error()
		} else {
			result.Verdict = "ok"
		}
	}

	if flagJSON {
		return printJSON(cmd, result)
	}

	out := cmd.OutOrStdout()
	if anchor == "" {
		fmt.Fprintln(out, "anchor: (none)")
	} else {
		fmt.Fprintf(out, "anchor: %s\n", anchor)
	}
	if flagLayer != "" {
		fmt.Fprintf(out, "layer: %s (%s)\n", result.Layer, result.Policy)
		fmt.Fprintf(out, "verdict: %s\n", result.Verdict)
	}
	return nil
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traceline/pkg/trace"
	"github.com/mesh-intelligence/traceline/pkg/types"
)

var traceCmd = &cobra.Command{
	Use:   "trace <scope-item-id>",
	Short: "List the test cases that trace to a scope item",
	Long: `Trace walks downward from a scope item (a requirement, a canonical
process node, or a scenario) and lists every test case that counts against
it, each with the provenance path it was discovered through.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

// tracedTestOut is the JSON shape of one traced test.
type tracedTestOut struct {
	TestCaseID string `json:"test_case_id"`
	Name       string `json:"name"`
	Layer      string `json:"layer"`
	Status     string `json:"status"`
	Provenance string `json:"provenance"`
}

func runTrace(cmd *cobra.Command, args []string) error {
	backend, g, err := attachGraph()
	if err != nil {
		return err
	}
	defer backend.Detach()

	scopeItems, err := backend.GetTable(types.ScopeItemsTable)
	if err != nil {
		return err
	}
	v, err := scopeItems.Get(args[0])
	if err != nil {
		return fmt.Errorf("scope item %s: %w", args[0], err)
	}
	item := v.(*types.ScopeItem)

	traced, err := trace.NewTracer(g).TraceScope(item)
	if err != nil {
		return fmt.Errorf("trace scope: %w", err)
	}

	if flagJSON {
		out := make([]tracedTestOut, 0, len(traced))
		for _, tt := range traced {
			out = append(out, tracedTestOut{
				TestCaseID: tt.Test.TestCaseID,
				Name:       tt.Test.Name,
				Layer:      tt.Test.Layer,
				Status:     tt.Test.Status,
				Provenance: tt.Provenance,
			})
		}
		return printJSON(cmd, out)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s (%s %s): %d test case(s)\n", item.Name, item.Kind, item.RefID, len(traced))
	if len(traced) > 0 {
		fmt.Fprintln(w, "ID\tNAME\tLAYER\tSTATUS\tPROVENANCE")
		for _, tt := range traced {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				tt.Test.TestCaseID, tt.Test.Name, tt.Test.Layer, tt.Test.Status, tt.Provenance)
		}
	}
	return w.Flush()
}

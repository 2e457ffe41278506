package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traceline/internal/sqlite"
	"github.com/mesh-intelligence/traceline/pkg/trace"
	"github.com/mesh-intelligence/traceline/pkg/types"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Compute coverage for all scope items",
	Long: `Coverage traces every scope item to its test cases, intersects them
with the active test pool, folds in execution results, and reports coverage,
execution, and pass-rate percentages per item. The derived status is written
back to each scope item.

The pool is every test case that is not draft or obsolete.`,
	RunE: runCoverage,
}

func runCoverage(cmd *cobra.Command, args []string) error {
	backend, g, err := attachGraph()
	if err != nil {
		return err
	}
	defer backend.Detach()

	rows, err := fetchAll(backend, types.ScopeItemsTable)
	if err != nil {
		return fmt.Errorf("loading scope items: %w", err)
	}
	items := make([]*types.ScopeItem, 0, len(rows))
	for _, v := range rows {
		items = append(items, v.(*types.ScopeItem))
	}

	pool, err := loadPool(backend)
	if err != nil {
		return err
	}
	runs, err := loadRuns(backend)
	if err != nil {
		return err
	}

	summary, err := trace.NewCalculator(g).Compute(items, pool, runs)
	if err != nil {
		return fmt.Errorf("compute coverage: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, summary)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tTRACED\tIN POOL\tCOVERAGE\tEXECUTION\tPASS RATE\tSTATUS")
	for _, item := range summary.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f%%\t%.1f%%\t%.1f%%\t%s\n",
			item.Name, item.Kind, item.Traced, item.InPool,
			item.CoveragePct, item.ExecutionPct, item.PassRate, item.Status)
	}
	fmt.Fprintf(w, "\ncovered: %d, partial: %d, not covered: %d\n",
		summary.Covered, summary.Partial, summary.NotCovered)
	return w.Flush()
}

// loadPool returns the active test pool: every test case that is neither a
// draft nor obsolete.
func loadPool(backend *sqlite.Backend) (map[string]bool, error) {
	tbl, err := backend.GetTable(types.TestCasesTable)
	if err != nil {
		return nil, err
	}
	rows, err := tbl.Fetch(nil)
	if err != nil {
		return nil, fmt.Errorf("loading test cases: %w", err)
	}

	pool := make(map[string]bool, len(rows))
	for _, v := range rows {
		tc := v.(*types.TestCase)
		if tc.Status == types.TestStateDraft || tc.Status == types.TestStateObsolete {
			continue
		}
		pool[tc.TestCaseID] = true
	}
	return pool, nil
}

// loadRuns groups execution results by test case id, in execution order.
func loadRuns(backend *sqlite.Backend) (map[string][]string, error) {
	tbl, err := backend.GetTable(types.TestRunsTable)
	if err != nil {
		return nil, err
	}
	rows, err := tbl.Fetch(nil)
	if err != nil {
		return nil, fmt.Errorf("loading test runs: %w", err)
	}

	runs := make(map[string][]string)
	for _, v := range rows {
		run := v.(*types.TestRun)
		runs[run.TestCaseID] = append(runs[run.TestCaseID], run.Result)
	}
	return runs, nil
}

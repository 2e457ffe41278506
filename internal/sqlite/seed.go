// Demo dataset seeding for first-run evaluation.
package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/traceline/pkg/types"
)

// Seed loads a small Order-to-Cash demo dataset: a scenario with a four-level
// process tree, a requirement chain through a WRICEF item, test cases on
// several layers, and scope items of each kind. Seeding only runs against an
// empty database and reports whether anything was written.
func (b *Backend) Seed() (bool, error) {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return false, types.ErrStoreDetached
	}
	var count int
	err := b.db.QueryRow("SELECT COUNT(*) FROM scenarios").Scan(&count)
	b.mu.RUnlock()
	if err != nil {
		return false, fmt.Errorf("counting scenarios: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	scenarios, err := b.GetTable(types.ScenariosTable)
	if err != nil {
		return false, err
	}
	scenarioID, err := scenarios.Set("", &types.Scenario{
		Name:        "Order-to-Cash",
		Description: "End-to-end sales order processing",
	})
	if err != nil {
		return false, fmt.Errorf("seeding scenario: %w", err)
	}

	workshops, err := b.GetTable(types.WorkshopsTable)
	if err != nil {
		return false, err
	}
	workshopID, err := workshops.Set("", &types.Workshop{
		ScenarioID: scenarioID,
		Name:       "Fit-to-Standard: Sales",
	})
	if err != nil {
		return false, fmt.Errorf("seeding workshop: %w", err)
	}

	nodes, err := b.GetTable(types.ProcessNodesTable)
	if err != nil {
		return false, err
	}
	l1, err := nodes.Set("", &types.ProcessNode{
		Level: types.LevelScenario, Name: "Order-to-Cash", ScenarioID: scenarioID,
	})
	if err != nil {
		return false, fmt.Errorf("seeding level 1 node: %w", err)
	}
	l2, err := nodes.Set("", &types.ProcessNode{
		ParentID: l1, Level: types.LevelProcessGroup, Name: "Sell from Stock", ScenarioID: scenarioID,
	})
	if err != nil {
		return false, fmt.Errorf("seeding level 2 node: %w", err)
	}
	l3, err := nodes.Set("", &types.ProcessNode{
		ParentID: l2, Level: types.LevelScopeItem, Name: "Sell from Stock (BD9)",
		ScopeCode: "BD9", ScenarioID: scenarioID,
	})
	if err != nil {
		return false, fmt.Errorf("seeding level 3 node: %w", err)
	}
	l4, err := nodes.Set("", &types.ProcessNode{
		ParentID: l3, Level: types.LevelVariant, Name: "Standard Sales Order", ScenarioID: scenarioID,
	})
	if err != nil {
		return false, fmt.Errorf("seeding level 4 node: %w", err)
	}

	steps, err := b.GetTable(types.ProcessStepsTable)
	if err != nil {
		return false, err
	}
	stepID, err := steps.Set("", &types.ProcessStep{
		ProcessNodeID: l4, WorkshopID: workshopID, Name: "Create sales order",
	})
	if err != nil {
		return false, fmt.Errorf("seeding process step: %w", err)
	}

	requirements, err := b.GetTable(types.RequirementsTable)
	if err != nil {
		return false, err
	}
	reqCode, err := requirements.Set("", &types.Requirement{
		Name:          "Custom pricing for key accounts",
		Status:        types.RequirementStateApproved,
		ScopeItemCode: "BD9",
		WorkshopID:    workshopID,
	})
	if err != nil {
		return false, fmt.Errorf("seeding requirement: %w", err)
	}
	reqStep, err := requirements.Set("", &types.Requirement{
		Name:          "Order confirmation output form",
		Status:        types.RequirementStateInDelivery,
		ProcessStepID: stepID,
		WorkshopID:    workshopID,
	})
	if err != nil {
		return false, fmt.Errorf("seeding requirement: %w", err)
	}

	mappings, err := b.GetTable(types.RequirementMappingsTable)
	if err != nil {
		return false, err
	}
	if _, err := mappings.Set("", &types.RequirementMapping{
		RequirementID: reqStep, ProcessNodeID: l3,
	}); err != nil {
		return false, fmt.Errorf("seeding requirement mapping: %w", err)
	}

	workItems, err := b.GetTable(types.WorkItemsTable)
	if err != nil {
		return false, err
	}
	wiID, err := workItems.Set("", &types.WorkItem{
		Name:          "Pricing user exit",
		Category:      types.CategoryEnhancement,
		RequirementID: reqCode,
		Status:        types.ItemStateInProgress,
	})
	if err != nil {
		return false, fmt.Errorf("seeding work item: %w", err)
	}

	configItems, err := b.GetTable(types.ConfigItemsTable)
	if err != nil {
		return false, err
	}
	ciID, err := configItems.Set("", &types.ConfigItem{
		Name:          "Output determination for order confirmation",
		RequirementID: reqStep,
		Status:        types.ItemStateOpen,
	})
	if err != nil {
		return false, fmt.Errorf("seeding config item: %w", err)
	}

	testCases, err := b.GetTable(types.TestCasesTable)
	if err != nil {
		return false, err
	}
	tcUnit, err := testCases.Set("", &types.TestCase{
		Name: "Pricing exit unit test", Layer: types.LayerUnit,
		Status: types.TestStateReady, WorkItemID: wiID,
	})
	if err != nil {
		return false, fmt.Errorf("seeding test case: %w", err)
	}
	tcSIT, err := testCases.Set("", &types.TestCase{
		Name: "Key account order end-to-end", Layer: types.LayerSIT,
		Status: types.TestStateReady, RequirementID: reqCode,
	})
	if err != nil {
		return false, fmt.Errorf("seeding test case: %w", err)
	}
	tcUAT, err := testCases.Set("", &types.TestCase{
		Name: "Order confirmation output check", Layer: types.LayerUAT,
		Status: types.TestStateDraft, ConfigItemID: ciID,
	})
	if err != nil {
		return false, fmt.Errorf("seeding test case: %w", err)
	}
	if _, err := testCases.Set("", &types.TestCase{
		Name: "BD9 regression pack", Layer: types.LayerRegression,
		Status: types.TestStateReady, ProcessNodeID: l3,
	}); err != nil {
		return false, fmt.Errorf("seeding test case: %w", err)
	}

	runs, err := b.GetTable(types.TestRunsTable)
	if err != nil {
		return false, err
	}
	for _, run := range []*types.TestRun{
		{TestCaseID: tcUnit, Result: types.ResultPass},
		{TestCaseID: tcSIT, Result: types.ResultFail},
		{TestCaseID: tcSIT, Result: types.ResultPass},
		{TestCaseID: tcUAT, Result: types.ResultBlocked},
	} {
		if _, err := runs.Set("", run); err != nil {
			return false, fmt.Errorf("seeding test run: %w", err)
		}
	}

	scopeItems, err := b.GetTable(types.ScopeItemsTable)
	if err != nil {
		return false, err
	}
	for _, item := range []*types.ScopeItem{
		{Kind: types.KindRequirement, RefID: reqCode, Name: "REQ custom pricing"},
		{Kind: types.KindProcess, RefID: "BD9", Name: "Scope item BD9"},
		{Kind: types.KindScenario, RefID: scenarioID, Name: "Order-to-Cash scenario"},
	} {
		if _, err := scopeItems.Set("", item); err != nil {
			return false, fmt.Errorf("seeding scope item: %w", err)
		}
	}

	return true, nil
}

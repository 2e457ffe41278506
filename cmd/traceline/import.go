package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import JSONL files into the database",
	Long: `Import reads one JSONL file per table from the given directory
(scenarios.jsonl, requirements.jsonl, test_cases.jsonl, ...) and loads the
records. Existing records with the same id are replaced. Malformed lines
are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		n, err := backend.ImportJSONL(args[0])
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records\n", n)
		return nil
	},
}

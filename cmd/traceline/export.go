package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export the database to JSONL files",
	Long: `Export writes one JSONL file per table to the given directory. Files
are written atomically and ordered by primary key, so repeated exports of
unchanged data are byte-identical.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		n, err := backend.ExportJSONL(args[0])
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records\n", n)
		return nil
	},
}

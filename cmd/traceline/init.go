package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagSeed bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize traceline storage",
	Long:  "Create configuration and data directories, then initialize the storage backend.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagSeed, "seed", false, "load the Order-to-Cash demo dataset")
}

func runInit(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if flagSeed {
		seeded, err := backend.Seed()
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		if seeded {
			fmt.Fprintln(cmd.OutOrStdout(), "Demo dataset loaded")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Database not empty, seed skipped")
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Traceline initialized successfully")
	return nil
}

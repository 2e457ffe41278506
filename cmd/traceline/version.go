package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/traceline"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the traceline version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "traceline v%s\nmodule: %s\n", Version, modulePath)
		return nil
	},
}

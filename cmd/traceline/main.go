// Package main provides the traceline CLI: traceability resolution and
// coverage reporting over an SAP transformation program's delta scope.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}

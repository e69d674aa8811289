//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// See LICENSE file for details
//

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coinsage/coinsage/cli/functions/health"
	"github.com/coinsage/coinsage/cli/functions/queries"
	"github.com/coinsage/coinsage/cli/functions/version"
	"github.com/coinsage/coinsage/cli/global"
)

func main() {
	var err error

	// Get the name of this binary, eliminating any path information
	progName := os.Args[0]
	progName = progName[strings.LastIndex(progName, "/")+1:]

	// Initialize the root command
	rootCmd := &cobra.Command{
		Use:   progName,
		Short: global.Description,
		Long:  global.LongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("A subcommand is required\n")
		},
	}

	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add the functions
	rootCmd.AddCommand(health.Register())
	rootCmd.AddCommand(queries.Register())
	rootCmd.AddCommand(version.Register())

	// Execute the CLI
	err = rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

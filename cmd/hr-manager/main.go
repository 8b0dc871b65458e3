// Command hr-manager runs the roster API and its maintenance tasks.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hr-manager",
		Short:        "HR manager roster service",
		Version:      version + " (" + buildTime + ")",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())

	// Running the binary without a subcommand serves.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	}

	return root
}

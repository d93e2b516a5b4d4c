// Package cli wires up the cobra command tree for forkit.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forkit",
		Short: "Forkit rebuilds a long-lived fork from its upstream",
		Long: `Forkit maintains a long-lived fork of an upstream repository.

It syncs the root base branch with upstream, rebases the declared feature
branches onto their bases in dependency order, and rebuilds the 'fork'
integration branch by merging them all. Configuration is read from fork.yaml
at the repository root.`,
		SilenceUsage: true,
	}

	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}

package cli

import (
	"github.com/spf13/cobra"

	"forkit.dev/forkit/internal/actions/build"
	"forkit.dev/forkit/internal/runtime"
)

// newBuildCmd creates the build command
func newBuildCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Sync upstream, rebase all branches, and rebuild the fork branch",
		Long: `Run the full rebuild:

  1. Sync      Fetch upstream, reset the base branch to upstream, push it
  2. Rebase    Rebase each branch onto its base (dependency order)
  3. Build     Recreate 'fork' from the base, merge all branches, push it

All rebuilt branches are pushed to origin with --force-with-lease.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.New(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			defer func() { _ = ctx.Splog.Close() }()

			return build.Action(ctx)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the git operations without executing them")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"forkit.dev/forkit/internal/actions/build"
	"forkit.dev/forkit/internal/config"
	"forkit.dev/forkit/internal/git"
	"forkit.dev/forkit/internal/plan"
	"forkit.dev/forkit/internal/ui"
)

// newPlanCmd creates the plan command
func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the rebuild plan without touching the repository",
		RunE: func(_ *cobra.Command, _ []string) error {
			repoRoot, err := git.RepoRoot()
			if err != nil {
				return err
			}

			cfg, err := config.Load(repoRoot)
			if err != nil {
				return err
			}

			p := plan.FromConfig(cfg)
			sorted, err := p.Sorted()
			if err != nil {
				return err
			}

			splog := ui.NewSplog()
			defer func() { _ = splog.Close() }()

			splog.Info("Upstream:  %s", ui.ColorBranchName(p.Upstream.String()))
			splog.Info("Root base: %s", ui.ColorBranchName(p.Base))

			splog.Newline()
			splog.Info("Rebase order:")
			for i, b := range sorted {
				line := ""
				if b.Description != "" {
					line = "  " + ui.ColorDim(b.Description)
				}
				splog.Info("  %d. %s onto %s%s", i+1,
					ui.ColorBranchName(b.Name), ui.ColorBranchName(b.Base), line)
			}

			splog.Newline()
			splog.Info("Merge order into %s:", ui.ColorBranchName(build.ForkBranch))
			for i, b := range p.Branches {
				splog.Info("  %d. %s", i+1, ui.ColorBranchName(b.Name))
			}

			return nil
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"forkit.dev/forkit/internal/config"
	"forkit.dev/forkit/internal/git"
	"forkit.dev/forkit/internal/ui"
)

const configTemplate = `# forkit configuration
#
# upstream: the external source of truth the fork tracks
# base:     the local branch that mirrors upstream
# branches: feature branches to rebase and merge into 'fork', in merge order.
#           A branch's base may be another declared branch to stack on top of it.
upstream:
  remote: %s
  branch: %s
base: %s
branches:
  - name: my-feature
    base: %s
    description: Example branch, replace with your own
`

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a starter fork.yaml in the repository root",
		RunE: func(_ *cobra.Command, _ []string) error {
			repoRoot, err := git.RepoRoot()
			if err != nil {
				return err
			}

			path := filepath.Join(repoRoot, config.FileName)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, not overwriting", path)
			}

			answers := struct {
				Remote string
				Branch string
				Base   string
			}{}

			questions := []*survey.Question{
				{
					Name:     "remote",
					Prompt:   &survey.Input{Message: "Upstream remote:", Default: "upstream"},
					Validate: survey.Required,
				},
				{
					Name:     "branch",
					Prompt:   &survey.Input{Message: "Upstream branch:", Default: "main"},
					Validate: survey.Required,
				},
				{
					Name:     "base",
					Prompt:   &survey.Input{Message: "Root base branch:", Default: "main"},
					Validate: survey.Required,
				},
			}

			if err := survey.Ask(questions, &answers); err != nil {
				return err
			}

			content := fmt.Sprintf(configTemplate,
				answers.Remote, answers.Branch, answers.Base, answers.Base)
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			splog := ui.NewSplog()
			splog.Info("Wrote %s", path)
			splog.Tip("Edit the branches list, then run 'forkit build --dry-run' to preview.")
			return nil
		},
	}
}

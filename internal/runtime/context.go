// Package runtime provides the context type that bundles the git runner,
// the console logger, and per-run state for use by commands and actions.
package runtime

import (
	"context"
	"fmt"

	"forkit.dev/forkit/internal/config"
	"forkit.dev/forkit/internal/git"
	"forkit.dev/forkit/internal/plan"
	"forkit.dev/forkit/internal/ui"
)

// Context provides access to the git runner, output, and the loaded plan
type Context struct {
	Context  context.Context
	Git      git.Runner
	Splog    *ui.Splog
	Plan     *plan.ForkPlan
	RepoRoot string
	DryRun   bool

	// OriginalBranch is the branch the tool was invoked from, captured at
	// startup so failure messages can tell the operator how to get back.
	OriginalBranch string
}

// New discovers the repository, loads fork.yaml, and builds a run context.
func New(ctx context.Context, dryRun bool) (*Context, error) {
	repoRoot, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	splog := ui.NewSplog()
	runner := git.NewRunner(repoRoot, splog, dryRun)

	originalBranch, err := runner.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current branch: %w", err)
	}

	return &Context{
		Context:        ctx,
		Git:            runner,
		Splog:          splog,
		Plan:           plan.FromConfig(cfg),
		RepoRoot:       repoRoot,
		DryRun:         dryRun,
		OriginalBranch: originalBranch,
	}, nil
}

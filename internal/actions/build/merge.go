package build

import (
	"fmt"

	forkiterrors "forkit.dev/forkit/internal/errors"
	"forkit.dev/forkit/internal/git"
	"forkit.dev/forkit/internal/runtime"
	"forkit.dev/forkit/internal/ui"
)

// buildFork recreates the fork integration branch from the root base and
// merges every feature branch into it in declaration order. All branches are
// already rebased onto consistent bases, so the merge order does not need to
// follow the dependency order.
func buildFork(ctx *runtime.Context) error {
	g := ctx.Git
	splog := ctx.Splog
	gctx := ctx.Context
	p := ctx.Plan

	splog.Newline()
	splog.Info("=== Building fork branch ===")

	if err := g.Checkout(gctx, p.Base); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", p.Base, err)
	}

	// The previous fork branch may or may not exist; deletion is tolerant.
	if err := g.DeleteBranch(gctx, ForkBranch); err != nil {
		return err
	}
	if err := g.CreateAndCheckoutBranch(gctx, ForkBranch); err != nil {
		return fmt.Errorf("failed to create %s: %w", ForkBranch, err)
	}

	for _, branch := range p.Branches {
		splog.Newline()
		splog.Info("Merging %s...", ui.ColorBranchName(branch.Name))

		result, err := g.Merge(gctx, branch.Name)
		if err != nil {
			return fmt.Errorf("failed to merge %s: %w", branch.Name, err)
		}
		if result == git.MergeConflict {
			// Leave the repository mid-merge so the operator can resolve it.
			splog.Newline()
			splog.Error("Merge conflict while merging %s", branch.Name)
			splog.Info("Resolve conflicts, then run: %s", ui.ColorYellow("git merge --continue"))
			splog.Info("Or abort with: %s", ui.ColorYellow(
				fmt.Sprintf("git merge --abort && git checkout %s", ctx.OriginalBranch)))
			return forkiterrors.NewMergeConflictError(branch.Name)
		}
	}

	if err := g.PushWithLease(gctx, OriginRemote, ForkBranch); err != nil {
		return fmt.Errorf("failed to push %s: %w", ForkBranch, err)
	}

	return nil
}

package build

import (
	"fmt"

	"forkit.dev/forkit/internal/plan"
	"forkit.dev/forkit/internal/runtime"
	"forkit.dev/forkit/internal/ui"
)

// rebaseBranches rebases every feature branch onto its declared base in
// dependency order, so each branch's base is already up to date when the
// branch is processed, then publishes it to origin.
func rebaseBranches(ctx *runtime.Context, sorted []plan.BranchSpec) error {
	g := ctx.Git
	splog := ctx.Splog
	gctx := ctx.Context

	splog.Newline()
	splog.Info("=== Rebasing branches ===")

	for _, branch := range sorted {
		splog.Newline()
		splog.Info("Rebasing %s onto %s...",
			ui.ColorBranchName(branch.Name),
			ui.ColorBranchName(branch.Base))

		if err := g.Checkout(gctx, branch.Name); err != nil {
			return fmt.Errorf("failed to checkout %s: %w", branch.Name, err)
		}
		if err := g.Rebase(gctx, branch.Base); err != nil {
			return fmt.Errorf("failed to rebase %s onto %s: %w", branch.Name, branch.Base, err)
		}
		if err := g.PushWithLease(gctx, OriginRemote, branch.Name); err != nil {
			return fmt.Errorf("failed to push %s: %w", branch.Name, err)
		}
	}

	return nil
}

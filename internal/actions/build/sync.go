package build

import (
	"fmt"

	"forkit.dev/forkit/internal/runtime"
	"forkit.dev/forkit/internal/ui"
)

// syncUpstream fetches the upstream remote and resets the root base branch to
// exactly match the upstream reference, discarding any local divergence, then
// publishes the updated base to origin.
func syncUpstream(ctx *runtime.Context) error {
	g := ctx.Git
	splog := ctx.Splog
	gctx := ctx.Context
	p := ctx.Plan

	splog.Newline()
	splog.Info("=== Syncing with upstream (%s) ===", ui.ColorBranchName(p.Upstream.String()))

	if err := g.Fetch(gctx, p.Upstream.Remote); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", p.Upstream.Remote, err)
	}
	if err := g.Checkout(gctx, p.Base); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", p.Base, err)
	}
	if err := g.HardReset(gctx, p.Upstream.String()); err != nil {
		return fmt.Errorf("failed to reset %s to %s: %w", p.Base, p.Upstream, err)
	}
	if err := g.PushWithLease(gctx, OriginRemote, p.Base); err != nil {
		return fmt.Errorf("failed to push %s: %w", p.Base, err)
	}

	return nil
}

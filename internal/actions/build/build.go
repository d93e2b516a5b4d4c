// Package build implements the fork rebuild pipeline: sync the root base
// with upstream, rebase every feature branch onto its base in dependency
// order, and rebuild the fork integration branch by merging them all.
package build

import (
	"fmt"

	forkiterrors "forkit.dev/forkit/internal/errors"
	"forkit.dev/forkit/internal/runtime"
)

// ForkBranch is the disposable integration branch recreated each run
const ForkBranch = "fork"

// OriginRemote is the shared remote that rebuilt branches are published to
const OriginRemote = "origin"

// Action runs the full rebuild: precondition check, sync, rebase, build.
// Phases run strictly in sequence and the first unrecoverable failure aborts
// the run; pushes from completed phases are left in place.
func Action(ctx *runtime.Context) error {
	splog := ctx.Splog
	gctx := ctx.Context

	if ctx.DryRun {
		splog.Info("=== DRY RUN MODE - No changes will be made ===")
	}

	// The dirty check is read-only, so it runs for real even in dry-run mode.
	dirty, err := ctx.Git.HasUncommittedChanges(gctx)
	if err != nil {
		return fmt.Errorf("failed to inspect working copy: %w", err)
	}
	if dirty {
		splog.Error("You have uncommitted changes. Please commit or stash them first.")
		return forkiterrors.ErrDirtyWorktree
	}

	// Order the branches before mutating anything so a bad dependency graph
	// aborts the run with the repository untouched.
	sorted, err := ctx.Plan.Sorted()
	if err != nil {
		return err
	}

	if err := syncUpstream(ctx); err != nil {
		return err
	}
	if err := rebaseBranches(ctx, sorted); err != nil {
		return err
	}
	if err := buildFork(ctx); err != nil {
		return err
	}

	splog.Newline()
	splog.Info("=== Done! ===")
	splog.Newline()
	splog.Info("Commits in %s ahead of %s:", ForkBranch, ctx.Plan.Base)
	// In dry-run the fork branch may not exist yet; skip the summary quietly.
	if summary, err := ctx.Git.LogRange(gctx, ctx.Plan.Base, ForkBranch); err == nil && summary != "" {
		splog.Page(summary)
	}

	return nil
}

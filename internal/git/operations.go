package git

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	forkiterrors "forkit.dev/forkit/internal/errors"
	"forkit.dev/forkit/internal/ui"
)

// MergeResult represents the result of a merge operation
type MergeResult int

const (
	// MergeDone indicates the merge was successful
	MergeDone MergeResult = iota
	// MergeConflict indicates a conflict occurred during merge
	MergeConflict
)

// Runner is the version-control capability the pipeline runs against.
// Mutating operations are echoed before execution and become no-ops in
// dry-run mode; inspections always run against the real repository (they are
// read-only, so they are safe to run even when previewing).
type Runner interface {
	// Inspections
	CurrentBranch(ctx context.Context) (string, error)
	HasUncommittedChanges(ctx context.Context) (bool, error)
	LogRange(ctx context.Context, from, to string) (string, error)

	// Mutations
	Fetch(ctx context.Context, remote string) error
	Checkout(ctx context.Context, ref string) error
	CreateAndCheckoutBranch(ctx context.Context, name string) error
	DeleteBranch(ctx context.Context, name string) error
	HardReset(ctx context.Context, ref string) error
	Rebase(ctx context.Context, base string) error
	Merge(ctx context.Context, branch string) (MergeResult, error)
	PushWithLease(ctx context.Context, remote, branch string) error
}

// NewRunner creates a Runner for the working copy at workingDir. When dryRun
// is set, mutations are logged but not executed and report success.
func NewRunner(workingDir string, splog *ui.Splog, dryRun bool) Runner {
	return &execRunner{
		cmd:    NewCommandRunner(workingDir),
		splog:  splog,
		dryRun: dryRun,
	}
}

// execRunner runs git through the system binary
type execRunner struct {
	cmd    *CommandRunner
	splog  *ui.Splog
	dryRun bool
}

// mutate echoes and runs a state-changing git command. This is the single
// point where repository state is touched, which is why dry-run lives here
// rather than in the callers.
func (r *execRunner) mutate(ctx context.Context, args ...string) (string, error) {
	line := "git " + strings.Join(args, " ")

	if r.dryRun {
		r.splog.Info("  %s", ui.ColorDim("[dry-run] "+line))
		return "", nil
	}

	r.splog.Info("  %s", ui.ColorDim("$ "+line))
	return r.cmd.Run(ctx, args...)
}

func (r *execRunner) CurrentBranch(ctx context.Context) (string, error) {
	return r.cmd.Run(ctx, "branch", "--show-current")
}

// HasUncommittedChanges checks the working copy against HEAD. Untracked
// files do not block a rebuild, so this is diff-index rather than status.
func (r *execRunner) HasUncommittedChanges(ctx context.Context) (bool, error) {
	_, err := r.cmd.Run(ctx, "diff-index", "--quiet", "HEAD", "--")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func (r *execRunner) LogRange(ctx context.Context, from, to string) (string, error) {
	return r.cmd.RunRaw(ctx, "log", "--oneline", from+".."+to)
}

func (r *execRunner) Fetch(ctx context.Context, remote string) error {
	_, err := r.mutate(ctx, "fetch", remote)
	return err
}

func (r *execRunner) Checkout(ctx context.Context, ref string) error {
	_, err := r.mutate(ctx, "checkout", ref)
	return err
}

func (r *execRunner) CreateAndCheckoutBranch(ctx context.Context, name string) error {
	_, err := r.mutate(ctx, "checkout", "-b", name)
	return err
}

// DeleteBranch removes a local branch, tolerating its absence. Used only to
// clear the previous integration branch before recreating it.
func (r *execRunner) DeleteBranch(ctx context.Context, name string) error {
	_, _ = r.mutate(ctx, "branch", "-D", name)
	return nil
}

func (r *execRunner) HardReset(ctx context.Context, ref string) error {
	_, err := r.mutate(ctx, "reset", "--hard", ref)
	return err
}

func (r *execRunner) Rebase(ctx context.Context, base string) error {
	_, err := r.mutate(ctx, "rebase", base)
	return err
}

// Merge merges branch into the current branch without opening an editor.
// A non-zero exit reports MergeConflict; the repository is left in the
// conflicted mid-merge state for the operator to resolve.
func (r *execRunner) Merge(ctx context.Context, branch string) (MergeResult, error) {
	_, err := r.mutate(ctx, "merge", "--no-edit", branch)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return MergeConflict, nil
		}
		return MergeConflict, err
	}
	return MergeDone, nil
}

// PushWithLease force-pushes a branch, failing instead of clobbering if the
// remote moved since it was last observed.
func (r *execRunner) PushWithLease(ctx context.Context, remote, branch string) error {
	_, err := r.mutate(ctx, "push", remote, branch, "--force-with-lease")
	if err != nil {
		var gitErr *forkiterrors.GitCommandError
		if errors.As(err, &gitErr) {
			if strings.Contains(gitErr.Stdout+gitErr.Stderr, "stale info") {
				return forkiterrors.ErrStaleRemoteInfo
			}
		}
		return err
	}
	return nil
}

package git_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	forkiterrors "forkit.dev/forkit/internal/errors"
	"forkit.dev/forkit/internal/git"
	"forkit.dev/forkit/internal/ui"
	"forkit.dev/forkit/testhelpers"
)

func newTestRunner(t *testing.T, dir string, dryRun bool) (git.Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	splog := ui.NewSplogWithWriter(&buf)
	return git.NewRunner(dir, splog, dryRun), &buf
}

func newTestRepo(t *testing.T) *testhelpers.GitRepo {
	t.Helper()
	repo, err := testhelpers.NewGitRepo(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, repo.CreateChangeAndCommit("initial", "init"))
	return repo
}

func TestCurrentBranch(t *testing.T) {
	repo := newTestRepo(t)
	runner, _ := newTestRunner(t, repo.Dir, false)

	branch, err := runner.CurrentBranch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "main", branch)
}

func TestHasUncommittedChanges(t *testing.T) {
	t.Run("clean worktree", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, false)

		dirty, err := runner.HasUncommittedChanges(context.Background())
		require.NoError(t, err)
		require.False(t, dirty)
	})

	t.Run("modified tracked file", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, false)

		err := os.WriteFile(filepath.Join(repo.Dir, "init_test.txt"), []byte("changed"), 0600)
		require.NoError(t, err)

		dirty, err := runner.HasUncommittedChanges(context.Background())
		require.NoError(t, err)
		require.True(t, dirty)
	})

	t.Run("untracked files do not count", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, false)

		err := os.WriteFile(filepath.Join(repo.Dir, "scratch.txt"), []byte("x"), 0600)
		require.NoError(t, err)

		dirty, err := runner.HasUncommittedChanges(context.Background())
		require.NoError(t, err)
		require.False(t, dirty)
	})
}

func TestBranchOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("create, checkout, and delete", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, false)

		require.NoError(t, runner.CreateAndCheckoutBranch(ctx, "feat-a"))
		branch, err := runner.CurrentBranch(ctx)
		require.NoError(t, err)
		require.Equal(t, "feat-a", branch)

		require.NoError(t, runner.Checkout(ctx, "main"))
		require.NoError(t, runner.DeleteBranch(ctx, "feat-a"))
		require.False(t, repo.BranchExists("feat-a"))
	})

	t.Run("deleting an absent branch is tolerated", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, false)

		require.NoError(t, runner.DeleteBranch(ctx, "never-existed"))
	})

	t.Run("checkout of a nonexistent ref fails", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, false)

		err := runner.Checkout(ctx, "no-such-branch")
		require.Error(t, err)

		var gitErr *forkiterrors.GitCommandError
		require.ErrorAs(t, err, &gitErr)
	})
}

func TestMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("clean merge", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, false)

		require.NoError(t, repo.CreateAndCheckoutBranch("feat-a"))
		require.NoError(t, repo.CreateChangeAndCommit("feature", "a"))
		require.NoError(t, repo.CheckoutBranch("main"))

		result, err := runner.Merge(ctx, "feat-a")
		require.NoError(t, err)
		require.Equal(t, git.MergeDone, result)
	})

	t.Run("conflicting merge reports MergeConflict and stays mid-merge", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, false)

		require.NoError(t, repo.CreateAndCheckoutBranch("feat-a"))
		require.NoError(t, repo.CreateChangeAndCommit("feature side", "conflict"))
		require.NoError(t, repo.CheckoutBranch("main"))
		require.NoError(t, repo.CreateChangeAndCommit("main side", "conflict"))

		result, err := runner.Merge(ctx, "feat-a")
		require.NoError(t, err)
		require.Equal(t, git.MergeConflict, result)
		require.True(t, repo.MergeInProgress())
	})
}

func TestPushWithLease(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes a new branch", func(t *testing.T) {
		repo := newTestRepo(t)
		originDir, err := repo.CreateBareRemote("origin")
		require.NoError(t, err)

		runner, _ := newTestRunner(t, repo.Dir, false)
		require.NoError(t, runner.PushWithLease(ctx, "origin", "main"))

		localSHA, err := repo.GetBranchSHA("main")
		require.NoError(t, err)
		remoteSHA, err := repo.RemoteBranchSHA(originDir, "main")
		require.NoError(t, err)
		require.Equal(t, localSHA, remoteSHA)
	})

	t.Run("rejects a stale lease", func(t *testing.T) {
		repo := newTestRepo(t)
		originDir, err := repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, repo.PushBranch("origin", "main"))

		// Another working copy moves origin/main without us fetching
		other, err := testhelpers.NewGitRepo(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, other.CreateChangeAndCommit("other history", "other"))
		require.NoError(t, other.RunGitCommand("remote", "add", "origin", originDir))
		require.NoError(t, other.RunGitCommand("push", "-f", "origin", "main"))

		require.NoError(t, repo.CreateChangeAndCommit("local work", "local"))

		runner, _ := newTestRunner(t, repo.Dir, false)
		err = runner.PushWithLease(ctx, "origin", "main")
		require.ErrorIs(t, err, forkiterrors.ErrStaleRemoteInfo)
	})
}

func TestDryRun(t *testing.T) {
	ctx := context.Background()

	t.Run("mutations are echoed but not executed", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, buf := newTestRunner(t, repo.Dir, true)

		shaBefore, err := repo.GetBranchSHA("main")
		require.NoError(t, err)

		require.NoError(t, runner.Fetch(ctx, "upstream"))
		require.NoError(t, runner.Checkout(ctx, "feat-a"))
		require.NoError(t, runner.HardReset(ctx, "upstream/main"))
		require.NoError(t, runner.CreateAndCheckoutBranch(ctx, "fork"))
		result, err := runner.Merge(ctx, "feat-a")
		require.NoError(t, err)
		require.Equal(t, git.MergeDone, result)
		require.NoError(t, runner.PushWithLease(ctx, "origin", "main"))

		shaAfter, err := repo.GetBranchSHA("main")
		require.NoError(t, err)
		require.Equal(t, shaBefore, shaAfter)

		branch, err := repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
		require.False(t, repo.BranchExists("fork"))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 6)
		require.Contains(t, lines[0], "[dry-run] git fetch upstream")
		require.Contains(t, lines[1], "[dry-run] git checkout feat-a")
		require.Contains(t, lines[2], "[dry-run] git reset --hard upstream/main")
		require.Contains(t, lines[3], "[dry-run] git checkout -b fork")
		require.Contains(t, lines[4], "[dry-run] git merge --no-edit feat-a")
		require.Contains(t, lines[5], "[dry-run] git push origin main --force-with-lease")
	})

	t.Run("inspections still run for real", func(t *testing.T) {
		repo := newTestRepo(t)
		runner, _ := newTestRunner(t, repo.Dir, true)

		branch, err := runner.CurrentBranch(ctx)
		require.NoError(t, err)
		require.Equal(t, "main", branch)

		dirty, err := runner.HasUncommittedChanges(ctx)
		require.NoError(t, err)
		require.False(t, dirty)
	})
}

func TestRepoRootFrom(t *testing.T) {
	repo := newTestRepo(t)

	root, err := git.RepoRootFrom(repo.Dir)
	require.NoError(t, err)

	wantRoot, err := filepath.EvalSymlinks(repo.Dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	require.Equal(t, wantRoot, gotRoot)
}

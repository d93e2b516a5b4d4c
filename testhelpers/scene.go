package testhelpers

import (
	"testing"
)

// Scene is a complete rebuild fixture: a working repository with an initial
// commit on main, plus bare origin and upstream remotes that main has been
// pushed to. Tests layer feature branches on top of it.
type Scene struct {
	Repo        *GitRepo
	OriginDir   string
	UpstreamDir string
}

// SceneSetup is a function type for customizing a scene before the remotes
// are populated.
type SceneSetup func(*Scene) error

// NewScene creates a scene in a test temporary directory. Cleanup is handled
// by testing's TempDir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	repo, err := NewGitRepo(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create git repo: %v", err)
	}

	if err := repo.CreateChangeAndCommit("initial", "init"); err != nil {
		t.Fatalf("Failed to create initial commit: %v", err)
	}

	scene := &Scene{Repo: repo}

	if scene.OriginDir, err = repo.CreateBareRemote("origin"); err != nil {
		t.Fatalf("Failed to create origin: %v", err)
	}
	if scene.UpstreamDir, err = repo.CreateBareRemote("upstream"); err != nil {
		t.Fatalf("Failed to create upstream: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Scene setup failed: %v", err)
		}
	}

	// Both remotes observe main so force-with-lease pushes have a lease to check
	if err := repo.PushBranch("origin", "main"); err != nil {
		t.Fatalf("Failed to push main to origin: %v", err)
	}
	if err := repo.PushBranch("upstream", "main"); err != nil {
		t.Fatalf("Failed to push main to upstream: %v", err)
	}
	if err := repo.RunGitCommand("fetch", "upstream"); err != nil {
		t.Fatalf("Failed to fetch upstream: %v", err)
	}

	return scene
}

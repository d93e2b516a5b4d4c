// Package plan holds the fork rebuild model: the upstream reference, the root
// base branch, and the declared feature branches, plus the dependency sorter
// that orders branches so every base is rebuilt before its dependents.
package plan

import (
	"forkit.dev/forkit/internal/config"
)

// UpstreamRef identifies the remote and branch the fork tracks
type UpstreamRef struct {
	Remote string
	Branch string
}

// String returns the remote-qualified ref, e.g. "upstream/main"
func (u UpstreamRef) String() string {
	return u.Remote + "/" + u.Branch
}

// BranchSpec is one maintained feature branch with its rebase target
type BranchSpec struct {
	Name        string
	Base        string
	Description string
}

// ForkPlan is the complete rebuild configuration. Branches preserves the
// declaration order from fork.yaml; the plan is read-only after construction.
type ForkPlan struct {
	Upstream UpstreamRef
	Base     string
	Branches []BranchSpec
}

// FromConfig builds a ForkPlan from a validated configuration
func FromConfig(cfg *config.Config) *ForkPlan {
	branches := make([]BranchSpec, 0, len(cfg.Branches))
	for _, b := range cfg.Branches {
		branches = append(branches, BranchSpec{
			Name:        b.Name,
			Base:        b.Base,
			Description: b.Description,
		})
	}

	return &ForkPlan{
		Upstream: UpstreamRef{
			Remote: cfg.Upstream.Remote,
			Branch: cfg.Upstream.Branch,
		},
		Base:     cfg.Base,
		Branches: branches,
	}
}

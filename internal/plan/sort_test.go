package plan_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	forkiterrors "forkit.dev/forkit/internal/errors"
	"forkit.dev/forkit/internal/plan"
)

func names(branches []plan.BranchSpec) []string {
	out := make([]string, 0, len(branches))
	for _, b := range branches {
		out = append(out, b.Name)
	}
	return out
}

func TestSorted(t *testing.T) {
	t.Run("places every branch after its base", func(t *testing.T) {
		p := &plan.ForkPlan{
			Base: "main",
			Branches: []plan.BranchSpec{
				{Name: "feat-c", Base: "feat-b"},
				{Name: "feat-a", Base: "main"},
				{Name: "feat-b", Base: "feat-a"},
			},
		}

		sorted, err := p.Sorted()
		require.NoError(t, err)
		require.Equal(t, []string{"feat-a", "feat-b", "feat-c"}, names(sorted))
	})

	t.Run("sorts dependencies before dependents regardless of declaration order", func(t *testing.T) {
		p := &plan.ForkPlan{
			Base: "main",
			Branches: []plan.BranchSpec{
				{Name: "feat-b", Base: "feat-a"},
				{Name: "feat-a", Base: "main"},
			},
		}

		sorted, err := p.Sorted()
		require.NoError(t, err)
		require.Equal(t, []string{"feat-a", "feat-b"}, names(sorted))
	})

	t.Run("keeps declaration order for independent branches", func(t *testing.T) {
		p := &plan.ForkPlan{
			Base: "main",
			Branches: []plan.BranchSpec{
				{Name: "zeta", Base: "main"},
				{Name: "alpha", Base: "main"},
				{Name: "mid", Base: "main"},
			},
		}

		sorted, err := p.Sorted()
		require.NoError(t, err)
		require.Equal(t, []string{"zeta", "alpha", "mid"}, names(sorted))
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		p := &plan.ForkPlan{
			Base: "main",
			Branches: []plan.BranchSpec{
				{Name: "d", Base: "b"},
				{Name: "b", Base: "a"},
				{Name: "c", Base: "a"},
				{Name: "a", Base: "main"},
			},
		}

		first, err := p.Sorted()
		require.NoError(t, err)
		second, err := p.Sorted()
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, []string{"a", "b", "d", "c"}, names(first))
	})

	t.Run("root base branches need no predecessor", func(t *testing.T) {
		p := &plan.ForkPlan{
			Base: "main",
			Branches: []plan.BranchSpec{
				{Name: "solo", Base: "main"},
			},
		}

		sorted, err := p.Sorted()
		require.NoError(t, err)
		require.Equal(t, []string{"solo"}, names(sorted))
	})

	t.Run("treats an undeclared base as a leaf", func(t *testing.T) {
		// Config validation rejects this before a plan is built; the sorter
		// itself does not recurse into bases it cannot resolve.
		p := &plan.ForkPlan{
			Base: "main",
			Branches: []plan.BranchSpec{
				{Name: "orphan", Base: "gone"},
			},
		}

		sorted, err := p.Sorted()
		require.NoError(t, err)
		require.Equal(t, []string{"orphan"}, names(sorted))
	})

	t.Run("rejects a dependency cycle", func(t *testing.T) {
		p := &plan.ForkPlan{
			Base: "main",
			Branches: []plan.BranchSpec{
				{Name: "feat-a", Base: "feat-b"},
				{Name: "feat-b", Base: "feat-a"},
			},
		}

		_, err := p.Sorted()
		require.Error(t, err)
		require.ErrorIs(t, err, forkiterrors.ErrCyclicDependency)

		var cycleErr *forkiterrors.CycleError
		require.True(t, errors.As(err, &cycleErr))
		require.Equal(t, []string{"feat-a", "feat-b", "feat-a"}, cycleErr.Cycle)
	})

	t.Run("rejects a self cycle", func(t *testing.T) {
		p := &plan.ForkPlan{
			Base: "main",
			Branches: []plan.BranchSpec{
				{Name: "feat-a", Base: "feat-a"},
			},
		}

		_, err := p.Sorted()
		require.ErrorIs(t, err, forkiterrors.ErrCyclicDependency)
	})

	t.Run("handles empty plans", func(t *testing.T) {
		p := &plan.ForkPlan{Base: "main"}

		sorted, err := p.Sorted()
		require.NoError(t, err)
		require.Empty(t, sorted)
	})
}

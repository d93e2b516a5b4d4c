package plan

import (
	forkiterrors "forkit.dev/forkit/internal/errors"
)

// Sorted returns the branches ordered so that any branch used as another's
// base comes first. The traversal is depth-first in declaration order, so
// branches with no dependency between them keep their declared relative
// order and the result is deterministic.
//
// A base that is the root base or matches no declared branch is a leaf;
// config validation guarantees the latter cannot happen for loaded plans.
// A back-edge in the base graph returns a CycleError.
func (p *ForkPlan) Sorted() ([]BranchSpec, error) {
	byName := make(map[string]BranchSpec, len(p.Branches))
	for _, b := range p.Branches {
		byName[b.Name] = b
	}

	sorted := make([]BranchSpec, 0, len(p.Branches))
	visited := make(map[string]bool, len(p.Branches))
	visiting := make(map[string]bool, len(p.Branches))
	var stack []string

	var visit func(b BranchSpec) error
	visit = func(b BranchSpec) error {
		if visited[b.Name] {
			return nil
		}
		if visiting[b.Name] {
			return forkiterrors.NewCycleError(cyclePath(stack, b.Name))
		}

		visiting[b.Name] = true
		stack = append(stack, b.Name)

		if b.Base != p.Base {
			if dep, ok := byName[b.Base]; ok {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(visiting, b.Name)
		visited[b.Name] = true
		sorted = append(sorted, b)
		return nil
	}

	for _, b := range p.Branches {
		if err := visit(b); err != nil {
			return nil, err
		}
	}

	return sorted, nil
}

// cyclePath trims the traversal stack to the cycle itself and closes it,
// e.g. [a b c] with back-edge to b becomes [b c b].
func cyclePath(stack []string, name string) []string {
	for i, n := range stack {
		if n == name {
			cycle := make([]string, 0, len(stack)-i+1)
			cycle = append(cycle, stack[i:]...)
			return append(cycle, name)
		}
	}
	return []string{name, name}
}

package buildindex

import (
	"slices"

	"github.com/andreyvit/buildindex/intern"
)

// GetTransitiveDeps returns the closure of root's dependencies at
// generation g, excluding root itself, sorted by interning order. The
// whole traversal runs under a single read-lock acquisition, so the result
// is a consistent snapshot. Targets that appear as deps but have no rule
// at g are still part of the closure; they simply contribute no edges.
func (idx *Index[T, C]) GetTransitiveDeps(g uint32, root T) []T {
	idx.QueryCount.Add(1)
	rootH := idx.targets.Intern(root)

	frontier := []intern.Handle{rootH}
	seen := map[intern.Handle]struct{}{rootH: {}}

	idx.beginRead()
	for i := 0; i < len(frontier); i++ {
		r, present := idx.rules.GetVersion(frontier[i], g)
		if !present {
			continue
		}
		for _, dep := range r.deps {
			if _, queued := seen[dep]; !queued {
				seen[dep] = struct{}{}
				frontier = append(frontier, dep)
			}
		}
	}
	idx.endRead()

	hs := frontier[1:] // everything reached, minus the root
	slices.Sort(hs)
	return idx.externalTargets(hs)
}

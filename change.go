package buildindex

import (
	"slices"

	"github.com/andreyvit/buildindex/intern"
)

// RawBuildRule is one build rule as supplied by, and returned to, the host.
// Node is the opaque parsed-rule payload; it is only ever compared for
// equality (via Scheme.NodesEqual) and handed back verbatim.
type RawBuildRule[T comparable] struct {
	Target T
	Node   any
	Deps   []T
}

// BuildPackage is the set of rules declared by one build file.
type BuildPackage[T comparable] struct {
	Path  string // build-file directory; "" is the repository root
	Rules []RawBuildRule[T]
}

// Changes describes what a commit did to the tree's build packages. Each
// directory may appear at most once across Added, Modified and Removed;
// change translators produce one entry per build file by construction.
type Changes[T comparable] struct {
	Added    []BuildPackage[T]
	Modified []BuildPackage[T]
	Removed  []string
}

func (ch *Changes[T]) IsEmpty() bool {
	return len(ch.Added) == 0 && len(ch.Modified) == 0 && len(ch.Removed) == 0
}

// internalRule is the stored form of a rule: the opaque payload plus dep
// handles sorted ascending and deduplicated, so equality is a dense array
// comparison.
type internalRule struct {
	node any
	deps []intern.Handle
}

func (r internalRule) equal(other internalRule, nodesEqual func(a, b any) bool) bool {
	return slices.Equal(r.deps, other.deps) && nodesEqual(r.node, other.node)
}

type internalPackage struct {
	dir   string
	names []string // sorted rule names
	rules map[intern.Handle]internalRule
}

type internalChanges struct {
	added    []internalPackage
	modified []internalPackage
	removed  []string
}

// internChanges translates host changes into interned form. Runs outside
// both locks; the interner synchronizes itself.
func (idx *Index[T, C]) internChanges(ch *Changes[T]) *internalChanges {
	ic := &internalChanges{removed: ch.Removed}
	for _, bp := range ch.Added {
		ic.added = append(ic.added, idx.internPackage(bp))
	}
	for _, bp := range ch.Modified {
		ic.modified = append(ic.modified, idx.internPackage(bp))
	}
	return ic
}

func (idx *Index[T, C]) internPackage(bp BuildPackage[T]) internalPackage {
	ip := internalPackage{
		dir:   bp.Path,
		names: make([]string, 0, len(bp.Rules)),
		rules: make(map[intern.Handle]internalRule, len(bp.Rules)),
	}
	for _, r := range bp.Rules {
		h := idx.targets.Intern(r.Target)
		ip.names = append(ip.names, idx.scheme.RuleName(r.Target))
		ip.rules[h] = internalRule{node: r.Node, deps: idx.internDeps(r.Deps)}
	}
	slices.Sort(ip.names)
	return ip
}

func (idx *Index[T, C]) internDeps(deps []T) []intern.Handle {
	if len(deps) == 0 {
		return nil
	}
	hs := make([]intern.Handle, len(deps))
	for i, d := range deps {
		hs[i] = idx.targets.Intern(d)
	}
	slices.Sort(hs)
	return slices.Compact(hs)
}

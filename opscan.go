package buildindex

import (
	"cmp"
	"slices"
	"strings"

	"github.com/andreyvit/buildindex/intern"
)

// GetTargets returns every build target that exists at generation g,
// sorted by interning order. A generation with no recorded state yields
// nil.
func (idx *Index[T, C]) GetTargets(g uint32) []T {
	idx.QueryCount.Add(1)

	var hs []intern.Handle
	idx.beginRead()
	for h := range idx.rules.Entries(g) {
		hs = append(hs, h)
	}
	idx.endRead()

	slices.Sort(hs)
	return idx.externalTargets(hs)
}

// GetTargetsInBasePath returns the targets declared by the build package
// at base, in rule-name order, or nil if no package lives there at g.
func (idx *Index[T, C]) GetTargetsInBasePath(g uint32, base string) []T {
	idx.QueryCount.Add(1)

	idx.beginRead()
	names, present := idx.packages.GetVersion(base, g)
	idx.endRead()
	if !present {
		return nil
	}

	out := make([]T, len(names))
	for i, name := range names {
		out[i] = idx.scheme.mustParse(base, name)
	}
	return out
}

// GetTargetsUnderBasePath returns every target in base and in packages
// below it; the empty base covers the whole tree. Containment is
// path-aware: "a" covers "a" and "a/b" but not "ab".
func (idx *Index[T, C]) GetTargetsUnderBasePath(g uint32, base string) []T {
	if base == "" {
		return idx.GetTargets(g)
	}
	idx.QueryCount.Add(1)

	type pkg struct {
		dir   string
		names []string
	}
	var pkgs []pkg
	idx.beginRead()
	for dir, names := range idx.packages.EntriesMatching(g, func(dir string) bool {
		return isPathPrefix(base, dir)
	}) {
		pkgs = append(pkgs, pkg{dir, names})
	}
	idx.endRead()

	slices.SortFunc(pkgs, func(a, b pkg) int { return cmp.Compare(a.dir, b.dir) })
	var out []T
	for _, p := range pkgs {
		for _, name := range p.names {
			out = append(out, idx.scheme.mustParse(p.dir, name))
		}
	}
	return out
}

// isPathPrefix reports whether dir equals base or lives below it.
func isPathPrefix(base, dir string) bool {
	if !strings.HasPrefix(dir, base) {
		return false
	}
	return len(dir) == len(base) || dir[len(base)] == '/'
}

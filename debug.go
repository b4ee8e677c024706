package buildindex

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/andreyvit/buildindex/intern"
)

type DumpFlags uint64

const (
	DumpPackageHeaders = DumpFlags(1 << iota)
	DumpRules
	DumpDeps

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var dumpSep = strings.Repeat("=", 80)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders the state at generation g into a string for debugging.
// State is captured under a single read-lock acquisition and rendered
// outside it.
func (idx *Index[T, C]) Dump(g uint32, f DumpFlags) string {
	type pkgState struct {
		dir   string
		names []string
		rules []internalRule
		known []bool
	}
	var pkgs []pkgState
	idx.beginRead()
	for dir, names := range idx.packages.Entries(g) {
		ps := pkgState{dir: dir, names: names}
		if f.Contains(DumpRules) {
			for _, name := range names {
				h := idx.targets.Intern(idx.scheme.mustParse(dir, name))
				r, present := idx.rules.GetVersion(h, g)
				ps.rules = append(ps.rules, r)
				ps.known = append(ps.known, present)
			}
		}
		pkgs = append(pkgs, ps)
	}
	idx.endRead()

	slices.SortFunc(pkgs, func(a, b pkgState) int { return cmp.Compare(a.dir, b.dir) })

	var buf strings.Builder
	fmt.Fprintf(&buf, "generation %d: %d packages\n", g, len(pkgs))
	for _, ps := range pkgs {
		if f.Contains(DumpPackageHeaders) {
			fmt.Fprintln(&buf, dumpSep)
			fmt.Fprintf(&buf, "//%s (%d rules)\n", ps.dir, len(ps.names))
		}
		if !f.Contains(DumpRules) {
			continue
		}
		for i, name := range ps.names {
			switch {
			case !ps.known[i]:
				fmt.Fprintf(&buf, "  %s: MISSING\n", TargetString(ps.dir, name))
			case f.Contains(DumpDeps) && len(ps.rules[i].deps) > 0:
				fmt.Fprintf(&buf, "  %s => %s\n", TargetString(ps.dir, name), idx.depList(ps.rules[i].deps))
			default:
				fmt.Fprintf(&buf, "  %s\n", TargetString(ps.dir, name))
			}
		}
	}
	return buf.String()
}

func (idx *Index[T, C]) depList(hs []intern.Handle) string {
	strs := make([]string, len(hs))
	for i, h := range hs {
		t := idx.target(h)
		strs[i] = TargetString(idx.scheme.PackagePath(t), idx.scheme.RuleName(t))
	}
	return strings.Join(strs, ", ")
}

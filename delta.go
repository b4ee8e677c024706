package buildindex

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/andreyvit/buildindex/intern"
)

type Op int

const (
	OpNone   Op = 0
	OpPut    Op = 1
	OpDelete Op = 2
)

func (v Op) String() string {
	switch v {
	case OpNone:
		return "none"
	case OpPut:
		return "put"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("invalid op %d", int(v))
	}
}

// PackageDelta is one pending update to the package map: the new sorted
// rule-name set of a directory, or its removal.
type PackageDelta struct {
	op    Op
	dir   string
	names []string
}

func (d PackageDelta) Op() Op              { return d.op }
func (d PackageDelta) Dir() string         { return d.dir }
func (d PackageDelta) RuleNames() []string { return d.names }

// RuleDelta is one pending update to the rule map: a new rule for a
// target, or the target's removal.
type RuleDelta struct {
	op     Op
	target intern.Handle
	rule   internalRule
}

func (d RuleDelta) Op() Op                { return d.op }
func (d RuleDelta) Target() intern.Handle { return d.target }

// Deltas is the minimal set of updates that moves the maps from the state
// at one generation to the next. Empty deltas mean the commit changed
// nothing and no generation needs to be allocated.
type Deltas struct {
	packages []PackageDelta
	rules    []RuleDelta
}

func (d *Deltas) IsEmpty() bool {
	return len(d.packages) == 0 && len(d.rules) == 0
}

// computeDeltas validates interned changes against the state at generation
// g and produces the updates to apply at g+1. The caller must hold the
// read lock; nothing is mutated here, so a failed commit leaves the index
// untouched.
func (idx *Index[T, C]) computeDeltas(ch *internalChanges, g uint32) (Deltas, error) {
	var ds Deltas

	for _, ip := range ch.added {
		if _, present := idx.packages.GetVersion(ip.dir, g); present {
			return Deltas{}, &PackageError{Dir: ip.dir, Generation: g, Err: ErrPackageAlreadyPresent}
		}
		ds.packages = append(ds.packages, PackageDelta{OpPut, ip.dir, ip.names})
		for h, r := range ip.rules {
			ds.rules = append(ds.rules, RuleDelta{OpPut, h, r})
		}
	}

	for _, dir := range ch.removed {
		oldNames, present := idx.packages.GetVersion(dir, g)
		if !present {
			return Deltas{}, &PackageError{Dir: dir, Generation: g, Err: ErrPackageAbsent}
		}
		ds.packages = append(ds.packages, PackageDelta{op: OpDelete, dir: dir})
		for _, name := range oldNames {
			h := idx.targets.Intern(idx.scheme.mustParse(dir, name))
			ds.rules = append(ds.rules, RuleDelta{op: OpDelete, target: h})
		}
	}

	for _, ip := range ch.modified {
		oldNames, present := idx.packages.GetVersion(ip.dir, g)
		if !present {
			return Deltas{}, &PackageError{Dir: ip.dir, Generation: g, Err: ErrPackageAbsent}
		}
		oldRules := make(map[intern.Handle]internalRule, len(oldNames))
		for _, name := range oldNames {
			h := idx.targets.Intern(idx.scheme.mustParse(ip.dir, name))
			r, found := idx.rules.GetVersion(h, g)
			if !found {
				return Deltas{}, &PackageError{Dir: ip.dir, Generation: g, Err: ErrInternalInconsistency}
			}
			oldRules[h] = r
		}
		ruleChanges := idx.diffRules(oldRules, ip.rules)
		if len(ruleChanges) == 0 {
			continue
		}
		ds.packages = append(ds.packages, PackageDelta{OpPut, ip.dir, ip.names})
		ds.rules = append(ds.rules, ruleChanges...)
	}

	// The maps above iterate in random order; sort so repeated runs apply
	// and log identically.
	slices.SortFunc(ds.packages, func(a, b PackageDelta) int { return cmp.Compare(a.dir, b.dir) })
	slices.SortFunc(ds.rules, func(a, b RuleDelta) int { return cmp.Compare(a.target, b.target) })
	return ds, nil
}

// diffRules compares two rule sets of one package, keyed by target. The
// result is empty iff the sets are equal: same targets, equal payloads,
// identical sorted dep arrays.
func (idx *Index[T, C]) diffRules(old, new map[intern.Handle]internalRule) []RuleDelta {
	var out []RuleDelta
	for h, nr := range new {
		or, existed := old[h]
		if !existed || !nr.equal(or, idx.scheme.NodesEqual) {
			out = append(out, RuleDelta{OpPut, h, nr})
		}
	}
	for h := range old {
		if _, kept := new[h]; !kept {
			out = append(out, RuleDelta{op: OpDelete, target: h})
		}
	}
	return out
}

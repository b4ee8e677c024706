package buildindex

import "github.com/andreyvit/buildindex/intern"

// GetTargetNode returns the rule recorded for t at generation g, or nil if
// the target does not exist there.
func (idx *Index[T, C]) GetTargetNode(g uint32, t T) *RawBuildRule[T] {
	return idx.GetTargetNodes(g, []T{t})[0]
}

// GetTargetNodes resolves a batch of targets at generation g: one entry
// per input, preserving order, nil for targets absent at g. The returned
// rules are fresh values; callers may keep them.
func (idx *Index[T, C]) GetTargetNodes(g uint32, targets []T) []*RawBuildRule[T] {
	idx.QueryCount.Add(1)

	hs := make([]intern.Handle, len(targets))
	for i, t := range targets {
		hs[i] = idx.targets.Intern(t)
	}

	found := make([]internalRule, len(hs))
	present := make([]bool, len(hs))
	idx.beginRead()
	for i, h := range hs {
		found[i], present[i] = idx.rules.GetVersion(h, g)
	}
	idx.endRead()

	out := make([]*RawBuildRule[T], len(hs))
	for i := range hs {
		if !present[i] {
			continue
		}
		out[i] = &RawBuildRule[T]{
			Target: targets[i],
			Node:   found[i].node,
			Deps:   idx.externalTargets(found[i].deps),
		}
	}
	if idx.verbose {
		idx.logger.Debug("idx: GET.NODES", "generation", g, "targets", len(targets))
	}
	return out
}

// GetFwdDeps returns the direct dependencies of the given targets at
// generation g, in dep-array order per target. Targets with no rule at g
// are skipped silently.
func (idx *Index[T, C]) GetFwdDeps(g uint32, targets []T) []T {
	idx.QueryCount.Add(1)

	hs := make([]intern.Handle, len(targets))
	for i, t := range targets {
		hs[i] = idx.targets.Intern(t)
	}

	var deps []intern.Handle
	idx.beginRead()
	for _, h := range hs {
		if r, present := idx.rules.GetVersion(h, g); present {
			deps = append(deps, r.deps...)
		}
	}
	idx.endRead()

	return idx.externalTargets(deps)
}

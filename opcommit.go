package buildindex

// AddCommit records the build-package changes a commit made relative to
// the preceding state. If the changes produce no deltas, the commit is
// recorded at the current generation; otherwise every delta is applied
// atomically at the next generation and the counter advances by one.
//
// Callers are serialized internally, so concurrent invocations queue
// rather than race; still, only one commit applier is expected per
// process. Each commit identifier may be recorded once.
func (idx *Index[T, C]) AddCommit(commit C, changes Changes[T]) error {
	idx.commitLock.Lock()
	defer idx.commitLock.Unlock()

	// Reject duplicates before touching anything, so a failing call never
	// leaves versions behind. The LoadOrStore calls below re-check, but by
	// then deltas would already be applied.
	if _, dup := idx.commits.Load(commit); dup {
		return &CommitError{Commit: commit, Err: ErrDuplicateCommit}
	}

	g := idx.generation.Load()
	ic := idx.internChanges(&changes)

	idx.beginRead()
	deltas, err := idx.computeDeltas(ic, g)
	idx.endRead()
	if err != nil {
		return err
	}

	if deltas.IsEmpty() {
		if _, dup := idx.commits.LoadOrStore(commit, g); dup {
			return &CommitError{Commit: commit, Err: ErrDuplicateCommit}
		}
		idx.EmptyCommitCount.Add(1)
		if idx.verbose {
			idx.logger.Debug("idx: COMMIT.EMPTY", "commit", commit, "generation", g)
		}
		return nil
	}

	next := g + 1
	idx.lock.Lock()
	for _, pd := range deltas.packages {
		switch pd.op {
		case OpPut:
			idx.packages.SetVersion(pd.dir, pd.names, next)
		case OpDelete:
			idx.packages.DeleteVersion(pd.dir, next)
		}
	}
	for _, rd := range deltas.rules {
		switch rd.op {
		case OpPut:
			idx.rules.SetVersion(rd.target, rd.rule, next)
		case OpDelete:
			idx.rules.DeleteVersion(rd.target, next)
		}
	}
	idx.lock.Unlock()

	if _, dup := idx.commits.LoadOrStore(commit, next); dup {
		return &CommitError{Commit: commit, Err: ErrDuplicateCommit}
	}
	// Advance the counter last: a reader that sees generation `next` is
	// guaranteed to find the values at `next` in both maps.
	idx.generation.Store(next)
	idx.CommitCount.Add(1)
	if idx.verbose {
		idx.logger.Debug("idx: COMMIT", "commit", commit, "generation", next,
			"packageDeltas", len(deltas.packages), "ruleDeltas", len(deltas.rules))
	}
	return nil
}

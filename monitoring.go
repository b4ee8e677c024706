package buildindex

// IndexStats is a point-in-time snapshot of index sizes.
type IndexStats struct {
	Generation      uint32
	Commits         int
	Packages        int // packages present at Generation
	Rules           int // rules present at Generation
	InternedTargets int // monotonic
}

// Stats counts packages and rules at the current generation under the
// read lock. Commits and interned targets are sampled without it; they
// have their own synchronization.
func (idx *Index[T, C]) Stats() IndexStats {
	var s IndexStats
	s.Generation = idx.generation.Load()
	idx.commits.Range(func(_, _ any) bool {
		s.Commits++
		return true
	})
	s.InternedTargets = idx.targets.Len()

	idx.beginRead()
	for range idx.packages.Entries(s.Generation) {
		s.Packages++
	}
	for range idx.rules.Entries(s.Generation) {
		s.Rules++
	}
	idx.endRead()
	return s
}

package buildindex

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/andreyvit/buildindex/genmap"
	"github.com/andreyvit/buildindex/intern"
)

// Index is a multi-version in-memory view of a build-rule graph. Queries
// resolve the graph at any recorded generation and run concurrently with
// one another and with delta computation; only the brief apply phase of a
// commit blocks them.
//
// A generation greater than the current one reads as the current state:
// every query resolves each key to its latest entry at or before g.
//
// T is the host's build-target type, C its commit identifier type. Both
// must be value-equal.
type Index[T comparable, C comparable] struct {
	scheme  Scheme[T]
	logger  *slog.Logger
	verbose bool

	targets *intern.Table[T]

	// lock guards packages and rules as a unit. sync.RWMutex blocks new
	// readers once a writer is waiting, so a commit cannot be starved by a
	// chain of queries.
	lock     sync.RWMutex
	packages *genmap.Map[string, []string]
	rules    *genmap.Map[intern.Handle, internalRule]

	generation atomic.Uint32
	commits    sync.Map // C → uint32

	// commitLock serializes AddCommit callers. Only one commit applier is
	// expected per process; queueing the rest is cheaper than documenting
	// the race.
	commitLock sync.Mutex

	ReaderCount      atomic.Int64
	ReadCount        atomic.Uint64
	QueryCount       atomic.Uint64
	CommitCount      atomic.Uint64
	EmptyCommitCount atomic.Uint64
}

type Options struct {
	Logger  *slog.Logger // nil means slog.Default()
	Verbose bool         // trace AddCommit and GetTargetNodes through Logger at debug level; other queries are not traced
}

// New returns an empty index at generation 0.
func New[T comparable, C comparable](scheme Scheme[T], opt Options) *Index[T, C] {
	scheme.validate()
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Index[T, C]{
		scheme:   scheme,
		logger:   logger,
		verbose:  opt.Verbose,
		targets:  intern.NewTable[T](),
		packages: genmap.New[string, []string](),
		rules:    genmap.New[intern.Handle, internalRule](),
	}
}

// Generation returns the latest fully-applied generation. It is a safe
// monotonic upper bound: every generation up to and including the returned
// value is completely visible to readers.
func (idx *Index[T, C]) Generation() uint32 {
	return idx.generation.Load()
}

// GetGeneration returns the generation recorded for commit.
func (idx *Index[T, C]) GetGeneration(commit C) (uint32, bool) {
	v, found := idx.commits.Load(commit)
	if !found {
		return 0, false
	}
	return v.(uint32), true
}

func (idx *Index[T, C]) beginRead() {
	idx.lock.RLock()
	idx.ReaderCount.Add(1)
	idx.ReadCount.Add(1)
}

func (idx *Index[T, C]) endRead() {
	idx.ReaderCount.Add(-1)
	idx.lock.RUnlock()
}

// target translates a handle back to the host's target value. Every handle
// stored in the maps came from the interner, so a miss is corruption.
func (idx *Index[T, C]) target(h intern.Handle) T {
	t, found := idx.targets.Lookup(h)
	if !found {
		panic(fmt.Errorf("buildindex: unknown target handle %d", h))
	}
	return t
}

// externalTargets translates handles in order, one output per input.
func (idx *Index[T, C]) externalTargets(hs []intern.Handle) []T {
	if len(hs) == 0 {
		return nil
	}
	out := make([]T, len(hs))
	for i, h := range hs {
		out[i] = idx.target(h)
	}
	return out
}

/*
Package buildindex maintains an in-memory index of a build-rule graph
across many revisions of a source tree, so that a build server can answer
target and dependency queries at any past revision in microseconds
without re-parsing build files per request.

We implement:

1. A target interner, mapping build targets to dense integer handles and
back (package intern).

2. Generation maps, dictionaries whose values are append-only per-key
timelines of (generation, value) pairs, giving O(log H) historical reads
without copying the keyset (package genmap).

3. A delta computer that reduces a commit's added/modified/removed build
packages to the minimal set of timeline appends, or proves the commit
changes nothing.

4. An index facade exposing queries and the single AddCommit mutator
under one reader/writer lock.

# Technical Details

**Generations.**
Non-negative integers labeling points on a linear history. Generation 0
is the empty state. Each commit that produces deltas advances the counter
by exactly one; a commit that changes nothing is recorded at the
preceding generation, so distinct commits may share a generation.

**Handles.**
Dense uint32 values assigned in insertion order and never reused.
Dependency lists are stored as sorted handle arrays, so rule equality is
a dense array comparison and translation back to host targets is an index
into a vector. Handles are never freed, trading space for simplicity;
build-graph target sets grow only slowly with history length.

**Locking.**
One RWMutex guards both generation maps as a unit. A commit computes its
deltas under the read half, so queries keep flowing while the expensive
part runs, and appends every new version inside a single write section,
so readers never observe a partial commit. The interner and the commit
table synchronize themselves and stay outside the lock. The generation
counter is advanced only after the maps and the commit table are updated,
making it a safe monotonic upper bound on fully-applied state.
*/
package buildindex

// Package genmap implements history-preserving dictionaries. Instead of one
// value per key, a Map stores the full sequence of values each key has held
// over a linear chain of generations, so readers can resolve the state at
// any past generation in O(log H) without copying the keyset.
package genmap

import (
	"fmt"
	"iter"
	"sort"
)

type entry[V any] struct {
	gen     uint32
	val     V
	present bool
}

// Map is a dictionary from K to the timeline of values the key has held.
// A timeline is an ordered list of (generation, value-or-removal) entries,
// strictly increasing in generation; once written, entries never change.
//
// A Map carries no locking of its own. The owner is expected to guard it
// with a reader/writer lock: SetVersion and DeleteVersion under the write
// half, everything else under either half.
type Map[K comparable, V any] struct {
	timelines map[K][]entry[V]
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{timelines: make(map[K][]entry[V])}
}

// GetVersion returns the value k held at generation g: the value of the
// latest entry at or before g, or absent if there is no such entry or it
// records a removal.
func (m *Map[K, V]) GetVersion(k K, g uint32) (V, bool) {
	tl := m.timelines[k]
	if i := latest(tl, g); i >= 0 {
		return tl[i].val, tl[i].present
	}
	var zero V
	return zero, false
}

// SetVersion records that k holds v starting at generation g. g must be
// strictly greater than the last generation recorded for k; violations are
// programming errors of the single writer and panic.
func (m *Map[K, V]) SetVersion(k K, v V, g uint32) {
	m.append(k, entry[V]{g, v, true})
}

// DeleteVersion records that k is absent starting at generation g. The
// first entry of a timeline must be a value, not a removal.
func (m *Map[K, V]) DeleteVersion(k K, g uint32) {
	if len(m.timelines[k]) == 0 {
		panic(fmt.Errorf("genmap: removal of key %v with no history", k))
	}
	var zero V
	m.append(k, entry[V]{g, zero, false})
}

func (m *Map[K, V]) append(k K, e entry[V]) {
	tl := m.timelines[k]
	if n := len(tl); n > 0 && tl[n-1].gen >= e.gen {
		panic(fmt.Errorf("genmap: generation %d for key %v is not after %d", e.gen, k, tl[n-1].gen))
	}
	m.timelines[k] = append(tl, e)
}

// Entries iterates over (k, v) for every key present at generation g.
// Iteration order is unspecified.
func (m *Map[K, V]) Entries(g uint32) iter.Seq2[K, V] {
	return m.EntriesMatching(g, nil)
}

// EntriesMatching is Entries restricted to keys accepted by pred.
// A nil pred accepts every key.
func (m *Map[K, V]) EntriesMatching(g uint32, pred func(K) bool) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, tl := range m.timelines {
			if pred != nil && !pred(k) {
				continue
			}
			if tl[0].gen > g {
				continue
			}
			if i := latest(tl, g); i >= 0 && tl[i].present {
				if !yield(k, tl[i].val) {
					return
				}
			}
		}
	}
}

// Len returns the number of keys with recorded history, counting keys whose
// latest entry is a removal.
func (m *Map[K, V]) Len() int {
	return len(m.timelines)
}

// latest returns the index of the greatest entry with gen <= g, or -1.
func latest[V any](tl []entry[V], g uint32) int {
	i := sort.Search(len(tl), func(i int) bool { return tl[i].gen > g })
	return i - 1
}

package genmap

import (
	"maps"
	"slices"
	"strings"
	"testing"
)

func TestEmpty(t *testing.T) {
	m := New[string, int]()
	if _, present := m.GetVersion("a", 0); present {
		t.Errorf("** empty map has a value")
	}
	if n := count(m.Entries(0)); n != 0 {
		t.Errorf("** empty map yields %d entries", n)
	}
	if m.Len() != 0 {
		t.Errorf("** empty map has Len %d", m.Len())
	}
}

func TestTimeline(t *testing.T) {
	m := New[string, int]()
	m.SetVersion("a", 10, 1)
	m.SetVersion("a", 20, 3)
	m.DeleteVersion("a", 5)
	m.SetVersion("a", 30, 7)

	expectAbsent(t, m, "a", 0)
	expectValue(t, m, "a", 1, 10)
	expectValue(t, m, "a", 2, 10)
	expectValue(t, m, "a", 3, 20)
	expectValue(t, m, "a", 4, 20)
	expectAbsent(t, m, "a", 5)
	expectAbsent(t, m, "a", 6)
	expectValue(t, m, "a", 7, 30)
	expectValue(t, m, "a", 100, 30) // beyond the last entry reads as latest
}

func TestKeysAreIndependent(t *testing.T) {
	m := New[string, int]()
	m.SetVersion("a", 1, 1)
	m.SetVersion("b", 2, 4)

	expectValue(t, m, "a", 4, 1)
	expectAbsent(t, m, "b", 3)
	expectValue(t, m, "b", 4, 2)
	if m.Len() != 2 {
		t.Errorf("** Len = %d, wanted 2", m.Len())
	}
}

func TestEntries(t *testing.T) {
	m := New[string, int]()
	m.SetVersion("a", 1, 1)
	m.SetVersion("a/b", 2, 1)
	m.SetVersion("c", 3, 2)
	m.DeleteVersion("a/b", 3)

	expectEntries(t, m, 0, map[string]int{})
	expectEntries(t, m, 1, map[string]int{"a": 1, "a/b": 2})
	expectEntries(t, m, 2, map[string]int{"a": 1, "a/b": 2, "c": 3})
	expectEntries(t, m, 3, map[string]int{"a": 1, "c": 3})

	got := maps.Collect(m.EntriesMatching(3, func(k string) bool {
		return strings.HasPrefix(k, "a")
	}))
	if !maps.Equal(got, map[string]int{"a": 1}) {
		t.Errorf("** filtered entries = %v", got)
	}
}

func TestEntriesStopEarly(t *testing.T) {
	m := New[string, int]()
	m.SetVersion("a", 1, 1)
	m.SetVersion("b", 2, 1)
	n := 0
	for range m.Entries(1) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("** iterated %d entries after break", n)
	}
}

func TestHistoricalStability(t *testing.T) {
	m := New[string, int]()
	m.SetVersion("a", 1, 1)
	before := maps.Collect(m.Entries(1))

	m.SetVersion("a", 2, 2)
	m.SetVersion("b", 3, 2)
	m.DeleteVersion("a", 3)

	after := maps.Collect(m.Entries(1))
	if !maps.Equal(before, after) {
		t.Errorf("** generation 1 changed: %v vs %v", before, after)
	}
}

func TestNonMonotonicPanics(t *testing.T) {
	m := New[string, int]()
	m.SetVersion("a", 1, 2)
	expectPanic(t, "same generation", func() { m.SetVersion("a", 2, 2) })
	expectPanic(t, "earlier generation", func() { m.SetVersion("a", 2, 1) })
	expectPanic(t, "removal at same generation", func() { m.DeleteVersion("a", 2) })
}

func TestFirstEntryRemovalPanics(t *testing.T) {
	m := New[string, int]()
	expectPanic(t, "removal with no history", func() { m.DeleteVersion("a", 1) })
}

func count[K comparable, V any](seq func(func(K, V) bool)) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

func expectValue(t testing.TB, m *Map[string, int], k string, g uint32, want int) {
	t.Helper()
	v, present := m.GetVersion(k, g)
	if !present || v != want {
		t.Errorf("** GetVersion(%q, %d) = %v, %v; wanted %v", k, g, v, present, want)
	}
}

func expectAbsent(t testing.TB, m *Map[string, int], k string, g uint32) {
	t.Helper()
	if v, present := m.GetVersion(k, g); present {
		t.Errorf("** GetVersion(%q, %d) = %v, wanted absent", k, g, v)
	}
}

func expectEntries(t testing.TB, m *Map[string, int], g uint32, want map[string]int) {
	t.Helper()
	got := maps.Collect(m.Entries(g))
	if got == nil {
		got = map[string]int{}
	}
	if !maps.Equal(got, want) {
		keys := slices.Collect(maps.Keys(got))
		slices.Sort(keys)
		t.Errorf("** Entries(%d) = %v (keys %v), wanted %v", g, got, keys, want)
	}
}

func expectPanic(t testing.TB, label string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("** %s: no panic", label)
		}
	}()
	f()
}

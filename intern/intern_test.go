package intern

import (
	"fmt"
	"sync"
	"testing"
)

func TestBijection(t *testing.T) {
	tbl := NewTable[string]()
	a := tbl.Intern("a")
	b := tbl.Intern("b")
	if a != 0 || b != 1 {
		t.Errorf("** handles not dense: a=%d b=%d", a, b)
	}
	if again := tbl.Intern("a"); again != a {
		t.Errorf("** re-interning returned %d, wanted %d", again, a)
	}
	if v, found := tbl.Lookup(a); !found || v != "a" {
		t.Errorf("** Lookup(%d) = %q, %v", a, v, found)
	}
	if _, found := tbl.Lookup(5); found {
		t.Errorf("** Lookup of unassigned handle succeeded")
	}
	if tbl.Len() != 2 {
		t.Errorf("** Len = %d, wanted 2", tbl.Len())
	}
}

func TestConcurrentIntern(t *testing.T) {
	const goroutines = 8
	const values = 200

	tbl := NewTable[string]()
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range values {
				tbl.Intern(fmt.Sprintf("v%d", i))
			}
		}()
	}
	wg.Wait()

	if tbl.Len() != values {
		t.Fatalf("** Len = %d, wanted %d", tbl.Len(), values)
	}
	seen := make(map[Handle]bool)
	for i := range values {
		h := tbl.Intern(fmt.Sprintf("v%d", i))
		if int(h) >= values {
			t.Errorf("** handle %d out of dense range", h)
		}
		if seen[h] {
			t.Errorf("** handle %d assigned twice", h)
		}
		seen[h] = true
		if v, _ := tbl.Lookup(h); v != fmt.Sprintf("v%d", i) {
			t.Errorf("** Lookup(%d) = %q", h, v)
		}
	}
}

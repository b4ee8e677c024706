package buildindex

import (
	"fmt"
	"reflect"
)

// Scheme tells the index how to take apart and put together the host's
// build-target type. All functions must be pure and safe for concurrent
// use.
type Scheme[T comparable] struct {
	// ParseTarget parses a fully-qualified "//<package>:<name>" string into
	// a target value.
	ParseTarget func(s string) (T, error)

	// PackagePath returns the build-file directory of t. The empty string
	// denotes the repository root.
	PackagePath func(t T) string

	// RuleName returns the rule name of t, unique within its package.
	RuleName func(t T) string

	// NodesEqual compares two rule payloads; nil means reflect.DeepEqual.
	// Must match the host's notion of "semantically identical rule", or
	// modified-package diffs will emit spurious rule updates.
	NodesEqual func(a, b any) bool
}

func (scm *Scheme[T]) validate() {
	if scm.ParseTarget == nil || scm.PackagePath == nil || scm.RuleName == nil {
		panic("buildindex: Scheme requires ParseTarget, PackagePath and RuleName")
	}
	if scm.NodesEqual == nil {
		scm.NodesEqual = reflect.DeepEqual
	}
}

// mustParse rebuilds a target from its package directory and rule name.
// The parser accepted every target it is asked to rebuild (they all came
// in through AddCommit or a query), so a failure here is a host bug.
func (scm *Scheme[T]) mustParse(dir, name string) T {
	t, err := scm.ParseTarget(TargetString(dir, name))
	if err != nil {
		panic(fmt.Errorf("buildindex: target parser rejected %q: %w", TargetString(dir, name), err))
	}
	return t
}

// TargetString renders a build target the way build files spell it:
// //<package>:<name>.
func TargetString(dir, name string) string {
	return "//" + dir + ":" + name
}

package testutils

import (
	"runtime/debug"
	"testing"
)

// This contains cross-package functions that are used in tests for multiple packages.
// We don't want to export those to users, so they are in an internal package.
// NOTE: We only put functions here that don't import anything outside the standard library to avoid cyclic dependencies.

// Assert(condition) panics if condition is false; Assert(condition, error) panics if condition is false with panic(error).
func Assert(condition bool, err ...interface{}) {
	if len(err) > 1 {
		panic("montmath / testutils: Assert can only handle 1 extra error argument")
	}
	if !condition {
		if len(err) == 0 {
			panic("This is not supposed to be possible")
		} else {
			panic(err[0])
		}
	}
}

// FatalUnless aborts the running test with the given formatted message if condition is false.
func FatalUnless(t *testing.T, condition bool, formatstring string, args ...any) {
	if !condition {
		debug.PrintStack()
		t.Fatalf(formatstring, args...)
	}
}

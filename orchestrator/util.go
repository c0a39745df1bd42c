package orchestrator

import "golang.org/x/exp/constraints"

// minOf follows the teacher codebase's own pre-generics-stdlib habit of a
// tiny constraints.Ordered helper rather than a type-specific one for each
// call site; this package uses it to clamp chunk boundaries within data's
// actual length.
func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

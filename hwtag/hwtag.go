// Package hwtag picks the sort-core and orchestrator constants that
// depend on the running architecture.
//
// The approach — branch on runtime.GOARCH and consult
// golang.org/x/sys/cpu for finer-grained feature detection — mirrors
// how the teacher codebase picks its own SIMD optimization level at
// process start (see vm.DetectOptimizationLevel in the example corpus),
// just applied to cache-sizing heuristics instead of instruction-set
// selection.
package hwtag

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Tag is the architecture bucket used to select Sort Core thresholds.
type Tag int

const (
	TagOther Tag = iota
	TagAMD64
	TagARM64
)

func (t Tag) String() string {
	switch t {
	case TagAMD64:
		return "amd64"
	case TagARM64:
		return "arm64"
	default:
		return "other"
	}
}

// Defaults holds the HEAP_MAX_K / RADIX_MIN_N / worker-ceiling triple
// for a given Tag.
type Defaults struct {
	HeapMaxK   int
	RadixMinN  int
	MaxWorkers int
}

// maxWorkerCeiling is the hard upper bound on the default worker
// count, regardless of how many cores the machine reports.
const maxWorkerCeiling = 8

// Detect returns the current process's Tag and its built-in Defaults.
// MaxWorkers is min(runtime.NumCPU(), maxWorkerCeiling): the teacher
// codebase sizes its own worker pools off NumCPU the same way, rather
// than hardcoding a count that idles cores on small machines or
// oversubscribes none on big ones.
func Detect() (Tag, Defaults) {
	workers := runtime.NumCPU()
	if workers > maxWorkerCeiling {
		workers = maxWorkerCeiling
	}
	switch runtime.GOARCH {
	case "arm64":
		return TagARM64, Defaults{HeapMaxK: 2048, RadixMinN: 8192, MaxWorkers: workers}
	case "amd64":
		return TagAMD64, Defaults{HeapMaxK: 1024, RadixMinN: 16384, MaxWorkers: workers}
	default:
		return TagOther, Defaults{HeapMaxK: 512, RadixMinN: 16384, MaxWorkers: workers}
	}
}

// HasVectorFriendlyLoads reports whether the 8-byte-word comma
// finder is worth taking on this CPU versus the scalar fallback. It
// does not affect the sort thresholds returned by Detect; it only
// gates the Field Scanner's fast path.
func HasVectorFriendlyLoads() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasSSE2
	case "arm64":
		return cpu.ARM64.HasASIMD
	default:
		return false
	}
}

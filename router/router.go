// Package router implements the Strategy Router: given an input's
// size and shape and the query's own shape (a LIMIT, an ORDER BY, how
// many workers the Hardware Tag Detector allows), it picks which of
// the four scan strategies the engine should run.
package router

import "github.com/csvengine/csvq/query"

// Strategy is one of the scan paths the engine knows how to run.
type Strategy int

const (
	// Stream reads through the RFC4180 reader: unseekable input
	// (stdin) or a decompressed .zst stream, neither of which mmap
	// can cover, and both of which tend to be small enough that
	// stream overhead doesn't matter.
	Stream Strategy = iota
	// Sequential reads through the Small-file Byte Reader's
	// 2MB-windowed buffer: a small-enough regular file where mmap's
	// fixed setup cost isn't worth paying.
	Sequential
	// SingleMapped memory-maps the file and scans it with a single
	// worker goroutine: large enough to want zero-copy access, too
	// small (or only one core available) to want to split it.
	SingleMapped
	// ParallelMapped memory-maps the file and splits it across
	// multiple worker goroutines.
	ParallelMapped
)

func (s Strategy) String() string {
	switch s {
	case Stream:
		return "stream"
	case Sequential:
		return "sequential"
	case SingleMapped:
		return "single-mapped"
	case ParallelMapped:
		return "parallel-mapped"
	default:
		return "unknown"
	}
}

// parallelFloor is the file size above which parallel mapping starts
// paying for its own chunking and join overhead.
const parallelFloor = 10 << 20

// singleMappedFloor is the file size above which mmap's fixed setup
// cost beats a buffered sequential read.
const singleMappedFloor = 5 << 20

// largeLimit is the LIMIT value past which a parallel scan is assumed
// to still be worth it even without a sort — below it, a short top-K
// query already finishes in milliseconds sequentially.
const largeLimit = 100000

// Input describes the source the router decides over.
type Input struct {
	// IsStream is true for stdin or a decompressed .zst stream:
	// neither is seekable, so mmap is never an option regardless of
	// size.
	IsStream bool
	// SizeBytes is the regular file's size; meaningless when
	// IsStream is true.
	SizeBytes int64
}

// Choose picks a Strategy for running q against in, given the engine's
// resolved worker ceiling. Rules are evaluated in order; the first
// match wins.
func Choose(in Input, q *query.Query, maxWorkers int) Strategy {
	if in.IsStream {
		return Stream
	}
	if in.SizeBytes > parallelFloor && maxWorkers > 1 &&
		(!q.HasLimit() || q.Limit > largeLimit || q.HasSort()) {
		return ParallelMapped
	}
	if in.SizeBytes > singleMappedFloor {
		return SingleMapped
	}
	return Sequential
}

// Workers returns how many Chunks the orchestrator should split a
// ParallelMapped scan into: the engine's resolved worker ceiling
// (itself already min(cores, 8) per the Hardware Tag Detector), or
// exactly 1 for every other strategy.
func Workers(strategy Strategy, maxWorkers int) int {
	if strategy != ParallelMapped {
		return 1
	}
	if maxWorkers < 1 {
		return 1
	}
	return maxWorkers
}

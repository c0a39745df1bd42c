// Package sortcore implements the three interchangeable ORDER BY
// strategies — a bounded top-K heap, an indirect LSD radix sort over
// codec-produced uint64 keys, and a comparison-sort fallback — behind
// one entry point, Sort, that picks a strategy from the record count,
// the requested limit, whether every key is numeric, and the running
// architecture's hardware tag.
//
// The three-way split and the (key, index) indirection in the radix
// path mirror the teacher codebase's own sorting package: a bounded
// Ktop heap for small LIMITs, specialized per-type sorters for large
// unlimited sorts, and a generic comparison fallback, all operating on
// keys-plus-indices rather than moving the (here, 64-byte) records
// themselves until the very end.
package sortcore

// Record is the minimal per-row payload the sort strategies operate
// on: a direction-masked radix key, a numeric key (or the canonical
// NaN sentinel), and references to the row's sort column and the
// whole row, both of which alias a MappedRegion or WorkerArena rather
// than being copied.
type Record struct {
	RadixKey   uint64
	NumericKey float64
	SortBytes  []byte
	RowBytes   []byte
}

// Thresholds are the HEAP_MAX_K / RADIX_MIN_N pair that gate strategy
// selection. They come from the Hardware Tag Detector, optionally
// overridden by EngineConfig.
type Thresholds struct {
	HeapMaxK  int
	RadixMinN int
}

package sortcore

// radixSort returns all of records sorted ascending by RadixKey using
// an 8-pass, 256-way, least-significant-byte-first counting sort over
// a companion (key, index) array — the records themselves are only
// touched once, at the very end, to gather them into final order.
//
// Because RadixKey already carries the direction mask from the Key
// Codec, ascending order here is always the right final output order;
// radixSort never looks at ASC/DESC itself.
//
// A pre-scan skips any of the 8 byte positions that don't vary across
// the input (e.g. a column of small non-negative integers has several
// always-zero high bytes once float-codec-encoded); skipping a
// constant pass changes nothing about the result, since a byte that
// never varies carries no ordering information, but it does save a
// full O(N) counting-sort pass. Passes run in increasing significance
// order (LSD), and each pass's counting sort is stable, so the whole
// sort is stable across ties that survive every varying pass.
//
// This is the portable equivalent of the teacher codebase's
// AVX512-assisted indirect sorters (sortUint64Asc and friends in the
// single-column sort algorithm, and the counting-sort primitives
// exercised by internal/sort's uint64 counting-sort tests): same
// (key, index) indirection, same LSD counting-sort structure, without
// requiring vector instructions.
func radixSort(records []Record) []Record {
	n := len(records)
	keys := make([]uint64, n)
	for i := range records {
		keys[i] = records[i].RadixKey
	}

	a := make([]int, n)
	for i := range a {
		a[i] = i
	}
	b := make([]int, n)

	src, dst := a, b
	for _, shift := range varyingShifts(keys) {
		countingSortPass(keys, src, dst, shift)
		src, dst = dst, src
	}

	out := make([]Record, n)
	for i, idx := range src {
		out[i] = records[idx]
	}
	return out
}

// varyingShifts returns the bit-shift amounts (0, 8, 16, ... 56) for
// byte positions that have at least two distinct values across keys,
// in increasing-significance (LSD) order.
func varyingShifts(keys []uint64) []uint {
	var first [8]byte
	var varies [8]bool
	if len(keys) > 0 {
		for b := 0; b < 8; b++ {
			first[b] = byte(keys[0] >> (8 * b))
		}
	}
	for _, k := range keys {
		for b := 0; b < 8; b++ {
			if byte(k>>(8*b)) != first[b] {
				varies[b] = true
			}
		}
	}
	shifts := make([]uint, 0, 8)
	for b := 0; b < 8; b++ {
		if varies[b] {
			shifts = append(shifts, uint(8*b))
		}
	}
	return shifts
}

// countingSortPass stably sorts src (a permutation of 0..n-1, indexing
// into keys) by the byte of keys at the given shift, writing the
// result into dst.
func countingSortPass(keys []uint64, src, dst []int, shift uint) {
	var count [257]int
	for _, idx := range src {
		b := byte(keys[idx] >> shift)
		count[int(b)+1]++
	}
	for i := 1; i < 257; i++ {
		count[i] += count[i-1]
	}
	for _, idx := range src {
		b := byte(keys[idx] >> shift)
		dst[count[b]] = idx
		count[b]++
	}
}

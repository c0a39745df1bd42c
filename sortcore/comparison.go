package sortcore

import (
	"bytes"
	"math"
	"sort"
)

// comparisonSort returns all of records sorted by NumericKey (falling
// back to byte-wise SortBytes comparison) using an O(N log N)
// comparison sort. Unlike the radix path, this one compares the raw
// NumericKey/SortBytes rather than RadixKey, because RadixKey's
// string-prefix truncation can leave ties the radix path doesn't
// resolve; the comparison sort always has the full SortBytes
// available to break them.
//
// Per the strict-weak-ordering design note, descending order is
// produced by invoking the comparator with its operands swapped, not
// by negating ascendingLess — negation turns "equal" ties into
// contradictory orderings that corrupt sort.Slice on mid-sized inputs.
func comparisonSort(records []Record, desc bool) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	less := ascendingLess
	if desc {
		less = func(a, b *Record) bool { return ascendingLess(b, a) }
	}
	sort.Slice(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

func ascendingLess(a, b *Record) bool {
	aNaN := math.IsNaN(a.NumericKey)
	bNaN := math.IsNaN(b.NumericKey)
	switch {
	case !aNaN && !bNaN:
		if a.NumericKey != b.NumericKey {
			return a.NumericKey < b.NumericKey
		}
		return bytes.Compare(a.SortBytes, b.SortBytes) < 0
	case aNaN && bNaN:
		return bytes.Compare(a.SortBytes, b.SortBytes) < 0
	default:
		// exactly one is NaN: NaN sorts after any number, ascending.
		return bNaN
	}
}

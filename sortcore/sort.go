package sortcore

import "math"

// Sort orders records according to desc and returns a prefix of at
// most limit records (all of them, sorted, when limit <= 0). records
// itself is left in its original order: every strategy writes its
// result into a newly allocated slice.
//
// Strategy selection follows the spec's table: a bounded heap when
// the limit is small relative to N, an indirect radix sort when every
// record's NumericKey is present (non-NaN) and N is large enough that
// cache locality stops favoring a comparison sort, and a comparison
// sort otherwise.
func Sort(records []Record, desc bool, limit int, t Thresholds) []Record {
	n := len(records)
	if n == 0 {
		return records
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	if limit <= t.HeapMaxK && limit*4 < n {
		return heapTopK(records, limit)
	}
	if allNumeric(records) && n >= t.RadixMinN {
		sorted := radixSort(records)
		return sorted[:limit]
	}
	sorted := comparisonSort(records, desc)
	return sorted[:limit]
}

func allNumeric(records []Record) bool {
	for i := range records {
		if math.IsNaN(records[i].NumericKey) {
			return false
		}
	}
	return true
}

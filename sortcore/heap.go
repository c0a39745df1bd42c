package sortcore

// heapTopK returns the limit records with the smallest RadixKey,
// fully sorted ascending by RadixKey.
//
// RadixKey already has the direction mask baked in by the Key Codec
// (descending keys were XORed with all-ones at construction time), so
// "smallest RadixKey first" is always the correct final output order
// regardless of whether the query asked for ASC or DESC — the heap
// itself never needs to know which. A max-heap keeps the current
// worst (largest-key) survivor at the root so it can be evicted in
// O(log limit) when a smaller candidate arrives; after every record
// has been offered, the heap is drained by repeated root-extraction
// into a fully sorted slice.
//
// The push/fix/pop shape mirrors the teacher codebase's generic heap
// package (heap.PushSlice / heap.FixSlice / heap.PopSlice),
// specialized here to a slice of indices into records so the Record
// values themselves never move until the final gather.
func heapTopK(records []Record, limit int) []Record {
	indices := make([]int, 0, limit)
	// less(i, j) orders indices so the heap root holds the largest
	// surviving RadixKey — the one we want to evict first.
	less := func(i, j int) bool {
		return records[indices[i]].RadixKey > records[indices[j]].RadixKey
	}

	for i := range records {
		if len(indices) < limit {
			indices = append(indices, i)
			siftUp(indices, len(indices)-1, less)
			continue
		}
		if records[indices[0]].RadixKey > records[i].RadixKey {
			indices[0] = i
			siftDown(indices, 0, less)
		}
	}

	out := make([]Record, len(indices))
	for i := len(indices) - 1; i >= 0; i-- {
		out[i] = records[indices[0]]
		last := len(indices) - 1
		indices[0] = indices[last]
		indices = indices[:last]
		if len(indices) > 0 {
			siftDown(indices, 0, less)
		}
	}
	return out
}

func siftUp(x []int, index int, less func(i, j int) bool) {
	for index > 0 {
		parent := (index - 1) / 2
		if !less(index, parent) {
			break
		}
		x[index], x[parent] = x[parent], x[index]
		index = parent
	}
}

func siftDown(x []int, index int, less func(i, j int) bool) {
	n := len(x)
	for {
		left := 2*index + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && less(right, left) {
			child = right
		}
		if !less(child, index) {
			break
		}
		x[index], x[child] = x[child], x[index]
		index = child
	}
}

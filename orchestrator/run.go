package orchestrator

import (
	"sync"

	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/scanner"
	"github.com/csvengine/csvq/sortcore"
)

// Run scans the byte ranges of data named by chunks — the mapped input
// with its header line already excluded — across len(chunks)
// goroutines, one per Chunk,
// and joins their output into Result. chunks of length 1 is the
// single-threaded mapped strategy; longer chunks are the parallel
// mapped strategy. Both reuse this same function, since the only
// difference between them is how many Chunks the Strategy Router
// handed in.
func Run(data []byte, chunks []Chunk, headerLen int, q *query.Query, sortCol int, thresholds sortcore.Thresholds) Result {
	outputs := make([]workerOutput, len(chunks))

	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		go func(i int, c Chunk) {
			defer wg.Done()
			outputs[i] = scanChunk(data, c, headerLen, q, sortCol)
		}(i, c)
	}
	wg.Wait()

	return join(outputs, q, thresholds)
}

// Result is the orchestrator's output, already in final row order and
// already truncated to the query's LIMIT.
type Result struct {
	Rows [][]scanner.FieldSlice
}

func join(outputs []workerOutput, q *query.Query, thresholds sortcore.Thresholds) Result {
	if q.HasSort() {
		return joinSorted(outputs, q, thresholds)
	}
	return joinUnsorted(outputs, q)
}

// joinUnsorted concatenates every worker's rows in worker order —
// the spec places no ordering guarantee on a query without ORDER BY
// beyond "some order consistent with a single-threaded scan" — and
// truncates to the LIMIT.
func joinUnsorted(outputs []workerOutput, q *query.Query) Result {
	var rows [][]scanner.FieldSlice
	for _, o := range outputs {
		rows = append(rows, o.rows...)
		if q.HasLimit() && len(rows) >= q.Limit {
			break
		}
	}
	if q.HasLimit() && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return Result{Rows: rows}
}

// joinSorted flattens every worker's sort records into one slice,
// hands it to the Sort Core, then re-splits each surviving record's
// RowBytes to apply the query's projection — deferred until now
// because re-splitting every scanned row up front would waste work on
// rows the sort then discards past the LIMIT.
func joinSorted(outputs []workerOutput, q *query.Query, thresholds sortcore.Thresholds) Result {
	var all []sortcore.Record
	for _, o := range outputs {
		all = append(all, o.records...)
	}

	desc := q.Sort.Direction == query.Descending
	sorted := sortcore.Sort(all, desc, q.Limit, thresholds)

	rows := make([][]scanner.FieldSlice, len(sorted))
	var buf []scanner.FieldSlice
	for i, rec := range sorted {
		fields, _ := scanner.SplitFields(rec.RowBytes, buf)
		buf = fields
		rows[i] = Project(q.Projection, fields)
	}
	return Result{Rows: rows}
}

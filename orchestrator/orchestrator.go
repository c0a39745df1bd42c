// Package orchestrator implements the Parallel Scan Orchestrator: it
// splits a memory-mapped input into line-aligned chunks, runs one
// worker per chunk concurrently (each with its own scanner and field
// buffer, touching no shared mutable state), and joins their output
// either by straight concatenation (no ORDER BY) or by flattening
// every worker's sort records into one slice for the Sort Core (ORDER
// BY present).
//
// Mapped bytes are read-only and live for the whole query, so workers
// need no arena of their own here — every FieldSlice and RowBytes
// they produce aliases the mapped region directly. The arena package
// is reserved for the sequential, non-mapped scan path, where the
// byte reader's window is reused and would otherwise invalidate those
// slices on the next refill.
package orchestrator

import (
	"math"

	"github.com/csvengine/csvq/codec"
	"github.com/csvengine/csvq/predicate"
	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/scanner"
	"github.com/csvengine/csvq/sortcore"
)

// Chunk is a byte range [Start, End) of a mapped region, aligned so
// that every row falls entirely within exactly one Chunk.
type Chunk struct {
	Start, End int
}

// Chunks splits data[start:] into up to workers roughly equal,
// line-aligned ranges. The returned slice may have fewer than workers
// elements if the input is too small to usefully split, and is empty
// if start is at or past the end of data.
func Chunks(data []byte, start, workers int) []Chunk {
	n := len(data)
	if start >= n {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	target := (n - start) / workers
	if target < 1 {
		target = n - start
	}

	var chunks []Chunk
	pos := start
	for pos < n {
		end := minOf(pos+target, n)
		if end < n {
			if idx := scanner.NextNewline(data, end); idx >= 0 {
				end = minOf(idx+1, n)
			} else {
				end = n
			}
		}
		chunks = append(chunks, Chunk{Start: pos, End: end})
		pos = end
	}
	return chunks
}

// workerOutput holds one worker's contribution, in exactly one of the
// two shapes Join below understands.
type workerOutput struct {
	rows    [][]scanner.FieldSlice
	records []sortcore.Record
}

// scanChunk runs the per-row loop — split fields, evaluate the
// predicate, and either project a row or build a sort Record — over
// one Chunk of a mapped region. hdr is used only to size field
// buffers; row boundaries come entirely from the chunk's own bytes.
func scanChunk(data []byte, c Chunk, hdr int, q *query.Query, sortCol int) workerOutput {
	var out workerOutput
	fields := make([]scanner.FieldSlice, 0, hdr)

	pos := c.Start
	for pos < c.End {
		nl := scanner.NextNewline(data, pos)
		var line []byte
		if nl < 0 || nl >= c.End {
			line = data[pos:c.End]
			pos = c.End
		} else {
			line = data[pos:nl]
			pos = nl + 1
		}
		if len(line) == 0 {
			continue
		}

		row, ok := scanner.SplitFields(line, fields)
		fields = row
		if !ok {
			continue // too_many_fields: row dropped
		}
		if !predicate.Evaluate(q.Predicate, row) {
			continue
		}

		if q.HasSort() {
			out.records = append(out.records, buildRecord(row, line, sortCol, q.Sort.Direction == query.Descending))
		} else {
			out.rows = append(out.rows, Project(q.Projection, row))
		}
	}
	return out
}

func buildRecord(row []scanner.FieldSlice, rawRow []byte, sortCol int, desc bool) sortcore.Record {
	rec := sortcore.Record{RowBytes: rawRow}
	if sortCol < 0 || sortCol >= len(row) {
		rec.NumericKey = math.NaN()
		rec.RadixKey = codec.Mask(0, desc)
		return rec
	}
	field := row[sortCol]
	if v, err := predicate.ParseFloat(field); err == nil {
		rec.NumericKey = v
		rec.SortBytes = field
		rec.RadixKey = codec.Mask(codec.EncodeFloat64(v), desc)
		return rec
	}
	rec.NumericKey = math.NaN()
	rec.SortBytes = field
	rec.RadixKey = codec.Mask(codec.EncodeStringPrefix(field), desc)
	return rec
}

// Project copies the FieldSlice references named by p into a new
// slice sized to the projection — no byte copying, only a new slice
// of existing FieldSlices, since mapped bytes outlive the whole
// query. It is also used directly by the sequential scan path, which
// shares this same row shape.
func Project(p query.Projection, row []scanner.FieldSlice) []scanner.FieldSlice {
	if p.All {
		out := make([]scanner.FieldSlice, len(row))
		copy(out, row)
		return out
	}
	out := make([]scanner.FieldSlice, 0, len(p.Columns))
	for _, c := range p.Columns {
		if c < 0 || c >= len(row) {
			out = append(out, scanner.FieldSlice(nil))
			continue
		}
		out = append(out, row[c])
	}
	return out
}

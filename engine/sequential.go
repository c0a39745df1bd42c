package engine

import (
	"fmt"
	"math"
	"os"

	"github.com/csvengine/csvq/arena"
	"github.com/csvengine/csvq/codec"
	"github.com/csvengine/csvq/config"
	"github.com/csvengine/csvq/header"
	"github.com/csvengine/csvq/orchestrator"
	"github.com/csvengine/csvq/predicate"
	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/reader"
	"github.com/csvengine/csvq/scanner"
	"github.com/csvengine/csvq/sortcore"
	"github.com/csvengine/csvq/writer"
)

// executeSequential runs the 2MB-windowed buffered scan over a
// regular file too small for mmap's setup cost to pay off. A row that
// matches the predicate is written immediately when there is no
// ORDER BY, since nothing needs to outlive the reader's next window
// refill; when there is an ORDER BY, the row is copied into a private
// Arena first, because the Sort Core must hold every matching row
// until every row has been seen.
func executeSequential(f *os.File, q *query.Query, cfg config.Resolved, w *writer.Writer) error {
	br := reader.New(f, cfg.ReaderWindow)

	headerLine, ok, err := br.NextLine()
	if err != nil {
		return newError(KindIO, err)
	}
	if !ok {
		return newError(KindEmptyInput, fmt.Errorf("input has no header line"))
	}

	fields, ok := scanner.SplitFields(headerLine, nil)
	if !ok {
		return newError(KindTooManyFields, fmt.Errorf("header row exceeds the field cap"))
	}
	hdr, err := header.New(toStrings(fields))
	if err != nil {
		return newError(KindColumnNotFound, err)
	}

	rq, err := resolve(q, hdr)
	if err != nil {
		return err
	}

	if err := writeHeaderRow(w, projectedHeaderNames(rq.Projection, hdr)); err != nil {
		return err
	}

	if rq.HasSort() {
		return sequentialSorted(br, rq, cfg, w)
	}
	return sequentialUnsorted(br, rq, w)
}

func sequentialUnsorted(br *reader.ByteReader, q *query.Query, w *writer.Writer) error {
	var buf []scanner.FieldSlice
	written := 0
	for {
		line, ok, err := br.NextLine()
		if err != nil {
			return newError(KindIO, err)
		}
		if !ok {
			return nil
		}
		if len(line) == 0 {
			continue
		}
		row, ok := scanner.SplitFields(line, buf)
		buf = row
		if !ok {
			continue
		}
		if !predicate.Evaluate(q.Predicate, row) {
			continue
		}
		projected := orchestrator.Project(q.Projection, row)
		if err := writeFieldSlices(w, projected); err != nil {
			return err
		}
		written++
		if q.HasLimit() && written >= q.Limit {
			return nil
		}
	}
}

func sequentialSorted(br *reader.ByteReader, q *query.Query, cfg config.Resolved, w *writer.Writer) error {
	desc := q.Sort.Direction == query.Descending
	sortCol := q.Sort.Column

	ar := arena.New(0)
	var fieldsBuf []scanner.FieldSlice
	var records []sortcore.Record

	for {
		line, ok, err := br.NextLine()
		if err != nil {
			return newError(KindIO, err)
		}
		if !ok {
			break
		}
		if len(line) == 0 {
			continue
		}
		row, ok := scanner.SplitFields(line, fieldsBuf)
		fieldsBuf = row
		if !ok {
			continue
		}
		if !predicate.Evaluate(q.Predicate, row) {
			continue
		}
		records = append(records, buildArenaRecord(ar, line, sortCol, desc))
	}

	thresholds := sortcore.Thresholds{HeapMaxK: cfg.HeapMaxK, RadixMinN: cfg.RadixMinN}
	sorted := sortcore.Sort(records, desc, q.Limit, thresholds)

	var buf []scanner.FieldSlice
	for _, rec := range sorted {
		fields, _ := scanner.SplitFields(rec.RowBytes, buf)
		buf = fields
		projected := orchestrator.Project(q.Projection, fields)
		if err := writeFieldSlices(w, projected); err != nil {
			return err
		}
	}
	return nil
}

// buildArenaRecord copies rawLine into ar — the reader's window would
// otherwise overwrite it on the next refill — then re-derives fields
// from that stable copy so SortBytes aliases the Arena rather than
// the (already abandoned) original line.
func buildArenaRecord(ar *arena.Arena, rawLine []byte, sortCol int, desc bool) sortcore.Record {
	lineCopy := ar.Copy(rawLine)
	fields, _ := scanner.SplitFields(lineCopy, nil)

	rec := sortcore.Record{RowBytes: lineCopy}
	if sortCol < 0 || sortCol >= len(fields) {
		rec.NumericKey = math.NaN()
		rec.RadixKey = codec.Mask(0, desc)
		return rec
	}
	field := fields[sortCol]
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

func writeFieldSlices(w *writer.Writer, row []scanner.FieldSlice) error {
	buf := make([][]byte, len(row))
	for i, f := range row {
		buf[i] = f
	}
	if err := w.WriteRow(buf); err != nil {
		return newError(KindIO, err)
	}
	return nil
}

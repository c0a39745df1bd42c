package engine

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/csvengine/csvq/codec"
	"github.com/csvengine/csvq/config"
	"github.com/csvengine/csvq/header"
	"github.com/csvengine/csvq/predicate"
	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/reader"
	"github.com/csvengine/csvq/scanner"
	"github.com/csvengine/csvq/sortcore"
	"github.com/csvengine/csvq/writer"
)

// executeStream runs the RFC-4180 path: stdin, or a decompressed
// .zst stream. Neither is seekable, so this never mmaps; both are
// read through encoding/csv, which — unlike the hot-path Field
// Scanner — understands quoted fields, embedded delimiters, and
// doubled quotes.
//
// An unseekable source can't be chunked across workers, so there is
// no parallel variant of this path. An ORDER BY is still honored: the
// spec only says the stream path carries "no sort support
// requirement", not that it must refuse one. Since every matching row
// must already be held in memory (there is no way to re-read an
// unseekable source to resplit a raw line the way the mapped and
// sequential paths do), sorting here is a direct sort.SliceStable
// over fully materialized rows rather than a Sort Core strategy
// selection — the Sort Core's three strategies exist to avoid that
// materialization cost on the much larger mapped inputs, a
// consideration that does not apply to a stream small enough to fit
// in memory in the first place.
func executeStream(src io.Reader, q *query.Query, cfg config.Resolved, w *writer.Writer) error {
	rfc := reader.NewRFC4180(src)

	names, ok, err := rfc.ReadRow()
	if err != nil {
		return newError(KindIO, err)
	}
	if !ok {
		return newError(KindEmptyInput, fmt.Errorf("input has no header line"))
	}

	hdr, err := header.New(names)
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
		return streamSorted(rfc, rq, w)
	}
	return streamUnsorted(rfc, rq, w)
}

func streamUnsorted(rfc *reader.RFC4180Reader, q *query.Query, w *writer.Writer) error {
	written := 0
	for {
		rec, ok, err := rfc.ReadRow()
		if err != nil {
			return newError(KindIO, err)
		}
		if !ok {
			return nil
		}
		if !predicate.Evaluate(q.Predicate, stringsToFieldSlices(rec)) {
			continue
		}
		if err := w.WriteRow(projectStrings(q.Projection, rec)); err != nil {
			return newError(KindIO, err)
		}
		written++
		if q.HasLimit() && written >= q.Limit {
			return nil
		}
	}
}

type streamRow struct {
	key    sortcore.Record
	fields [][]byte
}

func streamSorted(rfc *reader.RFC4180Reader, q *query.Query, w *writer.Writer) error {
	desc := q.Sort.Direction == query.Descending
	sortCol := q.Sort.Column

	var rows []streamRow
	for {
		rec, ok, err := rfc.ReadRow()
		if err != nil {
			return newError(KindIO, err)
		}
		if !ok {
			break
		}
		if !predicate.Evaluate(q.Predicate, stringsToFieldSlices(rec)) {
			continue
		}
		rows = append(rows, streamRow{
			key:    streamSortKey(rec, sortCol, desc),
			fields: projectStrings(q.Projection, rec),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return streamAscendingLess(rows[j].key, rows[i].key)
		}
		return streamAscendingLess(rows[i].key, rows[j].key)
	})

	if q.HasLimit() && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	for _, r := range rows {
		if err := w.WriteRow(r.fields); err != nil {
			return newError(KindIO, err)
		}
	}
	return nil
}

func streamSortKey(rec []string, sortCol int, desc bool) sortcore.Record {
	if sortCol < 0 || sortCol >= len(rec) {
		return sortcore.Record{NumericKey: math.NaN(), RadixKey: codec.Mask(0, desc)}
	}
	field := []byte(rec[sortCol])
	if v, err := predicate.ParseFloat(field); err == nil {
		return sortcore.Record{NumericKey: v, SortBytes: field, RadixKey: codec.Mask(codec.EncodeFloat64(v), desc)}
	}
	return sortcore.Record{NumericKey: math.NaN(), SortBytes: field, RadixKey: codec.Mask(codec.EncodeStringPrefix(field), desc)}
}

// streamAscendingLess mirrors sortcore's unexported ascendingLess:
// numeric comparison when both keys are numeric, byte-wise fallback
// otherwise, NaN sorting after every number.
func streamAscendingLess(a, b sortcore.Record) bool {
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
		return bNaN
	}
}

func stringsToFieldSlices(rec []string) []scanner.FieldSlice {
	out := make([]scanner.FieldSlice, len(rec))
	for i, s := range rec {
		out[i] = scanner.FieldSlice(s)
	}
	return out
}

func projectStrings(p query.Projection, rec []string) [][]byte {
	if p.All {
		out := make([][]byte, len(rec))
		for i, s := range rec {
			out[i] = []byte(s)
		}
		return out
	}
	out := make([][]byte, 0, len(p.Columns))
	for _, c := range p.Columns {
		if c < 0 || c >= len(rec) {
			out = append(out, nil)
			continue
		}
		out = append(out, []byte(rec[c]))
	}
	return out
}

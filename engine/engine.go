// Package engine wires the Config, Hardware Tag Detector, Strategy
// Router, mmap/reader, Header, Parallel Scan Orchestrator, and Output
// Writer together behind one entry point, Execute.
package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/csvengine/csvq/config"
	"github.com/csvengine/csvq/header"
	"github.com/csvengine/csvq/mmap"
	"github.com/csvengine/csvq/orchestrator"
	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/reader"
	"github.com/csvengine/csvq/router"
	"github.com/csvengine/csvq/scanner"
	"github.com/csvengine/csvq/sortcore"
	"github.com/csvengine/csvq/writer"
)

// Execute runs q against its Source and writes matching, projected
// rows to out. It returns an *Error whose Kind matches the taxonomy
// in the error handling design.
func Execute(q *query.Query, cfg config.Resolved, out io.Writer) error {
	if q.GroupBy != nil {
		return runGroupBy(q, cfg)
	}

	w := writer.New(out, cfg.WriterBuffer)

	if isStdin(q.Source) {
		logSetup(router.Stream, 1, cfg)
		if err := executeStream(os.Stdin, q, cfg, w); err != nil {
			return err
		}
		return flushErr(w)
	}

	if reader.IsCompressed(q.Source) {
		f, err := os.Open(q.Source)
		if err != nil {
			return newError(KindIO, err)
		}
		defer f.Close()
		rc, err := reader.OpenCompressed(f)
		if err != nil {
			return newError(KindIO, err)
		}
		defer rc.Close()
		logSetup(router.Stream, 1, cfg)
		if err := executeStream(rc, q, cfg, w); err != nil {
			return err
		}
		return flushErr(w)
	}

	if err := executeFile(q.Source, q, cfg, w); err != nil {
		return err
	}
	return flushErr(w)
}

func isStdin(source string) bool {
	return source == "-" || source == "stdin"
}

func flushErr(w *writer.Writer) error {
	if err := w.Flush(); err != nil {
		return newError(KindIO, err)
	}
	return nil
}

func executeFile(path string, q *query.Query, cfg config.Resolved, w *writer.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return newError(KindIO, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return newError(KindIO, err)
	}
	size := info.Size()

	strategy := router.Choose(router.Input{SizeBytes: size}, q, cfg.MaxWorkers)
	workers := router.Workers(strategy, cfg.MaxWorkers)
	logSetup(strategy, workers, cfg)

	if strategy == router.Sequential {
		defer f.Close()
		return executeSequential(f, q, cfg, w)
	}
	f.Close()

	region, err := mmap.Open(path)
	if err != nil {
		return newError(KindIO, err)
	}
	defer region.Close()

	return executeMapped(region.Bytes(), workers, q, cfg, w)
}

func executeMapped(data []byte, workers int, q *query.Query, cfg config.Resolved, w *writer.Writer) error {
	if len(data) == 0 {
		return newError(KindEmptyInput, fmt.Errorf("input has no header line"))
	}

	headerEnd := scanner.NextNewline(data, 0)
	var headerLine []byte
	bodyStart := len(data)
	if headerEnd >= 0 {
		headerLine = data[:headerEnd]
		bodyStart = headerEnd + 1
	} else {
		headerLine = data
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

	sortCol := -1
	if rq.HasSort() {
		sortCol = rq.Sort.Column
	}
	thresholds := sortcore.Thresholds{HeapMaxK: cfg.HeapMaxK, RadixMinN: cfg.RadixMinN}

	chunks := orchestrator.Chunks(data, bodyStart, workers)
	result := orchestrator.Run(data, chunks, hdr.Len(), rq, sortCol, thresholds)

	return emitFieldSliceRows(w, result.Rows)
}

// projectedHeaderNames returns the column names the projection selects,
// in projected order — the same shape emitFieldSliceRows' rows take.
func projectedHeaderNames(p query.Projection, hdr *header.Header) []string {
	if p.All {
		return hdr.Names
	}
	out := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		if c >= 0 && c < len(hdr.Names) {
			out[i] = hdr.Names[c]
		}
	}
	return out
}

// writeHeaderRow writes the projected header as the output's first
// line, per the external interface's "output begins with the
// projected header" requirement.
func writeHeaderRow(w *writer.Writer, names []string) error {
	buf := make([][]byte, len(names))
	for i, n := range names {
		buf[i] = []byte(n)
	}
	if err := w.WriteRow(buf); err != nil {
		return newError(KindIO, err)
	}
	return nil
}

func toStrings(fields []scanner.FieldSlice) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

func emitFieldSliceRows(w *writer.Writer, rows [][]scanner.FieldSlice) error {
	for _, row := range rows {
		buf := make([][]byte, len(row))
		for i, f := range row {
			buf[i] = f
		}
		if err := w.WriteRow(buf); err != nil {
			return newError(KindIO, err)
		}
	}
	return nil
}

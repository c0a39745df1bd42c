package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/csvengine/csvq/config"
	"github.com/csvengine/csvq/groupby"
	"github.com/csvengine/csvq/header"
	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/reader"
	"github.com/csvengine/csvq/scanner"
)

// runGroupBy is the Group-By Stub's one committed behavior: a single
// sequential pass over the source, tallying distinct grouping keys for
// the diagnostics log, before refusing the query with not_implemented.
// No worker spawns and nothing is written to out — the pass exists
// only so the refusal is logged next to a real cardinality estimate.
func runGroupBy(q *query.Query, cfg config.Resolved) error {
	src, closeSrc, err := openGroupBySource(q.Source)
	if err != nil {
		return err
	}
	defer closeSrc()

	br := reader.New(src, cfg.ReaderWindow)
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

	spec, err := resolveGroupBy(*q.GroupBy, hdr)
	if err != nil {
		return err
	}

	tally := groupby.NewTally(&spec)
	var buf []scanner.FieldSlice
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
		row, ok := scanner.SplitFields(line, buf)
		buf = row
		if !ok {
			continue
		}
		tally.Add(row)
	}

	logGroupByDiagnostics(q.Source, tally.Count())
	return newError(KindNotImplemented, groupby.Execute(q.GroupBy))
}

func openGroupBySource(source string) (io.Reader, func(), error) {
	if isStdin(source) {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, nil, newError(KindIO, err)
	}
	if reader.IsCompressed(source) {
		rc, err := reader.OpenCompressed(f)
		if err != nil {
			f.Close()
			return nil, nil, newError(KindIO, err)
		}
		return rc, func() { rc.Close(); f.Close() }, nil
	}
	return f, func() { f.Close() }, nil
}

package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csvengine/csvq/config"
	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/writer"
)

func writeTempCSV(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func resolvedConfig() config.Resolved {
	return config.Resolve(config.EngineConfig{})
}

func TestExecuteSequentialUnsorted(t *testing.T) {
	path := writeTempCSV(t, "id,name\n1,alice\n2,bob\n3,carol\n")
	q := &query.Query{Source: path, Projection: query.Projection{All: true}}

	var out bytes.Buffer
	if err := Execute(q, resolvedConfig(), &out); err != nil {
		t.Fatal(err)
	}
	want := "id,name\n1,alice\n2,bob\n3,carol\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestExecuteSequentialWithPredicateAndLimit(t *testing.T) {
	path := writeTempCSV(t, "id,name\n1,alice\n2,bob\n3,carol\n4,dan\n")
	q := &query.Query{
		Source:     path,
		Projection: query.Projection{All: true},
		Predicate:  &query.Predicate{Column: 0, Operator: query.Ge, HasNumeric: true, Numeric: 2},
		Limit:      2,
	}

	var out bytes.Buffer
	if err := Execute(q, resolvedConfig(), &out); err != nil {
		t.Fatal(err)
	}
	want := "id,name\n2,bob\n3,carol\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestExecuteSequentialSorted(t *testing.T) {
	path := writeTempCSV(t, "id,name\n3,carol\n1,alice\n2,bob\n")
	q := &query.Query{
		Source:     path,
		Projection: query.Projection{All: true},
		Sort:       &query.SortSpec{Column: 0, Direction: query.Ascending},
	}

	var out bytes.Buffer
	if err := Execute(q, resolvedConfig(), &out); err != nil {
		t.Fatal(err)
	}
	want := "id,name\n1,alice\n2,bob\n3,carol\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestExecuteResolvesColumnNamesByCaseInsensitiveLookup(t *testing.T) {
	path := writeTempCSV(t, "ID,Name\n2,bob\n1,alice\n")
	q := &query.Query{
		Source:     path,
		Projection: query.Projection{Names: []string{"name"}},
		Sort:       &query.SortSpec{ColumnName: "id", Column: -1, Direction: query.Ascending},
	}

	var out bytes.Buffer
	if err := Execute(q, resolvedConfig(), &out); err != nil {
		t.Fatal(err)
	}
	want := "Name\nalice\nbob\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestExecuteUnknownColumnNameIsColumnNotFound(t *testing.T) {
	path := writeTempCSV(t, "id,name\n1,alice\n")
	q := &query.Query{
		Source:     path,
		Projection: query.Projection{Names: []string{"nope"}},
	}

	err := Execute(q, resolvedConfig(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected an error")
	}
	engErr, ok := err.(*Error)
	if !ok || engErr.Kind != KindColumnNotFound {
		t.Fatalf("got %v, want a column_not_found *Error", err)
	}
}

func TestExecuteEmptyFileIsEmptyInput(t *testing.T) {
	path := writeTempCSV(t, "")
	q := &query.Query{Source: path, Projection: query.Projection{All: true}}

	err := Execute(q, resolvedConfig(), &bytes.Buffer{})
	engErr, ok := err.(*Error)
	if !ok || engErr.Kind != KindEmptyInput {
		t.Fatalf("got %v, want an empty_input *Error", err)
	}
}

func TestExecuteGroupByIsNotImplemented(t *testing.T) {
	path := writeTempCSV(t, "id,name\n1,alice\n")
	q := &query.Query{
		Source:     path,
		Projection: query.Projection{All: true},
		GroupBy:    &query.GroupBySpec{Column: 1},
	}

	err := Execute(q, resolvedConfig(), &bytes.Buffer{})
	engErr, ok := err.(*Error)
	if !ok || engErr.Kind != KindNotImplemented {
		t.Fatalf("got %v, want a not_implemented *Error", err)
	}
}

func TestExecuteGroupByUnknownColumnNameIsColumnNotFound(t *testing.T) {
	path := writeTempCSV(t, "id,name\n1,alice\n")
	q := &query.Query{
		Source:  path,
		GroupBy: &query.GroupBySpec{Column: -1, ColumnName: "nope"},
	}

	err := Execute(q, resolvedConfig(), &bytes.Buffer{})
	engErr, ok := err.(*Error)
	if !ok || engErr.Kind != KindColumnNotFound {
		t.Fatalf("got %v, want a column_not_found *Error", err)
	}
}

func TestExecuteSingleMappedPath(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,value\n")
	for i := 0; i < 2000000; i++ {
		b.WriteString("1,x\n")
	}
	path := writeTempCSV(t, b.String())

	q := &query.Query{
		Source:     path,
		Projection: query.Projection{All: true},
		Predicate:  &query.Predicate{Column: 0, Operator: query.Eq, HasNumeric: true, Numeric: 1},
		Limit:      3,
	}

	var out bytes.Buffer
	if err := Execute(q, resolvedConfig(), &out); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected a header plus 3 rows, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "id,value" {
		t.Fatalf("expected the projected header first, got %q", lines[0])
	}
}

func TestExecuteParallelMappedPathWithSort(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,value\n")
	for i := 0; i < 3000000; i++ {
		b.WriteString("2,x\n1,y\n")
	}
	path := writeTempCSV(t, b.String())

	q := &query.Query{
		Source:     path,
		Projection: query.Projection{All: true},
		Sort:       &query.SortSpec{Column: 0, Direction: query.Ascending},
		Limit:      4,
	}

	var out bytes.Buffer
	if err := Execute(q, resolvedConfig(), &out); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected a header plus 4 rows, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "id,value" {
		t.Fatalf("expected the projected header first, got %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "1,") {
			t.Fatalf("expected the smallest id first, got %q", line)
		}
	}
}

func TestExecuteStreamQuotedFieldsAndSort(t *testing.T) {
	body := "id,name\n2,\"bob,b\"\n1,alice\n"
	q := &query.Query{
		Projection: query.Projection{All: true},
		Sort:       &query.SortSpec{Column: 0, Direction: query.Descending},
	}

	var out bytes.Buffer
	w := writer.New(&out, 0)
	if err := executeStream(strings.NewReader(body), q, resolvedConfig(), w); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "id,name\n2,\"bob,b\"\n1,alice\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

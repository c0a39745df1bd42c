package reader

import (
	"io"
	"strings"
	"testing"
)

func TestNextLineBasic(t *testing.T) {
	r := New(strings.NewReader("a,b\nc,d\n"), 0)
	line, ok, err := r.NextLine()
	if err != nil || !ok {
		t.Fatalf("unexpected: %v %v %v", line, ok, err)
	}
	if string(line) != "a,b" {
		t.Fatalf("got %q", line)
	}
	line, ok, err = r.NextLine()
	if err != nil || !ok || string(line) != "c,d" {
		t.Fatalf("got %q %v %v", line, ok, err)
	}
	_, ok, err = r.NextLine()
	if err != nil || ok {
		t.Fatalf("expected EOF, got ok=%v err=%v", ok, err)
	}
}

func TestNextLineNoTrailingNewline(t *testing.T) {
	r := New(strings.NewReader("last"), 0)
	line, ok, err := r.NextLine()
	if err != nil || !ok || string(line) != "last" {
		t.Fatalf("got %q %v %v", line, ok, err)
	}
	_, ok, _ = r.NextLine()
	if ok {
		t.Fatal("expected EOF after last unterminated line")
	}
}

func TestNextLineSpansMultipleFills(t *testing.T) {
	row := strings.Repeat("x", 100)
	input := row + "\n" + row + "\n"
	r := New(strings.NewReader(input), 16) // window smaller than one row forces refills
	line, ok, err := r.NextLine()
	if err != nil || !ok {
		t.Fatalf("unexpected: %v %v", ok, err)
	}
	if string(line) != row {
		t.Fatalf("got %d bytes, want %d", len(line), len(row))
	}
	line, ok, err = r.NextLine()
	if err != nil || !ok || string(line) != row {
		t.Fatalf("second row mismatch: %v %v", ok, err)
	}
}

func TestNextLineRowExceedsWindow(t *testing.T) {
	input := strings.Repeat("y", 100) + "\n"
	r := New(strings.NewReader(input), 16)
	_, _, err := r.NextLine()
	if err == nil {
		t.Fatal("expected an error for a row that never fits the window")
	}
}

type chunkyReader struct {
	chunks []string
}

func (c *chunkyReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if c.chunks[0] == "" {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func TestNextLineAcrossShortReads(t *testing.T) {
	src := &chunkyReader{chunks: []string{"ab", "c,", "de", "f\n", "gh\n"}}
	r := New(src, 8)
	line, ok, err := r.NextLine()
	if err != nil || !ok || string(line) != "abc,def" {
		t.Fatalf("got %q ok=%v err=%v", line, ok, err)
	}
	line, ok, err = r.NextLine()
	if err != nil || !ok || string(line) != "gh" {
		t.Fatalf("got %q ok=%v err=%v", line, ok, err)
	}
}

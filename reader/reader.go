// Package reader implements the Small-file Byte Reader: a
// double-buffered window over a byte stream, used for a file small
// enough that a buffered read beats mmap's fixed setup cost, and for
// the GROUP BY pass over any source. Piped stdin and compressed input
// are otherwise read through the RFC-4180 reader in this package.
package reader

import (
	"fmt"
	"io"

	"github.com/csvengine/csvq/scanner"
)

// ByteReader holds a fixed-capacity window of unconsumed bytes read
// from src. NextLine returns slices into that window; each call
// invalidates slices returned by the previous call, exactly like the
// spec's read_record_slices contract, so callers that need a line's
// bytes to outlive the next NextLine call (the sort path) must copy
// them into an arena before asking for the next line.
type ByteReader struct {
	src        io.Reader
	buf        []byte
	start, end int
	eof        bool
}

// New wraps src in a ByteReader with the given window size in bytes;
// windowSize <= 0 selects the spec's 2MB default.
func New(src io.Reader, windowSize int) *ByteReader {
	if windowSize <= 0 {
		windowSize = 2 << 20
	}
	return &ByteReader{src: src, buf: make([]byte, windowSize)}
}

// NextLine returns the next '\n'-terminated line, without its
// trailing '\n', or ok=false once the stream is exhausted. A trailing
// '\r' is left in place; callers (the Field Scanner) strip it.
func (r *ByteReader) NextLine() (line []byte, ok bool, err error) {
	for {
		if idx := scanner.NextNewline(r.buf[r.start:r.end], 0); idx >= 0 {
			line = r.buf[r.start : r.start+idx]
			r.start += idx + 1
			return line, true, nil
		}
		if r.eof {
			if r.start < r.end {
				line = r.buf[r.start:r.end]
				r.start = r.end
				return line, true, nil
			}
			return nil, false, nil
		}
		if err := r.fill(); err != nil {
			return nil, false, err
		}
	}
}

// fill slides any unconsumed bytes to the front of the window (the
// "putback" of data that arrived before a line boundary was found)
// and reads more from src to fill the rest of the window.
func (r *ByteReader) fill() error {
	remaining := r.end - r.start
	if remaining > 0 {
		copy(r.buf[0:remaining], r.buf[r.start:r.end])
	}
	r.start = 0
	r.end = remaining

	if r.end == len(r.buf) {
		return fmt.Errorf("reader: row exceeds %d-byte window without a line terminator", len(r.buf))
	}

	n, err := r.src.Read(r.buf[r.end:])
	r.end += n
	if err != nil {
		if err == io.EOF {
			r.eof = true
			return nil
		}
		return fmt.Errorf("reader: %w", err)
	}
	return nil
}

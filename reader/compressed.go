package reader

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// IsCompressed reports whether name's suffix marks it as a zstd
// stream, per the Compressed Input Adapter.
func IsCompressed(name string) bool {
	return strings.HasSuffix(name, ".zst")
}

// zstdReadCloser adapts a *zstd.Decoder (which exposes Close with no
// return value) to io.ReadCloser so callers can treat it like any
// other input stream.
type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z *zstdReadCloser) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return nil
}

// OpenCompressed wraps src, a raw zstd byte stream, with a streaming
// decoder. The decoded stream is never memory-mapped: engine.Execute
// sends a .zst source to the stream path before any mapped strategy
// is considered; this adapter only decodes.
func OpenCompressed(src io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("reader: zstd: %w", err)
	}
	return &zstdReadCloser{dec: dec}, nil
}

// Package mmap provides a read-only, page-aligned view of an input
// file, owned by one query execution for as long as any worker might
// still hold FieldSlice values aliasing it.
//
// The mmap/munmap pair below follows the same shape as the teacher
// codebase's own block-format mapper (ion/blockfmt's mmap_linux.go):
// open, stat, syscall.Mmap with PROT_READ|MAP_PRIVATE, and a paired
// unmap that the caller must invoke exactly once. This package widens
// that to golang.org/x/sys/unix so the same code path covers darwin,
// and supplies a non-mapped fallback for platforms where mmap(2) has
// no equivalent.
package mmap

import (
	"fmt"
	"math"
	"os"
)

// Region is a read-only view of an input file's bytes. Every
// FieldSlice produced during a scan must be contained within a
// Region's Bytes for the Region's entire lifetime; the Region must be
// released (via Close) only after every worker that might dereference
// such a slice has finished.
type Region struct {
	data   []byte
	closer func([]byte) error
}

// Bytes returns the mapped data. The returned slice is only valid
// until Close is called.
func (r *Region) Bytes() []byte {
	return r.data
}

// Close releases the mapping. It must be called exactly once, after
// every worker holding a reference into Bytes has been joined.
func (r *Region) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c(r.data)
}

// Open maps path read-only. Empty files yield a zero-length Region
// without a mapping; such a Region has no header line.
func Open(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmap: stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		return &Region{data: nil}, nil
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("mmap: %s exceeds max mappable size", path)
	}
	return mapFile(f, int(size))
}

// Package scanner turns one row's raw bytes into comma-delimited
// fields, and a chunk's raw bytes into row boundaries, without ever
// copying a byte: every FieldSlice returned here aliases the caller's
// backing array (a MappedRegion or a WorkerArena).
//
// The delimiter search is a SWAR ("SIMD within a register") byte
// finder operating on one 8-byte word per step: the
// spec calls for a vectorized comparison over fixed-width lanes with
// a mask extracted from the comparison, and the teacher codebase's
// own intrinsic-emulation layer (the `simd` package's lane types, used
// where true AVX512 registers aren't available) takes the same
// "group bytes into words, operate on the whole word" approach. This
// is the portable fallback the spec explicitly sanctions when real
// SIMD compare/mask-extract primitives are unavailable.
package scanner

import (
	"bytes"
	"math/bits"

	"github.com/csvengine/csvq/hwtag"
)

// vectorFriendly gates the 8-byte-word comma finder: on architectures
// without cheap unaligned word loads, the SWAR trick costs more than
// the scalar loop it's meant to beat.
var vectorFriendly = hwtag.HasVectorFriendlyLoads()

// FieldSlice aliases a run of bytes inside a MappedRegion or
// WorkerArena. It is never copied by this package.
type FieldSlice []byte

// MaxFields is the per-row field cap. Rows that would produce more
// fields than this are rejected by SplitFields (ok=false) rather than
// silently truncated, so the caller can count them as
// too_many_fields and drop the whole row — see DESIGN.md for why this
// module resolves spec.md's truncate-vs-drop ambiguity that way.
const MaxFields = 256

const loBits = 0x0101010101010101
const hiBits = 0x8080808080808080

// commaMask sets bit 7 of every byte lane in w that equals ',' (0x2c).
func commaMask(w uint64) uint64 {
	x := w ^ (uint64(',') * loBits)
	return (x - loBits) &^ x & hiBits
}

// NextComma returns the index of the first ',' in b at or after
// offset off, or -1 if there is none. It scans 8 bytes at a time via
// commaMask and falls back to a scalar loop on the less-than-8-byte
// remainder, which is the "residual bytes... scanned scalar-wise"
// case from the spec.
func NextComma(b []byte, off int) int {
	i := off
	n := len(b)
	if vectorFriendly {
		for ; i+8 <= n; i += 8 {
			w := loadWord(b[i : i+8])
			if m := commaMask(w); m != 0 {
				return i + bits.TrailingZeros64(m)/8
			}
		}
	}
	for ; i < n; i++ {
		if b[i] == ',' {
			return i
		}
	}
	return -1
}

func loadWord(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

// NextNewline returns the index of the first '\n' in b at or after
// offset off, or -1 if there is none. bytes.IndexByte is backed by an
// assembly-optimized search on most platforms (the Go runtime's
// equivalent of a platform memchr), which the spec explicitly permits
// for line-boundary discovery.
func NextNewline(b []byte, off int) int {
	idx := bytes.IndexByte(b[off:], '\n')
	if idx < 0 {
		return -1
	}
	return off + idx
}

// SplitFields splits row — the bytes of one line, without its
// trailing '\n' — into comma-delimited FieldSlice values appended to
// out (which is reused and must be reset by the caller or passed as
// out[:0]). A trailing '\r' is stripped from row first. The last
// field runs from just after the final comma to the row's end,
// including the empty-string case.
//
// ok is false when row would produce more than MaxFields fields; in
// that case out's contents are unspecified and the caller must treat
// the row as dropped (too_many_fields).
func SplitFields(row []byte, out []FieldSlice) ([]FieldSlice, bool) {
	row = stripTrailingCR(row)
	out = out[:0]
	start := 0
	for {
		pos := NextComma(row, start)
		if pos < 0 {
			break
		}
		if len(out) >= MaxFields {
			return out, false
		}
		out = append(out, FieldSlice(row[start:pos]))
		start = pos + 1
	}
	if len(out) >= MaxFields {
		return out, false
	}
	out = append(out, FieldSlice(row[start:]))
	return out, true
}

func stripTrailingCR(row []byte) []byte {
	if n := len(row); n > 0 && row[n-1] == '\r' {
		return row[:n-1]
	}
	return row
}

// Package codec implements the order-preserving mapping from
// sortable values (finite float64s, or the first bytes of a string)
// to a uint64 whose unsigned order matches the intended sort order.
//
// This is the piece that lets the Sort Core's radix path operate on
// plain uint64 keys regardless of the original column's type — the
// same role the `key, index` pairs play in the teacher codebase's own
// single-column sort algorithms, where a typed key (int64, float64,
// string, date.Time) is first reduced to a directly comparable form
// before the indirect sort runs.
package codec

import "math"

// AllOnes XORs a key for descending order. The Sort Core always sorts
// ascending on the key bits it is given; direction is baked into the
// key itself at construction time rather than by negating a
// comparator, per the spec's strict-weak-ordering requirement.
const AllOnes uint64 = ^uint64(0)

// EncodeFloat64 reinterprets f's bits and flips them so that unsigned
// comparison of the result matches signed comparison of f. f must be
// finite; callers detect NaN themselves and divert to byte comparison
// instead of calling this function.
//
// The round trip EncodeFloat64/DecodeFloat64 is exact for every finite
// value.
func EncodeFloat64(f float64) uint64 {
	u := math.Float64bits(f)
	if u&signBit != 0 {
		return ^u
	}
	return u | signBit
}

// DecodeFloat64 inverts EncodeFloat64.
func DecodeFloat64(u uint64) float64 {
	if u&signBit != 0 {
		return math.Float64frombits(u &^ signBit)
	}
	return math.Float64frombits(^u)
}

const signBit = uint64(1) << 63

// EncodeStringPrefix packs the first up to 8 bytes of s, big-endian,
// zero-padded on the right, preserving lexicographic order over that
// prefix. Bytes past the eighth are not represented; ties past the
// eighth byte must be broken by the caller via a full byte
// comparison (the comparison-sort fallback does this; the radix path
// leaves such ties unresolved, matching the source system's own
// documented truncation).
func EncodeStringPrefix(s []byte) uint64 {
	var buf [8]byte
	n := len(s)
	if n > 8 {
		n = 8
	}
	copy(buf[:], s[:n])
	return uint64(buf[0])<<56 | uint64(buf[1])<<48 | uint64(buf[2])<<40 | uint64(buf[3])<<32 |
		uint64(buf[4])<<24 | uint64(buf[5])<<16 | uint64(buf[6])<<8 | uint64(buf[7])
}

// Mask XORs key with AllOnes when desc is true, implementing
// descending order for an otherwise-ascending unsigned key space.
func Mask(key uint64, desc bool) uint64 {
	if desc {
		return key ^ AllOnes
	}
	return key
}

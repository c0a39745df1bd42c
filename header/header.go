// Package header builds the column name table and its case-folded
// lookup index once per query.
package header

import "fmt"

// Header is the ordered sequence of column names read from the first
// line of the input, plus the ColumnIndex derived from it.
type Header struct {
	// Names holds the original-case column names in row order.
	Names []string

	index ColumnIndex
}

// ColumnIndex maps a case-folded column name to its zero-based row
// position. Keys are disjoint by construction: a collision after
// case-folding is treated as an input error by New.
type ColumnIndex map[string]int

// New builds a Header from the raw header fields of a row, in the
// order they appeared. Case-folding is ASCII-only lowercasing, per
// spec: names outside ASCII are passed through unchanged beyond
// lowercasing their ASCII runs.
func New(fields []string) (*Header, error) {
	names := make([]string, len(fields))
	copy(names, fields)

	idx := make(ColumnIndex, len(names))
	for i, name := range names {
		folded := foldASCII(name)
		if _, dup := idx[folded]; dup {
			return nil, fmt.Errorf("header: duplicate column name %q after case-folding", folded)
		}
		idx[folded] = i
	}
	return &Header{Names: names, index: idx}, nil
}

// Len returns the number of columns.
func (h *Header) Len() int {
	return len(h.Names)
}

// Index returns the ColumnIndex built for this Header.
func (h *Header) Index() ColumnIndex {
	return h.index
}

// Lookup resolves a (case-insensitive) column name to its zero-based
// position. ok is false when the name is not present.
func (h *Header) Lookup(name string) (pos int, ok bool) {
	pos, ok = h.index[foldASCII(name)]
	return
}

// foldASCII lowercases only the ASCII letters in s, leaving every
// other byte (including non-ASCII UTF-8 continuation bytes) untouched.
func foldASCII(s string) string {
	out := make([]byte, len(s))
	changed := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
			changed = true
		}
		out[i] = c
	}
	if !changed {
		return s
	}
	return string(out)
}

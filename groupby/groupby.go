// Package groupby implements the Group-By Stub: the engine accepts a
// GROUP BY clause on the query tree, runs one sequential pass hashing
// every row's grouping key for a cardinality estimate, and then
// declines to execute an aggregate.
//
// The original system this module's spec was distilled from declares
// a GROUP BY surface but ships no aggregation executor for it either;
// this stub preserves that shape rather than quietly inventing a
// feature the spec never asked for.
package groupby

import (
	"errors"

	"github.com/dchest/siphash"

	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/scanner"
)

// ErrNotImplemented is returned by Execute for every GroupBySpec; the
// engine surfaces it as the not_implemented error kind.
var ErrNotImplemented = errors.New("groupby: GROUP BY aggregation is not implemented")

// hashKey0, hashKey1 are a fixed SipHash-2-4 key pair. The grouping
// key is used only for diagnostic cardinality estimates logged before
// Execute refuses the query, never for a result the user sees, so a
// fixed key (rather than a per-process random one) keeps repeated
// runs over the same input comparable.
const (
	hashKey0 uint64 = 0x6373_7671_6b65_7930
	hashKey1 uint64 = 0x6373_7671_6b65_7931
)

// GroupKey hashes row's GROUP BY column with SipHash-2-4, for logging
// an estimated distinct-group count before Execute refuses the query.
// Out-of-range columns hash the empty string, grouping them together.
func GroupKey(spec *query.GroupBySpec, row []scanner.FieldSlice) uint64 {
	var field []byte
	if spec.Column >= 0 && spec.Column < len(row) {
		field = row[spec.Column]
	}
	return siphash.Hash(hashKey0, hashKey1, field)
}

// Tally accumulates the distinct GroupKey values seen across one
// sequential pass over a source, for the diagnostic cardinality
// estimate the engine logs before refusing a GROUP BY query.
type Tally struct {
	spec *query.GroupBySpec
	seen map[uint64]struct{}
}

// NewTally starts a fresh tally for spec.
func NewTally(spec *query.GroupBySpec) *Tally {
	return &Tally{spec: spec, seen: make(map[uint64]struct{})}
}

// Add hashes row's grouping key and folds it into the running set of
// distinct keys seen so far.
func (t *Tally) Add(row []scanner.FieldSlice) {
	t.seen[GroupKey(t.spec, row)] = struct{}{}
}

// Count returns the number of distinct grouping keys seen so far.
func (t *Tally) Count() int {
	return len(t.seen)
}

// Execute always fails: no aggregation executor exists for a
// GroupBySpec. It exists so the engine has one call site to route
// through rather than special-casing GROUP BY inline.
func Execute(spec *query.GroupBySpec) error {
	if spec == nil {
		return nil
	}
	return ErrNotImplemented
}

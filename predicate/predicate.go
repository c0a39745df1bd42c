// Package predicate evaluates a query.Predicate against one scanned
// row.
//
// The simple-comparison case is the hot path: a pre-resolved column
// index and, for numeric comparisons, a pre-parsed threshold, so that
// evaluating a WHERE clause against a row never allocates and never
// touches columns the predicate doesn't reference. Compound
// AND/OR/NOT trees fall back to a slower recursive evaluator; the
// spec reserves that path for queries outside the hot loop, so it
// does not need the same care.
package predicate

import (
	"strconv"

	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/scanner"
)

// Evaluate reports whether row satisfies p. A nil Predicate matches
// every row (no WHERE clause).
func Evaluate(p *query.Predicate, row []scanner.FieldSlice) bool {
	if p == nil {
		return true
	}
	if p.Tree != nil {
		return evalTree(p.Tree, row)
	}
	return evalSimple(p, row)
}

func evalTree(t *query.PredicateTree, row []scanner.FieldSlice) bool {
	switch t.Connective {
	case query.Not:
		if len(t.Children) != 1 {
			return false
		}
		return !Evaluate(t.Children[0], row)
	case query.Or:
		for _, c := range t.Children {
			if Evaluate(c, row) {
				return true
			}
		}
		return false
	default: // query.And
		for _, c := range t.Children {
			if !Evaluate(c, row) {
				return false
			}
		}
		return true
	}
}

func evalSimple(p *query.Predicate, row []scanner.FieldSlice) bool {
	if p.Column < 0 || p.Column >= len(row) {
		return false
	}
	field := row[p.Column]

	if p.HasNumeric {
		v, err := ParseFloat(field)
		if err != nil {
			return false
		}
		return compareNumeric(v, p.Numeric, p.Operator)
	}
	return compareBytes(field, p.Literal, p.Operator)
}

func compareNumeric(v, threshold float64, op query.Op) bool {
	switch op {
	case query.Eq:
		return v == threshold
	case query.Ne:
		return v != threshold
	case query.Lt:
		return v < threshold
	case query.Le:
		return v <= threshold
	case query.Gt:
		return v > threshold
	case query.Ge:
		return v >= threshold
	default:
		return false
	}
}

// compareBytes implements equality/inequality byte-exact; the
// ordering operators are undefined on strings per spec and always
// evaluate to false.
func compareBytes(field, literal []byte, op query.Op) bool {
	switch op {
	case query.Eq:
		return string(field) == string(literal)
	case query.Ne:
		return string(field) != string(literal)
	default:
		return false
	}
}

// ParseFloat parses a base-10 floating-point literal: an optional
// leading sign, digits, an optional fractional part, and an optional
// decimal exponent. No surrounding whitespace is trimmed, matching
// the hot-path scanner, which never emits surrounding whitespace.
// Any other byte (so "NaN", "Inf" and hexadecimal forms) is a syntax
// error, and out-of-range values are a range error, so a successful
// parse is always finite.
func ParseFloat(field []byte) (float64, error) {
	for _, c := range field {
		switch {
		case c >= '0' && c <= '9', c == '+', c == '-', c == '.', c == 'e', c == 'E':
		default:
			return 0, &strconv.NumError{Func: "ParseFloat", Num: string(field), Err: strconv.ErrSyntax}
		}
	}
	return strconv.ParseFloat(string(field), 64)
}

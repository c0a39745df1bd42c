package predicate

import (
	"testing"

	"github.com/csvengine/csvq/query"
	"github.com/csvengine/csvq/scanner"
)

func row(fields ...string) []scanner.FieldSlice {
	out := make([]scanner.FieldSlice, len(fields))
	for i, f := range fields {
		out[i] = scanner.FieldSlice(f)
	}
	return out
}

func TestEvaluateNilMatchesEverything(t *testing.T) {
	if !Evaluate(nil, row("1", "2")) {
		t.Fatal("nil predicate should match")
	}
}

func TestEvaluateNumericComparison(t *testing.T) {
	p := &query.Predicate{Column: 0, Operator: query.Gt, HasNumeric: true, Numeric: 1}
	if !Evaluate(p, row("2")) {
		t.Error("2 > 1 should match")
	}
	if Evaluate(p, row("0")) {
		t.Error("0 > 1 should not match")
	}
}

func TestEvaluateNumericParseFailureIsFalse(t *testing.T) {
	p := &query.Predicate{Column: 0, Operator: query.Gt, HasNumeric: true, Numeric: 1}
	if Evaluate(p, row("not-a-number")) {
		t.Error("unparseable numeric field should not match")
	}
}

func TestEvaluateStringEquality(t *testing.T) {
	p := &query.Predicate{Column: 0, Operator: query.Eq, Literal: []byte("bob")}
	if !Evaluate(p, row("bob")) {
		t.Error("exact match should succeed")
	}
	if Evaluate(p, row("Bob")) {
		t.Error("string equality is byte-exact, must be case-sensitive")
	}
}

func TestEvaluateStringOrderingIsFalse(t *testing.T) {
	p := &query.Predicate{Column: 0, Operator: query.Lt, Literal: []byte("m")}
	if Evaluate(p, row("a")) {
		t.Error("< is undefined on strings and must evaluate to false")
	}
}

func TestEvaluateColumnOutOfRangeIsFalse(t *testing.T) {
	p := &query.Predicate{Column: 5, Operator: query.Eq, Literal: []byte("x")}
	if Evaluate(p, row("a", "b")) {
		t.Error("out-of-range column should evaluate to false")
	}
}

func TestEvaluateCompoundAndOrNot(t *testing.T) {
	gt0 := &query.Predicate{Column: 0, Operator: query.Gt, HasNumeric: true, Numeric: 0}
	lt10 := &query.Predicate{Column: 0, Operator: query.Lt, HasNumeric: true, Numeric: 10}
	and := &query.Predicate{Tree: &query.PredicateTree{Connective: query.And, Children: []*query.Predicate{gt0, lt10}}}
	if !Evaluate(and, row("5")) {
		t.Error("5 should satisfy 0 < x < 10")
	}
	if Evaluate(and, row("15")) {
		t.Error("15 should not satisfy 0 < x < 10")
	}

	not := &query.Predicate{Tree: &query.PredicateTree{Connective: query.Not, Children: []*query.Predicate{gt0}}}
	if Evaluate(not, row("5")) {
		t.Error("NOT(5 > 0) should be false")
	}
	if !Evaluate(not, row("-5")) {
		t.Error("NOT(-5 > 0) should be true")
	}

	or := &query.Predicate{Tree: &query.PredicateTree{Connective: query.Or, Children: []*query.Predicate{gt0, lt10}}}
	if !Evaluate(or, row("100")) {
		t.Error("100 satisfies x > 0")
	}
}

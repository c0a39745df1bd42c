package scanner

import (
	"bytes"
	"strings"
	"testing"
)

func TestSplitFieldsBasic(t *testing.T) {
	fields, ok := SplitFields([]byte("1,a,3.5"), nil)
	if !ok {
		t.Fatal("expected ok")
	}
	want := []string{"1", "a", "3.5"}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, w := range want {
		if string(fields[i]) != w {
			t.Errorf("field %d = %q, want %q", i, fields[i], w)
		}
	}
}

func TestSplitFieldsTrailingEmpty(t *testing.T) {
	fields, ok := SplitFields([]byte("a,b,"), nil)
	if !ok {
		t.Fatal("expected ok")
	}
	if len(fields) != 3 || string(fields[2]) != "" {
		t.Fatalf("got %q", fields)
	}
}

func TestSplitFieldsStripsCR(t *testing.T) {
	fields, ok := SplitFields([]byte("a,b\r"), nil)
	if !ok {
		t.Fatal("expected ok")
	}
	if string(fields[1]) != "b" {
		t.Fatalf("field 1 = %q, want %q (CR should be stripped)", fields[1], "b")
	}
}

func TestSplitFieldsNoCopy(t *testing.T) {
	row := []byte("hello,world")
	fields, _ := SplitFields(row, nil)
	if &fields[0][0] != &row[0] {
		t.Error("first field should alias row's backing array")
	}
}

func TestSplitFieldsEmptyRow(t *testing.T) {
	fields, ok := SplitFields([]byte(""), nil)
	if !ok || len(fields) != 1 || string(fields[0]) != "" {
		t.Fatalf("got %q, ok=%v", fields, ok)
	}
}

func TestSplitFieldsOverCap(t *testing.T) {
	row := strings.Repeat(",", MaxFields)
	_, ok := SplitFields([]byte(row), nil)
	if ok {
		t.Fatal("expected too-many-fields to be reported via ok=false")
	}
}

func TestSplitFieldsAtCap(t *testing.T) {
	row := strings.Repeat(",", MaxFields-1)
	fields, ok := SplitFields([]byte(row), nil)
	if !ok {
		t.Fatal("expected exactly-at-cap row to succeed")
	}
	if len(fields) != MaxFields {
		t.Fatalf("got %d fields, want %d", len(fields), MaxFields)
	}
}

func TestNextCommaAcrossWordBoundary(t *testing.T) {
	for pos := 0; pos < 24; pos++ {
		b := bytes.Repeat([]byte("x"), 24)
		b[pos] = ','
		if got := NextComma(b, 0); got != pos {
			t.Errorf("pos=%d: NextComma=%d", pos, got)
		}
	}
}

func TestNextCommaNone(t *testing.T) {
	if got := NextComma([]byte("abcdefgh"), 0); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestNextCommaBothPathsAgree(t *testing.T) {
	b := []byte("aaaaaaaa,bbbbbbbb,c")
	saved := vectorFriendly

	vectorFriendly = true
	wantFast := NextComma(b, 0)

	vectorFriendly = false
	wantScalar := NextComma(b, 0)

	vectorFriendly = saved

	if wantFast != wantScalar {
		t.Fatalf("SWAR path = %d, scalar path = %d, want equal", wantFast, wantScalar)
	}
	if wantFast != 8 {
		t.Fatalf("got %d, want 8", wantFast)
	}
}

func TestNextNewline(t *testing.T) {
	b := []byte("abc\ndef")
	if got := NextNewline(b, 0); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if got := NextNewline(b, 4); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

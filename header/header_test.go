package header

import "testing"

func TestNewAndLookup(t *testing.T) {
	h, err := New([]string{"ID", "Name", "Amount"})
	if err != nil {
		t.Fatal(err)
	}
	if h.Len() != 3 {
		t.Fatalf("expected 3 columns, got %d", h.Len())
	}
	for _, tc := range []struct {
		name string
		pos  int
	}{
		{"id", 0}, {"ID", 0}, {"name", 1}, {"AMOUNT", 2},
	} {
		pos, ok := h.Lookup(tc.name)
		if !ok || pos != tc.pos {
			t.Errorf("Lookup(%q) = %d, %v; want %d, true", tc.name, pos, ok, tc.pos)
		}
	}
	if _, ok := h.Lookup("missing"); ok {
		t.Error("expected missing column to not be found")
	}
}

func TestNewDuplicateAfterFold(t *testing.T) {
	_, err := New([]string{"id", "ID"})
	if err == nil {
		t.Fatal("expected error on duplicate case-folded header name")
	}
}

package reader

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestIsCompressed(t *testing.T) {
	cases := map[string]bool{
		"data.csv":     false,
		"data.csv.zst": true,
		"archive.zst":  true,
	}
	for name, want := range cases {
		if got := IsCompressed(name); got != want {
			t.Errorf("IsCompressed(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestOpenCompressedRoundTrip(t *testing.T) {
	var compressed bytes.Buffer
	enc, err := zstd.NewWriter(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	want := "id,value\n1,10\n2,20\n"
	if _, err := enc.Write([]byte(want)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	rc, err := OpenCompressed(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

package objfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmofishsauce/asm10/internal/session"
	"github.com/gmofishsauce/asm10/internal/word"
)

func TestWriteObjectHeaderAndLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ob")

	code := []word.Word{word.New(0), word.New(-1)}
	data := []word.Word{word.New(5)}

	if err := WriteObject(path, 100, code, data); err != nil {
		t.Fatalf("WriteObject: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	lines := strings.Split(string(contents), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header + 2 code + 1 data): %q", len(lines), lines)
	}

	wantHeader := word.EncodeInt(2) + "\t" + word.EncodeInt(1)
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	wantLine1 := word.EncodeInt(100) + "\t" + word.New(0).Encode()
	if lines[1] != wantLine1 {
		t.Errorf("line 1 = %q, want %q", lines[1], wantLine1)
	}

	wantLine3 := word.EncodeInt(102) + "\t" + word.New(5).Encode()
	if lines[3] != wantLine3 {
		t.Errorf("line 3 (data) = %q, want %q", lines[3], wantLine3)
	}
}

func TestWriteEntriesRemovedWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ent")

	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if err := WriteEntries(path, nil); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %q to be removed when there are no entries", path)
	}
}

func TestWriteExternsContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ext")

	externs := []session.ResolvedSymbol{
		{Name: "K", Address: 101},
		{Name: "K", Address: 105},
	}
	if err := WriteExterns(path, externs); err != nil {
		t.Fatalf("WriteExterns: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "K " + word.EncodeInt(101) + "\nK " + word.EncodeInt(105) + "\n"
	if string(contents) != want {
		t.Errorf("contents = %q, want %q", contents, want)
	}
}

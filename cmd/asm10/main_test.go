package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gmofishsauce/asm10/internal/config"
	"github.com/gmofishsauce/asm10/internal/diag"
)

func TestProcessFileWritesObjectFile(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.as")
	if err := os.WriteFile(srcPath, []byte("MAIN: mov r3, r5\nstop\n"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cfg := config.DefaultConfig()
	reporter := diag.NewReporter(os.Stderr)
	reporter.SetColor(false)

	base := filepath.Join(dir, "prog")
	processFile(base, cfg, reporter, false)

	if _, err := os.Stat(base + ".ob"); err != nil {
		t.Errorf("expected %s.ob to exist: %v", base, err)
	}
	if _, err := os.Stat(base + ".ent"); !os.IsNotExist(err) {
		t.Errorf("expected no .ent file for a program with no entries")
	}
	if _, err := os.Stat(base + ".ext"); !os.IsNotExist(err) {
		t.Errorf("expected no .ext file for a program with no externs")
	}
}

func TestProcessFileMissingSourceReportsAndContinues(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	reporter := diag.NewReporter(os.Stderr)
	reporter.SetColor(false)

	// Should not panic even though the source file doesn't exist.
	processFile(filepath.Join(dir, "nope"), cfg, reporter, false)
}

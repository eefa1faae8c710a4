package session

import (
	"strings"
	"testing"

	"github.com/gmofishsauce/asm10/internal/diag"
	"github.com/gmofishsauce/asm10/internal/image"
	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, src string) (*Session, string, bool) {
	t.Helper()
	var out strings.Builder
	reporter := diag.NewReporter(&out)
	reporter.SetColor(false)
	sess := New(image.DefaultBaseAddress, image.DefaultSize, reporter)
	ok := sess.Run(strings.NewReader(src))
	return sess, out.String(), ok
}

func TestAssembleSimpleInstruction(t *testing.T) {
	sess, diagOut, ok := run(t, "MAIN: mov r3, r5\n")
	if !ok {
		t.Fatalf("expected success, diagnostics: %s", diagOut)
	}
	if len(sess.Mem.Code()) != 2 {
		t.Fatalf("code len = %d, want 2", len(sess.Mem.Code()))
	}
	inst := sess.Mem.Code()[0]
	if inst.Bits() != (0<<6 | 3<<4 | 3<<2 | 0) {
		t.Errorf("instruction word bits = %010b, want %010b", inst.Bits(), 0<<6|3<<4|3<<2|0)
	}
	combined := sess.Mem.Code()[1]
	if combined.Bits() != (3<<6 | 5<<2 | 0) {
		t.Errorf("combined register word bits = %010b, want %010b", combined.Bits(), 3<<6|5<<2|0)
	}
}

func TestCommaRequiredBetweenOperands(t *testing.T) {
	_, diagOut, ok := run(t, "mov r3 r5\n")
	if ok {
		t.Fatal("expected failure: missing comma between operands")
	}
	if !strings.Contains(diagOut, "separated with commas") {
		t.Errorf("diagnostics = %q, want comma error", diagOut)
	}
}

func TestDuplicateLabel(t *testing.T) {
	_, diagOut, ok := run(t, "L: .data 1\nL: .data 2\n")
	if ok {
		t.Fatal("expected failure: duplicate label")
	}
	if !strings.Contains(diagOut, "already exists") {
		t.Errorf("diagnostics = %q, want duplicate-symbol error", diagOut)
	}
}

func TestEntryAndDataOutOfRangeWarning(t *testing.T) {
	sess, diagOut, ok := run(t, ".entry X\nX: .data 5,-3,600\n")
	if !ok {
		t.Fatalf("expected success with a warning, diagnostics: %s", diagOut)
	}
	if !strings.Contains(diagOut, "Warning") || !strings.Contains(diagOut, "10 bits") {
		t.Errorf("diagnostics = %q, want a 10-bit range warning", diagOut)
	}
	assert.True(t, sess.EntriesOK())
	assert.Len(t, sess.Entries, 1)
	assert.Equal(t, "X", sess.Entries[0].Name)
	assert.Equal(t, sess.Mem.Base()+sess.Mem.IC(), sess.Entries[0].Address)
}

func TestExternUseSiteAndPatch(t *testing.T) {
	sess, diagOut, ok := run(t, ".extern K\njmp K\n")
	if !ok {
		t.Fatalf("expected success, diagnostics: %s", diagOut)
	}
	if len(sess.Mem.Code()) != 2 {
		t.Fatalf("code len = %d, want 2", len(sess.Mem.Code()))
	}
	patched := sess.Mem.Code()[1]
	if patched.Bits() != (1<<2 | 1) {
		t.Errorf("extern operand bits = %010b, want %010b", patched.Bits(), 1<<2|1)
	}
	assert.Len(t, sess.Externs, 1)
	assert.Equal(t, "K", sess.Externs[0].Name)
	assert.Equal(t, sess.Mem.Base()+1, sess.Externs[0].Address)
}

func TestStructPatch(t *testing.T) {
	sess, diagOut, ok := run(t, "S: .struct 7,\"hi\"\nlea S.2, r1\n")
	if !ok {
		t.Fatalf("expected success, diagnostics: %s", diagOut)
	}
	code := sess.Mem.Code()
	if len(code) != 4 {
		t.Fatalf("code len = %d, want 4 (instruction + base addr + field + register output)", len(code))
	}
	if code[2].Bits() != (2<<2 | 0) {
		t.Errorf("field word bits = %010b, want %010b", code[2].Bits(), 2<<2|0)
	}
	if code[1].Bits()&0x3 != 2 {
		t.Errorf("base address ARE = %d, want 2 (relocatable)", code[1].Bits()&0x3)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, diagOut, ok := run(t, `.string "abc`+"\n")
	if ok {
		t.Fatal("expected failure: unterminated string")
	}
	if !strings.Contains(diagOut, "closing double quotes") {
		t.Errorf("diagnostics = %q, want missing-close-quote error", diagOut)
	}
}

func TestUndeclaredEntryName(t *testing.T) {
	sess, diagOut, ok := run(t, ".entry NOTHERE\nMAIN: rts\n")
	if !ok {
		t.Fatalf("expected overall success: an unresolved entry suppresses only .ent, diagnostics: %s", diagOut)
	}
	assert.False(t, sess.EntriesOK())
	if !strings.Contains(diagOut, "does not exist") {
		t.Errorf("diagnostics = %q, want label-does-not-exist error", diagOut)
	}
}

func TestBlankAndCommentLinesIgnored(t *testing.T) {
	_, diagOut, ok := run(t, "\n   \n; a comment\nMAIN: rts\n")
	if !ok {
		t.Fatalf("expected success, diagnostics: %s", diagOut)
	}
	if diagOut != "" {
		t.Errorf("diagnostics = %q, want none", diagOut)
	}
}

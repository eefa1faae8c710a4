// Package session owns the per-file assembly state — the symbol
// table, memory image, and the three deferred-resolution lists — and
// orchestrates first pass followed by second pass. One Session is
// constructed per input file and discarded when that file is done;
// nothing here is shared across files.
package session

import (
	"bufio"
	"io"

	"github.com/gmofishsauce/asm10/internal/diag"
	"github.com/gmofishsauce/asm10/internal/image"
	"github.com/gmofishsauce/asm10/internal/symtab"
)

// patchSite is a deferred reference to an operand word that was
// reserved (written as 0) in pass 1 and must be resolved in pass 2.
type patchSite struct {
	name      string
	codeIndex int
	line      int
	isStruct  bool
}

// entryRequest records one `.entry NAME` declaration.
type entryRequest struct {
	name string
	line int
}

// externUse records one code-site reference to a name that was used
// as an ABSOLUTE operand; pass 2 keeps the ones that resolve to an
// EXTERN symbol and discards the rest.
type externUse struct {
	name      string
	codeIndex int
}

// ResolvedSymbol is one name/address pair produced by the second pass,
// used for both the entries and externs output lists.
type ResolvedSymbol struct {
	Name    string
	Address int
}

// Session is the per-file assembly state.
type Session struct {
	Symbols  *symtab.Table
	Mem      *image.Image
	Reporter *diag.Reporter

	line int

	patchSites    []patchSite
	entryRequests []entryRequest
	externUses    []externUse

	// pendingEntries tracks names already requested via `.entry`, kept
	// separate from the symbol table because a pending entry is not
	// itself a symbol.
	pendingEntries map[string]bool

	failed bool

	// Entries and Externs are populated by the second pass. Entries is
	// valid for output (entriesOK) only if every entry request resolved
	// to an INST_L or DATA symbol; an unresolved or mistyped entry
	// suppresses just the .ent file, not .ob/.ext.
	Entries    []ResolvedSymbol
	Externs    []ResolvedSymbol
	entriesOK  bool
}

// EntriesOK reports whether every `.entry` request resolved cleanly,
// i.e. whether the entries file should be written.
func (s *Session) EntriesOK() bool {
	return s.entriesOK
}

// New constructs a Session with a fresh symbol table and memory image.
func New(base, size int, reporter *diag.Reporter) *Session {
	return &Session{
		Symbols:        symtab.New(),
		Mem:            image.New(base, size),
		Reporter:       reporter,
		pendingEntries: make(map[string]bool),
	}
}

// Failed reports whether any error-severity diagnostic has been
// reported so far this session, or the memory image has saturated.
func (s *Session) Failed() bool {
	return s.failed || s.Mem.Full()
}

func (s *Session) report(d diag.Diagnostic) {
	if d.Severity == diag.Error {
		s.failed = true
	}
	s.Reporter.Report(d)
}

func (s *Session) errorf(code diag.Code) {
	s.report(diag.NewError(s.line, code))
}

func (s *Session) errorToken(code diag.Code, token string) {
	s.report(diag.NewErrorToken(s.line, code, token))
}

func (s *Session) warnf(code diag.Code) {
	s.report(diag.NewWarning(s.line, code))
}

func (s *Session) warnToken(code diag.Code, token string) {
	s.report(diag.NewWarningToken(s.line, code, token))
}

// Run assembles src line by line (pass 1) then resolves deferred
// references against the finished symbol table (pass 2). It returns
// true if the session completed without errors and without memory
// saturation — the condition under which output files should be
// written.
func (s *Session) Run(src io.Reader) bool {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 4096), 4096)
	for scanner.Scan() {
		s.line++
		s.processLine(scanner.Text())
	}
	if s.Mem.Full() {
		s.Reporter.ReportMemoryFull()
		s.failed = true
	}
	if s.failed {
		return false
	}
	return s.secondPass()
}

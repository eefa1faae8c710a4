package session

import (
	"github.com/gmofishsauce/asm10/internal/diag"
	"github.com/gmofishsauce/asm10/internal/lexer"
	"github.com/gmofishsauce/asm10/internal/symtab"
)

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9')
}

// legalLabelSyntax checks a referenced (not newly defined) label name:
// starts with a letter, alphanumeric thereafter, within the name
// length limit. It does not check the symbol table.
func legalLabelSyntax(text string) (diag.Code, bool) {
	if text == "" {
		return diag.ErrIllegalLabel, false
	}
	if !isLetter(text[0]) {
		return diag.ErrLabelMustStartWithLetter, false
	}
	if len(text) > symtab.MaxNameLength {
		return diag.ErrLabelTooLong, false
	}
	for i := 1; i < len(text); i++ {
		if !isAlnum(text[i]) {
			return diag.ErrLabelIllegalCharacters, false
		}
	}
	return 0, true
}

// legalNewLabelSyntax checks a label being defined at the start of a
// line: same rules as legalLabelSyntax, plus the trailing colon that
// the line recognizer must have found.
func legalNewLabelSyntax(text string, hasColon bool) (diag.Code, bool) {
	if text == "" || !isLetter(text[0]) {
		return diag.ErrLabelMustStartWithLetter, false
	}
	if !hasColon {
		return diag.ErrMissingColon, false
	}
	if len(text) > symtab.MaxNameLength {
		return diag.ErrLabelTooLong, false
	}
	for i := 1; i < len(text); i++ {
		if !isAlnum(text[i]) {
			return diag.ErrLabelIllegalCharacters, false
		}
	}
	return 0, true
}

// processLine classifies and dispatches one input line. At most one
// error is reported per line; the first detected error wins and the
// remainder of the line is discarded. Warnings (an out-of-range value,
// an ignored label) do not stop the scan, so a line may also carry
// warnings.
func (s *Session) processLine(raw string) {
	lx := lexer.New(raw)
	switch lx.FirstNonBlank() {
	case 0, ';':
		return
	}

	label, hasLabel, command, ok := s.preProcessLine(lx)
	if !ok {
		return
	}

	sym, found := s.Symbols.Find(command)
	if !found {
		return // unreachable: preProcessLine only returns ok for a recognized command
	}

	switch sym.Kind {
	case symtab.DIRECT:
		s.processDirective(lx, command, label, hasLabel)
	case symtab.INST:
		s.processInstruction(lx, sym, label, hasLabel)
	}
}

// preProcessLine reads the optional label and the command token. See
// SPEC_FULL.md §4.3 for the grammar and original_source/first_pass_processor.c's
// pre_process_line for the exact error-precedence this mirrors.
func (s *Session) preProcessLine(lx *lexer.Lexer) (label string, hasLabel bool, command string, ok bool) {
	str1, hasColon := lx.ReadFirstToken()

	if sym, found := s.Symbols.Find(str1); found && (sym.Kind == symtab.INST || sym.Kind == symtab.DIRECT) {
		return "", false, str1, true
	}

	code, legal := legalNewLabelSyntax(str1, hasColon)
	if !legal {
		s.errorToken(code, str1)
		return "", false, "", false
	}

	if _, exists := s.Symbols.Find(str1); exists {
		s.errorToken(diag.ErrDuplicateSymbol, str1)
		return "", false, "", false
	}

	str2, more := lx.ReadToken()
	if !more || str2 == "" {
		s.errorToken(diag.ErrLabelFollowedByEmptyText, str1)
		return "", false, "", false
	}

	sym2, found2 := s.Symbols.Find(str2)
	if !found2 || (sym2.Kind != symtab.INST && sym2.Kind != symtab.DIRECT) {
		s.errorToken(diag.ErrUnknownCommand, str2)
		return "", false, "", false
	}

	return str1, true, str2, true
}

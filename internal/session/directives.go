package session

import (
	"github.com/gmofishsauce/asm10/internal/diag"
	"github.com/gmofishsauce/asm10/internal/lexer"
	"github.com/gmofishsauce/asm10/internal/symtab"
	"github.com/gmofishsauce/asm10/internal/word"
)

// processDirective dispatches one of the five preloaded directives. A
// label opening a .data/.string/.struct line is recorded as a DATA
// symbol at the current data counter before any words are written; a
// label opening .entry/.extern is syntactically accepted but ignored
// (warning 2), since neither directive defines storage.
func (s *Session) processDirective(lx *lexer.Lexer, name, label string, hasLabel bool) {
	switch name {
	case ".data":
		s.processDataDirective(lx, label, hasLabel)
	case ".string":
		s.processStringDirective(lx, label, hasLabel)
	case ".struct":
		s.processStructDirective(lx, label, hasLabel)
	case ".entry":
		s.processEntryDirective(lx, hasLabel)
	case ".extern":
		s.processExternDirective(lx, hasLabel)
	}
}

func (s *Session) defineDataLabel(label string, hasLabel, isStruct bool) {
	if !hasLabel {
		return
	}
	if err := s.Symbols.InsertLabel(label, s.Mem.DC(), symtab.Data, isStruct); err != nil {
		s.errorToken(diag.ErrDuplicateSymbol, label)
	}
}

func (s *Session) processDataDirective(lx *lexer.Lexer, label string, hasLabel bool) {
	s.defineDataLabel(label, hasLabel, false)
	nums, ok := s.readNumbersList(lx)
	if !ok {
		return
	}
	for _, n := range nums {
		s.Mem.InsertData(word.New(n))
	}
}

func (s *Session) processStringDirective(lx *lexer.Lexer, label string, hasLabel bool) {
	s.defineDataLabel(label, hasLabel, false)
	content, ok := s.readStringLiteral(lx)
	if !ok {
		return
	}
	for i := 0; i < len(content); i++ {
		s.Mem.InsertData(word.New(int(content[i])))
	}
	s.Mem.InsertData(word.New(0))
}

func (s *Session) processStructDirective(lx *lexer.Lexer, label string, hasLabel bool) {
	if lx.AtEOLAfterBlanks() {
		s.errorf(diag.ErrEmptyStructDefinition)
		return
	}
	tok, ok := lx.ReadToken()
	if !ok || tok == "" {
		s.errorf(diag.ErrMissingNumberDefinition)
		return
	}
	n, okNum := lexer.ParseSignedNumber(tok)
	if !okNum {
		s.errorToken(diag.ErrNotALegalNumber, tok)
		return
	}
	if !word.FitsRange(n) {
		s.warnToken(diag.WarnValueWontFit10, tok)
	}
	if !lx.SkipComma() {
		s.errorf(diag.ErrStructNumberMissingComma)
		return
	}
	content, ok := s.readStringLiteral(lx)
	if !ok {
		return
	}

	s.defineDataLabel(label, hasLabel, true)
	s.Mem.InsertData(word.New(n))
	for i := 0; i < len(content); i++ {
		s.Mem.InsertData(word.New(int(content[i])))
	}
	s.Mem.InsertData(word.New(0))
}

func (s *Session) processEntryDirective(lx *lexer.Lexer, hasLabel bool) {
	if hasLabel {
		s.warnf(diag.WarnLabelIgnoredWithEntryExtern)
	}
	tok, _ := lx.ReadToken()
	code, legal := legalLabelSyntax(tok)
	if !legal {
		s.errorToken(code, tok)
		return
	}
	if s.pendingEntries[tok] {
		s.errorToken(diag.ErrEntryExternAlreadyExists, tok)
		return
	}
	if sym, found := s.Symbols.Find(tok); found && sym.Kind == symtab.Extern {
		s.errorToken(diag.ErrEntryExternAlreadyExists, tok)
		return
	}
	s.pendingEntries[tok] = true
	s.entryRequests = append(s.entryRequests, entryRequest{name: tok, line: s.line})
}

func (s *Session) processExternDirective(lx *lexer.Lexer, hasLabel bool) {
	if hasLabel {
		s.warnf(diag.WarnLabelIgnoredWithEntryExtern)
	}
	tok, _ := lx.ReadToken()
	code, legal := legalLabelSyntax(tok)
	if !legal {
		s.errorToken(code, tok)
		return
	}
	if s.pendingEntries[tok] {
		s.errorToken(diag.ErrEntryExternAlreadyExists, tok)
		return
	}
	if err := s.Symbols.InsertLabel(tok, 0, symtab.Extern, false); err != nil {
		s.errorToken(diag.ErrEntryExternAlreadyExists, tok)
		return
	}
}

// readNumbersList reads a comma-separated list of signed decimal
// integers with no leading or trailing comma. A value outside the
// 10-bit signed range is kept (truncated on emission) but warned
// about.
func (s *Session) readNumbersList(lx *lexer.Lexer) ([]int, bool) {
	var nums []int
	for {
		tok, ok := lx.ReadToken()
		if !ok || tok == "" {
			if len(nums) == 0 {
				s.errorf(diag.ErrEmptyNumbersList)
			} else {
				s.errorf(diag.ErrExcessiveTrailingComma)
			}
			return nil, false
		}
		n, okNum := lexer.ParseSignedNumber(tok)
		if !okNum {
			s.errorToken(diag.ErrNotALegalNumber, tok)
			return nil, false
		}
		if !word.FitsRange(n) {
			s.warnToken(diag.WarnValueWontFit10, tok)
		}
		nums = append(nums, n)

		if lx.AtEOLAfterBlanks() {
			return nums, true
		}
		if !lx.SkipComma() {
			s.errorf(diag.ErrMissingCommaBetweenNumbers)
			return nil, false
		}
		if lx.AtEOLAfterBlanks() {
			s.errorf(diag.ErrExcessiveTrailingComma)
			return nil, false
		}
	}
}

// readStringLiteral reads one double-quoted string occupying the rest
// of the line, in the exact order the original string-definition
// checker reports its four failure modes.
func (s *Session) readStringLiteral(lx *lexer.Lexer) (string, bool) {
	if lx.AtEOLAfterBlanks() {
		s.errorf(diag.ErrEmptyStringDefinition)
		return "", false
	}
	content, hasOpen, closed := lx.ReadQuotedString()
	if !hasOpen {
		s.errorf(diag.ErrStringMissingOpenQuote)
		return "", false
	}
	if !closed {
		s.errorf(diag.ErrStringMissingCloseQuote)
		return "", false
	}
	if !lx.AtEOLAfterBlanks() {
		s.errorf(diag.ErrExcessiveTextAfterString)
		return "", false
	}
	return content, true
}

package session

import (
	"strconv"
	"strings"

	"github.com/gmofishsauce/asm10/internal/diag"
	"github.com/gmofishsauce/asm10/internal/lexer"
	"github.com/gmofishsauce/asm10/internal/symtab"
	"github.com/gmofishsauce/asm10/internal/word"
)

// Addressing modes, matching the 2-bit field values stored in an
// instruction word.
const (
	ModeImmediate = 0
	ModeAbsolute  = 1
	ModeStruct    = 2
	ModeRegister  = 3
)

// operand is one parsed instruction operand.
type operand struct {
	mode     int
	text     string
	imm      int
	regCode  int
	base     string // ABSOLUTE/STRUCT: the referenced label name
	field    int    // STRUCT: 1 or 2
}

// parseOperand classifies tok into one of the four addressing modes.
// It reports a diag.Code and ok=false if tok is syntactically invalid
// for every mode.
func (s *Session) parseOperand(tok string) (operand, diag.Code, bool) {
	if strings.HasPrefix(tok, "#") {
		n, ok := lexer.ParseSignedNumber(tok[1:])
		if !ok {
			return operand{}, diag.ErrNotALegalNumber, false
		}
		return operand{mode: ModeImmediate, text: tok, imm: n}, 0, true
	}

	if base, field, ok := splitStructField(tok); ok {
		code, legal := legalLabelSyntax(base)
		if !legal {
			return operand{}, code, false
		}
		return operand{mode: ModeStruct, text: tok, base: base, field: field}, 0, true
	}

	if sym, found := s.Symbols.Find(tok); found && sym.Kind == symtab.REGS {
		return operand{mode: ModeRegister, text: tok, regCode: sym.Reg.Code}, 0, true
	}

	code, legal := legalLabelSyntax(tok)
	if !legal {
		return operand{}, code, false
	}
	return operand{mode: ModeAbsolute, text: tok, base: tok}, 0, true
}

// splitStructField recognizes NAME.1 or NAME.2.
func splitStructField(tok string) (base string, field int, ok bool) {
	i := strings.LastIndexByte(tok, '.')
	if i < 0 || i == len(tok)-1 {
		return "", 0, false
	}
	suffix := tok[i+1:]
	n, err := strconv.Atoi(suffix)
	if err != nil || (n != 1 && n != 2) {
		return "", 0, false
	}
	return tok[:i], n, true
}

// inputModeAllowed and outputModeAllowed reproduce the original's
// three-state input/output codes (original_source/symbol_table.h):
// 0 means no operand at all; 1 is the narrow case (input: only
// ABSOLUTE/STRUCT — no immediate or register source; output: anything
// but IMMEDIATE); any other nonzero value (2, used by mov/cmp/add/sub
// for input and by prn for output) permits all four modes. This is not
// a per-bit mask over the four modes — it's a closed three-way
// enumeration, matching exactly what first_pass_processor.c's operand
// type checks test for.
func inputModeAllowed(code, mode int) bool {
	if code == 0 {
		return false
	}
	if code == 1 {
		return mode == ModeAbsolute || mode == ModeStruct
	}
	return true
}

func outputModeAllowed(code, mode int) bool {
	if code == 0 {
		return false
	}
	if code == 1 {
		return mode != ModeImmediate
	}
	return true
}

// processInstruction reads the operands an instruction mnemonic's
// input/output masks call for, validates their addressing modes, and
// emits the instruction word followed by its operand word(s). See
// SPEC_FULL.md §4.5 for the exact word layouts this mirrors.
func (s *Session) processInstruction(lx *lexer.Lexer, sym *symtab.Symbol, label string, hasLabel bool) {
	inst := sym.Inst
	if hasLabel {
		if err := s.Symbols.InsertLabel(label, s.Mem.IC(), symtab.InstLabel, false); err != nil {
			s.errorToken(diag.ErrDuplicateSymbol, label)
			return
		}
	}

	needInput := inst.InputMask != 0
	needOutput := inst.OutputMask != 0

	var inOp, outOp operand
	haveIn, haveOut := false, false

	if needInput {
		op, ok := s.readOperand(lx, inst.InputMask, inputModeAllowed, diag.ErrBadInputOperandType)
		if !ok {
			return
		}
		inOp, haveIn = op, true
	}

	if needInput && needOutput {
		if !lx.SkipComma() {
			s.errorf(diag.ErrMissingOperandComma)
			return
		}
	}

	if needOutput {
		op, ok := s.readOperand(lx, inst.OutputMask, outputModeAllowed, diag.ErrBadOutputOperandType)
		if !ok {
			return
		}
		outOp, haveOut = op, true
	}

	if !lx.AtEOLAfterBlanks() {
		s.errorf(diag.ErrExcessiveText)
		return
	}

	inMode, outMode := 0, 0
	if haveIn {
		inMode = inOp.mode
	}
	if haveOut {
		outMode = outOp.mode
	}
	s.Mem.InsertCode(word.PackInstruction(inst.Opcode, inMode, outMode))

	switch {
	case haveIn && haveOut && inOp.mode == ModeRegister && outOp.mode == ModeRegister:
		s.Mem.InsertCode(word.Raw(inOp.regCode<<6 | outOp.regCode<<2 | int(word.AREAbsolute)))
	default:
		if haveIn {
			s.emitOperand(inOp, true)
		}
		if haveOut {
			s.emitOperand(outOp, false)
		}
	}
}

func (s *Session) readOperand(lx *lexer.Lexer, code int, allowed func(code, mode int) bool, badModeCode diag.Code) (operand, bool) {
	tok, ok := lx.ReadToken()
	if !ok || tok == "" {
		s.errorf(diag.ErrTooFewParameters)
		return operand{}, false
	}
	op, errCode, legal := s.parseOperand(tok)
	if !legal {
		s.errorToken(errCode, tok)
		return operand{}, false
	}
	if !allowed(code, op.mode) {
		s.errorf(badModeCode)
		return operand{}, false
	}
	return op, true
}

// emitOperand writes the word(s) for a single operand that isn't part
// of a register/register pair (that case is handled inline by the
// caller as one combined word).
func (s *Session) emitOperand(op operand, isInput bool) {
	switch op.mode {
	case ModeImmediate:
		if !word.FitsSigned(op.imm, 8) {
			s.warnToken(diag.WarnImmediateWontFit8, op.text)
		}
		s.Mem.InsertCode(word.Raw(op.imm<<2 | int(word.AREAbsolute)))
	case ModeRegister:
		if isInput {
			s.Mem.InsertCode(word.Raw(op.regCode << 6))
		} else {
			s.Mem.InsertCode(word.Raw(op.regCode << 2))
		}
	case ModeAbsolute:
		idx := s.Mem.InsertCode(word.New(0))
		s.patchSites = append(s.patchSites, patchSite{name: op.base, codeIndex: idx, line: s.line})
		s.externUses = append(s.externUses, externUse{name: op.base, codeIndex: idx})
	case ModeStruct:
		idx := s.Mem.InsertCode(word.New(0))
		s.patchSites = append(s.patchSites, patchSite{name: op.base, codeIndex: idx, line: s.line, isStruct: true})
		s.Mem.InsertCode(word.Raw(op.field<<2 | int(word.AREAbsolute)))
	}
}

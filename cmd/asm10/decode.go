package main

import (
	"fmt"

	"github.com/gmofishsauce/asm10/internal/session"
	"github.com/gmofishsauce/asm10/internal/word"
)

// dumpDecoded prints the supplemented -v decoded-word dump (see
// SPEC_FULL.md §12): one line per code/data word showing its load
// address, awkward-base text, and the raw positional bit fields every
// word shares — opcode/input-mode/output-mode for an instruction word,
// address/ARE for an operand word. It decodes positions, not meaning;
// telling the two apart is left to the reader, same as the original's
// disassembly never claims to recover instruction boundaries on its
// own.
func dumpDecoded(sess *session.Session) {
	base := sess.Mem.Base()
	code := sess.Mem.Code()
	data := sess.Mem.Data()

	for i, w := range code {
		printDecodedWord(base+i, w)
	}
	for i, w := range data {
		printDecodedWord(base+len(code)+i, w)
	}
}

func printDecodedWord(addr int, w word.Word) {
	bits := w.Bits()
	opcode := (bits >> 6) & 0xF
	inMode := (bits >> 4) & 0x3
	outMode := (bits >> 2) & 0x3
	are := bits & 0x3
	fmt.Printf("%-4d %s  bits=%010b opcode=%-2d inMode=%d outMode=%d are=%d\n",
		addr, w.Encode(), bits, opcode, inMode, outMode, are)
}

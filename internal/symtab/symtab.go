// Package symtab implements the assembler's symbol table: a name to
// tagged-symbol mapping pre-populated with the fixed instruction set,
// register file, and directive keywords, plus the user-defined label
// kinds recorded during assembly.
package symtab

import "fmt"

// Kind discriminates the six symbol variants. INST, REGS, and DIRECT
// are preloaded; INST_L, DATA, and EXTERN are defined while assembling
// a source file.
type Kind int

const (
	INST Kind = iota
	REGS
	DIRECT
	InstLabel
	Data
	Extern
)

// MaxNameLength is the longest a label name may be (not counting the
// trailing colon when defining one).
const MaxNameLength = 30

// RegisterCount is the number of general registers r0..r(RegisterCount-1);
// PSW occupies the next code after them.
const RegisterCount = 8

// Instruction is the payload for an INST symbol: its opcode and the
// addressing-mode masks it accepts for input and output operands.
type Instruction struct {
	Opcode     int
	InputMask  int
	OutputMask int
}

// Register is the payload for a REGS symbol: its numeric code and the
// pre-shifted words it contributes when used as an input or output
// operand.
type Register struct {
	Code   int
	Input  int // code<<6, ready to OR into an instruction word
	Output int // code<<2
}

// Directive is the payload for a DIRECT symbol: which argument shapes
// it accepts.
type Directive struct {
	Integers bool
	String   bool
	Label    bool
}

// Label is the payload shared by INST_L, DATA, and EXTERN symbols: the
// counter value recorded when the label was defined (IC, DC, or the
// EXTERN sentinel 1) and, for DATA, whether it was defined by a
// `.struct` directive.
type Label struct {
	Address  int
	IsStruct bool
}

// Symbol is one entry in the table: a kind discriminant plus exactly
// one populated payload field, replacing the source's untyped
// data-pointer-plus-enum pairing with a checked sum type.
type Symbol struct {
	Name  string
	Kind  Kind
	Inst  Instruction
	Reg   Register
	Dir   Directive
	Label Label
}

// Table is the per-file symbol table. The zero value is not usable;
// construct one with New.
type Table struct {
	symbols map[string]*Symbol
}

// New returns a Table preloaded with the fixed instruction set,
// register file, and directive keywords.
func New() *Table {
	t := &Table{symbols: make(map[string]*Symbol, 64)}
	t.loadInstructions()
	t.loadRegisters()
	t.loadDirectives()
	return t
}

func (t *Table) insertPreloaded(name string, sym Symbol) {
	if _, exists := t.symbols[name]; exists {
		panic(fmt.Sprintf("symtab: duplicate preload entry %q", name))
	}
	sym.Name = name
	t.symbols[name] = &sym
}

func (t *Table) loadInstructions() {
	type row struct {
		name       string
		in, out    int
		opcode     int
	}
	rows := []row{
		{"mov", 2, 1, 0},
		{"cmp", 2, 2, 1},
		{"add", 2, 1, 2},
		{"sub", 2, 1, 3},
		{"not", 0, 1, 4},
		{"clr", 0, 1, 5},
		{"lea", 1, 1, 6},
		{"inc", 0, 1, 7},
		{"dec", 0, 1, 8},
		{"jmp", 0, 1, 9},
		{"bne", 0, 1, 10},
		{"red", 0, 1, 11},
		{"prn", 0, 2, 12},
		{"jsr", 0, 1, 13},
		{"rts", 0, 0, 14},
		{"stop", 0, 0, 15},
	}
	for _, r := range rows {
		t.insertPreloaded(r.name, Symbol{
			Kind: INST,
			Inst: Instruction{Opcode: r.opcode, InputMask: r.in, OutputMask: r.out},
		})
	}
}

func (t *Table) loadRegisters() {
	for i := 0; i < RegisterCount; i++ {
		name := fmt.Sprintf("r%d", i)
		t.insertPreloaded(name, Symbol{
			Kind: REGS,
			Reg:  Register{Code: i, Input: i << 6, Output: i << 2},
		})
	}
	t.insertPreloaded("PSW", Symbol{
		Kind: REGS,
		Reg:  Register{Code: RegisterCount, Input: RegisterCount << 6, Output: RegisterCount << 2},
	})
}

func (t *Table) loadDirectives() {
	type row struct {
		name                     string
		integers, str, label bool
	}
	rows := []row{
		{".data", true, false, false},
		{".struct", true, true, false},
		{".string", false, true, false},
		{".entry", false, false, true},
		{".extern", false, false, true},
	}
	for _, r := range rows {
		t.insertPreloaded(r.name, Symbol{
			Kind: DIRECT,
			Dir:  Directive{Integers: r.integers, String: r.str, Label: r.label},
		})
	}
}

// Find looks up name, returning (nil, false) if absent.
func (t *Table) Find(name string) (*Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// ErrDuplicate is returned by InsertLabel when name is already present
// under any kind.
var ErrDuplicate = fmt.Errorf("symbol already exists")

// InsertLabel records a user-defined label. kind must be InstLabel,
// Data, or Extern. For Extern, counter is ignored and the stored
// address is always the sentinel value 1, matching the original's
// `new_word.value = 1` regardless of the IC/DC passed at the call
// site.
func (t *Table) InsertLabel(name string, counter int, kind Kind, isStruct bool) error {
	if _, exists := t.symbols[name]; exists {
		return ErrDuplicate
	}
	addr := counter
	if kind == Extern {
		addr = 1
	}
	t.symbols[name] = &Symbol{
		Name:  name,
		Kind:  kind,
		Label: Label{Address: addr, IsStruct: isStruct},
	}
	return nil
}

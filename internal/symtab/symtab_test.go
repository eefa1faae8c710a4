package symtab

import "testing"

func TestPreloadedInstructions(t *testing.T) {
	tbl := New()
	sym, ok := tbl.Find("add")
	if !ok {
		t.Fatal("add not found")
	}
	if sym.Kind != INST {
		t.Errorf("add kind = %v, want INST", sym.Kind)
	}
	if sym.Inst.Opcode != 2 || sym.Inst.InputMask != 2 || sym.Inst.OutputMask != 1 {
		t.Errorf("add = %+v, want opcode=2 in=2 out=1", sym.Inst)
	}

	sym, ok = tbl.Find("stop")
	if !ok || sym.Inst.Opcode != 15 {
		t.Errorf("stop opcode = %+v, want 15", sym)
	}
}

func TestPreloadedRegisters(t *testing.T) {
	tbl := New()
	sym, ok := tbl.Find("r3")
	if !ok || sym.Kind != REGS {
		t.Fatalf("r3 not found or wrong kind: %+v", sym)
	}
	if sym.Reg.Input != 3<<6 || sym.Reg.Output != 3<<2 {
		t.Errorf("r3 reg = %+v, want input=%d output=%d", sym.Reg, 3<<6, 3<<2)
	}

	psw, ok := tbl.Find("PSW")
	if !ok || psw.Reg.Code != RegisterCount {
		t.Errorf("PSW = %+v, want code %d", psw, RegisterCount)
	}
}

func TestPreloadedDirectives(t *testing.T) {
	tbl := New()
	d, ok := tbl.Find(".struct")
	if !ok {
		t.Fatal(".struct not found")
	}
	if !d.Dir.Integers || !d.Dir.String || d.Dir.Label {
		t.Errorf(".struct directive = %+v, want integers+string, no label", d.Dir)
	}
	ent, ok := tbl.Find(".entry")
	if !ok || !ent.Dir.Label {
		t.Errorf(".entry directive = %+v, want label=true", ent)
	}
}

func TestInsertLabelDuplicate(t *testing.T) {
	tbl := New()
	if err := tbl.InsertLabel("LOOP", 5, InstLabel, false); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := tbl.InsertLabel("LOOP", 7, Data, false); err != ErrDuplicate {
		t.Errorf("second insert = %v, want ErrDuplicate", err)
	}
	// preloaded names are also protected
	if err := tbl.InsertLabel("mov", 0, InstLabel, false); err != ErrDuplicate {
		t.Errorf("redefining mov = %v, want ErrDuplicate", err)
	}
}

func TestInsertLabelExternSentinel(t *testing.T) {
	tbl := New()
	if err := tbl.InsertLabel("K", 99, Extern, false); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	sym, _ := tbl.Find("K")
	if sym.Label.Address != 1 {
		t.Errorf("extern address = %d, want sentinel 1", sym.Label.Address)
	}
}

func TestInsertLabelStructFlag(t *testing.T) {
	tbl := New()
	tbl.InsertLabel("S", 3, Data, true)
	sym, _ := tbl.Find("S")
	if !sym.Label.IsStruct {
		t.Error("expected is_struct = true")
	}
}

package asm

import "testing"

func TestAssembleSimpleProgram(t *testing.T) {
	src := `
	ORG $0000
START:  LDAA #$05
	STAA RESULT
	BRA START
RESULT: RMB 1
	END
`
	a, errs := Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if a.Symbols["START"] != 0x0000 {
		t.Errorf("START = $%04X, want $0000", a.Symbols["START"])
	}
	if a.Symbols["RESULT"] != 0x0007 {
		t.Errorf("RESULT = $%04X, want $0007", a.Symbols["RESULT"])
	}

	dense := a.Image.Dense()
	want := []byte{0x86, 0x05, 0xB7, 0x00, 0x07, 0x20, 0xF9}
	for i, b := range want {
		if dense[i] != b {
			t.Errorf("byte %d = $%02X, want $%02X", i, dense[i], b)
		}
	}
}

func TestAssembleEquCannotReferenceLaterEqu(t *testing.T) {
	src := `
	ORG $0000
FIRST	EQU SECOND
SECOND	EQU $10
`
	_, errs := Assemble(src)
	if len(errs) == 0 {
		t.Fatal("expected EQU FIRST to fail: SECOND is not yet defined when FIRST is resolved (pass 1 is sequential)")
	}
}

func TestAssembleInstructionCanReferenceLaterEqu(t *testing.T) {
	src := `
	ORG $0000
	LDAA #VALUE
VALUE	EQU $10
`
	_, errs := Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("instruction operands resolve in pass 2 against the full symbol table: %v", errs)
	}
}

func TestAssembleInstructionForwardReferenceSucceeds(t *testing.T) {
	src := `
	ORG $0000
	BRA SKIP
	NOP
SKIP:	RTS
`
	_, errs := Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("instruction forward references should resolve in pass 2: %v", errs)
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	src := `
	ORG $0000
DUP:	NOP
DUP:	NOP
`
	_, errs := Assemble(src)
	if len(errs) == 0 {
		t.Fatal("expected a DuplicateLabel error")
	}
}

func TestAssembleUndefinedLabel(t *testing.T) {
	src := `
	ORG $0000
	BRA NOWHERE
`
	_, errs := Assemble(src)
	if len(errs) == 0 {
		t.Fatal("expected an UndefinedLabel error")
	}
}

func TestAssembleBranchOutOfRange(t *testing.T) {
	var src string
	src = "\tORG $0000\nSTART:\tBRA FAR\n"
	for i := 0; i < 200; i++ {
		src += "\tNOP\n"
	}
	src += "FAR:\tRTS\n"

	_, errs := Assemble(src)
	if len(errs) == 0 {
		t.Fatal("expected a BranchOutOfRange error for a 200+ byte displacement")
	}
}

func TestAssembleAddressCollision(t *testing.T) {
	src := `
	ORG $0000
	NOP
	NOP
	ORG $0000
	LDAA #1
`
	_, errs := Assemble(src)
	if len(errs) == 0 {
		t.Fatal("expected an AddressCollision error")
	}
}

func TestAssembleAccumulatesParseErrors(t *testing.T) {
	src := `
	FROB #1
	BLAH #2
`
	_, errs := Assemble(src)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2 (batched across lines): %v", len(errs), errs)
	}
}

func TestAssembleFdbAndFcc(t *testing.T) {
	src := `
	ORG $0000
TABLE:	FDB $1234,$5678
TEXT:	FCC "HI"
`
	a, errs := Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	dense := a.Image.Dense()
	want := []byte{0x12, 0x34, 0x56, 0x78, 'H', 'I'}
	for i, b := range want {
		if dense[i] != b {
			t.Errorf("byte %d = $%02X, want $%02X", i, dense[i], b)
		}
	}
}

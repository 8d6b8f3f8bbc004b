package disasm

import "testing"

func TestDecodeOneInherent(t *testing.T) {
	inst, err := DecodeOne([]byte{0x01}, 0x0000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Mnemonic != "NOP" || inst.String() != "NOP" {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeOneImmediate(t *testing.T) {
	inst, err := DecodeOne([]byte{0x86, 0xFF}, 0x0000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.String() != "LDAA #$FF" {
		t.Fatalf("got %q", inst.String())
	}
}

func TestDecodeOneExtended(t *testing.T) {
	inst, err := DecodeOne([]byte{0xB7, 0x12, 0x34}, 0x0000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.String() != "STAA $1234" {
		t.Fatalf("got %q", inst.String())
	}
	if len(inst.Bytes) != 3 {
		t.Fatalf("got %d bytes, want 3", len(inst.Bytes))
	}
}

func TestDecodeOneIndexed(t *testing.T) {
	inst, err := DecodeOne([]byte{0xA6, 0x05}, 0x0000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.String() != "LDAA $05,X" {
		t.Fatalf("got %q", inst.String())
	}
}

func TestDecodeOneRelativeComputesTarget(t *testing.T) {
	// BEQ with displacement +4 from PC+2 at address $0010.
	inst, err := DecodeOne([]byte{0x27, 0x04}, 0x0010)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.String() != "BEQ $0016" {
		t.Fatalf("got %q", inst.String())
	}
}

func TestDecodeOneUnknownOpcode(t *testing.T) {
	_, err := DecodeOne([]byte{0x02}, 0x0000)
	if err == nil {
		t.Fatal("expected an error for an unassigned opcode")
	}
}

func TestDisassembleSequence(t *testing.T) {
	data := []byte{0x86, 0x05, 0x39} // LDAA #5 ; RTS
	insts := Disassemble(data, 0x0000, 0x0003)
	if len(insts) != 2 {
		t.Fatalf("got %d instructions, want 2", len(insts))
	}
	if insts[0].Mnemonic != "LDAA" || insts[1].Mnemonic != "RTS" {
		t.Fatalf("got %+v", insts)
	}
	if insts[1].Address != 0x0002 {
		t.Fatalf("RTS address = $%04X, want $0002", insts[1].Address)
	}
}

func TestDisassembleSkipsUnknownAsDB(t *testing.T) {
	data := []byte{0x02, 0x01} // unassigned, then NOP
	insts := Disassemble(data, 0x0000, 0x0002)
	if len(insts) != 2 {
		t.Fatalf("got %d instructions, want 2", len(insts))
	}
	if insts[0].Mnemonic != "DB" {
		t.Fatalf("got %+v", insts[0])
	}
	if insts[1].Mnemonic != "NOP" {
		t.Fatalf("got %+v", insts[1])
	}
}

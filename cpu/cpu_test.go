package cpu

import "testing"

func newTestCPU(resetVector uint16) *CPU {
	c := New()
	c.Mem.WriteU16(0xFFFE, resetVector)
	c.Reset()
	return c
}

func TestResetLoadsVector(t *testing.T) {
	c := newTestCPU(0x1000)
	if c.Reg.PC != 0x1000 {
		t.Fatalf("PC = $%04X, want $1000", c.Reg.PC)
	}
	if c.Status != Running {
		t.Fatalf("status = %v, want Running", c.Status)
	}
	if c.Reg.CCR != 0xD0 {
		t.Fatalf("CCR = $%02X, want $D0 (I set)", c.Reg.CCR)
	}
	if c.Reg.SP != 0x00FF {
		t.Fatalf("SP = $%04X, want $00FF", c.Reg.SP)
	}
}

func TestUnknownOpcodeHalts(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Mem.WriteU8(0x0000, 0x02) // unassigned opcode
	c.Step()
	if c.Status != Halted {
		t.Fatalf("status = %v, want Halted", c.Status)
	}
	if c.Reg.PC != 0x0000 {
		t.Fatalf("PC should not advance past the bad opcode, got $%04X", c.Reg.PC)
	}
}

func TestLDAAImmediateSetsFlags(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Mem.WriteU8(0x0000, 0x86) // LDAA #
	c.Mem.WriteU8(0x0001, 0x00)
	c.Step()
	if c.Reg.A != 0 {
		t.Fatalf("A = $%02X, want $00", c.Reg.A)
	}
	if !c.Reg.Z() || c.Reg.N() {
		t.Fatalf("Z/N flags wrong: Z=%v N=%v", c.Reg.Z(), c.Reg.N())
	}
}

func TestLDAANegativeSetsN(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Mem.WriteU8(0x0000, 0x86)
	c.Mem.WriteU8(0x0001, 0x80)
	c.Step()
	if !c.Reg.N() {
		t.Fatal("expected N set for a negative load")
	}
}

func TestADDACarryAndOverflow(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.A = 0x7F
	c.Mem.WriteU8(0x0000, 0x8B) // ADDA #
	c.Mem.WriteU8(0x0001, 0x01)
	c.Step()
	if c.Reg.A != 0x80 {
		t.Fatalf("A = $%02X, want $80", c.Reg.A)
	}
	if !c.Reg.V() {
		t.Fatal("expected V set: 0x7F + 0x01 overflows signed range")
	}
	if c.Reg.C() {
		t.Fatal("unexpected C set")
	}
}

func TestSUBABorrow(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.A = 0x00
	c.Mem.WriteU8(0x0000, 0x80) // SUBA #
	c.Mem.WriteU8(0x0001, 0x01)
	c.Step()
	if c.Reg.A != 0xFF {
		t.Fatalf("A = $%02X, want $FF", c.Reg.A)
	}
	if !c.Reg.C() {
		t.Fatal("expected C set: 0 - 1 borrows")
	}
}

func TestStoreAndLoadIndexed(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.A = 0x42
	c.Reg.X = 0x2000
	c.Mem.WriteU8(0x0000, 0xA7) // STAA ,X offset
	c.Mem.WriteU8(0x0001, 0x05)
	c.Step()
	if c.Mem.ReadU8(0x2005) != 0x42 {
		t.Fatalf("memory at $2005 = $%02X, want $42", c.Mem.ReadU8(0x2005))
	}
}

func TestBranchTaken(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.SetZ(true)
	c.Mem.WriteU8(0x0000, 0x27) // BEQ
	c.Mem.WriteU8(0x0001, 0x10)
	c.Step()
	if c.Reg.PC != 0x0012 {
		t.Fatalf("PC = $%04X, want $0012", c.Reg.PC)
	}
}

func TestBranchNotTaken(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.SetZ(false)
	c.Mem.WriteU8(0x0000, 0x27) // BEQ
	c.Mem.WriteU8(0x0001, 0x10)
	c.Step()
	if c.Reg.PC != 0x0002 {
		t.Fatalf("PC = $%04X, want $0002 (no branch)", c.Reg.PC)
	}
}

func TestJSRAndRTS(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.SP = 0x01FF
	c.Mem.WriteU8(0x0000, 0xBD) // JSR extended
	c.Mem.WriteU16(0x0001, 0x0100)
	c.Mem.WriteU8(0x0100, 0x39) // RTS
	c.Step()
	if c.Reg.PC != 0x0100 {
		t.Fatalf("PC after JSR = $%04X, want $0100", c.Reg.PC)
	}
	c.Step()
	if c.Reg.PC != 0x0003 {
		t.Fatalf("PC after RTS = $%04X, want $0003", c.Reg.PC)
	}
}

func TestPushPullAccumulator(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.SP = 0x01FF
	c.Reg.A = 0x55
	c.Mem.WriteU8(0x0000, 0x36) // PSHA
	c.Mem.WriteU8(0x0001, 0x86) // LDAA #
	c.Mem.WriteU8(0x0002, 0x00)
	c.Mem.WriteU8(0x0003, 0x32) // PULA
	c.Step()
	c.Step()
	if c.Reg.A != 0 {
		t.Fatalf("A after LDAA #0 = $%02X, want $00", c.Reg.A)
	}
	c.Step()
	if c.Reg.A != 0x55 {
		t.Fatalf("A after PULA = $%02X, want $55", c.Reg.A)
	}
}

func TestINXSetsOnlyZ(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.X = 0xFFFF
	c.Reg.SetN(true)
	c.Mem.WriteU8(0x0000, 0x08) // INX
	c.Step()
	if c.Reg.X != 0 {
		t.Fatalf("X = $%04X, want $0000", c.Reg.X)
	}
	if !c.Reg.Z() {
		t.Fatal("expected Z set when X wraps to 0")
	}
	if !c.Reg.N() {
		t.Fatal("INX must not touch N")
	}
}

func TestASLSetsCarryFromBit7(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.A = 0x80
	c.Mem.WriteU8(0x0000, 0x48) // ASLA
	c.Step()
	if c.Reg.A != 0 {
		t.Fatalf("A = $%02X, want $00", c.Reg.A)
	}
	if !c.Reg.C() {
		t.Fatal("expected C set from bit 7")
	}
}

func TestCLRAClearsAllArithmeticFlags(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.A = 0xFF
	c.Reg.SetC(true)
	c.Reg.SetV(true)
	c.Mem.WriteU8(0x0000, 0x4F) // CLRA
	c.Step()
	if c.Reg.A != 0 || c.Reg.C() || c.Reg.V() || c.Reg.N() || !c.Reg.Z() {
		t.Fatalf("CLRA flags wrong: A=$%02X C=%v V=%v N=%v Z=%v", c.Reg.A, c.Reg.C(), c.Reg.V(), c.Reg.N(), c.Reg.Z())
	}
}

func TestSWIStacksAndHalts(t *testing.T) {
	c := newTestCPU(0x0000)
	c.Reg.SP = 0x01FF
	c.Mem.WriteU8(0x0000, 0x3F) // SWI
	c.Step()
	if c.Status != Halted {
		t.Fatalf("status after SWI = %v, want Halted", c.Status)
	}
	if c.Reg.PC != 0x0001 {
		t.Fatalf("PC after SWI = $%04X, want $0001 (past the SWI)", c.Reg.PC)
	}
	if !c.Reg.I() {
		t.Fatal("expected I set after SWI")
	}
	if c.Reg.SP != 0x01FF-7 {
		t.Fatalf("SP after stacking = $%04X, want $%04X", c.Reg.SP, 0x01FF-7)
	}
}

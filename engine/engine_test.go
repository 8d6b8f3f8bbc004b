package engine

import (
	"context"
	"testing"

	"github.com/Urethramancer/m68k8/asm"
	"github.com/Urethramancer/m68k8/cpu"
)

// TestLoadAssemblyAndRun exercises spec.md scenario S1: an immediate load
// and store terminated by SWI, run to completion.
func TestLoadAssemblyAndRun(t *testing.T) {
	src := `
	ORG $0100
	LDA #$FF
	STA $30
	SWI
`
	assembly, errs := asm.Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected assembly errors: %v", errs)
	}

	e := New()
	e.LoadAssembly(assembly)
	e.CPU.Mem.WriteU16(0xFFFE, 0x0100)
	e.Reset()

	result := e.Run(context.Background(), 0)
	if result.Reason != StopHalted {
		t.Fatalf("reason = %v, want StopHalted", result.Reason)
	}
	if e.CPU.Status != cpu.Halted {
		t.Fatalf("CPU status = %v, want Halted", e.CPU.Status)
	}
	if e.CPU.Reg.A != 0xFF {
		t.Fatalf("A = $%02X, want $FF", e.CPU.Reg.A)
	}
	if got := e.CPU.Mem.ReadU8(0x30); got != 0xFF {
		t.Fatalf("mem[$30] = $%02X, want $FF", got)
	}
	if e.CPU.Reg.PC != 0x0105 {
		t.Fatalf("PC = $%04X, want $0105 (past the SWI)", e.CPU.Reg.PC)
	}
}

func TestBreakpointStopsRun(t *testing.T) {
	src := `
	ORG $0000
	NOP
	NOP
	NOP
`
	assembly, errs := asm.Assemble(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	e := New()
	e.LoadAssembly(assembly)
	e.CPU.Mem.WriteU16(0xFFFE, 0x0000)
	e.Reset()
	e.AddBreakpoint(0x0002)

	result := e.Run(context.Background(), 0)
	if result.Reason != StopBreakpoint {
		t.Fatalf("reason = %v, want StopBreakpoint", result.Reason)
	}
	if result.PC != 0x0002 {
		t.Fatalf("PC = $%04X, want $0002", result.PC)
	}
}

func TestStepReflectsHalt(t *testing.T) {
	e := New()
	e.CPU.Mem.WriteU8(0x0000, 0x02) // unassigned opcode
	e.CPU.Mem.WriteU16(0xFFFE, 0x0000)
	e.Reset()

	result := e.Step()
	if result.Reason != StopHalted {
		t.Fatalf("reason = %v, want StopHalted", result.Reason)
	}
	if e.CPU.Status != cpu.Halted {
		t.Fatalf("CPU status = %v, want Halted", e.CPU.Status)
	}
}

func TestBreakpointListAndClear(t *testing.T) {
	e := New()
	e.AddBreakpoint(0x0010)
	e.AddBreakpoint(0x0002)
	got := e.ListBreakpoints()
	want := []uint16{0x0002, 0x0010}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
	e.RemoveBreakpoint(0x0010)
	if len(e.ListBreakpoints()) != 1 {
		t.Fatalf("expected 1 breakpoint after removal")
	}
	e.ClearBreakpoints()
	if len(e.ListBreakpoints()) != 0 {
		t.Fatalf("expected 0 breakpoints after clear")
	}
}

func TestCancelledRun(t *testing.T) {
	e := New()
	e.CPU.Mem.WriteU8(0x0000, 0x01) // NOP; the context is cancelled before Run starts
	e.CPU.Mem.WriteU16(0xFFFE, 0x0000)
	e.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := e.Run(ctx, 0)
	if result.Reason != StopCancelled {
		t.Fatalf("reason = %v, want StopCancelled", result.Reason)
	}
}

package cpu

import (
	"fmt"

	"github.com/Urethramancer/m68k8/isa"
)

// Status is the interpreter's run state.
type Status int

const (
	Running Status = iota
	Halted
	Paused
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// CPU is the 6800 instruction interpreter: registers, memory, and the
// fetch/decode/execute loop.
type CPU struct {
	Reg    Registers
	Mem    *Memory
	Status Status

	// HaltReason explains why Status is Halted; empty otherwise.
	HaltReason string

	// Cycles counts the total clock cycles consumed since the last Reset.
	Cycles uint64
}

// New returns a CPU with a fresh 64 KiB memory, halted until Reset is
// called.
func New() *CPU {
	return &CPU{Mem: NewMemory(), Status: Halted, HaltReason: "not reset"}
}

// Reset loads PC from the reset vector at $FFFE and clears registers and
// cycle count, per spec.md section 4.5.
func (c *CPU) Reset() {
	c.Reg.Reset(c.Mem.ResetVector())
	c.Cycles = 0
	c.Status = Running
	c.HaltReason = ""
}

func (c *CPU) halt(format string, args ...any) {
	c.Status = Halted
	c.HaltReason = fmt.Sprintf(format, args...)
}

// fetch8 reads the byte at PC and advances PC.
func (c *CPU) fetch8() byte {
	v := c.Mem.ReadU8(c.Reg.PC)
	c.Reg.PC++
	return v
}

// fetch16 reads the big-endian word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	v := c.Mem.ReadU16(c.Reg.PC)
	c.Reg.PC += 2
	return v
}

// Step executes exactly one instruction and returns the encoding it
// consumed and the number of cycles it cost. An unknown opcode halts the
// CPU rather than returning an error, per spec.md section 4.5's failure
// semantics.
func (c *CPU) Step() (*isa.Encoding, int) {
	if c.Status != Running {
		return nil, 0
	}

	opcode := c.fetch8()
	enc, ok := isa.LookupOpcode(opcode)
	if !ok {
		c.Reg.PC--
		c.halt("unknown opcode $%02X at $%04X", opcode, c.Reg.PC)
		return nil, 0
	}

	handler, ok := dispatch[isa.Key{Mnemonic: enc.Mnemonic, Mode: enc.Mode}]
	if !ok {
		c.halt("unimplemented instruction %s (%s)", enc.Mnemonic, enc.Mode)
		return &enc, 0
	}

	handler(c, &enc)
	c.Cycles += uint64(enc.Cycles)
	return &enc, enc.Cycles
}

// handlerFunc executes one decoded instruction against the CPU state.
type handlerFunc func(c *CPU, enc *isa.Encoding)

// dispatch maps every (mnemonic, mode) pair in the instruction table to its
// execution handler, built once across the per-family files
// (arithmetic.go, move.go, logical.go, shift.go, flow.go, stack.go,
// misc.go, index.go) the way the teacher's cpu/decode.go builds its opcode jump
// table.
var dispatch = map[isa.Key]handlerFunc{}

func register(mnemonic string, mode isa.Mode, fn handlerFunc) {
	dispatch[isa.Key{Mnemonic: mnemonic, Mode: mode}] = fn
}

func registerModes(mnemonic string, modes []isa.Mode, fn handlerFunc) {
	for _, m := range modes {
		register(mnemonic, m, fn)
	}
}

// effectiveAddress resolves the memory address a Direct, Indexed, or
// Extended instruction operates on, fetching the operand bytes that follow the
// opcode.
func (c *CPU) effectiveAddress(mode isa.Mode) uint16 {
	switch mode {
	case isa.Direct:
		return uint16(c.fetch8())
	case isa.Extended:
		return c.fetch16()
	case isa.Indexed:
		off := c.fetch8()
		return c.Reg.X + uint16(off)
	}
	return 0
}

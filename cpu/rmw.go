package cpu

import "github.com/Urethramancer/m68k8/isa"

// rmwCore transforms an operand byte and updates flags; used by every
// single-operand read-modify-write instruction (NEG, COM, CLR, INC, DEC,
// and the shift/rotate family in shift.go), each of which the
// 6800 offers in both an accumulator-direct form (NEGA/NEGB, ...) and a
// memory form addressed Indexed or Extended (NEG, COM, ...).
type rmwCore func(r *Registers, v byte) byte

// registerRMW wires core to both accumulator-direct inherent opcodes
// (aMnemonic/bMnemonic) and the shared memory opcode (memMnemonic, over
// Indexed and Extended), per Design Note "Accumulator/memory instruction
// pairing".
func registerRMW(aMnemonic, bMnemonic, memMnemonic string, core rmwCore) {
	if aMnemonic != "" {
		register(aMnemonic, isa.Inherent, func(c *CPU, _ *isa.Encoding) {
			c.Reg.A = core(&c.Reg, c.Reg.A)
		})
	}
	if bMnemonic != "" {
		register(bMnemonic, isa.Inherent, func(c *CPU, _ *isa.Encoding) {
			c.Reg.B = core(&c.Reg, c.Reg.B)
		})
	}
	if memMnemonic != "" {
		registerModes(memMnemonic, []isa.Mode{isa.Indexed, isa.Extended}, func(c *CPU, enc *isa.Encoding) {
			addr := c.effectiveAddress(enc.Mode)
			v := c.Mem.ReadU8(addr)
			c.Mem.WriteU8(addr, core(&c.Reg, v))
		})
	}
}

// registerReadOnly is for instructions that compute flags from an operand
// without writing it back (TST).
func registerReadOnly(aMnemonic, bMnemonic, memMnemonic string, core func(r *Registers, v byte)) {
	if aMnemonic != "" {
		register(aMnemonic, isa.Inherent, func(c *CPU, _ *isa.Encoding) {
			core(&c.Reg, c.Reg.A)
		})
	}
	if bMnemonic != "" {
		register(bMnemonic, isa.Inherent, func(c *CPU, _ *isa.Encoding) {
			core(&c.Reg, c.Reg.B)
		})
	}
	if memMnemonic != "" {
		registerModes(memMnemonic, []isa.Mode{isa.Indexed, isa.Extended}, func(c *CPU, enc *isa.Encoding) {
			addr := c.effectiveAddress(enc.Mode)
			core(&c.Reg, c.Mem.ReadU8(addr))
		})
	}
}

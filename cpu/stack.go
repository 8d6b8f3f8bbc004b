package cpu

import "github.com/Urethramancer/m68k8/isa"

func init() {
	register("PSHA", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.pushByte(c.Reg.A) })
	register("PSHB", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.pushByte(c.Reg.B) })
	register("PULA", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.A = c.pullByte() })
	register("PULB", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.B = c.pullByte() })
	register("INS", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.SP++ })
	register("DES", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.SP-- })
}

// pushByte stores v at SP and decrements SP, matching the 6800's downward-
// growing stack convention (no underflow trap, per spec.md section 4.5).
func (c *CPU) pushByte(v byte) {
	c.Mem.WriteU8(c.Reg.SP, v)
	c.Reg.SP--
}

// pullByte increments SP and loads the byte at the new SP.
func (c *CPU) pullByte() byte {
	c.Reg.SP++
	return c.Mem.ReadU8(c.Reg.SP)
}

// pushWord pushes a 16-bit value low byte first, so it can be pulled back
// high byte first by pullWord (JSR/BSR and RTS; SWI/WAI and RTI).
func (c *CPU) pushWord(v uint16) {
	c.pushByte(byte(v))
	c.pushByte(byte(v >> 8))
}

func (c *CPU) pullWord() uint16 {
	hi := c.pullByte()
	lo := c.pullByte()
	return uint16(hi)<<8 | uint16(lo)
}

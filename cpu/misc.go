package cpu

import "github.com/Urethramancer/m68k8/isa"

func init() {
	register("NOP", isa.Inherent, func(c *CPU, _ *isa.Encoding) {})

	register("CLC", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.SetC(false) })
	register("SEC", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.SetC(true) })
	register("CLV", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.SetV(false) })
	register("SEV", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.SetV(true) })
	register("CLI", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.SetI(false) })
	register("SEI", isa.Inherent, func(c *CPU, _ *isa.Encoding) { c.Reg.SetI(true) })

	register("SWI", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.stackInterruptFrame()
		c.Reg.SetI(true)
		c.halt("SWI")
	})
	register("WAI", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.stackInterruptFrame()
		c.halt("WAI")
	})
	register("RTI", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.CCR = c.pullByte() | 0xC0
		c.Reg.B = c.pullByte()
		c.Reg.A = c.pullByte()
		c.Reg.X = c.pullWord()
		c.Reg.PC = c.pullWord()
	})
}

// stackInterruptFrame pushes PC, X, A, B, and CCR, the order SWI, WAI, and
// hardware interrupts stack and RTI unwinds.
func (c *CPU) stackInterruptFrame() {
	c.pushWord(c.Reg.PC)
	c.pushWord(c.Reg.X)
	c.pushByte(c.Reg.A)
	c.pushByte(c.Reg.B)
	c.pushByte(c.Reg.CCR)
}
